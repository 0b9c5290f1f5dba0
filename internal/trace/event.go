// Package trace holds the kernel-span event model and the aggregation
// engine: pairing enter/exit events into intervals and folding intervals
// from all threads into per-kernel statistics.
package trace

import (
	"strconv"
	"strings"
)

// Kind distinguishes the two halves of a span.
type Kind int

const (
	Enter Kind = iota
	Exit
)

func (k Kind) String() string {
	if k == Enter {
		return "enter"
	}
	return "exit"
}

// Event is one raw instrumentation record. Timestamps are monotonic
// microseconds, non-decreasing within a single thread's stream.
type Event struct {
	Kind        Kind
	Name        string
	TimestampUS int64
	Shape       string // "" if unavailable
}

// Stream is the ordered event sequence of one execution thread.
type Stream struct {
	Thread int
	Events []Event
}

// FormatShape renders tensor dimensions as "[2x3x4]". Empty input yields "".
func FormatShape(dims []int64) string {
	if len(dims) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, d := range dims {
		if i != 0 {
			sb.WriteByte('x')
		}
		sb.WriteString(strconv.FormatInt(d, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}
