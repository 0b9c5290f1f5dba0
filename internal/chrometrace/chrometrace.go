// Package chrometrace reads span events from Chrome trace-event JSON, the
// format instrumented inference runs are exported in. Only duration begin
// ("B") and end ("E") phases are consumed; everything else is skipped.
package chrometrace

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"kernprof/internal/trace"
)

type jsonEvent struct {
	Name  string  `json:"name"`
	Phase string  `json:"ph"`
	TS    float64 `json:"ts"` // microseconds; Chrome allows fractional
	Tid   int     `json:"tid"`
	Args  struct {
		Shape string  `json:"shape"`
		Dims  []int64 `json:"dims"`
	} `json:"args"`
}

type jsonFile struct {
	TraceEvents []jsonEvent `json:"traceEvents"`
}

// Parse decodes Chrome trace JSON — either a bare event array or an
// object with a traceEvents field — into per-thread event streams,
// preserving each thread's event order. Events with unknown phases are
// skipped rather than treated as errors.
func Parse(r io.Reader) ([]trace.Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	events, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}

	byThread := make(map[int][]trace.Event)
	for _, je := range events {
		var kind trace.Kind
		switch je.Phase {
		case "B":
			kind = trace.Enter
		case "E":
			kind = trace.Exit
		default:
			continue
		}
		shape := je.Args.Shape
		if shape == "" && len(je.Args.Dims) > 0 {
			shape = trace.FormatShape(je.Args.Dims)
		}
		byThread[je.Tid] = append(byThread[je.Tid], trace.Event{
			Kind:        kind,
			Name:        je.Name,
			TimestampUS: int64(je.TS),
			Shape:       shape,
		})
	}

	tids := make([]int, 0, len(byThread))
	for tid := range byThread {
		tids = append(tids, tid)
	}
	sort.Ints(tids)

	streams := make([]trace.Stream, 0, len(tids))
	for _, tid := range tids {
		streams = append(streams, trace.Stream{Thread: tid, Events: byThread[tid]})
	}
	return streams, nil
}

func decodeEvents(data []byte) ([]jsonEvent, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var events []jsonEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("decode trace events: %w", err)
		}
		return events, nil
	}

	var file jsonFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, fmt.Errorf("decode trace file: %w", err)
	}
	return file.TraceEvents, nil
}

// Open reads streams from a trace file, handling gzip and stdin ("-").
func Open(path string) ([]trace.Stream, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	}
	return Parse(r)
}
