package trace

// Interval is one matched enter/exit pair with computed durations.
type Interval struct {
	Name        string
	Shape       string
	InclusiveUS float64 // exit - enter, clamped to >= 0
	ExclusiveUS float64 // inclusive minus direct children's inclusive, clamped to >= 0
}

// DropStats counts events discarded while resolving a malformed or
// truncated stream. Never fatal; surfaced for diagnostics only.
type DropStats struct {
	UnmatchedExits int // exit with no open span on the stack
	UnclosedSpans  int // enters still open at end of stream
}

func (d DropStats) Empty() bool {
	return d.UnmatchedExits == 0 && d.UnclosedSpans == 0
}

func (d *DropStats) add(other DropStats) {
	d.UnmatchedExits += other.UnmatchedExits
	d.UnclosedSpans += other.UnclosedSpans
}

// activeFrame is the resolver's in-flight state for one open span.
type activeFrame struct {
	enter   Event
	childUS float64 // summed inclusive time of direct children
}

// ResolveStream pairs enter/exit events of a single thread using stack
// discipline (last-opened, first-closed) and returns the resolved
// intervals in close order.
//
// An exit with no matching enter is dropped. Enters left open at end of
// stream are dropped. Raw durations that come out negative (clock skew)
// are clamped to zero, and exclusive time is clamped independently so
// timestamp noise in nested spans cannot produce negative self-time.
func ResolveStream(events []Event) ([]Interval, DropStats) {
	var (
		stack     []activeFrame
		intervals []Interval
		drops     DropStats
	)

	for _, ev := range events {
		switch ev.Kind {
		case Enter:
			stack = append(stack, activeFrame{enter: ev})

		case Exit:
			if len(stack) == 0 {
				drops.UnmatchedExits++
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			inclusive := float64(ev.TimestampUS - top.enter.TimestampUS)
			if inclusive < 0 {
				inclusive = 0
			}
			exclusive := inclusive - top.childUS
			if exclusive < 0 {
				exclusive = 0
			}

			intervals = append(intervals, Interval{
				Name:        top.enter.Name,
				Shape:       top.enter.Shape,
				InclusiveUS: inclusive,
				ExclusiveUS: exclusive,
			})

			if len(stack) > 0 {
				stack[len(stack)-1].childUS += inclusive
			}
		}
	}

	drops.UnclosedSpans = len(stack)
	return intervals, drops
}
