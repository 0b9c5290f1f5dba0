package trace

import (
	"sort"
	"sync"
	"time"
)

// Recorder collects span events in-process, one event stream per thread.
// It is the producer side of the aggregation contract: instrument the
// workload with Begin/End calls, then hand Streams() to Aggregate once
// collection has ended.
type Recorder struct {
	mu      sync.Mutex
	threads map[int]*ThreadRecorder
	clock   func() int64 // monotonic microseconds
	start   time.Time
}

// NewRecorder returns a Recorder timestamping events with a monotonic
// microsecond clock anchored at construction time.
func NewRecorder() *Recorder {
	r := &Recorder{
		threads: make(map[int]*ThreadRecorder),
		start:   time.Now(),
	}
	r.clock = func() int64 { return time.Since(r.start).Microseconds() }
	return r
}

// NewRecorderWithClock is NewRecorder with an injected clock, for tests
// and for replaying pre-timestamped event sources.
func NewRecorderWithClock(clock func() int64) *Recorder {
	return &Recorder{
		threads: make(map[int]*ThreadRecorder),
		clock:   clock,
	}
}

// Thread returns the event stream recorder for the given thread id,
// creating it on first use. Safe for concurrent callers; each returned
// ThreadRecorder must only be used from its own thread.
func (r *Recorder) Thread(id int) *ThreadRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.threads[id]
	if !ok {
		tr = &ThreadRecorder{id: id, clock: r.clock}
		r.threads[id] = tr
	}
	return tr
}

// Streams snapshots all per-thread event streams, ordered by thread id.
func (r *Recorder) Streams() []Stream {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, len(r.threads))
	for id := range r.threads {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	streams := make([]Stream, 0, len(ids))
	for _, id := range ids {
		tr := r.threads[id]
		events := make([]Event, len(tr.events))
		copy(events, tr.events)
		streams = append(streams, Stream{Thread: id, Events: events})
	}
	return streams
}

// ThreadRecorder appends events for a single thread. Not safe for
// concurrent use; one goroutine per ThreadRecorder.
type ThreadRecorder struct {
	id     int
	clock  func() int64
	events []Event
}

// Begin opens a span. dims, if given, become the span's shape descriptor.
func (tr *ThreadRecorder) Begin(name string, dims ...int64) {
	tr.events = append(tr.events, Event{
		Kind:        Enter,
		Name:        name,
		TimestampUS: tr.clock(),
		Shape:       FormatShape(dims),
	})
}

// End closes the most recently opened span.
func (tr *ThreadRecorder) End(name string) {
	tr.events = append(tr.events, Event{
		Kind:        Exit,
		Name:        name,
		TimestampUS: tr.clock(),
	})
}
