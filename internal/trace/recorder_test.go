package trace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns successive timestamps from the given sequence, then
// keeps returning the last one.
func fakeClock(times ...int64) func() int64 {
	i := 0
	return func() int64 {
		if i < len(times) {
			t := times[i]
			i++
			return t
		}
		return times[len(times)-1]
	}
}

func TestRecorderSingleThread(t *testing.T) {
	rec := NewRecorderWithClock(fakeClock(0, 10, 30, 50))
	tr := rec.Thread(0)

	tr.Begin("A")
	tr.Begin("B", 2, 3)
	tr.End("B")
	tr.End("A")

	streams := rec.Streams()
	require.Len(t, streams, 1)
	require.Len(t, streams[0].Events, 4)

	ev := streams[0].Events
	assert.Equal(t, Enter, ev[0].Kind)
	assert.Equal(t, "A", ev[0].Name)
	assert.Equal(t, int64(0), ev[0].TimestampUS)
	assert.Equal(t, "[2x3]", ev[1].Shape)
	assert.Equal(t, Exit, ev[2].Kind)
	assert.Equal(t, int64(50), ev[3].TimestampUS)
}

func TestRecorderStreamsOrderedByThread(t *testing.T) {
	rec := NewRecorderWithClock(fakeClock(0))
	rec.Thread(7).Begin("x")
	rec.Thread(2).Begin("y")
	rec.Thread(5).Begin("z")

	streams := rec.Streams()
	require.Len(t, streams, 3)
	assert.Equal(t, 2, streams[0].Thread)
	assert.Equal(t, 5, streams[1].Thread)
	assert.Equal(t, 7, streams[2].Thread)
}

func TestRecorderStreamsSnapshot(t *testing.T) {
	rec := NewRecorderWithClock(fakeClock(0, 1, 2, 3))
	tr := rec.Thread(0)
	tr.Begin("a")
	tr.End("a")

	streams := rec.Streams()
	tr.Begin("b")

	// The earlier snapshot must not see the later event.
	require.Len(t, streams[0].Events, 2)
}

func TestRecorderConcurrentThreads(t *testing.T) {
	rec := NewRecorder()

	var wg sync.WaitGroup
	const threads = 8
	const spansPerThread = 50

	for id := 0; id < threads; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tr := rec.Thread(id)
			for i := 0; i < spansPerThread; i++ {
				tr.Begin("work")
				tr.End("work")
			}
		}(id)
	}
	wg.Wait()

	table, drops := Aggregate(rec.Streams())
	assert.True(t, drops.Empty())
	require.NotNil(t, table["work"])
	assert.Equal(t, int64(threads*spansPerThread), table["work"].Calls)
}

func TestRecorderEndToEndAggregation(t *testing.T) {
	rec := NewRecorderWithClock(fakeClock(0, 10, 30, 50))
	tr := rec.Thread(0)

	tr.Begin("outer", 1, 512)
	tr.Begin("inner")
	tr.End("inner")
	tr.End("outer")

	table, drops := Aggregate(rec.Streams())
	assert.True(t, drops.Empty())

	outer := table["outer"]
	require.NotNil(t, outer)
	assert.Equal(t, 50.0, outer.TotalUS)
	assert.Equal(t, 30.0, outer.SelfUS)
	assert.Equal(t, "[1x512]", outer.Shape)
}
