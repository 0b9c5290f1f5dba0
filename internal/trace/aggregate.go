package trace

import (
	"golang.org/x/sync/errgroup"
)

// KernelStat accumulates statistics for one kernel name.
type KernelStat struct {
	Calls   int64
	TotalUS float64 // summed inclusive time
	SelfUS  float64 // summed exclusive time
	MaxUS   float64 // peak inclusive time of a single call
	Shape   string  // first non-empty shape seen
}

// Table maps kernel name to accumulated statistics. Folding is
// order-independent and associative, so per-thread partial tables can be
// built independently and merged.
type Table map[string]*KernelStat

// Fold adds one resolved interval into the table.
func (t Table) Fold(iv Interval) {
	stat, ok := t[iv.Name]
	if !ok {
		stat = &KernelStat{}
		t[iv.Name] = stat
	}
	stat.Calls++
	stat.TotalUS += iv.InclusiveUS
	stat.SelfUS += iv.ExclusiveUS
	if iv.InclusiveUS > stat.MaxUS {
		stat.MaxUS = iv.InclusiveUS
	}
	if stat.Shape == "" && iv.Shape != "" {
		stat.Shape = iv.Shape
	}
}

// Merge folds another table into t. The other table is not modified.
func (t Table) Merge(other Table) {
	for name, os := range other {
		stat, ok := t[name]
		if !ok {
			stat = &KernelStat{}
			t[name] = stat
		}
		stat.Calls += os.Calls
		stat.TotalUS += os.TotalUS
		stat.SelfUS += os.SelfUS
		if os.MaxUS > stat.MaxUS {
			stat.MaxUS = os.MaxUS
		}
		if stat.Shape == "" && os.Shape != "" {
			stat.Shape = os.Shape
		}
	}
}

// TotalSelfUS sums exclusive time across all entries.
func (t Table) TotalSelfUS() float64 {
	var total float64
	for _, stat := range t {
		total += stat.SelfUS
	}
	return total
}

// Aggregate resolves every stream and folds all intervals into a single
// table. An empty input yields an empty table, which is a valid outcome
// (instrumentation was inactive), not an error.
func Aggregate(streams []Stream) (Table, DropStats) {
	table := make(Table)
	var drops DropStats
	for _, s := range streams {
		intervals, d := ResolveStream(s.Events)
		drops.add(d)
		for _, iv := range intervals {
			table.Fold(iv)
		}
	}
	return table, drops
}

// AggregateParallel resolves streams concurrently, one partial table per
// stream, and merges the partials at the end. Results match Aggregate up
// to floating-point summation order.
func AggregateParallel(streams []Stream) (Table, DropStats) {
	partials := make([]Table, len(streams))
	partialDrops := make([]DropStats, len(streams))

	var g errgroup.Group
	for i := range streams {
		i := i
		g.Go(func() error {
			partial := make(Table)
			intervals, d := ResolveStream(streams[i].Events)
			for _, iv := range intervals {
				partial.Fold(iv)
			}
			partials[i] = partial
			partialDrops[i] = d
			return nil
		})
	}
	g.Wait() // resolution never fails

	table := make(Table)
	var drops DropStats
	for i := range streams {
		table.Merge(partials[i])
		drops.add(partialDrops[i])
	}
	return table, drops
}
