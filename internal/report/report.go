// Package report ranks aggregated kernel statistics and renders the
// fixed-width summary table.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"kernprof/internal/trace"
)

// DefaultTop is the row limit of the rendered table.
const DefaultTop = 30

const nameWidth = 48

// Row is one display entry derived from a KernelStat.
type Row struct {
	Name    string
	Calls   int64
	TotalUS float64
	SelfUS  float64
	AvgUS   float64
	MaxUS   float64
	Shape   string
}

// Rank copies table entries into rows sorted by total inclusive time
// descending. Ties are broken by name ascending so the row order does not
// depend on map iteration.
func Rank(table trace.Table) []Row {
	rows := make([]Row, 0, len(table))
	for name, stat := range table {
		avg := 0.0
		if stat.Calls > 0 {
			avg = stat.TotalUS / float64(stat.Calls)
		}
		rows = append(rows, Row{
			Name:    name,
			Calls:   stat.Calls,
			TotalUS: stat.TotalUS,
			SelfUS:  stat.SelfUS,
			AvgUS:   avg,
			MaxUS:   stat.MaxUS,
			Shape:   stat.Shape,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalUS != rows[j].TotalUS {
			return rows[i].TotalUS > rows[j].TotalUS
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Options controls rendering. The zero value renders the top DefaultTop
// rows with no filter.
type Options struct {
	Top   int        // row limit; <= 0 means DefaultTop
	Where *RowFilter // optional row predicate
}

// Render writes the ranked kernel summary. The grand total line sums
// exclusive time over every table entry, not just the displayed rows, so
// truncation and filtering never change it.
func Render(w io.Writer, table trace.Table, opts Options) error {
	if len(table) == 0 {
		fmt.Fprintln(w, "No profiler events collected.")
		return nil
	}

	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}

	rows := Rank(table)
	if opts.Where != nil {
		kept := rows[:0]
		for _, row := range rows {
			ok, err := opts.Where.Match(row)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			if ok {
				kept = append(kept, row)
			}
		}
		rows = kept
		if len(rows) == 0 {
			fmt.Fprintln(w, "no kernels matching filter")
			return nil
		}
	}

	if top < len(rows) {
		rows = rows[:top]
	}

	rule := strings.Repeat("-", 126)
	fmt.Fprintf(w, "\nKernel CPU time summary (top %d by inclusive time)\n", top)
	fmt.Fprintf(w, "%-48s%10s%14s%14s%12s%12s%16s\n",
		"Kernel", "Calls", "Total(us)", "Self(us)", "Avg(us)", "Max(us)", "Shape")
	fmt.Fprintln(w, rule)

	for _, row := range rows {
		name := row.Name
		if len(name) > nameWidth {
			name = name[:nameWidth]
		}
		fmt.Fprintf(w, "%-48s%10d%14.2f%14.2f%12.2f%12.2f%16s\n",
			name, row.Calls, row.TotalUS, row.SelfUS, row.AvgUS, row.MaxUS, row.Shape)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Self time total: %.2f us\n", table.TotalSelfUS())
	return nil
}
