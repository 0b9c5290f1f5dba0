package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kernprof/internal/trace"
)

func stat(calls int64, total, self, max float64, shape string) *trace.KernelStat {
	return &trace.KernelStat{Calls: calls, TotalUS: total, SelfUS: self, MaxUS: max, Shape: shape}
}

// dataRows extracts the table body between the two horizontal rules.
func dataRows(out string) []string {
	lines := strings.Split(out, "\n")
	var rows []string
	inBody := false
	for _, line := range lines {
		if strings.HasPrefix(line, "---") {
			if inBody {
				break
			}
			inBody = true
			continue
		}
		if inBody {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestRankOrdering(t *testing.T) {
	table := trace.Table{
		"A": stat(1, 100, 100, 100, ""),
		"B": stat(1, 50, 50, 50, ""),
		"C": stat(1, 200, 200, 200, ""),
	}

	rows := Rank(table)
	require.Len(t, rows, 3)
	assert.Equal(t, "C", rows[0].Name)
	assert.Equal(t, "A", rows[1].Name)
	assert.Equal(t, "B", rows[2].Name)
}

func TestRankTieBreakByName(t *testing.T) {
	table := trace.Table{
		"zeta":  stat(1, 100, 1, 1, ""),
		"alpha": stat(1, 100, 1, 1, ""),
		"mid":   stat(1, 100, 1, 1, ""),
	}

	rows := Rank(table)
	require.Len(t, rows, 3)
	assert.Equal(t, "alpha", rows[0].Name)
	assert.Equal(t, "mid", rows[1].Name)
	assert.Equal(t, "zeta", rows[2].Name)
}

func TestRankAverage(t *testing.T) {
	table := trace.Table{
		"mm": stat(4, 100, 60, 40, "[2x2]"),
	}

	rows := Rank(table)
	require.Len(t, rows, 1)
	assert.InDelta(t, 25.0, rows[0].AvgUS, 1e-9)
}

func TestRankZeroCallsGuard(t *testing.T) {
	// Cannot occur from folding, but externally constructed tables must
	// not divide by zero.
	table := trace.Table{"x": stat(0, 10, 10, 10, "")}

	rows := Rank(table)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].AvgUS)
}

func TestRenderEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, trace.Table{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "No profiler events collected.\n", buf.String())
}

func TestRenderTruncatesButTotalsAll(t *testing.T) {
	table := make(trace.Table)
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("kernel_%02d", i)
		table[name] = stat(1, float64(1000-i), 10, float64(1000-i), "")
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, Options{}))
	out := buf.String()

	rows := dataRows(out)
	assert.Len(t, rows, 30)

	// Grand total sums self time over all 40 entries, not the top 30.
	assert.Contains(t, out, "Self time total: 400.00 us")
}

func TestRenderColumnLayout(t *testing.T) {
	table := trace.Table{
		"aten::mm": stat(3, 300, 150, 120, "[4x8]"),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, Options{}))
	out := buf.String()

	assert.Contains(t, out, "Kernel CPU time summary (top 30 by inclusive time)")
	assert.Contains(t, out, "Kernel")
	assert.Contains(t, out, "Calls")
	assert.Contains(t, out, "Shape")
	assert.Contains(t, out, strings.Repeat("-", 126))

	rows := dataRows(out)
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0], "aten::mm"))
	assert.Contains(t, rows[0], "300.00")
	assert.Contains(t, rows[0], "150.00")
	assert.Contains(t, rows[0], "100.00") // avg
	assert.Contains(t, rows[0], "120.00")
	assert.Contains(t, rows[0], "[4x8]")
}

func TestRenderTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 80)
	table := trace.Table{long: stat(1, 10, 10, 10, "")}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, Options{}))

	rows := dataRows(buf.String())
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0], strings.Repeat("x", 48)))
	assert.NotContains(t, rows[0], strings.Repeat("x", 49))
}

func TestRenderCustomTop(t *testing.T) {
	table := trace.Table{
		"a": stat(1, 30, 1, 30, ""),
		"b": stat(1, 20, 1, 20, ""),
		"c": stat(1, 10, 1, 10, ""),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, Options{Top: 2}))

	rows := dataRows(buf.String())
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "a"))
	assert.True(t, strings.HasPrefix(rows[1], "b"))
}
