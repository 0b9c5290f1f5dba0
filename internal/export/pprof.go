// Package export converts an aggregated kernel table into a pprof
// profile so the statistics can feed standard profiling tooling.
package export

import (
	"io"

	"github.com/google/pprof/profile"

	"kernprof/internal/report"
	"kernprof/internal/trace"
)

// BuildProfile maps each kernel to one synthetic function/location with
// three sample values: call count, total inclusive microseconds, and
// self microseconds. Entries appear in ranked order so repeated exports
// of the same table are byte-identical.
func BuildProfile(table trace.Table) *profile.Profile {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "calls", Unit: "count"},
			{Type: "total", Unit: "microseconds"},
			{Type: "self", Unit: "microseconds"},
		},
		DefaultSampleType: "self",
	}

	for i, row := range report.Rank(table) {
		id := uint64(i + 1)
		fn := &profile.Function{
			ID:         id,
			Name:       row.Name,
			SystemName: row.Name,
		}
		loc := &profile.Location{
			ID:   id,
			Line: []profile.Line{{Function: fn, Line: 1}},
		}
		sample := &profile.Sample{
			Location: []*profile.Location{loc},
			Value: []int64{
				row.Calls,
				int64(row.TotalUS + 0.5),
				int64(row.SelfUS + 0.5),
			},
		}
		if row.Shape != "" {
			sample.Label = map[string][]string{"shape": {row.Shape}}
		}
		p.Function = append(p.Function, fn)
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, sample)
	}
	return p
}

// Write serializes the table as a gzip-compressed pprof protobuf.
func Write(w io.Writer, table trace.Table) error {
	return BuildProfile(table).Write(w)
}
