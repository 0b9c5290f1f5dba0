package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kernprof/internal/chrometrace"
	"kernprof/internal/report"
	"kernprof/internal/trace"
	"kernprof/pkg/logutil"
)

func reportCmd() *cobra.Command {
	var (
		top   int
		where string
		tid   int
	)

	cmd := &cobra.Command{
		Use:   "report <trace.json>",
		Short: "Render the ranked kernel time summary for a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := report.Options{Top: top}
			if where != "" {
				f, err := report.CompileFilter(where)
				if err != nil {
					return err
				}
				opts.Where = f
			}

			streams, err := chrometrace.Open(args[0])
			if err != nil {
				return err
			}
			streams = filterThread(streams, tid)

			table, drops := trace.AggregateParallel(streams)
			if !drops.Empty() {
				logutil.GetLogger().Warn("dropped malformed events",
					zap.String("trace", args[0]),
					zap.Int("unmatched_exits", drops.UnmatchedExits),
					zap.Int("unclosed_spans", drops.UnclosedSpans))
			}
			return report.Render(cmd.OutOrStdout(), table, opts)
		},
	}

	cmd.Flags().IntVar(&top, "top", report.DefaultTop, "limit output rows")
	cmd.Flags().StringVar(&where, "where", "",
		"Starlark row filter, e.g. 'calls > 100 and total_us > 5000'")
	cmd.Flags().IntVarP(&tid, "tid", "t", -1, "only aggregate this thread id")
	return cmd
}
