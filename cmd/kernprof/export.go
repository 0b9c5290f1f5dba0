package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kernprof/internal/chrometrace"
	"kernprof/internal/export"
	"kernprof/internal/trace"
	"kernprof/pkg/logutil"
)

func exportCmd() *cobra.Command {
	var (
		output string
		tid    int
	)

	cmd := &cobra.Command{
		Use:   "export <trace.json>",
		Short: "Write aggregated kernel stats as a pprof profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.Write(f, table); err != nil {
				return fmt.Errorf("write profile: %w", err)
			}
			logutil.GetLogger().Info("profile written",
				zap.String("path", output),
				zap.Int("kernels", len(table)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "profile.pb.gz", "output profile path")
	cmd.Flags().IntVarP(&tid, "tid", "t", -1, "only aggregate this thread id")
	return cmd
}
