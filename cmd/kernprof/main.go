// kernprof: aggregate kernel-span traces from instrumented inference runs.
//
// Usage:
//
//	kernprof report <trace.json>   ranked kernel time summary
//	kernprof export <trace.json>   write stats as a pprof profile
//	kernprof demo                  profile a built-in generation run
//
// Input: Chrome trace-event JSON (bare array or traceEvents object),
// optionally gzipped; "-" reads from stdin.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kernprof/internal/trace"
	"kernprof/pkg/logutil"
)

func main() {
	logutil.InitLogger()
	defer logutil.GetLogger().Sync()

	root := &cobra.Command{
		Use:           "kernprof",
		Short:         "Aggregate kernel-span traces into per-kernel time statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(reportCmd(), exportCmd(), demoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// filterThread keeps only the stream with the given thread id. A
// negative tid keeps everything.
func filterThread(streams []trace.Stream, tid int) []trace.Stream {
	if tid < 0 {
		return streams
	}
	var out []trace.Stream
	for _, s := range streams {
		if s.Thread == tid {
			out = append(out, s)
		}
	}
	return out
}
