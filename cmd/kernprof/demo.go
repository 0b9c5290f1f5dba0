package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kernprof/internal/generate"
	"kernprof/internal/report"
	"kernprof/internal/tokens"
	"kernprof/internal/trace"
	"kernprof/pkg/logutil"
)

func demoCmd() *cobra.Command {
	var (
		tokensPath string
		outPath    string
		maxNew     int
		eos        int64
		vocab      int
		top        int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Profile a generation run over the built-in stub model",
		Long: `Runs a greedy token-generation loop over a deterministic stub model
with instrumented kernels, writes the generated tokens, and prints the
kernel time summary for the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := tokens.Load(tokensPath)
			if err != nil {
				return err
			}

			rec := trace.NewRecorder()
			tr := rec.Thread(0)
			scorer, err := generate.NewStubScorer(vocab, tr)
			if err != nil {
				return err
			}

			out, err := generate.Generate(cmd.Context(), scorer, prompt,
				generate.Options{MaxNewTokens: maxNew, EOSToken: eos}, tr)
			if err != nil {
				return err
			}
			if err := tokens.Save(outPath, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d tokens.\n", len(out))

			table, drops := trace.Aggregate(rec.Streams())
			if !drops.Empty() {
				logutil.GetLogger().Warn("dropped malformed events",
					zap.Int("unmatched_exits", drops.UnmatchedExits),
					zap.Int("unclosed_spans", drops.UnclosedSpans))
			}
			return report.Render(cmd.OutOrStdout(), table, report.Options{Top: top})
		},
	}

	cmd.Flags().StringVar(&tokensPath, "tokens", "", "input prompt tokens file (required)")
	cmd.Flags().StringVar(&outPath, "out", "generated_tokens.txt", "output tokens file")
	cmd.Flags().IntVar(&maxNew, "max-new-tokens", 64, "generation step limit")
	cmd.Flags().Int64Var(&eos, "eos", -1, "EOS token id, negative to disable")
	cmd.Flags().IntVar(&vocab, "vocab", 512, "stub model vocabulary size")
	cmd.Flags().IntVar(&top, "top", report.DefaultTop, "limit report rows")
	cmd.MarkFlagRequired("tokens")
	return cmd
}
