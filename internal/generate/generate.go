// Package generate runs a greedy autoregressive token-generation loop
// over an opaque scoring model, recording a span per decode step so the
// run can be profiled.
package generate

import (
	"context"
	"fmt"

	"kernprof/internal/trace"
)

// Scorer is the opaque model boundary: given the token sequence so far,
// return next-token logits. Implementations are responsible for
// instrumenting their own internal kernels.
type Scorer interface {
	Score(ctx context.Context, toks []int64) ([]float64, error)
}

// Options bounds a generation run.
type Options struct {
	MaxNewTokens int
	EOSToken     int64 // negative disables EOS stopping
}

// Generate extends prompt by up to MaxNewTokens greedy-argmax steps,
// stopping early on the EOS token. Each step is recorded as a
// "generate::step" span on tr (nil tr disables recording). The returned
// slice is prompt plus generated tokens.
func Generate(ctx context.Context, scorer Scorer, prompt []int64, opts Options, tr *trace.ThreadRecorder) ([]int64, error) {
	if len(prompt) == 0 {
		return nil, fmt.Errorf("empty prompt")
	}

	seq := make([]int64, len(prompt), len(prompt)+opts.MaxNewTokens)
	copy(seq, prompt)

	for step := 0; step < opts.MaxNewTokens; step++ {
		if err := ctx.Err(); err != nil {
			return seq, err
		}

		if tr != nil {
			tr.Begin("generate::step", int64(len(seq)))
		}
		logits, err := scorer.Score(ctx, seq)
		if tr != nil {
			tr.End("generate::step")
		}
		if err != nil {
			return seq, fmt.Errorf("score step %d: %w", step, err)
		}
		if len(logits) == 0 {
			return seq, fmt.Errorf("score step %d: empty logits", step)
		}

		next := argmax(logits)
		seq = append(seq, next)
		if opts.EOSToken >= 0 && next == opts.EOSToken {
			break
		}
	}
	return seq, nil
}

func argmax(logits []float64) int64 {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	return int64(best)
}
