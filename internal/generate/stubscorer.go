package generate

import (
	"context"
	"fmt"
	"math"

	"kernprof/internal/trace"
)

// StubScorer is a deterministic stand-in for a real model, used by the
// demo command. Its forward pass runs small real computations through
// named nested phases so a demo run yields a representative kernel
// report.
type StubScorer struct {
	vocab  int
	hidden int
	tr     *trace.ThreadRecorder
}

// NewStubScorer builds a scorer with the given vocabulary size,
// recording its internal kernels on tr (nil disables recording).
func NewStubScorer(vocab int, tr *trace.ThreadRecorder) (*StubScorer, error) {
	if vocab <= 0 {
		return nil, fmt.Errorf("vocab size must be positive, got %d", vocab)
	}
	return &StubScorer{vocab: vocab, hidden: 64, tr: tr}, nil
}

func (s *StubScorer) begin(name string, dims ...int64) {
	if s.tr != nil {
		s.tr.Begin(name, dims...)
	}
}

func (s *StubScorer) end(name string) {
	if s.tr != nil {
		s.tr.End(name)
	}
}

// Score mixes the token sequence into a hidden state and projects it
// onto the vocabulary. Deterministic for a given sequence.
func (s *StubScorer) Score(ctx context.Context, toks []int64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.begin("model::forward", int64(len(toks)))
	defer s.end("model::forward")

	s.begin("aten::embedding", int64(len(toks)), int64(s.hidden))
	state := make([]float64, s.hidden)
	for pos, t := range toks {
		for h := range state {
			state[h] += math.Sin(float64(t)*0.37 + float64(h*pos+1)*0.011)
		}
	}
	s.end("aten::embedding")

	s.begin("aten::matmul", int64(s.hidden), int64(s.vocab))
	logits := make([]float64, s.vocab)
	for v := range logits {
		var acc float64
		for h, x := range state {
			acc += x * math.Cos(float64(v*s.hidden+h)*0.003)
		}
		logits[v] = acc
	}
	s.end("aten::matmul")

	s.begin("aten::softmax", int64(s.vocab))
	maxLogit := logits[0]
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	for i, v := range logits {
		logits[i] = math.Exp(v - maxLogit)
		sum += logits[i]
	}
	for i := range logits {
		logits[i] /= sum
	}
	s.end("aten::softmax")

	return logits, nil
}
