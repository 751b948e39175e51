package api

import (
	"errors"
	"fmt"

	"github.com/xtding233/pcg32-backend/internal/config"
	"github.com/xtding233/pcg32-backend/internal/pcg"
	"github.com/xtding233/pcg32-backend/internal/sample"
)

// ErrInvalidArgument marks request errors the caller can fix.
var ErrInvalidArgument = errors.New("invalid argument")

// Engine is the transport-independent set of operations served by the HTTP,
// RESP and gRPC front-ends. It holds no generator state: every call takes the
// caller's state and hands back the successor.
type Engine struct {
	cfg  *config.Store
	seed func() (pcg.State, error)
}

func NewEngine(cfg *config.Store) *Engine {
	return &Engine{cfg: cfg, seed: pcg.Seed}
}

// Seed returns a fresh state from system entropy, or the state derived from
// phrase when one is given.
func (e *Engine) Seed(phrase string) (pcg.State, error) {
	if phrase != "" {
		return pcg.FromPhrase(phrase), nil
	}
	return e.seed()
}

// ParseState decodes a client supplied state.
func (e *Engine) ParseState(text string) (pcg.State, error) {
	if text == "" {
		return pcg.State{}, fmt.Errorf("%w: missing state", ErrInvalidArgument)
	}
	s, err := pcg.ParseState(text)
	if err != nil {
		return pcg.State{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return s, nil
}

// batch resolves a requested count; zero means one.
func (e *Engine) batch(n, limit int) (int, error) {
	if n == 0 {
		n = 1
	}
	if n < 0 || n > limit {
		return 0, fmt.Errorf("%w: count %d outside 1..%d", ErrInvalidArgument, n, limit)
	}
	return n, nil
}

func (e *Engine) Next(s pcg.State, n int) ([]uint32, pcg.State, error) {
	n, err := e.batch(n, e.cfg.Get().MaxBatch)
	if err != nil {
		return nil, s, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i], s = pcg.Advance(s)
	}
	return out, s, nil
}

func (e *Engine) NextFloat(s pcg.State, n int) ([]float32, pcg.State, error) {
	n, err := e.batch(n, e.cfg.Get().MaxBatch)
	if err != nil {
		return nil, s, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i], s = pcg.NextFloat(s)
	}
	return out, s, nil
}

func (e *Engine) Below(s pcg.State, bound uint32) (uint32, pcg.State, error) {
	if bound == 0 {
		return 0, s, fmt.Errorf("%w: bound must be >= 1", ErrInvalidArgument)
	}
	v, s := pcg.Below(s, bound)
	return v, s, nil
}

func (e *Engine) Draw(s pcg.State, p float64) (bool, pcg.State, error) {
	hit, next, err := sample.DrawState(p, s)
	if err != nil {
		return false, s, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return hit, next, nil
}

func (e *Engine) Stats(s pcg.State, n int) (sample.Stats, pcg.State, error) {
	n, err := e.batch(n, e.cfg.Get().MaxSamples)
	if err != nil {
		return sample.Stats{}, s, err
	}
	st, next := sample.FloatStats(s, n)
	return st, next, nil
}
