package sample

import (
	"errors"

	"github.com/xtding233/pcg32-backend/internal/pcg"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw under p, return if it is hit
// p <=0 => no hit. p>= 1 => must hit. otherwise, rng.Float64() < p

func Draw(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		var err error
		if rng, err = DefaultRNG(); err != nil {
			return false, err
		}
	}
	return rng.Float64() < p, nil
}

// DrawState is Draw over a threaded generator state. Degenerate
// probabilities consume nothing and return s unchanged.
func DrawState(p float64, s pcg.State) (bool, pcg.State, error) {
	if err := validateProb(p); err != nil {
		return false, s, err
	}
	if p <= 0 {
		return false, s, nil
	}
	if p >= 1 {
		return true, s, nil
	}
	f, next := pcg.NextFloat(s)
	return float64(f) < p, next, nil
}
