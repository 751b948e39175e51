package sample

import (
	"github.com/xtding233/pcg32-backend/internal/pcg"
)

// RandomSource abstract

type RandomSource interface {
	Float64() float64 // [0, 1)
}

// DefaultRNG returns a freshly seeded generator stream. Seeding can fail when
// the system entropy source is unavailable; there is no weaker fallback.
func DefaultRNG() (RandomSource, error) {
	s, err := pcg.Seed()
	if err != nil {
		return nil, err
	}
	return pcg.NewSource(s), nil
}

// Replicable RNG (e.g. stats runs, tests)
func NewSeededRNG(seed uint64) RandomSource {
	return pcg.NewSource(pcg.New(seed, seed<<1))
}
