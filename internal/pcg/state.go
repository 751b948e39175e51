package pcg

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

// multiplier of the 64-bit LCG step
const multiplier = 6364136223846793005

// stateSize is the number of entropy bytes a seed consumes: State then Inc.
const stateSize = 16

var ErrEntropyUnavailable = errors.New("entropy unavailable")

// State is one position of a PCG XSH-RR 64/32 generator.
// It is a plain value: every operation returns the successor instead of
// mutating the receiver. Inc is always odd.
type State struct {
	State uint64
	Inc   uint64
}

// New builds a State from explicit values, forcing the increment odd.
func New(state, inc uint64) State {
	return State{State: state, Inc: inc | 1}
}

// Seed draws 16 bytes from the operating system's secure random source.
func Seed() (State, error) {
	return SeedFrom(cryptoRand.Reader)
}

// SeedFrom reads a seed from r. A short read is treated the same as a failed
// one; there is no fallback.
func SeedFrom(r io.Reader) (State, error) {
	var buf [stateSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return State{}, errors.Wrapf(ErrEntropyUnavailable, "read %d bytes: %v", stateSize, err)
	}
	return fromBytes(buf[:]), nil
}

// FromPhrase derives a reproducible State from a phrase. Useful for tests and
// for clients that want a named stream.
func FromPhrase(phrase string) State {
	lo, hi := farm.Fingerprint128([]byte(phrase))
	return New(lo, hi)
}

func fromBytes(b []byte) State {
	return New(binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16]))
}

// Advance returns the next 32-bit output and the successor state.
func Advance(s State) (uint32, State) {
	old := s.State
	next := old*multiplier + s.Inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot), State{State: next, Inc: s.Inc}
}

// Below returns a value uniformly distributed in [0,n). n == 0 yields 0 and
// leaves the state untouched.
func Below(s State, n uint32) (uint32, State) {
	if n == 0 {
		return 0, s
	}
	min := -n % n
	for {
		var r uint32
		r, s = Advance(s)
		if r >= min {
			return r % n, s
		}
	}
}
