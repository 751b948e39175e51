package pcg

import "math"

const (
	mantissaBits = 23
	mantissaMask = 1<<mantissaBits - 1

	// biased exponents of 0.0 and 1.0
	exponentZero = 0
	exponentOne  = 127

	// bits handed out per refilled word; the top bit is never served
	refillBits = 31
)

// wordSource yields the generator's 32-bit outputs one at a time.
type wordSource interface {
	next() uint32
}

// stateSource threads a State through successive Advance calls.
type stateSource struct {
	state State
}

func (s *stateSource) next() uint32 {
	var out uint32
	out, s.state = Advance(s.state)
	return out
}

// bitSupply serves single bits, least significant first, from words drawn
// from src.
type bitSupply struct {
	src   wordSource
	word  uint32
	avail uint
}

func (b *bitSupply) bit() uint32 {
	if b.avail == 0 {
		b.word = b.src.next()
		b.avail = refillBits
	}
	bit := b.word & 1
	b.word >>= 1
	b.avail--
	return bit
}

// NextFloat returns a float32 uniformly distributed over [0,1) and the
// successor state. Unlike dividing a single draw by 2^32, every representable
// float below 1 can be produced, down to the subnormals.
func NextFloat(s State) (float32, State) {
	src := &stateSource{state: s}
	f := synthesize(src)
	return f, src.state
}

// synthesize picks the binade with a geometric search over fair bits and
// fills the mantissa from a fresh word.
func synthesize(src wordSource) float32 {
	bits := bitSupply{src: src, word: src.next()}

	exp := uint32(exponentOne - 1)
	for exp > exponentZero {
		if bits.bit() == 1 {
			break
		}
		exp--
	}

	mantissa := src.next() & mantissaMask

	// an all-zero mantissa sits on the boundary between two binades; a coin
	// flip decides which side it rounds to
	if mantissa == 0 && bits.bit() == 1 {
		exp++
	}

	return math.Float32frombits(exp<<mantissaBits | mantissa)
}
