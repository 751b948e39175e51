package pcg

// Source is a stateful view over a State for callers that want a stream
// rather than threading values by hand. A Source must have a single owner;
// hand out separate Sources (or States) to concurrent users.
type Source struct {
	state State
}

// NewSource starts a stream at s.
func NewSource(s State) *Source {
	return &Source{state: s}
}

func (src *Source) Uint32() uint32 {
	var out uint32
	out, src.state = Advance(src.state)
	return out
}

func (src *Source) Float32() float32 {
	var f float32
	f, src.state = NextFloat(src.state)
	return f
}

// Float64 widens Float32; the result carries the same 24 bits of precision.
func (src *Source) Float64() float64 {
	return float64(src.Float32())
}

func (src *Source) Below(n uint32) uint32 {
	var out uint32
	out, src.state = Below(src.state, n)
	return out
}

// State returns the position the next draw will start from.
func (src *Source) State() State {
	return src.state
}
