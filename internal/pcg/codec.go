package pcg

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

var ErrInvalidState = errors.New("invalid generator state")

// MarshalBinary encodes the state as 16 bytes: State then Inc, little endian.
func (s State) MarshalBinary() ([]byte, error) {
	buf := make([]byte, stateSize)
	binary.LittleEndian.PutUint64(buf[0:8], s.State)
	binary.LittleEndian.PutUint64(buf[8:16], s.Inc)
	return buf, nil
}

// UnmarshalBinary decodes the MarshalBinary layout. The increment is forced
// odd, so any 16 bytes decode to a valid state.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) != stateSize {
		return errors.Wrapf(ErrInvalidState, "want %d bytes, got %d", stateSize, len(data))
	}
	*s = fromBytes(data)
	return nil
}

// String returns the hex form of MarshalBinary.
func (s State) String() string {
	b, _ := s.MarshalBinary()
	return hex.EncodeToString(b)
}

// ParseState is the inverse of String.
func ParseState(text string) (State, error) {
	b, err := hex.DecodeString(text)
	if err != nil {
		return State{}, errors.Wrapf(ErrInvalidState, "%q: %v", text, err)
	}
	var s State
	if err := s.UnmarshalBinary(b); err != nil {
		return State{}, err
	}
	return s, nil
}
