package pcg

import (
	"errors"
	"testing"
)

func TestStateStringRoundTrip(t *testing.T) {
	s := New(0x0123456789abcdef, 0xfedcba9876543211)
	text := s.String()
	if text != "efcdab89674523011132547698badcfe" {
		t.Fatalf("unexpected encoding %s", text)
	}
	got, err := ParseState(text)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatalf("got %+v, want %+v", got, s)
	}
}

func TestUnmarshalForcesOddIncrement(t *testing.T) {
	var s State
	if err := s.UnmarshalBinary(make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
	if s.Inc != 1 {
		t.Fatalf("inc %#x, want 1", s.Inc)
	}
}

func TestParseStateErrors(t *testing.T) {
	for _, in := range []string{"", "zz", "0011", "00112233445566778899aabbccddeeff00"} {
		if _, err := ParseState(in); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("%q: got %v, want ErrInvalidState", in, err)
		}
	}
}

func TestSourceMatchesValueThreading(t *testing.T) {
	start := New(11, 13)
	src := NewSource(start)

	s := start
	var u uint32
	var f float32
	u, s = Advance(s)
	if got := src.Uint32(); got != u {
		t.Fatalf("Uint32: got %#x, want %#x", got, u)
	}
	f, s = NextFloat(s)
	if got := src.Float32(); got != f {
		t.Fatalf("Float32: got %v, want %v", got, f)
	}
	var b uint32
	b, s = Below(s, 1000)
	if got := src.Below(1000); got != b {
		t.Fatalf("Below: got %d, want %d", got, b)
	}
	if src.State() != s {
		t.Fatalf("source drifted from threaded state")
	}
}
