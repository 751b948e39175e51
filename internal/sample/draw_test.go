package sample

import (
	"math"
	"testing"

	"github.com/xtding233/pcg32-backend/internal/pcg"
)

func TestDrawBounds(t *testing.T) {
	got, err := Draw(0, NewSeededRNG(1))
	if err != nil || got {
		t.Fatalf("p=0 should never hit; got=%v err=%v", got, err)
	}
	got, err = Draw(1, NewSeededRNG(1))
	if err != nil || !got {
		t.Fatalf("p=1 should always hit; got=%v err=%v", got, err)
	}
	if _, err := Draw(-0.1, nil); err == nil {
		t.Fatalf("negative p must error")
	}
	if _, err := Draw(1.1, nil); err == nil {
		t.Fatalf("p>1 must error")
	}
	if _, err := Draw(math.NaN(), nil); err == nil {
		t.Fatalf("NaN p must error")
	}
}

func TestDrawDefaultRNG(t *testing.T) {
	if _, err := Draw(0.5, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDrawStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	rng := NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		ok, err := Draw(p, rng)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			hit++
		}
	}
	freq := float64(hit) / float64(n)
	// should be around 0.3
	if diff := freq - p; diff > 0.01 || diff < -0.01 {
		t.Fatalf("freq=%f not close to p=%f", freq, p)
	}
}

func TestDrawStateMatchesSource(t *testing.T) {
	s := pcg.New(5, 7)
	src := pcg.NewSource(s)
	for i := 0; i < 1000; i++ {
		var hit bool
		var err error
		hit, s, err = DrawState(0.4, s)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := Draw(0.4, src)
		if hit != want {
			t.Fatalf("draw %d: state=%v source=%v", i, hit, want)
		}
	}
	if s != src.State() {
		t.Fatalf("threaded state and source diverged")
	}
}

func TestDrawStateDegenerateKeepsState(t *testing.T) {
	s := pcg.New(5, 7)
	for _, p := range []float64{0, 1} {
		_, next, err := DrawState(p, s)
		if err != nil {
			t.Fatal(err)
		}
		if next != s {
			t.Fatalf("p=%v advanced the state", p)
		}
	}
	if _, next, err := DrawState(2, s); err != ErrInvalidProb || next != s {
		t.Fatalf("p=2: got err=%v state=%+v", err, next)
	}
}
