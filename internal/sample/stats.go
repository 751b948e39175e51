package sample

import (
	"math"
	"sort"

	"github.com/xtding233/pcg32-backend/internal/pcg"
)

// tiny is 2^-32, the smallest non-zero step of a raw_u32 / 2^32 conversion.
const tiny = 1.0 / (1 << 32)

// Stats summarizes a run of NextFloat draws.
type Stats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// AtOrAboveOne counts draws that landed on 1.0 (the rounded-up boundary
	// case); Tiny counts non-zero draws below 2^-32.
	AtOrAboveOne int `json:"at_or_above_one"`
	Tiny         int `json:"tiny"`
	// Optional: raw samples if caller needs histograms/exports
	Samples []float32 `json:"-"`
}

// FloatStats draws n floats starting at s and returns their summary together
// with the state after the last draw.
func FloatStats(s pcg.State, n int) (Stats, pcg.State) {
	if n <= 0 {
		return Stats{}, s
	}
	xs := make([]float32, n)
	for i := range xs {
		xs[i], s = pcg.NextFloat(s)
	}
	return calcStats(xs), s
}

// calcStats computes mean/variance/percentiles for float samples.
func calcStats(xs []float32) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	st := Stats{N: n, Min: math.Inf(1), Max: math.Inf(-1), Samples: xs}

	// mean
	var sum float64
	for _, v := range xs {
		f := float64(v)
		sum += f
		st.Min = math.Min(st.Min, f)
		st.Max = math.Max(st.Max, f)
		if f >= 1 {
			st.AtOrAboveOne++
		}
		if f > 0 && f < tiny {
			st.Tiny++
		}
	}
	st.Mean = sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - st.Mean
		acc += d * d
	}
	st.Var = acc / float64(n)
	st.StdDev = math.Sqrt(st.Var)

	// percentiles
	cp := append([]float32(nil), xs...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}
	st.P50 = percentile(0.50)
	st.P90 = percentile(0.90)
	st.P99 = percentile(0.99)
	return st
}
