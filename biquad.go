package main

import (
	"fmt"
	"math"
)

// BiquadFilter is a second-order IIR section in transposed direct form II.
type BiquadFilter struct {
	b0, b1, b2 float32
	a1, a2     float32
	z1, z2     float32
}

// NewBiquad returns a filter with the given a0-normalized coefficients
// and cleared state.
func NewBiquad(b0, b1, b2, a1, a2 float32) BiquadFilter {
	return BiquadFilter{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2}
}

func (f *BiquadFilter) Process(input float32) float32 {
	output := f.b0*input + f.z1
	f.z1 = f.b1*input + f.z2 - f.a1*output
	f.z2 = f.b2*input - f.a2*output
	return output
}

func (f *BiquadFilter) Reset() {
	f.z1 = 0
	f.z2 = 0
}

func (f *BiquadFilter) Coefficients() (b0, b1, b2, a1, a2 float32) {
	return f.b0, f.b1, f.b2, f.a1, f.a2
}

// rbjParams returns cos(w0) and alpha for the cookbook designs.
// Degenerate cutoff and Q values are clamped into a stable range.
func rbjParams(cutoffHz, q float64) (cosw0, alpha float64) {
	if math.IsNaN(cutoffHz) {
		cutoffHz = DefaultCutoff
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		q = DefaultQ
	}
	if q < 1e-6 {
		q = 1e-6
	}
	ratio := cutoffHz / SampleRate
	// sin(0) and sin(pi) would collapse alpha to zero.
	if ratio < 1e-6 {
		ratio = 1e-6
	}
	if ratio > 0.499 {
		ratio = 0.499
	}
	w0 := 2 * math.Pi * ratio
	return math.Cos(w0), math.Sin(w0) / (2 * q)
}

func (f *BiquadFilter) setNormalized(b0, b1, b2, a0, a1, a2 float64) {
	f.b0 = float32(b0 / a0)
	f.b1 = float32(b1 / a0)
	f.b2 = float32(b2 / a0)
	f.a1 = float32(a1 / a0)
	f.a2 = float32(a2 / a0)
	f.Reset()
}

// DesignLowpass loads RBJ lowpass coefficients and clears the state.
func (f *BiquadFilter) DesignLowpass(cutoffHz, q float64) {
	cs, alpha := rbjParams(cutoffHz, q)
	f.setNormalized(
		(1-cs)/2, 1-cs, (1-cs)/2,
		1+alpha, -2*cs, 1-alpha)
}

// DesignHighpass loads RBJ highpass coefficients and clears the state.
func (f *BiquadFilter) DesignHighpass(cutoffHz, q float64) {
	cs, alpha := rbjParams(cutoffHz, q)
	f.setNormalized(
		(1+cs)/2, -(1 + cs), (1+cs)/2,
		1+alpha, -2*cs, 1-alpha)
}

type FilterMode int

const (
	FilterLowpass FilterMode = iota
	FilterHighpass
)

func (m FilterMode) String() string {
	switch m {
	case FilterLowpass:
		return "lowpass"
	case FilterHighpass:
		return "highpass"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "lowpass", "lp":
		return FilterLowpass, nil
	case "highpass", "hp":
		return FilterHighpass, nil
	default:
		return 0, fmt.Errorf("invalid filter mode: %s", s)
	}
}

const (
	DefaultCutoff = 20000
	DefaultQ      = 0.707
	MinCutoff     = 20
	MaxCutoff     = 20000
)

// Filter is the post-mix tone stage. Any parameter change redesigns the
// biquad, which also clears its state.
type Filter struct {
	biquad BiquadFilter
	cutoff float32
	q      float32
	mode   FilterMode
}

// finiteOr returns v, or def when v is NaN or infinite.
func finiteOr(v, def float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return def
	}
	return v
}

func NewFilter(mode FilterMode, cutoff, q float32) Filter {
	f := Filter{cutoff: finiteOr(cutoff, DefaultCutoff), q: finiteOr(q, DefaultQ), mode: mode}
	f.redesign()
	return f
}

func (f *Filter) redesign() {
	switch f.mode {
	case FilterHighpass:
		f.biquad.DesignHighpass(float64(f.cutoff), float64(f.q))
	default:
		f.biquad.DesignLowpass(float64(f.cutoff), float64(f.q))
	}
}

func (f *Filter) Cutoff() float32  { return f.cutoff }
func (f *Filter) Q() float32       { return f.q }
func (f *Filter) Mode() FilterMode { return f.mode }

// SetCutoff stores cutoff, replacing a non-finite value with the default.
func (f *Filter) SetCutoff(cutoff float32) {
	f.cutoff = finiteOr(cutoff, DefaultCutoff)
	f.redesign()
}

func (f *Filter) SetQ(q float32) {
	f.q = finiteOr(q, DefaultQ)
	f.redesign()
}

func (f *Filter) SetMode(mode FilterMode) {
	f.mode = mode
	f.redesign()
}

func (f *Filter) Process(input float32) float32 {
	return f.biquad.Process(input)
}
