package main

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Harmonics returns the amplitudes of harmonics 0..n-1 of the cycle
// stored in wt. Index 0 is the DC offset.
func Harmonics(wt *Wavetable, n int) []float64 {
	size := wt.Len()
	if size == 0 {
		return nil
	}
	n = min(n, size/2+1)
	x := make([]float64, size)
	for i, v := range wt.samples {
		x[i] = float64(v)
	}
	spectrum := fft.FFTReal(x)
	amps := make([]float64, n)
	for k := range n {
		amp := cmplx.Abs(spectrum[k]) / float64(size)
		if k > 0 && 2*k != size {
			amp *= 2
		}
		amps[k] = amp
	}
	return amps
}
