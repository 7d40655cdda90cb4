package main

import (
	"fmt"

	"github.com/dh1tw/gosamplerate"
)

// Resample returns a custom table holding the cycle of wt stretched or
// squeezed to exactly length samples.
//
// The cycle is tiled three times before conversion and the middle copy is
// kept, so the converter sees a periodic signal at both edges.
func Resample(wt *Wavetable, length int) (*Wavetable, error) {
	if length <= 0 {
		return nil, fmt.Errorf("resample: invalid length %d", length)
	}
	n := wt.Len()
	if n == 0 {
		return nil, fmt.Errorf("resample: empty table")
	}
	if n == length {
		return newCustomWavetableFromSamples(wt.Samples()), nil
	}
	ratio := float64(length) / float64(n)
	if !gosamplerate.IsValidRatio(ratio) {
		return nil, fmt.Errorf("resample: ratio %g out of range", ratio)
	}
	tiled := make([]float32, 0, 3*n)
	for range 3 {
		tiled = append(tiled, wt.samples...)
	}
	out, err := gosamplerate.Simple(tiled, ratio, 1, int(gosamplerate.SRC_SINC_MEDIUM_QUALITY))
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	if len(out) < 2*length {
		return nil, fmt.Errorf("resample: converter returned %d samples, need %d", len(out), 2*length)
	}
	samples := make([]Smp, length)
	copy(samples, out[length:2*length])
	return newCustomWavetableFromSamples(samples), nil
}
