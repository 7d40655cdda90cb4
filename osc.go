package main

import (
	"fmt"
	"math"
)

// TableHandle identifies a wavetable in the arena owned by a State.
type TableHandle int

// Oscillator is a phase accumulator over one wavetable.
//
// phase is measured in table samples and stays in [0, length) of the
// table it reads.
type Oscillator struct {
	phase    float64
	phaseInc float64
	table    TableHandle
}

func (o *Oscillator) Phase() float64 {
	return o.phase
}

func (o *Oscillator) PhaseIncrement() float64 {
	return o.phaseInc
}

func (o *Oscillator) Table() TableHandle {
	return o.table
}

// SetFrequency derives the phase increment for a table of the given
// length. freq must lie strictly between 0 and Nyquist.
func (o *Oscillator) SetFrequency(freq float64, length int) {
	if !(freq > 0 && freq < Nyquist) {
		panic(fmt.Sprintf("osc: frequency %g outside (0, %g)", freq, Nyquist))
	}
	o.phaseInc = float64(length) * freq / SampleRate
}

// Mute freezes the phase.
func (o *Oscillator) Mute() {
	o.phaseInc = 0
}

func (o *Oscillator) Reset() {
	o.phase = 0
}

// Next returns the linearly interpolated table value at the current
// phase and advances the phase by one sample.
func (o *Oscillator) Next(wt *Wavetable) Smp {
	samples := wt.samples
	n := len(samples)
	length := float64(n)
	i0 := int(o.phase)
	i1 := i0 + 1
	if i1 >= n {
		i1 = 0
	}
	frac := o.phase - float64(i0)
	out := (1-frac)*float64(samples[i0]) + frac*float64(samples[i1])
	o.phase += o.phaseInc
	if o.phase >= length {
		o.phase -= length
		if o.phase >= length {
			o.phase = math.Mod(o.phase, length)
		}
	}
	return Smp(out)
}
