package main

// Voice is one playable note: a fixed set of oscillators sharing a
// fundamental, each reading a different wavetable.
type Voice struct {
	oscs   []Oscillator
	active bool
}

// newVoice assigns oscillator i to table slot i modulo ntables.
func newVoice(noscs, ntables int) Voice {
	oscs := make([]Oscillator, noscs)
	for i := range oscs {
		oscs[i].table = TableHandle(i % ntables)
	}
	return Voice{oscs: oscs}
}

func (v *Voice) Active() bool {
	return v.active
}

func (v *Voice) Oscillators() []Oscillator {
	return v.oscs
}

// start restarts every oscillator from phase zero at freq.
func (v *Voice) start(freq float64, tables *Vec[*Wavetable]) {
	v.active = true
	for i := range v.oscs {
		osc := &v.oscs[i]
		osc.Reset()
		osc.SetFrequency(freq, tables.Get(int(osc.table)).Len())
	}
}

func (v *Voice) clear() {
	v.active = false
	for i := range v.oscs {
		v.oscs[i].Mute()
	}
}
