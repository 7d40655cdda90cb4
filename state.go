package main

import (
	"fmt"
	"math"
)

// Normalization selects how the mixer keeps polyphonic output bounded.
type Normalization int

const (
	// NormalizePerVoice averages the oscillators inside each voice and sums
	// the voices.
	NormalizePerVoice Normalization = iota
	// NormalizeActiveVoices additionally divides the sum by the number of
	// voices currently sounding.
	NormalizeActiveVoices
)

func (n Normalization) String() string {
	switch n {
	case NormalizePerVoice:
		return "voice"
	case NormalizeActiveVoices:
		return "active"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

func ParseNormalization(s string) (Normalization, error) {
	switch s {
	case "voice":
		return NormalizePerVoice, nil
	case "active":
		return NormalizeActiveVoices, nil
	default:
		return 0, fmt.Errorf("invalid normalization: %s", s)
	}
}

type StateConfig struct {
	Voices        int
	OscsPerVoice  int
	Tables        []*Wavetable
	Normalization Normalization
}

// DefaultTables builds the analytic tables in slot order.
func DefaultTables() []*Wavetable {
	return []*Wavetable{
		NewWavetable(WaveformSine, TableSize),
		NewWavetable(WaveformSquare, TableSize),
		NewWavetable(WaveformSaw, TableSize),
		NewWavetable(WaveformTriangle, TableSize),
	}
}

func DefaultStateConfig() StateConfig {
	return StateConfig{
		Voices:       NumVoices,
		OscsPerVoice: OscsPerVoice,
		Tables:       DefaultTables(),
	}
}

// State is the synthesizer proper: voices, the shared wavetable arena,
// per-table mix levels and the output filter. It does no locking of its
// own; see Synth.
type State struct {
	voices *Vec[Voice]
	tables *Vec[*Wavetable]
	levels []float32
	filter Filter
	norm   Normalization
}

// maxNoteFrequency is the highest frequency a voice will be started at.
var maxNoteFrequency = math.Nextafter(Nyquist, 0)

func NewState(cfg StateConfig) *State {
	if cfg.Voices <= 0 || cfg.OscsPerVoice <= 0 || len(cfg.Tables) == 0 {
		panic(fmt.Sprintf("state: invalid config voices=%d oscs=%d tables=%d",
			cfg.Voices, cfg.OscsPerVoice, len(cfg.Tables)))
	}
	tables := NewVec(func(wt **Wavetable) { *wt = nil })
	for i, wt := range cfg.Tables {
		if wt == nil || wt.Len() == 0 {
			panic(fmt.Sprintf("state: table slot %d is empty", i))
		}
		tables.Push(wt)
	}
	voices := NewVec(func(v *Voice) { v.oscs = nil })
	for range cfg.Voices {
		voices.Push(newVoice(cfg.OscsPerVoice, len(cfg.Tables)))
	}
	levels := make([]float32, len(cfg.Tables))
	for i := range levels {
		levels[i] = 1
	}
	return &State{
		voices: voices,
		tables: tables,
		levels: levels,
		filter: NewFilter(FilterLowpass, DefaultCutoff, DefaultQ),
		norm:   cfg.Normalization,
	}
}

// Destroy releases the voices and the table arena.
func (s *State) Destroy() {
	s.voices.Destroy()
	s.tables.Destroy()
}

func (s *State) NumVoices() int {
	return s.voices.Len()
}

func (s *State) NumTables() int {
	return s.tables.Len()
}

func (s *State) Table(slot int) *Wavetable {
	return s.tables.Get(slot)
}

// Voice returns the voice at index i, or nil when i is out of range.
func (s *State) Voice(i int) *Voice {
	if i < 0 || i >= s.voices.Len() {
		return nil
	}
	return s.voices.At(i)
}

func (s *State) Active(voice int) bool {
	v := s.Voice(voice)
	return v != nil && v.active
}

func (s *State) ActiveVoices() int {
	n := 0
	for _, v := range s.voices.All() {
		if v.active {
			n++
		}
	}
	return n
}

// SetNote starts voice at freq with every oscillator back at phase 0.
// Out-of-range voices are ignored and a non-positive freq clears the voice.
func (s *State) SetNote(voice int, freq float64) {
	v := s.Voice(voice)
	if v == nil {
		return
	}
	if !(freq > 0) {
		v.clear()
		return
	}
	v.start(min(freq, maxNoteFrequency), s.tables)
}

// ClearVoice silences voice, leaving the oscillator phases where they are.
func (s *State) ClearVoice(voice int) {
	if v := s.Voice(voice); v != nil {
		v.clear()
	}
}

func (s *State) Level(slot int) float32 {
	if slot < 0 || slot >= len(s.levels) {
		return 0
	}
	return s.levels[slot]
}

func (s *State) SetLevel(slot int, value float32) {
	if slot < 0 || slot >= len(s.levels) {
		return
	}
	s.levels[slot] = ClampUnit(value)
}

func (s *State) AdjustLevel(slot int, delta float32) {
	s.SetLevel(slot, s.Level(slot)+delta)
}

func (s *State) Normalization() Normalization {
	return s.norm
}

func (s *State) SetNormalization(n Normalization) {
	s.norm = n
}

func (s *State) Filter() *Filter {
	return &s.filter
}

func (s *State) SetFilterCutoff(hz float32) {
	s.filter.SetCutoff(hz)
}

func (s *State) SetFilterQ(q float32) {
	s.filter.SetQ(q)
}

func (s *State) SetFilterMode(mode FilterMode) {
	s.filter.SetMode(mode)
}

// MixSample advances every active voice by one sample and returns the
// unfiltered mix.
func (s *State) MixSample() Smp {
	var mix float32
	active := 0
	nvoices := s.voices.Len()
	for vi := range nvoices {
		v := s.voices.At(vi)
		if !v.active {
			continue
		}
		active++
		var sum float32
		for i := range v.oscs {
			osc := &v.oscs[i]
			slot := int(osc.table)
			sum += osc.Next(s.tables.Get(slot)) * ClampUnit(s.levels[slot])
		}
		mix += sum / float32(len(v.oscs))
	}
	if active > 1 && s.norm == NormalizeActiveVoices {
		mix /= float32(active)
	}
	return mix
}

// Sample returns the next filtered output sample.
func (s *State) Sample() Smp {
	return s.filter.Process(s.MixSample())
}
