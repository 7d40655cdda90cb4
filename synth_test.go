package main

import (
	"math"
	"sync"
	"testing"
)

func TestSynthConcurrentRenderAndControl(t *testing.T) {
	synth := NewSynth(NewState(DefaultStateConfig()), NewScope(PreviewSize))
	defer synth.Close()
	var wg sync.WaitGroup
	wg.Add(1)
	bad := 0
	go func() {
		defer wg.Done()
		for range 20000 {
			smp := synth.RenderSample()
			if math.IsNaN(float64(smp)) || math.IsInf(float64(smp), 0) {
				bad++
			}
		}
	}()
	for i := range 500 {
		voice := i % NumVoices
		synth.Tick(func(state *State) {
			state.SetNote(voice, SemitoneFrequency(i%24))
			state.AdjustLevel(i%NumWavetables, -0.01)
		})
		synth.SetFilterCutoff(float32(200 + i*10))
		synth.SetFilterQ(0.5)
		synth.ClearVoice((voice + 6) % NumVoices)
	}
	wg.Wait()
	if bad != 0 {
		t.Errorf("%d non-finite samples", bad)
	}
}

func TestSynthLockedSurface(t *testing.T) {
	synth := NewSynth(NewState(DefaultStateConfig()), nil)
	defer synth.Close()
	synth.SetNote(2, 440)
	synth.SetWavetableLevel(1, 0.25)
	synth.SetFilterMode(FilterHighpass)
	synth.Tick(func(state *State) {
		if !state.Active(2) {
			t.Errorf("voice 2 not active")
		}
		if state.Level(1) != 0.25 {
			t.Errorf("level = %g", state.Level(1))
		}
		if state.Filter().Mode() != FilterHighpass {
			t.Errorf("mode = %s", state.Filter().Mode())
		}
	})
	synth.ClearVoice(2)
	synth.Tick(func(state *State) {
		if state.ActiveVoices() != 0 {
			t.Errorf("voices still active")
		}
	})
}

func TestSynthFeedsScope(t *testing.T) {
	scope := NewScope(8)
	synth := NewSynth(NewState(DefaultStateConfig()), scope)
	defer synth.Close()
	synth.SetNote(0, 440)
	var want []Smp
	for range 8 {
		want = append(want, synth.RenderSample())
	}
	got := scope.Snapshot(nil)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scope[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestSynthCloseDestroysTables(t *testing.T) {
	state := NewState(DefaultStateConfig())
	synth := NewSynth(state, nil)
	synth.Close()
	if state.NumTables() != 0 || state.NumVoices() != 0 {
		t.Errorf("tables=%d voices=%d after Close", state.NumTables(), state.NumVoices())
	}
}
