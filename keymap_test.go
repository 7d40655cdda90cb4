package main

import (
	"testing"
)

func heldSet(keys ...string) func(string) bool {
	set := map[string]bool{}
	for _, k := range keys {
		set[k] = true
	}
	return func(key string) bool { return set[key] }
}

func TestSemitoneFrequency(t *testing.T) {
	if got := SemitoneFrequency(0); got != BaseFrequency {
		t.Errorf("semitone 0 = %g", got)
	}
	if got := SemitoneFrequency(12); !almostEqual(got, 2*BaseFrequency, 1e-9) {
		t.Errorf("semitone 12 = %g", got)
	}
}

func TestNoteKeysIsCopy(t *testing.T) {
	keys := NoteKeys()
	keys[0].Semitone = 99
	if NoteKeys()[0].Semitone != 0 {
		t.Errorf("NoteKeys exposed the table")
	}
	if len(keys) != 12 {
		t.Errorf("len = %d", len(keys))
	}
}

func TestKeyboardStartsAndReleasesVoices(t *testing.T) {
	s := NewState(DefaultStateConfig())
	kb := NewKeyboard()
	kb.Apply(heldSet("a", "w"), nil, s)
	if kb.ActiveVoice(0) != 0 || kb.ActiveVoice(7) != 7 {
		t.Fatalf("active voices = %d %d", kb.ActiveVoice(0), kb.ActiveVoice(7))
	}
	if s.ActiveVoices() != 2 {
		t.Fatalf("ActiveVoices = %d", s.ActiveVoices())
	}
	osc := s.Voice(7).Oscillators()[0]
	want := float64(TableSize) * SemitoneFrequency(1) / SampleRate
	if !almostEqual(osc.PhaseIncrement(), want, 1e-12) {
		t.Errorf("w phaseInc = %g, want %g", osc.PhaseIncrement(), want)
	}

	// a held key keeps its phase across ticks
	s.MixSample()
	kb.Apply(heldSet("a", "w"), nil, s)
	if s.Voice(0).Oscillators()[0].Phase() == 0 {
		t.Errorf("held key restarted its voice")
	}

	kb.Apply(heldSet("w"), nil, s)
	if s.Active(0) || kb.ActiveVoice(0) != -1 {
		t.Errorf("released key still sounding")
	}
	kb.ReleaseAll(s)
	if s.ActiveVoices() != 0 || kb.ActiveVoice(7) != -1 {
		t.Errorf("ReleaseAll left voices active")
	}
}

func TestKeyboardKnobs(t *testing.T) {
	s := NewState(DefaultStateConfig())
	kb := NewKeyboard()
	none := heldSet()
	kb.Apply(none, []string{"1", "1", "4", "6", "-", "[", "\\", "x"}, s)
	if !almostEqual(float64(s.Level(0)), 0.8, 1e-6) {
		t.Errorf("sine level = %g", s.Level(0))
	}
	if s.Level(1) != 1 || s.Level(2) != 1 {
		t.Errorf("raised levels not clamped: %g %g", s.Level(1), s.Level(2))
	}
	f := s.Filter()
	if !almostEqual(float64(f.Cutoff()), DefaultCutoff/cutoffStep, 1e-2) {
		t.Errorf("cutoff = %g", f.Cutoff())
	}
	if !almostEqual(float64(f.Q()), 0.617, 1e-6) {
		t.Errorf("q = %g", f.Q())
	}
	if f.Mode() != FilterHighpass {
		t.Errorf("mode = %s", f.Mode())
	}
	kb.Apply(none, []string{"=", "=", "=", "=", "]", "]", "]", "]", "]"}, s)
	if f.Cutoff() != Nyquist {
		t.Errorf("cutoff = %g, want clamped to Nyquist", f.Cutoff())
	}
	if !almostEqual(float64(f.Q()), 1.01, 1e-6) {
		t.Errorf("q = %g, want 1.01", f.Q())
	}
}

func TestKeyMapHandleKey(t *testing.T) {
	km := CreateKeyMap()
	called := false
	km.Bind("k", func(*State) { called = true })
	if !km.HandleKey("k", nil) || !called {
		t.Errorf("bound key not handled")
	}
	if km.HandleKey("z", nil) {
		t.Errorf("unbound key handled")
	}
}
