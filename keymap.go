package main

import (
	"math"
)

type KeyHandler func(state *State)

type KeyMap map[string]KeyHandler

func CreateKeyMap() KeyMap {
	return KeyMap{}
}

func (km KeyMap) HandleKey(key string, state *State) bool {
	if handler, ok := km[key]; ok {
		handler(state)
		return true
	} else {
		return false
	}
}

func (km KeyMap) Bind(key string, handler KeyHandler) {
	km[key] = handler
}

// NoteKey maps a keyboard key to a semitone above BaseFrequency.
type NoteKey struct {
	Key      string
	Semitone int
}

// One octave laid out like a piano: naturals on the home row, accidentals
// on the row above.
var noteKeys = [...]NoteKey{
	{"a", 0},
	{"s", 2},
	{"d", 4},
	{"f", 5},
	{"g", 7},
	{"h", 9},
	{"j", 11},
	{"w", 1},
	{"e", 3},
	{"t", 6},
	{"y", 8},
	{"u", 10},
}

// BaseFrequency is the pitch of semitone 0, labelled C3.
const BaseFrequency = 65.41

func NoteKeys() []NoteKey {
	return append([]NoteKey(nil), noteKeys[:]...)
}

func SemitoneFrequency(semitone int) float64 {
	return BaseFrequency * math.Pow(2, float64(semitone)/12)
}

const (
	levelStep  = 0.1
	cutoffStep = 1.1
	qStep      = 0.1
)

// Keyboard turns key state into note and knob changes. It owns the map
// from note keys to the voices they currently play.
type Keyboard struct {
	keys   []NoteKey
	active []int
	knobs  KeyMap
}

func NewKeyboard() *Keyboard {
	kb := &Keyboard{
		keys:   NoteKeys(),
		active: make([]int, len(noteKeys)),
		knobs:  CreateKeyMap(),
	}
	for i := range kb.active {
		kb.active[i] = -1
	}
	levelKeys := [][2]string{{"1", "2"}, {"3", "4"}, {"5", "6"}, {"7", "8"}}
	for slot, keys := range levelKeys {
		kb.knobs.Bind(keys[0], func(state *State) { adjustLevel(state, slot, -levelStep) })
		kb.knobs.Bind(keys[1], func(state *State) { adjustLevel(state, slot, levelStep) })
	}
	kb.knobs.Bind("-", func(state *State) { scaleCutoff(state, 1/cutoffStep) })
	kb.knobs.Bind("=", func(state *State) { scaleCutoff(state, cutoffStep) })
	kb.knobs.Bind("[", func(state *State) { adjustQ(state, -qStep) })
	kb.knobs.Bind("]", func(state *State) { adjustQ(state, qStep) })
	kb.knobs.Bind("\\", toggleFilterMode)
	return kb
}

func adjustLevel(state *State, slot int, delta float32) {
	if slot >= state.NumTables() {
		return
	}
	state.AdjustLevel(slot, delta)
	logger.Debug("level", "slot", slot, "kind", state.Table(slot).Kind(), "value", state.Level(slot))
}

func scaleCutoff(state *State, factor float64) {
	cutoff := ClampSR(float64(state.Filter().Cutoff()) * factor)
	state.SetFilterCutoff(float32(cutoff))
	logger.Debug("cutoff", "hz", cutoff)
}

// adjustQ keeps Q in (0, 1.01] so the filter never degenerates.
func adjustQ(state *State, delta float32) {
	q := ClampUnit(state.Filter().Q()+delta) + 0.01
	state.SetFilterQ(q)
	logger.Debug("q", "value", q)
}

func toggleFilterMode(state *State) {
	mode := FilterLowpass
	if state.Filter().Mode() == FilterLowpass {
		mode = FilterHighpass
	}
	state.SetFilterMode(mode)
	logger.Debug("filter mode", "mode", mode)
}

// ActiveVoice returns the voice played by note key i, or -1.
func (kb *Keyboard) ActiveVoice(i int) int {
	return kb.active[i]
}

// Apply performs one control tick. held reports whether a key is down;
// pressed lists the keys that went down since the previous tick.
func (kb *Keyboard) Apply(held func(key string) bool, pressed []string, state *State) {
	for i, nk := range kb.keys {
		if held(nk.Key) {
			if kb.active[i] == -1 {
				kb.active[i] = i
				state.SetNote(i, SemitoneFrequency(nk.Semitone))
			}
		} else if kb.active[i] != -1 {
			state.ClearVoice(kb.active[i])
			kb.active[i] = -1
		}
	}
	for _, key := range pressed {
		kb.knobs.HandleKey(key, state)
	}
}

// ReleaseAll clears every voice started by the keyboard.
func (kb *Keyboard) ReleaseAll(state *State) {
	for i, voice := range kb.active {
		if voice != -1 {
			state.ClearVoice(voice)
			kb.active[i] = -1
		}
	}
}
