package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

var ErrPatchSyntax = errors.New("patch syntax error")

// Patch is a textual snapshot of the sound settings:
//
//	sine=0.80 square=1.00 saw=0.50 triangle=1.00 cutoff=1200.0 q=0.71 mode=lowpass
//
// Levels are keyed by waveform name. A parsed patch only carries the
// fields present in its text.
type Patch struct {
	Levels    map[Waveform]float32
	Cutoff    float32
	Q         float32
	Mode      FilterMode
	hasCutoff bool
	hasQ      bool
	hasMode   bool
}

func PatchFromState(state *State) Patch {
	p := Patch{
		Levels:    make(map[Waveform]float32),
		Cutoff:    state.Filter().Cutoff(),
		Q:         state.Filter().Q(),
		Mode:      state.Filter().Mode(),
		hasCutoff: true,
		hasQ:      true,
		hasMode:   true,
	}
	for slot := range state.NumTables() {
		kind := state.Table(slot).Kind()
		if _, seen := p.Levels[kind]; !seen {
			p.Levels[kind] = state.Level(slot)
		}
	}
	return p
}

func (p Patch) String() string {
	var sb strings.Builder
	for kind := WaveformSine; kind <= WaveformCustom; kind++ {
		if level, ok := p.Levels[kind]; ok {
			fmt.Fprintf(&sb, "%s=%.2f ", kind, level)
		}
	}
	if p.hasCutoff {
		fmt.Fprintf(&sb, "cutoff=%.1f ", p.Cutoff)
	}
	if p.hasQ {
		fmt.Fprintf(&sb, "q=%.2f ", p.Q)
	}
	if p.hasMode {
		fmt.Fprintf(&sb, "mode=%s ", p.Mode)
	}
	return strings.TrimSuffix(sb.String(), " ")
}

func ParseWaveform(s string) (Waveform, error) {
	for i, name := range waveformNames {
		if s == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("invalid waveform: %s", s)
}

func ParsePatch(text string) (Patch, error) {
	p := Patch{Levels: make(map[Waveform]float32)}
	for _, field := range strings.Fields(text) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Patch{}, fmt.Errorf("%w: %q is not key=value", ErrPatchSyntax, field)
		}
		switch key {
		case "mode":
			mode, err := ParseFilterMode(value)
			if err != nil {
				return Patch{}, fmt.Errorf("%w: %v", ErrPatchSyntax, err)
			}
			p.Mode, p.hasMode = mode, true
			continue
		}
		num, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return Patch{}, fmt.Errorf("%w: %s: %v", ErrPatchSyntax, key, err)
		}
		if math.IsNaN(num) || math.IsInf(num, 0) {
			return Patch{}, fmt.Errorf("%w: %s: %s is not a finite number", ErrPatchSyntax, key, value)
		}
		switch key {
		case "cutoff":
			p.Cutoff, p.hasCutoff = float32(num), true
		case "q":
			p.Q, p.hasQ = float32(num), true
		default:
			kind, err := ParseWaveform(key)
			if err != nil {
				return Patch{}, fmt.Errorf("%w: unknown key %q", ErrPatchSyntax, key)
			}
			p.Levels[kind] = float32(num)
		}
	}
	return p, nil
}

// Apply stores the patch fields through the state's clamping setters.
func (p Patch) Apply(state *State) {
	for slot := range state.NumTables() {
		if level, ok := p.Levels[state.Table(slot).Kind()]; ok {
			state.SetLevel(slot, level)
		}
	}
	if p.hasMode {
		state.SetFilterMode(p.Mode)
	}
	if p.hasCutoff {
		state.SetFilterCutoff(float32(ClampSR(float64(p.Cutoff))))
	}
	if p.hasQ {
		state.SetFilterQ(p.Q)
	}
}

func CopyPatch(p Patch) error {
	return clipboard.WriteAll(p.String())
}

func PastePatch() (Patch, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return Patch{}, err
	}
	return ParsePatch(text)
}
