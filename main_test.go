package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions([]string{"polywave"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.LogLevel != "info" || opts.Normalize != "voice" || opts.Seconds != 2 || opts.Render != "" || opts.Info || opts.CustomFreq != DefaultCycleFreq {
		t.Errorf("defaults = %+v", opts)
	}
}

func TestParseOptionsFlags(t *testing.T) {
	opts, err := parseOptions([]string{"polywave",
		"-log-level", "debug", "-custom", "~/x.wav", "-custom-freq", "220", "-normalize", "active",
		"-render", "out.wav", "-notes", "A3", "-seconds", "0.5"})
	if err != nil {
		t.Fatal(err)
	}
	want := Options{
		LogLevel:   "debug",
		Custom:     "~/x.wav",
		CustomFreq: 220,
		Normalize:  "active",
		Render:     "out.wav",
		Notes:      "A3",
		Seconds:    0.5,
	}
	if opts != want {
		t.Errorf("opts = %+v\nwant   %+v", opts, want)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"polywave", "stray"},
		{"polywave", "-render", "x.wav", "-seconds", "0"},
		{"polywave", "-bogus"},
		{"polywave", "-custom-freq", "0"},
		{"polywave", "-custom-freq", "NaN"},
	} {
		if _, err := parseOptions(args); err == nil {
			t.Errorf("%v accepted", args)
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"C3", BaseFrequency},
		{"c3", BaseFrequency},
		{"C4", SemitoneFrequency(12)},
		{"F#3", SemitoneFrequency(6)},
		{"Bb2", SemitoneFrequency(-2)},
		{"A3", SemitoneFrequency(9)},
		{" 440 ", 440},
	}
	for _, tt := range tests {
		got, err := ParseNote(tt.in)
		if err != nil {
			t.Errorf("ParseNote(%q): %v", tt.in, err)
			continue
		}
		if !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("ParseNote(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "H3", "C", "C#", "-5", "0"} {
		if _, err := ParseNote(bad); err == nil {
			t.Errorf("ParseNote(%q) accepted", bad)
		}
	}
}

func TestParseNotes(t *testing.T) {
	freqs, err := ParseNotes("C3,E3,G3")
	if err != nil {
		t.Fatal(err)
	}
	if len(freqs) != 3 || freqs[2] != SemitoneFrequency(7) {
		t.Errorf("freqs = %v", freqs)
	}
	if _, err := ParseNotes("C3,,G3"); err == nil {
		t.Errorf("empty note accepted")
	}
}

func TestBuildStateConfigCustomFallback(t *testing.T) {
	cfg, err := buildStateConfig(Options{Normalize: "voice", Custom: filepath.Join(t.TempDir(), "missing.bin")})
	if err != nil {
		t.Fatal(err)
	}
	if kind := cfg.Tables[customSlot].Kind(); kind != WaveformTriangle {
		t.Errorf("slot %d = %s, want triangle", customSlot, kind)
	}
	if _, err := buildStateConfig(Options{Normalize: "loud"}); err == nil {
		t.Errorf("bad normalization accepted")
	}
}

func TestBuildStateConfigCustomTables(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "saw.bin")
	if err := NewWavetable(WaveformSaw, 256).Save(bin); err != nil {
		t.Fatal(err)
	}
	wavPath := filepath.Join(dir, "cycle.wav")
	sine := NewWavetable(WaveformSine, 512)
	data := make([]int, sine.Len())
	for i := range data {
		data[i] = int(sine.At(i) * 32767)
	}
	writeWAV(t, wavPath, 1, data)

	tests := []struct {
		path string
		len  int
	}{
		{bin, 256},
		{wavPath, TableSize},
	}
	for _, tt := range tests {
		cfg, err := buildStateConfig(Options{Normalize: "active", Custom: tt.path, CustomFreq: DefaultCycleFreq})
		if err != nil {
			t.Fatal(err)
		}
		wt := cfg.Tables[customSlot]
		if wt.Kind() != WaveformCustom || wt.Len() != tt.len {
			t.Errorf("%s: slot holds %s", tt.path, wt)
		}
		if cfg.Normalization != NormalizeActiveVoices {
			t.Errorf("normalization = %s", cfg.Normalization)
		}
	}
}

func TestExportTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	if err := exportTables(dir, DefaultTables()); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"sine", "square", "saw", "triangle"} {
		wt, err := LoadWavetable(filepath.Join(dir, name+".bin"))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if wt.Len() != TableSize {
			t.Errorf("%s: len = %d", name, wt.Len())
		}
	}
}

func TestRenderOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chord.wav")
	opts := Options{Render: path, Notes: "C3,E3,G3", Seconds: 0.1}
	if err := renderOffline(opts, DefaultStateConfig()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if want := int(0.1*SampleRate) * DefaultChannels; len(buf.Data) != want {
		t.Errorf("decoded %d samples, want %d", len(buf.Data), want)
	}

	opts.Notes = "C3,C3,C3,C3,C3,C3,C3,C3,C3,C3,C3,C3,C3"
	if err := renderOffline(opts, DefaultStateConfig()); err == nil {
		t.Errorf("more notes than voices accepted")
	}
}
