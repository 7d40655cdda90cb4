package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// customSlot is the table slot a custom table replaces.
const customSlot = 3

const infoHarmonics = 8

type Options struct {
	LogLevel   string
	Custom     string
	CustomFreq float64
	Normalize  string
	Render     string
	Notes      string
	Seconds    float64
	ExportDir  string
	Info       bool
}

func parseOptions(args []string) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&opts.Custom, "custom", "", "custom wavetable for the fourth slot (.bin or .wav)")
	fs.Float64Var(&opts.CustomFreq, "custom-freq", DefaultCycleFreq, "pitch of the tone in a -custom .wav recording")
	fs.StringVar(&opts.Normalize, "normalize", "voice", "mix normalization: voice or active")
	fs.StringVar(&opts.Render, "render", "", "render offline to this WAV file instead of playing")
	fs.StringVar(&opts.Notes, "notes", "C3,E3,G3", "comma separated notes (C3, F#3, Bb2) or frequencies for -render")
	fs.Float64Var(&opts.Seconds, "seconds", 2, "length of the offline render")
	fs.StringVar(&opts.ExportDir, "export-dir", "", "write every table to this directory and exit")
	fs.BoolVar(&opts.Info, "info", false, "log the harmonics of every table and exit")
	if err := fs.Parse(args[1:]); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if !(opts.CustomFreq > 0) || math.IsInf(opts.CustomFreq, 0) {
		return Options{}, fmt.Errorf("invalid -custom-freq: %g", opts.CustomFreq)
	}
	if opts.Render != "" && opts.Seconds <= 0 {
		return Options{}, fmt.Errorf("invalid -seconds: %g", opts.Seconds)
	}
	return opts, nil
}

var pitchClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNote accepts a note name such as C3, F#3 or Bb2, or a plain
// frequency in Hz. Octave 3 starts at BaseFrequency.
func ParseNote(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty note")
	}
	if hz, err := strconv.ParseFloat(s, 64); err == nil {
		if !(hz > 0) || math.IsInf(hz, 1) {
			return 0, fmt.Errorf("invalid frequency: %s", s)
		}
		return hz, nil
	}
	pc, ok := pitchClasses[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note: %s", s)
	}
	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		pc++
		rest = rest[1:]
	case strings.HasPrefix(rest, "b"):
		pc--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid note: %s", s)
	}
	return SemitoneFrequency((octave-3)*12 + pc), nil
}

func ParseNotes(s string) ([]float64, error) {
	var freqs []float64
	for _, field := range strings.Split(s, ",") {
		freq, err := ParseNote(field)
		if err != nil {
			return nil, err
		}
		freqs = append(freqs, freq)
	}
	return freqs, nil
}

func loadCustomTable(path string, freq float64) (*Wavetable, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return LoadWavetable(path)
	}
	return ImportWavetableWAV(path, freq, TableSize)
}

func buildStateConfig(opts Options) (StateConfig, error) {
	cfg := DefaultStateConfig()
	norm, err := ParseNormalization(opts.Normalize)
	if err != nil {
		return StateConfig{}, err
	}
	cfg.Normalization = norm
	if opts.Custom != "" {
		wt, err := loadCustomTable(opts.Custom, opts.CustomFreq)
		if err != nil {
			logger.Warn("custom table not loaded, using triangle", "path", opts.Custom, "err", err)
		} else {
			logger.Info("custom table loaded", "path", opts.Custom, "table", wt)
			cfg.Tables[customSlot] = wt
		}
	}
	return cfg, nil
}

func exportTables(dir string, tables []*Wavetable) error {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, wt := range tables {
		path := filepath.Join(dir, wt.Kind().String()+".bin")
		if err := wt.Save(path); err != nil {
			return err
		}
		logger.Info("table exported", "path", path)
	}
	return nil
}

func logHarmonics(tables []*Wavetable) {
	for slot, wt := range tables {
		amps := Harmonics(wt, infoHarmonics)
		parts := make([]string, len(amps))
		for i, amp := range amps {
			parts[i] = strconv.FormatFloat(amp, 'f', 3, 64)
		}
		logger.Info("harmonics", "slot", slot, "table", wt, "amps", strings.Join(parts, " "))
	}
}

func renderOffline(opts Options, cfg StateConfig) error {
	freqs, err := ParseNotes(opts.Notes)
	if err != nil {
		return err
	}
	if len(freqs) > cfg.Voices {
		return fmt.Errorf("too many notes: %d > %d voices", len(freqs), cfg.Voices)
	}
	path, err := homedir.Expand(opts.Render)
	if err != nil {
		return err
	}
	synth := NewSynth(NewState(cfg), nil)
	defer synth.Close()
	synth.Tick(func(state *State) {
		for voice, freq := range freqs {
			state.SetNote(voice, freq)
		}
	})
	nframes := int(opts.Seconds * SampleRate)
	logger.Info("rendering", "path", path, "notes", opts.Notes, "frames", nframes)
	return RecordWAV(path, NewRenderer(synth, DefaultChannels), nframes)
}

func play(cfg StateConfig) error {
	synth := NewSynth(NewState(cfg), NewScope(PreviewSize))
	defer synth.Close()
	renderer := NewRenderer(synth, DefaultChannels)
	out, err := OpenAudioOutput(SampleRate, renderer.Channels(), renderer)
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	defer out.Close()
	out.Start()
	logger.Info("playing", "voices", cfg.Voices, "normalize", cfg.Normalization)
	return runGui(synth)
}

func run(opts Options) error {
	if err := InitLogger(opts.LogLevel); err != nil {
		return err
	}
	cfg, err := buildStateConfig(opts)
	if err != nil {
		return err
	}
	switch {
	case opts.ExportDir != "":
		return exportTables(opts.ExportDir, cfg.Tables)
	case opts.Info:
		logHarmonics(cfg.Tables)
		return nil
	case opts.Render != "":
		return renderOffline(opts, cfg)
	default:
		return play(cfg)
	}
}

func main() {
	opts, err := parseOptions(os.Args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err == nil {
		err = run(opts)
	}
	if err != nil {
		log.Fatalf("%v\n", err)
	}
}
