package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

const (
	// DefaultCycleFreq is the pitch assumed for imported recordings.
	DefaultCycleFreq = 440.0
	// trimThreshold is the level, relative to the peak, below which
	// leading and trailing samples count as silence (-20 dB).
	trimThreshold = 0.1
)

// LoadWavetableWAV builds a custom table from the first channel of a PCM
// WAV file. The whole file is taken as one cycle.
func LoadWavetableWAV(path string) (*Wavetable, error) {
	samples, _, err := decodeWAV(path)
	if err != nil {
		return nil, err
	}
	return newCustomWavetableFromSamples(samples), nil
}

// ImportWavetableWAV extracts one cycle of a tone pitched at freq from a
// recording: the signal is peak-normalized and trimmed of silence, the
// period at its centre is cut out, resampled to length samples and
// normalized again.
func ImportWavetableWAV(path string, freq float64, length int) (*Wavetable, error) {
	samples, sampleRate, err := decodeWAV(path)
	if err != nil {
		return nil, err
	}
	cycle, err := extractCycle(samples, sampleRate, freq)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	wt, err := Resample(newCustomWavetableFromSamples(cycle), length)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	normalizePeak(wt.samples)
	return wt, nil
}

// normalizePeak scales samples in place so the largest magnitude is 1.
// Silent input is left alone.
func normalizePeak(samples []Smp) {
	var peak float32
	for _, s := range samples {
		peak = max(peak, float32(math.Abs(float64(s))))
	}
	if peak == 0 {
		return
	}
	for i := range samples {
		samples[i] /= peak
	}
}

// trimSilence drops the leading and trailing samples quieter than
// threshold.
func trimSilence(samples []Smp, threshold float32) []Smp {
	loud := func(s Smp) bool { return float32(math.Abs(float64(s))) >= threshold }
	start := 0
	for start < len(samples) && !loud(samples[start]) {
		start++
	}
	end := len(samples)
	for end > start && !loud(samples[end-1]) {
		end--
	}
	return samples[start:end]
}

// extractCycle returns a normalized copy of the sampleRate/freq samples
// centred in the audible part of samples.
func extractCycle(samples []Smp, sampleRate int, freq float64) ([]Smp, error) {
	if !(freq > 0) || math.IsInf(freq, 0) {
		return nil, fmt.Errorf("invalid cycle frequency %g", freq)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	period := int(math.Round(float64(sampleRate) / freq))
	if period < 2 {
		return nil, fmt.Errorf("cycle of %g Hz at %d Hz is shorter than two samples", freq, sampleRate)
	}
	normalized := append([]Smp(nil), samples...)
	normalizePeak(normalized)
	trimmed := trimSilence(normalized, trimThreshold)
	start := len(trimmed)/2 - period/2
	end := start + period
	if start < 0 || end > len(trimmed) {
		return nil, fmt.Errorf("%d audible samples cannot hold a %d sample period", len(trimmed), period)
	}
	return trimmed[start:end], nil
}

// decodeWAV returns the first channel of a PCM WAV file scaled to [-1,1]
// together with its sample rate.
func decodeWAV(path string) ([]Smp, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, &LoadError{Path: path, Err: errors.New("not a valid WAV file")}
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, &LoadError{Path: path, Err: err}
	}
	nchannels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		nchannels = buf.Format.NumChannels
	}
	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(d.BitDepth)
	}
	if depth <= 0 || depth > 32 {
		return nil, 0, &LoadError{Path: path, Err: errors.New("unsupported bit depth")}
	}
	scale := float64(int64(1) << (depth - 1))
	// 8-bit WAV data is unsigned.
	offset := 0
	if depth == 8 {
		offset = 128
	}
	samples := make([]Smp, 0, len(buf.Data)/nchannels)
	for i := 0; i < len(buf.Data); i += nchannels {
		samples = append(samples, Smp(float64(buf.Data[i]-offset)/scale))
	}
	if len(samples) == 0 {
		return nil, 0, &LoadError{Path: path, Err: errors.New("no samples")}
	}
	return samples, int(d.SampleRate), nil
}
