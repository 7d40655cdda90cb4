package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNewWavetableShapes(t *testing.T) {
	const n = 8
	tests := []struct {
		kind Waveform
		want []float64
	}{
		{WaveformSine, []float64{0, math.Sqrt2 / 2, 1, math.Sqrt2 / 2, 0, -math.Sqrt2 / 2, -1, -math.Sqrt2 / 2}},
		{WaveformSquare, []float64{1, 1, 1, 1, -1, -1, -1, -1}},
		{WaveformSaw, []float64{-1, -0.75, -0.5, -0.25, 0, 0.25, 0.5, 0.75}},
		{WaveformTriangle, []float64{-1, -0.5, 0, 0.5, 1, 0.5, 0, -0.5}},
	}
	for _, tt := range tests {
		wt := NewWavetable(tt.kind, n)
		if wt.Len() != n || wt.Kind() != tt.kind {
			t.Fatalf("%s: len=%d kind=%s", tt.kind, wt.Len(), wt.Kind())
		}
		for i, want := range tt.want {
			if got := float64(wt.At(i)); !almostEqual(got, want, 1e-6) {
				t.Errorf("%s[%d] = %g, want %g", tt.kind, i, got, want)
			}
		}
	}
}

func TestNewWavetablePreconditions(t *testing.T) {
	expectPanic(t, "length 0", func() { NewWavetable(WaveformSine, 0) })
	expectPanic(t, "custom", func() { NewWavetable(WaveformCustom, 16) })
}

func TestWavetableSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saw.bin")
	src := NewWavetable(WaveformSaw, 64)
	if err := src.Save(path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != 4+4*64 {
		t.Errorf("file size = %d", fi.Size())
	}
	wt, err := LoadWavetable(path)
	if err != nil {
		t.Fatal(err)
	}
	if wt.Kind() != WaveformCustom || wt.Len() != src.Len() {
		t.Fatalf("loaded %s", wt)
	}
	for i := range src.Len() {
		if wt.At(i) != src.At(i) {
			t.Errorf("sample %d = %g, want %g", i, wt.At(i), src.At(i))
		}
	}
}

func writeRaw(t *testing.T, name string, header uint32, samples []float32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(f, binary.LittleEndian, samples); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWavetableLoadErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.bin")
	if err := os.WriteFile(short, []byte{1, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.bin")},
		{"short header", short},
		{"empty table", writeRaw(t, "empty.bin", 0, nil)},
		{"truncated", writeRaw(t, "truncated.bin", 4, []float32{0.1, 0.2})},
		{"trailing", writeRaw(t, "trailing.bin", 1, []float32{0.1, 0.2})},
	}
	for _, tt := range tests {
		wt := NewCustomWavetable()
		err := wt.Load(tt.path)
		if !errors.Is(err, ErrWavetableLoad) {
			t.Errorf("%s: err = %v, want ErrWavetableLoad", tt.name, err)
		}
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Path != tt.path {
			t.Errorf("%s: err = %v, want LoadError for %s", tt.name, err, tt.path)
		}
		if wt.Len() != 0 {
			t.Errorf("%s: table modified on error", tt.name)
		}
	}
}

func TestWavetableLoadMissingKeepsCause(t *testing.T) {
	_, err := LoadWavetable(filepath.Join(t.TempDir(), "missing.bin"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestWavetableSamplesIsCopy(t *testing.T) {
	wt := NewWavetable(WaveformSquare, 4)
	s := wt.Samples()
	s[0] = 99
	if wt.At(0) != 1 {
		t.Errorf("Samples exposed internal storage")
	}
}

func TestReadWavetableRejectsHugeHeader(t *testing.T) {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], 0xffffffff)
	// unknown size, as for a pipe
	_, err := readWavetable(bytes.NewReader(header[:]), -1)
	if err == nil {
		t.Fatalf("huge declared length accepted")
	}
	binary.LittleEndian.PutUint32(header[:], 2)
	body := append(header[:], make([]byte, 8)...)
	samples, err := readWavetable(bytes.NewReader(body), -1)
	if err != nil || len(samples) != 2 {
		t.Errorf("readWavetable = %v, %v", samples, err)
	}
}
