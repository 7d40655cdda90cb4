package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

type Waveform int

const (
	WaveformSine Waveform = iota
	WaveformSquare
	WaveformSaw
	WaveformTriangle
	WaveformCustom
)

var waveformNames = [...]string{
	WaveformSine:     "sine",
	WaveformSquare:   "square",
	WaveformSaw:      "saw",
	WaveformTriangle: "triangle",
	WaveformCustom:   "custom",
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ErrWavetableLoad is wrapped by every error returned when a custom
// wavetable cannot be read.
var ErrWavetableLoad = errors.New("wavetable load failed")

type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrWavetableLoad, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrWavetableLoad, e.Err} }

// Wavetable holds one cycle of a periodic waveform.
//
// Tables are filled once and never written afterwards, so any number of
// oscillators may read the same table.
type Wavetable struct {
	samples []Smp
	kind    Waveform
}

// NewWavetable computes an analytic table of the given kind.
// It panics if length is zero or kind is WaveformCustom.
func NewWavetable(kind Waveform, length int) *Wavetable {
	if length <= 0 {
		panic(fmt.Sprintf("wavetable: invalid length %d for %s", length, kind))
	}
	samples := make([]Smp, length)
	half := length / 2
	for i := range length {
		var value float64
		switch kind {
		case WaveformSine:
			value = math.Sin(2 * math.Pi * float64(i) / float64(length))
		case WaveformSquare:
			if i < half {
				value = 1
			} else {
				value = -1
			}
		case WaveformSaw:
			value = 2*float64(i)/float64(length) - 1
		case WaveformTriangle:
			value = triangleAt(i, length)
		default:
			panic(fmt.Sprintf("wavetable: %s cannot be generated", kind))
		}
		samples[i] = Smp(value)
	}
	return &Wavetable{samples: samples, kind: kind}
}

// triangleAt rises from -1 to +1 over the first half of the cycle and
// falls back over the second half.
func triangleAt(i, length int) float64 {
	half := length / 2
	if half == 0 {
		return -1
	}
	if i < half {
		return 2*float64(i)/float64(half) - 1
	}
	rest := length - half
	return 1 - 2*float64(i-half)/float64(rest)
}

// NewCustomWavetable returns an empty placeholder to be filled by Load.
func NewCustomWavetable() *Wavetable {
	return &Wavetable{kind: WaveformCustom}
}

func newCustomWavetableFromSamples(samples []Smp) *Wavetable {
	return &Wavetable{samples: samples, kind: WaveformCustom}
}

func LoadWavetable(path string) (*Wavetable, error) {
	wt := NewCustomWavetable()
	if err := wt.Load(path); err != nil {
		return nil, err
	}
	return wt, nil
}

func (wt *Wavetable) String() string {
	return fmt.Sprintf("Wavetable(kind=%s size=%d)", wt.kind, len(wt.samples))
}

func (wt *Wavetable) Kind() Waveform {
	return wt.kind
}

func (wt *Wavetable) Len() int {
	return len(wt.samples)
}

func (wt *Wavetable) At(i int) Smp {
	return wt.samples[i]
}

// Samples returns a copy of the table contents.
func (wt *Wavetable) Samples() []Smp {
	return append([]Smp(nil), wt.samples...)
}

// Load replaces the contents of a custom table with the samples stored in
// the file at path: a little-endian uint32 count followed by that many
// little-endian float32 samples. On failure the table is left untouched.
func (wt *Wavetable) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	size := int64(-1)
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		size = fi.Size()
	}
	samples, err := readWavetable(bufio.NewReader(f), size)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	wt.samples = samples
	wt.kind = WaveformCustom
	return nil
}

// maxTableLen bounds the declared length so a bad header cannot force a
// huge allocation when the input size is unknown.
const maxTableLen = 1 << 24

// readWavetable decodes a table from r. When size is not negative it is
// the total number of bytes r holds and must match the declared length.
func readWavetable(r io.Reader, size int64) ([]Smp, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("empty table")
	}
	if n > maxTableLen {
		return nil, fmt.Errorf("header declares %d samples, limit is %d", n, maxTableLen)
	}
	if size >= 0 && size != 4+4*int64(n) {
		return nil, fmt.Errorf("header declares %d samples but file holds %d bytes", n, size)
	}
	samples := make([]Smp, n)
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("header declares %d samples: %w", n, err)
	}
	var extra [1]byte
	if k, _ := r.Read(extra[:]); k != 0 {
		return nil, fmt.Errorf("header declares %d samples but more data follows", n)
	}
	return samples, nil
}

// WriteTo writes the table in the format understood by Load.
func (wt *Wavetable) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(wt.samples))); err != nil {
		return 0, err
	}
	if err := binary.Write(w, binary.LittleEndian, wt.samples); err != nil {
		return 4, err
	}
	return 4 + 4*int64(len(wt.samples)), nil
}

func (wt *Wavetable) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if _, err := wt.WriteTo(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
