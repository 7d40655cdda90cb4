package main

import (
	"encoding/binary"
	"io"
	"math"
)

const DefaultChannels = 2

// Renderer serves the device pull contract: every requested frame gets
// one mono sample duplicated across all channels.
type Renderer struct {
	synth    *Synth
	channels int
}

func NewRenderer(synth *Synth, channels int) *Renderer {
	if channels <= 0 {
		channels = DefaultChannels
	}
	return &Renderer{
		synth:    synth,
		channels: channels,
	}
}

func (r *Renderer) Channels() int {
	return r.channels
}

// Render fills out with interleaved frames and returns the number of
// frames written. A trailing partial frame is left untouched.
func (r *Renderer) Render(out []float32) int {
	nframes := len(out) / r.channels
	i := 0
	for range nframes {
		smp := r.synth.RenderSample()
		for range r.channels {
			out[i] = smp
			i++
		}
	}
	return nframes
}

// Read implements io.Reader for oto with little-endian float32 frames.
// Only whole frames are written; a non-empty p smaller than one frame
// yields io.ErrShortBuffer.
func (r *Renderer) Read(p []byte) (int, error) {
	frameBytes := 4 * r.channels
	if len(p) > 0 && len(p) < frameBytes {
		return 0, io.ErrShortBuffer
	}
	nframes := len(p) / frameBytes
	off := 0
	for range nframes {
		bits := math.Float32bits(r.synth.RenderSample())
		for range r.channels {
			binary.LittleEndian.PutUint32(p[off:], bits)
			off += 4
		}
	}
	return off, nil
}
