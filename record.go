package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	recordBitDepth    = 16
	recordBlockFrames = 1024
	wavFormatPCM      = 1
)

// RecordWAV pulls nframes frames from r and writes them to a 16-bit PCM
// WAV file at path.
func RecordWAV(path string, r *Renderer, nframes int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	channels := r.Channels()
	enc := wav.NewEncoder(f, SampleRate, recordBitDepth, channels, wavFormatPCM)
	block := make([]float32, recordBlockFrames*channels)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: SampleRate},
		Data:           make([]int, len(block)),
		SourceBitDepth: recordBitDepth,
	}
	const fullScale = 1<<(recordBitDepth-1) - 1
	for done := 0; done < nframes; {
		n := min(recordBlockFrames, nframes-done)
		r.Render(block[:n*channels])
		buf.Data = buf.Data[:n*channels]
		for i, smp := range block[:n*channels] {
			buf.Data[i] = int(ClampSigned(smp) * fullScale)
		}
		if err := enc.Write(buf); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		done += n
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
