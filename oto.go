//go:build !headless

package main

import (
	"io"

	"github.com/ebitengine/oto/v3"
)

// AudioOutput streams a reader of float32 LE frames to the default device.
type AudioOutput struct {
	ctx    *oto.Context
	player *oto.Player
}

func OpenAudioOutput(sampleRate, channels int, src io.Reader) (*AudioOutput, error) {
	otoContextOptions := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}
	ctx, readyChan, err := oto.NewContext(otoContextOptions)
	if err != nil {
		return nil, err
	}
	<-readyChan
	return &AudioOutput{
		ctx:    ctx,
		player: ctx.NewPlayer(src),
	}, nil
}

func (ao *AudioOutput) Start() {
	ao.player.Play()
}

func (ao *AudioOutput) Close() error {
	if ao.player == nil {
		return nil
	}
	err := ao.player.Close()
	ao.player = nil
	return err
}
