//go:build headless

package main

import (
	"errors"
	"io"
)

var errHeadless = errors.New("built with the headless tag")

type AudioOutput struct{}

func OpenAudioOutput(sampleRate, channels int, src io.Reader) (*AudioOutput, error) {
	return nil, errHeadless
}

func (ao *AudioOutput) Start() {}

func (ao *AudioOutput) Close() error {
	return nil
}
