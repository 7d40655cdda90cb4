package main

import (
	"image"
)

type Point = image.Point
type Size = image.Point
type Rect = image.Rectangle

// Smp is the sample type flowing from the mixer to the audio device.
type Smp = float32
