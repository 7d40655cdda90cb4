package main

const (
	SampleRate = 48000
	// TableSize is the length of every analytic wavetable.
	TableSize     = 1024
	OscsPerVoice  = 4
	NumVoices     = 12
	NumWavetables = 4

	Nyquist = SampleRate / 2.0
)

// ClampSR limits a frequency to [0, Nyquist]. NaN maps to 0.
func ClampSR(freq float64) float64 {
	if !(freq >= 0) {
		return 0
	}
	if freq > Nyquist {
		return Nyquist
	}
	return freq
}

// ClampUnit limits value to [0, 1]. NaN maps to 0.
func ClampUnit(value float32) float32 {
	if !(value >= 0) {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// ScaleUnit maps value from [lo,hi] to [0,1], clamping the result.
func ScaleUnit(value, lo, hi float32) float32 {
	if hi == lo {
		return 0
	}
	return ClampUnit((value - lo) / (hi - lo))
}

// ClampSigned limits a sample to [-1, 1]. NaN maps to 0.
func ClampSigned(value float32) float32 {
	if value != value {
		return 0
	}
	if value < -1 {
		return -1
	}
	if value > 1 {
		return 1
	}
	return value
}
