// dsp_constants.go - shared tunables for the DSP graph

package main

import "math"

// Sample-rate-independent defaults. Engine.Start opens the output device at
// the rate and buffer size a start command requests, falling back to these
// when none is given; the device's own preferred rate is not queried.
const (
	defaultSampleRate = 48000
	defaultBufferSize = 512

	// Number of fixed aux buses. Created once at engine init, never removed.
	numAuxBuses = 6

	// Waveform ring buffer length per track, per channel.
	waveformRingSize = 2048

	// Meter publication cadence, in frames, per spec.md §4.10/§9 (the
	// "every 2400 frames" open question). We take the fs-independent
	// reading: the constant is frames, not milliseconds.
	meterIntervalFrames = 2400

	// Master tap hard cap: 10 minutes of stereo float64 samples.
	maxTapSeconds = 10 * 60
)

// Filter/EQ parameter ranges, Audio EQ Cookbook domain.
const (
	minEQFreq = 20.0
	maxEQFreq = 20000.0
	minEQGain = -24.0
	maxEQGain = 24.0
	minEQQ    = 0.1
	maxEQQ    = 10.0
)

// Coefficient recompute cadence: amortise the transcendental cost of
// recomputing a biquad's pow/sin/cos per spec.md §4.1.
const coeffRecomputeEvery = 32

// One-pole parameter smoothing time constant for biquad bands, per §4.1.
const bandSmoothTauSeconds = 0.005

func smoothingCoeff(tauSeconds float64, sampleRate float64) float64 {
	if tauSeconds <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (tauSeconds * sampleRate))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20.0)
}

func linearToDB(lin float64) float64 {
	if lin <= 0 {
		return -math.MaxFloat64
	}
	return 20 * math.Log10(lin)
}
