package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiquad_LowPassAttenuatesHighFrequency(t *testing.T) {
	sampleRate := 48000.0
	b := NewBiquad(FilterLowPass, 500, 0, 0.707, sampleRate)

	highFreq := 10000.0
	lowFreq := 100.0

	peakHigh := runSineThroughBiquad(b, highFreq, sampleRate)
	b2 := NewBiquad(FilterLowPass, 500, 0, 0.707, sampleRate)
	peakLow := runSineThroughBiquad(b2, lowFreq, sampleRate)

	assert.Greater(t, peakLow, peakHigh, "low-pass should pass low frequencies with less attenuation than high ones")
}

func TestBiquad_PeakingBoostIncreasesLevel(t *testing.T) {
	sampleRate := 48000.0
	freq := 1000.0

	flat := NewBiquad(FilterPeaking, freq, 0, 1.0, sampleRate)
	boosted := NewBiquad(FilterPeaking, freq, 12, 1.0, sampleRate)

	peakFlat := runSineThroughBiquad(flat, freq, sampleRate)
	peakBoost := runSineThroughBiquad(boosted, freq, sampleRate)

	assert.Greater(t, peakBoost, peakFlat)
}

func TestBiquad_TargetSmoothingConverges(t *testing.T) {
	sampleRate := 48000.0
	b := NewBiquad(FilterPeaking, 1000, 0, 1.0, sampleRate)
	b.SetTarget(1000, 12, 1.0)

	for i := 0; i < int(sampleRate*2); i++ {
		b.Process(0.1, 0.1)
	}

	require.InDelta(t, 12.0, b.currentGain, 0.01, "gain should have fully converged to target after 2 seconds")
}

func runSineThroughBiquad(b *Biquad, freq, sampleRate float64) float64 {
	var peak float64
	var phase float64
	for i := 0; i < int(sampleRate); i++ {
		s := math.Sin(2 * math.Pi * phase)
		phase += freq / sampleRate
		l, r := b.Process(s, s)
		if math.Abs(l) > peak {
			peak = math.Abs(l)
		}
		if math.Abs(r) > peak {
			peak = math.Abs(r)
		}
	}
	return peak
}
