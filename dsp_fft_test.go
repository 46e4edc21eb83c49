package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_PureToneIsolatesExpectedBin(t *testing.T) {
	sampleRate := 48000.0
	toneFreq := 1000.0

	a := NewAnalyzer()
	var phase float64
	for i := 0; i < fftSize; i++ {
		s := math.Sin(2 * math.Pi * phase)
		phase += toneFreq / sampleRate
		a.Feed(s, s)
	}

	require.True(t, a.Ready())
	left, right := a.Analyze()
	require.NotNil(t, left)
	require.NotNil(t, right)
	require.Len(t, left, fftBins)
	require.Len(t, right, fftBins)

	peakBin := 0
	peakMag := 0.0
	for i, m := range left {
		if m > peakMag {
			peakMag = m
			peakBin = i
		}
	}

	expectedBin := int(toneFreq * fftSize / sampleRate)
	assert.InDelta(t, expectedBin, peakBin, 1, "peak bin should land near the tone's expected FFT bin")
}

func TestAnalyzer_ReadyClearsAfterAnalyzeUntilNextWindow(t *testing.T) {
	a := NewAnalyzer()
	for i := 0; i < fftSize; i++ {
		a.Feed(0.1, 0.1)
	}
	require.True(t, a.Ready())
	a.Analyze()
	assert.False(t, a.Ready(), "ready should clear immediately after Analyze until the next window completes")

	for i := 0; i < fftSize-1; i++ {
		a.Feed(0.1, 0.1)
	}
	assert.False(t, a.Ready(), "ready should stay false until a full window completes again")
	a.Feed(0.1, 0.1)
	assert.True(t, a.Ready())
}

func TestAnalyzer_IndependentChannelSpectra(t *testing.T) {
	sampleRate := 48000.0
	a := NewAnalyzer()

	var phaseL, phaseR float64
	for i := 0; i < fftSize; i++ {
		l := math.Sin(2 * math.Pi * phaseL)
		phaseL += 1000.0 / sampleRate
		r := math.Sin(2 * math.Pi * phaseR)
		phaseR += 4000.0 / sampleRate
		a.Feed(l, r)
	}

	left, right := a.Analyze()

	peakBin := func(bins []float64) int {
		peak, idx := 0.0, 0
		for i, m := range bins {
			if m > peak {
				peak, idx = m, i
			}
		}
		return idx
	}

	leftPeak := peakBin(left)
	rightPeak := peakBin(right)
	assert.InDelta(t, int(1000.0*fftSize/sampleRate), leftPeak, 1)
	assert.InDelta(t, int(4000.0*fftSize/sampleRate), rightPeak, 1)
	assert.NotEqual(t, leftPeak, rightPeak, "independently-fed channels should not collapse to the same spectrum")
}

func TestAnalyzer_NotReadyBeforeFullWindow(t *testing.T) {
	a := NewAnalyzer()
	a.Feed(1, 1)
	assert.False(t, a.Ready())
	left, right := a.Analyze()
	assert.Nil(t, left)
	assert.Nil(t, right)
}

func TestBinFrequency_MatchesNyquistSpacing(t *testing.T) {
	sampleRate := 48000.0
	got := BinFrequency(fftSize/2, sampleRate)
	assert.InDelta(t, sampleRate/2, got, 0.001)
}
