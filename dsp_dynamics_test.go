package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressor_ReducesGainAboveThreshold(t *testing.T) {
	sampleRate := 48000.0
	c := NewCompressor(sampleRate)
	c.Enabled = true
	c.SetParams(-20, 4, 1, 50)

	// Drive a loud signal long enough for the envelope to settle.
	var outL, outR float64
	for i := 0; i < int(sampleRate/10); i++ {
		outL, outR = c.Process(0.9, 0.9)
	}

	assert.Less(t, outL, 0.9, "a 4:1 compressor well above threshold must attenuate")
	assert.Less(t, outR, 0.9)
	assert.Greater(t, c.GainReductionDB, 0.0)
}

func TestCompressor_DisabledPassesThrough(t *testing.T) {
	c := NewCompressor(48000)
	c.Enabled = false
	l, r := c.Process(0.9, 0.9)
	require.Equal(t, 0.9, l)
	require.Equal(t, 0.9, r)
}

func TestLimiter_EnforcesCeiling(t *testing.T) {
	sampleRate := 48000.0
	l := NewLimiter(sampleRate)
	l.Enabled = true
	l.SetParams(-1, 5)

	ceilingLinear := dbToLinear(-1)

	var maxOut float64
	for i := 0; i < int(sampleRate/4); i++ {
		outL, _ := l.Process(1.0, 1.0)
		if outL > maxOut {
			maxOut = outL
		}
	}

	assert.LessOrEqual(t, maxOut, ceilingLinear+0.05, "limiter output should settle at or below its ceiling")
}

func TestGate_AttenuatesBelowThreshold(t *testing.T) {
	sampleRate := 48000.0
	g := NewGate(sampleRate)
	g.Enabled = true
	g.SetParams(-40, -80, 1, 5)

	var outL float64
	for i := 0; i < int(sampleRate/10); i++ {
		outL, _ = g.Process(0.0001, 0.0001)
	}

	assert.Less(t, outL, 0.0001, "a quiet signal below threshold should be attenuated by the gate")
}

func TestGate_PassesSignalAboveThreshold(t *testing.T) {
	sampleRate := 48000.0
	g := NewGate(sampleRate)
	g.Enabled = true
	g.SetParams(-40, -80, 1, 5)

	var outL float64
	for i := 0; i < int(sampleRate/10); i++ {
		outL, _ = g.Process(0.5, 0.5)
	}

	assert.InDelta(t, 0.5, outL, 0.01, "a loud signal above threshold should pass through essentially unattenuated")
}
