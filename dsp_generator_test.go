package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_SineStaysInRange(t *testing.T) {
	g := NewGenerator(48000)
	g.Waveform = WaveSine
	g.SetFrequency(440)

	for i := 0; i < 48000; i++ {
		v := g.Next()
		require.LessOrEqual(t, math.Abs(v), 1.0001)
	}
}

func TestGenerator_SquareAlternatesSign(t *testing.T) {
	g := NewGenerator(48000)
	g.Waveform = WaveSquare
	g.SetFrequency(100)

	var sawPositive, sawNegative bool
	for i := 0; i < 48000; i++ {
		v := g.Next()
		if v > 0.5 {
			sawPositive = true
		}
		if v < -0.5 {
			sawNegative = true
		}
	}
	assert.True(t, sawPositive)
	assert.True(t, sawNegative)
}

func TestGenerator_FrequencyClampedToRange(t *testing.T) {
	g := NewGenerator(48000)
	g.SetFrequency(100000)
	assert.Equal(t, 20000.0, g.Frequency)

	g.SetFrequency(1)
	assert.Equal(t, 20.0, g.Frequency)
}

func TestGenerator_WhiteNoiseStaysInRange(t *testing.T) {
	g := NewGenerator(48000)
	g.Waveform = WaveWhiteNoise
	for i := 0; i < 10000; i++ {
		v := g.Next()
		require.LessOrEqual(t, v, 1.0)
		require.GreaterOrEqual(t, v, -1.0)
	}
}

func TestGenerator_PinkNoiseStaysBounded(t *testing.T) {
	g := NewGenerator(48000)
	g.Waveform = WavePinkNoise
	var maxAbs float64
	for i := 0; i < 48000; i++ {
		v := math.Abs(g.Next())
		if v > maxAbs {
			maxAbs = v
		}
	}
	assert.Less(t, maxAbs, 2.0, "pink noise filter should stay comfortably bounded")
}
