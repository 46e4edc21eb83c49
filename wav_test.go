package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize16_AsymmetricRounding(t *testing.T) {
	assert.Equal(t, int16(32767), quantize16(1.0))
	assert.Equal(t, int16(-32768), quantize16(-1.0))
	assert.Equal(t, int16(0), quantize16(0.0))
}

func TestQuantize16_ClampsOutOfRangeInput(t *testing.T) {
	assert.Equal(t, int16(32767), quantize16(5.0))
	assert.Equal(t, int16(-32768), quantize16(-5.0))
}

func TestDequantize16_RoundTripsNearOriginal(t *testing.T) {
	for _, v := range []float64{0, 0.25, -0.25, 0.5, -0.5, 1.0, -1.0} {
		q := quantize16(v)
		back := dequantize16(q)
		assert.InDelta(t, v, back, 1.0/32767.0)
	}
}

func TestWriteThenReadWAV_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tap.wav")

	interleaved := []float64{0, 0, 0.5, -0.5, 1.0, -1.0, -0.25, 0.25}
	require.NoError(t, WriteWAV(path, interleaved, 48000))

	l, r, rate, err := ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 48000, rate)
	require.Len(t, l, 4)
	require.Len(t, r, 4)

	wantL := []float64{0, 0.5, 1.0, -0.25}
	wantR := []float64{0, -0.5, -1.0, 0.25}
	for i := range wantL {
		assert.InDelta(t, wantL[i], l[i], 1.0/32767.0)
		assert.InDelta(t, wantR[i], r[i], 1.0/32767.0)
	}
}

func TestReadWAV_MissingFileReturnsError(t *testing.T) {
	_, _, _, err := ReadWAV(filepath.Join(t.TempDir(), "does-not-exist.wav"))
	assert.Error(t, err)
}
