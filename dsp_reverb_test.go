package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverb_DisabledIsDryPassthrough(t *testing.T) {
	r := NewReverb(48000)
	r.Enabled = false
	l, right := r.Process(0.3, -0.2)
	require.Equal(t, 0.3, l)
	require.Equal(t, -0.2, right)
}

func TestReverb_ProducesTailAfterImpulse(t *testing.T) {
	sampleRate := 48000.0
	r := NewReverb(sampleRate)
	r.Enabled = true
	r.SetParams(0.8, 0.3, 1.0, 1.0)

	r.Process(1.0, 1.0)

	var energyAfterImpulse float64
	for i := 0; i < int(sampleRate/20); i++ {
		l, rr := r.Process(0, 0)
		energyAfterImpulse += l*l + rr*rr
	}

	assert.Greater(t, energyAfterImpulse, 0.0, "reverb should still be ringing well after a single impulse")
}

func TestReverb_ClearSilencesTail(t *testing.T) {
	r := NewReverb(48000)
	r.Enabled = true
	r.SetParams(0.8, 0.3, 1.0, 1.0)
	r.Process(1.0, 1.0)

	r.Clear()

	l, rr := r.Process(0, 0)
	assert.Equal(t, 0.0, l)
	assert.Equal(t, 0.0, rr)
}
