package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelay_ImpulseReappearsAfterDelayTime(t *testing.T) {
	sampleRate := 48000.0
	d := NewDelay(sampleRate)
	d.Enabled = true
	d.SetParams(10, 10, 0, 1.0) // 10ms delay, fully wet

	delaySamples := int(10 * sampleRate / 1000.0)

	d.Process(1.0, 1.0)
	var sawEcho bool
	for i := 0; i < delaySamples+5; i++ {
		l, _ := d.Process(0, 0)
		if i == delaySamples-1 && l > 0.5 {
			sawEcho = true
		}
	}
	assert.True(t, sawEcho, "a fully-wet impulse should reappear at the configured delay time")
}

func TestDelay_FeedbackClampedTo095(t *testing.T) {
	d := NewDelay(48000)
	d.SetParams(10, 10, 5.0, 0.5)
	require.LessOrEqual(t, d.Feedback, 0.95)
}

func TestDelay_DisabledIsDryPassthrough(t *testing.T) {
	d := NewDelay(48000)
	d.Enabled = false
	l, r := d.Process(0.4, -0.4)
	require.Equal(t, 0.4, l)
	require.Equal(t, -0.4, r)
}
