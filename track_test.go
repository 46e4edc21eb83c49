package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_SetSourceInputAppliesMicSafetyGain(t *testing.T) {
	tr := NewTrack(0, 48000)
	tr.Gain = 1.0
	tr.SetSourceInput(0, 1)
	require.Equal(t, defaultInputGain, tr.Gain)
}

func TestTrack_PadAttenuatesSignal(t *testing.T) {
	withPad := NewTrack(0, 48000)
	withPad.SetSourceGenerator(WaveSine, 1000)
	withPad.PadEnabled = true

	withoutPad := NewTrack(0, 48000)
	withoutPad.SetSourceGenerator(WaveSine, 1000)

	var peakWithPad, peakWithoutPad float64
	for i := 0; i < 100; i++ {
		l, _ := withPad.Process(nil)
		if absF(l) > peakWithPad {
			peakWithPad = absF(l)
		}
		l2, _ := withoutPad.Process(nil)
		if absF(l2) > peakWithoutPad {
			peakWithoutPad = absF(l2)
		}
	}
	assert.Less(t, peakWithPad, peakWithoutPad)
}

func TestTrack_MuteZeroesOutputButKeepsProcessingAlive(t *testing.T) {
	tr := NewTrack(0, 48000)
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.Mute = true

	l, r := tr.Process(nil)
	assert.Equal(t, 0.0, l)
	assert.Equal(t, 0.0, r)

	// the first sine sample is 0; the second is not, and the meter sees it
	tr.Process(nil)
	assert.Greater(t, tr.PeakL, 0.0, "meters keep tracking the would-be output while muted")
}

func TestTrack_PanHardLeftSilencesRight(t *testing.T) {
	tr := NewTrack(0, 48000)
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.Pan = -1

	var maxAbsR float64
	for i := 0; i < 100; i++ {
		_, r := tr.Process(nil)
		if absF(r) > maxAbsR {
			maxAbsR = absF(r)
		}
	}
	assert.Less(t, maxAbsR, 0.0001)
}

func TestTrack_AuxSendPreFaderIgnoresVolume(t *testing.T) {
	tr := NewTrack(0, 48000)
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.Volume = 0.1
	tr.AuxSends[0] = AuxSend{Level: 1.0, PreFader: true, Muted: false}

	var maxAbsSend float64
	for i := 0; i < 100; i++ {
		tr.Process(nil)
		al, _ := tr.AuxOutput(0)
		if absF(al) > maxAbsSend {
			maxAbsSend = absF(al)
		}
	}

	// with volume at 0.1 the post-fader main output would be tiny, but the
	// pre-fader send should reflect the pre-volume level instead.
	assert.Greater(t, maxAbsSend, 0.5)
}

func TestTrack_AuxSendMutedIsZero(t *testing.T) {
	tr := NewTrack(0, 48000)
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.AuxSends[0] = AuxSend{Level: 1.0, PreFader: false, Muted: true}

	tr.Process(nil)
	al, ar := tr.AuxOutput(0)
	assert.Equal(t, 0.0, al)
	assert.Equal(t, 0.0, ar)
}

func TestTrack_WaveformSnapshotLength(t *testing.T) {
	tr := NewTrack(0, 48000)
	tr.SetSourceGenerator(WaveSine, 440)
	for i := 0; i < 4096; i++ {
		tr.Process(nil)
	}
	snap := tr.WaveformSnapshot(128)
	require.Len(t, snap, 128)
}
