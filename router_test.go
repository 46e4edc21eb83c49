package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_MuteStopsContributionToMaster(t *testing.T) {
	r := NewRouter(48000, 2)
	tr := r.AddTrack()
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.RouteToMaster = true

	var peak float64
	for i := 0; i < 200; i++ {
		out := r.ProcessFrame(nil)
		if absF(out[0]) > peak {
			peak = absF(out[0])
		}
	}
	require.Greater(t, peak, 0.0)

	tr.Mute = true
	r.ResetPeaks()
	peak = 0
	for i := 0; i < 200; i++ {
		out := r.ProcessFrame(nil)
		if absF(out[0]) > peak {
			peak = absF(out[0])
		}
	}
	assert.Equal(t, 0.0, peak, "a muted track must not reach the master output")
}

// TestRouter_SubgroupAndMasterParallelRoutingDoublesPeak exercises the
// resolved open question from spec.md §9: a track routed to both its
// subgroup (which also routes to master) and directly to master should
// produce roughly double the master peak of routing to master alone,
// since both paths are summed rather than being mutually exclusive.
func TestRouter_SubgroupAndMasterParallelRoutingDoublesPeak(t *testing.T) {
	directOnly := NewRouter(48000, 2)
	tr := directOnly.AddTrack()
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.RouteToMaster = true

	var peakDirect float64
	for i := 0; i < 200; i++ {
		out := directOnly.ProcessFrame(nil)
		if absF(out[0]) > peakDirect {
			peakDirect = absF(out[0])
		}
	}

	parallel := NewRouter(48000, 2)
	tr2 := parallel.AddTrack()
	tr2.SetSourceGenerator(WaveSine, 1000)
	tr2.RouteToMaster = true
	sg := parallel.AddSubgroup()
	sg.RouteToMaster = true
	tr2.RouteToSubgroups = []int{sg.ID}

	var peakParallel float64
	for i := 0; i < 200; i++ {
		out := parallel.ProcessFrame(nil)
		if absF(out[0]) > peakParallel {
			peakParallel = absF(out[0])
		}
	}

	assert.InDelta(t, peakDirect*2, peakParallel, peakDirect*0.05,
		"routing to both master and a master-routed subgroup should roughly double the master peak")
}

func TestRouter_RemoveSubgroupRenumbersAndRewritesRoutes(t *testing.T) {
	r := NewRouter(48000, 2)
	tr := r.AddTrack()
	sg0 := r.AddSubgroup()
	sg1 := r.AddSubgroup()
	sg2 := r.AddSubgroup()
	tr.RouteToSubgroups = []int{sg0.ID, sg1.ID, sg2.ID}

	require.True(t, r.RemoveSubgroup(sg1.ID))

	require.Len(t, r.Subgroups, 2)
	assert.Equal(t, 0, r.Subgroups[0].ID)
	assert.Equal(t, 1, r.Subgroups[1].ID)

	// sg0 stays 0, sg1 is dropped, sg2 shifts down to 1.
	assert.ElementsMatch(t, []int{0, 1}, tr.RouteToSubgroups)
}

func TestRouter_RemoveSubgroupUnknownIDFails(t *testing.T) {
	r := NewRouter(48000, 2)
	assert.False(t, r.RemoveSubgroup(99))
}

func TestRouter_OutputEnabledSubgroupWritesOwnChannels(t *testing.T) {
	r := NewRouter(48000, 4)
	tr := r.AddTrack()
	tr.SetSourceGenerator(WaveSine, 1000)
	tr.RouteToMaster = false
	sg := r.AddSubgroup()
	sg.RouteToMaster = false
	sg.OutputEnabled = true
	sg.OutputChannelL = 2
	sg.OutputChannelR = 3
	tr.RouteToSubgroups = []int{sg.ID}

	var peakCh2 float64
	for i := 0; i < 200; i++ {
		out := r.ProcessFrame(nil)
		if absF(out[2]) > peakCh2 {
			peakCh2 = absF(out[2])
		}
	}
	assert.Greater(t, peakCh2, 0.0, "a subgroup routed only to its own output channels should still be audible there")
}
