package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *Dispatcher {
	engine := NewEngine(nil)
	return NewDispatcher(engine, nil)
}

func TestDispatcher_MalformedJSONDoesNotPanic(t *testing.T) {
	d := newTestDispatcher()
	assert.NotPanics(t, func() {
		d.HandleLine([]byte("not json"))
	})
}

func TestDispatcher_UnknownCommandTypeDoesNotPanic(t *testing.T) {
	d := newTestDispatcher()
	assert.NotPanics(t, func() {
		d.HandleLine([]byte(`{"type":"frobnicate"}`))
	})
}

func TestDispatcher_SetGainAppliesToExistingTrack(t *testing.T) {
	d := newTestDispatcher()
	var tr *Track
	d.withRouter(func(r *Router) { tr = r.AddTrack() })

	d.HandleLine([]byte(`{"type":"set_gain","track":0,"value":0.5}`))
	assert.Equal(t, 0.5, tr.Gain)
}

func TestDispatcher_SetGainOnUnknownTrackIsIgnored(t *testing.T) {
	d := newTestDispatcher()
	assert.NotPanics(t, func() {
		d.HandleLine([]byte(`{"type":"set_gain","track":42,"value":0.5}`))
	})
}

func TestDispatcher_SetMuteAppliesToExistingTrack(t *testing.T) {
	d := newTestDispatcher()
	var tr *Track
	d.withRouter(func(r *Router) { tr = r.AddTrack() })

	d.HandleLine([]byte(`{"type":"set_mute","track":0,"value":true}`))
	assert.True(t, tr.Mute)
}

func TestDispatcher_AddAndRemoveSubgroup(t *testing.T) {
	d := newTestDispatcher()
	d.HandleLine([]byte(`{"type":"add_subgroup"}`))

	var count int
	d.withRouter(func(r *Router) { count = len(r.Subgroups) })
	require.Equal(t, 1, count)

	d.HandleLine([]byte(`{"type":"remove_subgroup","id":0}`))
	d.withRouter(func(r *Router) { count = len(r.Subgroups) })
	assert.Equal(t, 0, count)
}

func TestDispatcher_SetTrackAuxSendOutOfRangeAuxIsIgnored(t *testing.T) {
	d := newTestDispatcher()
	var tr *Track
	d.withRouter(func(r *Router) { tr = r.AddTrack() })
	before := tr.AuxSends[0]

	d.HandleLine([]byte(`{"type":"set_track_aux_send","track":0,"aux":99,"level":1.0}`))
	assert.Equal(t, before, tr.AuxSends[0])
}

func TestDispatcher_SetTrackAuxSendAppliesToExistingTrack(t *testing.T) {
	d := newTestDispatcher()
	var tr *Track
	d.withRouter(func(r *Router) { tr = r.AddTrack() })

	d.HandleLine([]byte(`{"type":"set_track_aux_send","track":0,"aux":1,"level":0.7,"pre_fader":true}`))
	assert.Equal(t, AuxSend{Level: 0.7, PreFader: true}, tr.AuxSends[1])
}

func TestDispatcher_SetMasterGainAppliesToMaster(t *testing.T) {
	d := newTestDispatcher()
	d.HandleLine([]byte(`{"type":"set_master_gain","value":0.25}`))

	var gain float64
	d.withRouter(func(r *Router) { gain = r.Master.Gain })
	assert.Equal(t, 0.25, gain)
}

func TestDispatcher_SetSubgroupGainOnUnknownIDIsIgnored(t *testing.T) {
	d := newTestDispatcher()
	assert.NotPanics(t, func() {
		d.HandleLine([]byte(`{"type":"set_subgroup_gain","id":7,"value":0.5}`))
	})
}
