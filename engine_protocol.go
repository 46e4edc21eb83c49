// engine_protocol.go - line-delimited JSON command dispatcher, per spec.md §6
//
// Grounded on the teacher's line-oriented command idiom (its own debug
// console reads one command per line and dispatches by a string tag) but
// generalised to the mixer's full command table, decoding into a tagged
// envelope the way encoding/json examples throughout the pack do.

package main

import (
	"encoding/json"

	"github.com/charmbracelet/log"
)

// command is the minimal envelope every control-channel line must satisfy;
// payload fields are decoded a second time per command type.
type command struct {
	Type string `json:"type"`
}

// Dispatcher owns the engine and decodes/dispatches one line at a time.
type Dispatcher struct {
	engine *Engine
	logger *log.Logger
}

func NewDispatcher(engine *Engine, logger *log.Logger) *Dispatcher {
	return &Dispatcher{engine: engine, logger: logger}
}

// HandleLine parses and dispatches one control-channel line. Errors are
// emitted as telemetry error replies and never terminate the process, per
// spec.md §6/§7.
func (d *Dispatcher) HandleLine(line []byte) {
	var env command
	if err := json.Unmarshal(line, &env); err != nil {
		d.replyError(NewEngineError(ErrControlParse, "malformed JSON line"))
		return
	}

	switch env.Type {
	case "start":
		d.handleStart(line)
	case "stop":
		d.engine.Stop()
		emitTelemetry(map[string]string{"type": "stopped"})
	case "list_devices":
		emitTelemetry(map[string]interface{}{"type": "devices", "devices": []string{}})
	case "list_audio_inputs":
		emitTelemetry(map[string]interface{}{"type": "audio_inputs", "inputs": []string{}})
	case "set_track_source_input":
		d.handleSetSourceInput(line)
	case "set_track_source_signal":
		d.handleSetSourceSignal(line)
	case "set_track_source_file":
		d.handleSetSourceFile(line)
	case "play_file":
		d.handleTransport(line, func(t *Track) { t.File.Play() })
	case "pause_file":
		d.handleTransport(line, func(t *Track) { t.File.Pause() })
	case "stop_file":
		d.handleTransport(line, func(t *Track) { t.File.Stop() })
	case "stop_all_files":
		d.withRouter(func(r *Router) {
			for _, t := range r.Tracks {
				t.File.Stop()
			}
		})
	case "set_gain":
		d.handleTrackFloat(line, func(t *Track, v float64) { t.Gain = v })
	case "set_volume":
		d.handleTrackFloat(line, func(t *Track, v float64) { t.Volume = v })
	case "set_pan":
		d.handleTrackFloat(line, func(t *Track, v float64) { t.Pan = clamp(v, -1, 1) })
	case "set_mute":
		d.handleTrackBool(line, func(t *Track, v bool) { t.Mute = v })
	case "set_route_to_master":
		d.handleTrackBool(line, func(t *Track, v bool) { t.RouteToMaster = v })
	case "set_track_pad":
		d.handleTrackBool(line, func(t *Track, v bool) { t.PadEnabled = v })
	case "set_track_hpf":
		d.handleTrackBool(line, func(t *Track, v bool) { t.HPFEnabled = v })
	case "set_compressor":
		d.handleSetCompressor(line)
	case "set_gate":
		d.handleSetGate(line)
	case "set_eq":
		d.handleSetEQ(line)
	case "set_eq_enabled":
		d.handleTrackBool(line, func(t *Track, v bool) { t.FourBandEQ.enabled = v })
	case "set_parametric_eq_filters":
		d.handleSetParametricEQFilters(line)
	case "set_parametric_eq_enabled":
		d.handleTrackBool(line, func(t *Track, v bool) { t.ParamEQ.enabled = v })
	case "clear_parametric_eq":
		d.handleTrackOnly(line, func(t *Track) { t.ParamEQ.clear() })
	case "set_master_gain":
		d.handleMasterFloat(line, func(m *MasterBus, v float64) { m.Gain = v })
	case "set_master_mute":
		d.handleMasterBool(line, func(m *MasterBus, v bool) { m.Mute = v })
	case "set_master_output_channels":
		d.handleSetMasterOutputChannels(line)
	case "set_master_parametric_eq_filters":
		d.handleSetMasterParametricEQFilters(line)
	case "set_master_parametric_eq_enabled":
		d.handleMasterBool(line, func(m *MasterBus, v bool) { m.ParamEQ.enabled = v })
	case "clear_master_parametric_eq":
		d.withRouter(func(r *Router) { r.Master.ParamEQ.clear() })
	case "set_master_compressor":
		d.handleSetMasterCompressor(line)
	case "set_master_limiter":
		d.handleSetMasterLimiter(line)
	case "set_master_delay":
		d.handleSetMasterDelay(line)
	case "set_master_reverb":
		d.handleSetMasterReverb(line)
	case "add_subgroup":
		d.withRouter(func(r *Router) {
			sg := r.AddSubgroup()
			emitTelemetry(map[string]interface{}{"type": "subgroup_created", "id": sg.ID})
		})
	case "remove_subgroup":
		d.handleRemoveSubgroup(line)
	case "set_subgroup_gain":
		d.handleSubgroupFloat(line, func(s *SubgroupBus, v float64) { s.Gain = v })
	case "set_subgroup_mute":
		d.handleSubgroupBool(line, func(s *SubgroupBus, v bool) { s.Mute = v })
	case "set_subgroup_route_to_master":
		d.handleSubgroupBool(line, func(s *SubgroupBus, v bool) { s.RouteToMaster = v })
	case "set_subgroup_output_enabled":
		d.handleSubgroupBool(line, func(s *SubgroupBus, v bool) { s.OutputEnabled = v })
	case "set_subgroup_output_channels":
		d.handleSetSubgroupOutputChannels(line)
	case "set_track_aux_send":
		d.handleSetTrackAuxSend(line)
	case "set_aux_bus_gain":
		d.handleAuxFloat(line, func(a *AuxBus, v float64) { a.Gain = v })
	case "set_aux_bus_mute":
		d.handleAuxBool(line, func(a *AuxBus, v bool) { a.Mute = v })
	case "set_aux_bus_route_to_master":
		d.handleAuxBool(line, func(a *AuxBus, v bool) { a.RouteToMaster = v })
	case "set_aux_bus_output_enabled":
		d.handleAuxBool(line, func(a *AuxBus, v bool) { a.OutputEnabled = v })
	case "set_aux_bus_output_channels":
		d.handleSetAuxOutputChannels(line)
	case "set_aux_bus_reverb":
		d.handleSetAuxReverb(line)
	case "set_aux_bus_delay":
		d.handleSetAuxDelay(line)
	case "enable_master_tap":
		d.handleEnableMasterTap(line)
	case "disable_master_tap":
		d.handleDisableMasterTap()
	case "set_updates_suspended":
		d.handleUpdatesSuspended(line)
	default:
		d.replyError(NewEngineError(ErrControlParse, "unknown command type: "+env.Type))
	}
}

func (d *Dispatcher) replyError(err *EngineError) {
	if d.logger != nil {
		d.logger.Warn("control error", "kind", err.Kind.String(), "message", err.Message)
	}
	emitTelemetry(map[string]string{"type": "error", "message": err.Error()})
}

func (d *Dispatcher) withRouter(fn func(r *Router)) {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()
	if d.engine.router == nil {
		d.engine.router = NewRouter(float64(d.engine.sampleRate), d.engine.outputChannels)
	}
	fn(d.engine.router)
}

// withTrack runs fn with the coarse router lock held, so every mutation a
// command makes to a track happens atomically with respect to the
// playback callback, per spec.md §5. found reports whether the track
// existed.
func (d *Dispatcher) withTrack(id int, fn func(t *Track)) (found bool) {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()
	if d.engine.router == nil {
		return false
	}
	t := d.engine.router.FindTrack(id)
	if t == nil {
		return false
	}
	fn(t)
	return true
}

type startPayload struct {
	InputDevice  *string `json:"input_device"`
	OutputDevice *string `json:"output_device"`
	SampleRate   int     `json:"sample_rate"`
	BufferSize   int     `json:"buffer_size"`
}

func (d *Dispatcher) handleStart(line []byte) {
	var p startPayload
	json.Unmarshal(line, &p)
	outputDevice := ""
	if p.OutputDevice != nil {
		outputDevice = *p.OutputDevice
	}
	if err := d.engine.Start(p.SampleRate, p.BufferSize, outputDevice); err != nil {
		if ee, ok := err.(*EngineError); ok {
			d.replyError(ee)
		} else {
			d.replyError(WrapEngineError(ErrHostStream, "start failed", err))
		}
		return
	}
	emitTelemetry(map[string]string{"type": "started"})
}

type trackSourceInputPayload struct {
	Track   int     `json:"track"`
	Device  *string `json:"device"`
	ChannelL int    `json:"channel_l"`
	ChannelR int    `json:"channel_r"`
}

func (d *Dispatcher) handleSetSourceInput(line []byte) {
	var p trackSourceInputPayload
	json.Unmarshal(line, &p)
	found := d.withTrack(p.Track, func(t *Track) {
		if p.Device == nil {
			t.SetSourceNone()
			return
		}
		t.SetSourceInput(p.ChannelL, p.ChannelR)
	})
	if !found {
		d.replyError(NewEngineError(ErrNotFound, "unknown track"))
		return
	}
	if p.Device == nil {
		d.engine.closeAudioInput(p.Track)
	} else {
		d.engine.openAudioInput(p.Track, *p.Device)
	}
}

type trackSourceSignalPayload struct {
	Track     int     `json:"track"`
	Waveform  string  `json:"waveform"`
	Frequency float64 `json:"frequency"`
}

var waveformNames = map[string]Waveform{
	"sine":     WaveSine,
	"square":   WaveSquare,
	"sawtooth": WaveSawtooth,
	"triangle": WaveTriangle,
	"white_noise": WaveWhiteNoise,
	"pink_noise":  WavePinkNoise,
}

func (d *Dispatcher) handleSetSourceSignal(line []byte) {
	var p trackSourceSignalPayload
	json.Unmarshal(line, &p)
	wf, ok := waveformNames[p.Waveform]
	if !ok {
		wf = WaveSine
	}
	found := d.withTrack(p.Track, func(t *Track) {
		t.SetSourceGenerator(wf, p.Frequency)
	})
	if !found {
		d.replyError(NewEngineError(ErrNotFound, "unknown track"))
	}
}

type trackSourceFilePayload struct {
	Track int    `json:"track"`
	Path  string `json:"path"`
}

func (d *Dispatcher) handleSetSourceFile(line []byte) {
	var p trackSourceFilePayload
	json.Unmarshal(line, &p)

	samplesL, samplesR, rate, err := ReadWAV(p.Path)
	if err != nil {
		d.replyError(WrapEngineError(ErrMediaDecode, "cannot decode file: "+p.Path, err))
		return
	}

	found := d.withTrack(p.Track, func(t *Track) {
		t.SetSourceFile(samplesL, samplesR, float64(rate))
	})
	if !found {
		d.replyError(NewEngineError(ErrNotFound, "unknown track"))
	}
}

type trackOnlyPayload struct {
	Track int `json:"track"`
}

func (d *Dispatcher) handleTransport(line []byte, fn func(t *Track)) {
	var p trackOnlyPayload
	json.Unmarshal(line, &p)
	if found := d.withTrack(p.Track, fn); !found {
		d.replyError(NewEngineError(ErrNotFound, "unknown track"))
	}
}

func (d *Dispatcher) handleTrackOnly(line []byte, fn func(t *Track)) {
	d.handleTransport(line, fn)
}

type trackFloatPayload struct {
	Track int     `json:"track"`
	Value float64 `json:"value"`
}

func (d *Dispatcher) handleTrackFloat(line []byte, fn func(t *Track, v float64)) {
	var p trackFloatPayload
	json.Unmarshal(line, &p)
	found := d.withTrack(p.Track, func(t *Track) { fn(t, p.Value) })
	if !found && d.logger != nil {
		d.logger.Warn("ignoring setter for unknown track", "track", p.Track)
	}
}

type trackBoolPayload struct {
	Track int  `json:"track"`
	Value bool `json:"value"`
}

func (d *Dispatcher) handleTrackBool(line []byte, fn func(t *Track, v bool)) {
	var p trackBoolPayload
	json.Unmarshal(line, &p)
	found := d.withTrack(p.Track, func(t *Track) { fn(t, p.Value) })
	if !found && d.logger != nil {
		d.logger.Warn("ignoring setter for unknown track", "track", p.Track)
	}
}

type compressorPayload struct {
	Track     int     `json:"track"`
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
	Ratio     float64 `json:"ratio"`
	AttackMs  float64 `json:"attack_ms"`
	ReleaseMs float64 `json:"release_ms"`
}

func (d *Dispatcher) handleSetCompressor(line []byte) {
	var p compressorPayload
	json.Unmarshal(line, &p)
	d.withTrack(p.Track, func(t *Track) {
		t.Compressor.Enabled = p.Enabled
		t.Compressor.SetParams(p.Threshold, p.Ratio, p.AttackMs, p.ReleaseMs)
	})
}

type gatePayload struct {
	Track     int     `json:"track"`
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
	RangeDB   float64 `json:"range_db"`
	AttackMs  float64 `json:"attack_ms"`
	ReleaseMs float64 `json:"release_ms"`
}

func (d *Dispatcher) handleSetGate(line []byte) {
	var p gatePayload
	json.Unmarshal(line, &p)
	d.withTrack(p.Track, func(t *Track) {
		t.Gate.Enabled = p.Enabled
		t.Gate.SetParams(p.Threshold, p.RangeDB, p.AttackMs, p.ReleaseMs)
	})
}

type eqPayload struct {
	Track int     `json:"track"`
	Band  string  `json:"band"`
	Gain  float64 `json:"gain"`
}

func (d *Dispatcher) handleSetEQ(line []byte) {
	var p eqPayload
	json.Unmarshal(line, &p)
	gain := clamp(p.Gain, minEQGain, maxEQGain)
	d.withTrack(p.Track, func(t *Track) {
		switch p.Band {
		case "low_shelf":
			t.FourBandEQ.lowShelf.SetTarget(eqLowShelfFreq, gain, 0.707)
		case "low_mid":
			t.FourBandEQ.lowMid.SetTarget(eqLowMidFreq, gain, 1.0)
		case "high_mid":
			t.FourBandEQ.highMid.SetTarget(eqHighMidFreq, gain, 1.0)
		case "high_shelf":
			t.FourBandEQ.highShelf.SetTarget(eqHighShelfFreq, gain, 0.707)
		}
	})
}

type parametricBandSpec struct {
	Kind string  `json:"kind"`
	Freq float64 `json:"freq"`
	Gain float64 `json:"gain"`
	Q    float64 `json:"q"`
}

type parametricEQFiltersPayload struct {
	Track int                  `json:"track"`
	Bands []parametricBandSpec `json:"bands"`
}

var filterKindNames = map[string]FilterKind{
	"low_shelf":  FilterLowShelf,
	"high_shelf": FilterHighShelf,
	"peaking":    FilterPeaking,
	"low_pass":   FilterLowPass,
	"high_pass":  FilterHighPass,
}

// buildParametricBands converts a list of band specs into filter bands,
// silently skipping any entry naming an unknown filter kind and continuing
// with the rest, per spec.md §7.
func buildParametricBands(specs []parametricBandSpec, sampleRate float64) []*parametricBand {
	var bands []*parametricBand
	for _, spec := range specs {
		kind, ok := filterKindNames[spec.Kind]
		if !ok {
			continue
		}
		bands = append(bands, &parametricBand{
			filter:  NewBiquad(kind, spec.Freq, spec.Gain, spec.Q, sampleRate),
			enabled: true,
		})
	}
	return bands
}

func (d *Dispatcher) handleSetParametricEQFilters(line []byte) {
	var p parametricEQFiltersPayload
	json.Unmarshal(line, &p)
	sampleRate := float64(d.engine.sampleRate)
	d.withTrack(p.Track, func(t *Track) {
		t.ParamEQ.clear()
		t.ParamEQ.bands = buildParametricBands(p.Bands, sampleRate)
	})
}

type masterParametricEQFiltersPayload struct {
	Bands []parametricBandSpec `json:"bands"`
}

func (d *Dispatcher) handleSetMasterParametricEQFilters(line []byte) {
	var p masterParametricEQFiltersPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		r.Master.ParamEQ.clear()
		r.Master.ParamEQ.bands = buildParametricBands(p.Bands, float64(d.engine.sampleRate))
	})
}

type masterFloatPayload struct {
	Value float64 `json:"value"`
}

func (d *Dispatcher) handleMasterFloat(line []byte, fn func(m *MasterBus, v float64)) {
	var p masterFloatPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) { fn(r.Master, p.Value) })
}

type masterBoolPayload struct {
	Value bool `json:"value"`
}

func (d *Dispatcher) handleMasterBool(line []byte, fn func(m *MasterBus, v bool)) {
	var p masterBoolPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) { fn(r.Master, p.Value) })
}

type outputChannelsPayload struct {
	ChannelL int `json:"channel_l"`
	ChannelR int `json:"channel_r"`
}

func (d *Dispatcher) handleSetMasterOutputChannels(line []byte) {
	var p outputChannelsPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		r.Master.OutputChannelL = p.ChannelL
		r.Master.OutputChannelR = p.ChannelR
	})
}

func (d *Dispatcher) handleSetMasterCompressor(line []byte) {
	var p compressorPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		c := r.Master.FX.Compressor
		c.Enabled = p.Enabled
		c.SetParams(p.Threshold, p.Ratio, p.AttackMs, p.ReleaseMs)
	})
}

type limiterPayload struct {
	Enabled   bool    `json:"enabled"`
	Ceiling   float64 `json:"ceiling"`
	ReleaseMs float64 `json:"release_ms"`
}

func (d *Dispatcher) handleSetMasterLimiter(line []byte) {
	var p limiterPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		l := r.Master.FX.Limiter
		l.Enabled = p.Enabled
		l.SetParams(p.Ceiling, p.ReleaseMs)
	})
}

type delayPayload struct {
	Enabled  bool    `json:"enabled"`
	TimeMsL  float64 `json:"time_ms_l"`
	TimeMsR  float64 `json:"time_ms_r"`
	Feedback float64 `json:"feedback"`
	Mix      float64 `json:"mix"`
}

func (d *Dispatcher) handleSetMasterDelay(line []byte) {
	var p delayPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		del := r.Master.FX.Delay
		del.Enabled = p.Enabled
		del.SetParams(p.TimeMsL, p.TimeMsR, p.Feedback, p.Mix)
	})
}

type reverbPayload struct {
	Enabled  bool    `json:"enabled"`
	RoomSize float64 `json:"room_size"`
	Damping  float64 `json:"damping"`
	Wet      float64 `json:"wet"`
	Width    float64 `json:"width"`
}

func (d *Dispatcher) handleSetMasterReverb(line []byte) {
	var p reverbPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		rv := r.Master.FX.Reverb
		rv.Enabled = p.Enabled
		if !p.Enabled {
			rv.Clear()
		}
		rv.SetParams(p.RoomSize, p.Damping, p.Wet, p.Width)
	})
}

type subgroupIDPayload struct {
	ID int `json:"id"`
}

func (d *Dispatcher) handleRemoveSubgroup(line []byte) {
	var p subgroupIDPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		if !r.RemoveSubgroup(p.ID) {
			d.replyError(NewEngineError(ErrNotFound, "unknown subgroup"))
		}
	})
}

type subgroupFloatPayload struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
}

func (d *Dispatcher) handleSubgroupFloat(line []byte, fn func(s *SubgroupBus, v float64)) {
	var p subgroupFloatPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		s := r.FindSubgroup(p.ID)
		if s == nil {
			if d.logger != nil {
				d.logger.Warn("ignoring setter for unknown subgroup", "id", p.ID)
			}
			return
		}
		fn(s, p.Value)
	})
}

type subgroupBoolPayload struct {
	ID    int  `json:"id"`
	Value bool `json:"value"`
}

func (d *Dispatcher) handleSubgroupBool(line []byte, fn func(s *SubgroupBus, v bool)) {
	var p subgroupBoolPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		s := r.FindSubgroup(p.ID)
		if s == nil {
			if d.logger != nil {
				d.logger.Warn("ignoring setter for unknown subgroup", "id", p.ID)
			}
			return
		}
		fn(s, p.Value)
	})
}

type subgroupOutputChannelsPayload struct {
	ID       int `json:"id"`
	ChannelL int `json:"channel_l"`
	ChannelR int `json:"channel_r"`
}

func (d *Dispatcher) handleSetSubgroupOutputChannels(line []byte) {
	var p subgroupOutputChannelsPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		s := r.FindSubgroup(p.ID)
		if s == nil {
			if d.logger != nil {
				d.logger.Warn("ignoring setter for unknown subgroup", "id", p.ID)
			}
			return
		}
		s.OutputChannelL = p.ChannelL
		s.OutputChannelR = p.ChannelR
	})
}

type trackAuxSendPayload struct {
	Track    int     `json:"track"`
	Aux      int     `json:"aux"`
	Level    float64 `json:"level"`
	PreFader bool    `json:"pre_fader"`
	Muted    bool    `json:"muted"`
}

func (d *Dispatcher) handleSetTrackAuxSend(line []byte) {
	var p trackAuxSendPayload
	json.Unmarshal(line, &p)
	if p.Aux < 0 || p.Aux >= numAuxBuses {
		return
	}
	d.withTrack(p.Track, func(t *Track) {
		t.AuxSends[p.Aux] = AuxSend{Level: p.Level, PreFader: p.PreFader, Muted: p.Muted}
	})
}

type auxFloatPayload struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
}

func (d *Dispatcher) handleAuxFloat(line []byte, fn func(a *AuxBus, v float64)) {
	var p auxFloatPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		if p.ID < 0 || p.ID >= numAuxBuses {
			return
		}
		fn(r.AuxBuses[p.ID], p.Value)
	})
}

type auxBoolPayload struct {
	ID    int  `json:"id"`
	Value bool `json:"value"`
}

func (d *Dispatcher) handleAuxBool(line []byte, fn func(a *AuxBus, v bool)) {
	var p auxBoolPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		if p.ID < 0 || p.ID >= numAuxBuses {
			return
		}
		fn(r.AuxBuses[p.ID], p.Value)
	})
}

type auxOutputChannelsPayload struct {
	ID       int `json:"id"`
	ChannelL int `json:"channel_l"`
	ChannelR int `json:"channel_r"`
}

func (d *Dispatcher) handleSetAuxOutputChannels(line []byte) {
	var p auxOutputChannelsPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		if p.ID < 0 || p.ID >= numAuxBuses {
			return
		}
		r.AuxBuses[p.ID].OutputChannelL = p.ChannelL
		r.AuxBuses[p.ID].OutputChannelR = p.ChannelR
	})
}

type auxReverbPayload struct {
	ID int `json:"id"`
	reverbPayload
}

func (d *Dispatcher) handleSetAuxReverb(line []byte) {
	var p auxReverbPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		if p.ID < 0 || p.ID >= numAuxBuses {
			return
		}
		rv := r.AuxBuses[p.ID].Reverb
		rv.Enabled = p.Enabled
		if !p.Enabled {
			rv.Clear()
		}
		rv.SetParams(p.RoomSize, p.Damping, p.Wet, p.Width)
	})
}

type auxDelayPayload struct {
	ID int `json:"id"`
	delayPayload
}

func (d *Dispatcher) handleSetAuxDelay(line []byte) {
	var p auxDelayPayload
	json.Unmarshal(line, &p)
	d.withRouter(func(r *Router) {
		if p.ID < 0 || p.ID >= numAuxBuses {
			return
		}
		del := r.AuxBuses[p.ID].Delay
		del.Enabled = p.Enabled
		del.SetParams(p.TimeMsL, p.TimeMsR, p.Feedback, p.Mix)
	})
}

type masterTapPayload struct {
	FilePath string `json:"file_path"`
}

func (d *Dispatcher) handleEnableMasterTap(line []byte) {
	var p masterTapPayload
	json.Unmarshal(line, &p)
	d.engine.tap.enable(p.FilePath)
}

func (d *Dispatcher) handleDisableMasterTap() {
	buf, path := d.engine.tap.disable()
	if path == "" {
		return
	}
	if err := WriteWAV(path, buf, d.engine.sampleRate); err != nil {
		if d.logger != nil {
			d.logger.Warn("failed to flush master tap", "path", path, "error", err)
		}
	}
}

type updatesSuspendedPayload struct {
	Suspended bool `json:"suspended"`
}

func (d *Dispatcher) handleUpdatesSuspended(line []byte) {
	var p updatesSuspendedPayload
	json.Unmarshal(line, &p)
	d.engine.UpdatesSuspended = p.Suspended
}
