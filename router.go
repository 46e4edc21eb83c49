// router.go - per-frame graph execution, per spec.md §4.8
//
// Grounded on the teacher's mixChannels loop in audio_chip.go (sum every
// channel's generated sample into a shared accumulator once per frame)
// generalised to the mixer's multi-stage track -> subgroup/aux -> master
// -> output graph.

package main

// Router owns every track, subgroup, aux bus, the master bus, and the
// shared FFT analyzer, and defines the per-frame execution order.
type Router struct {
	SampleRate float64

	Tracks    []*Track
	nextTrackID int

	Subgroups   []*SubgroupBus
	nextSubgroupID int

	AuxBuses [numAuxBuses]*AuxBus

	Master *MasterBus

	Analyzer *Analyzer

	// OutputChannels is the device's interleaved channel count; output
	// writes index into a buffer of this width per frame.
	OutputChannels int
}

func NewRouter(sampleRate float64, outputChannels int) *Router {
	r := &Router{
		SampleRate:     sampleRate,
		Master:         NewMasterBus(sampleRate),
		Analyzer:       NewAnalyzer(),
		OutputChannels: outputChannels,
	}
	for i := 0; i < numAuxBuses; i++ {
		r.AuxBuses[i] = NewAuxBus(i, sampleRate)
	}
	return r
}

func (r *Router) SetSampleRate(sampleRate float64) {
	r.SampleRate = sampleRate
	for _, t := range r.Tracks {
		t.SetSampleRate(sampleRate)
	}
	for _, a := range r.AuxBuses {
		a.SetSampleRate(sampleRate)
	}
	r.Master.SetSampleRate(sampleRate)
	r.Analyzer = NewAnalyzer()
}

func (r *Router) AddTrack() *Track {
	id := r.nextTrackID
	r.nextTrackID++
	t := NewTrack(id, r.SampleRate)
	r.Tracks = append(r.Tracks, t)
	return t
}

func (r *Router) FindTrack(id int) *Track {
	for _, t := range r.Tracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddSubgroup allocates a new dense subgroup id and bus.
func (r *Router) AddSubgroup() *SubgroupBus {
	id := r.nextSubgroupID
	r.nextSubgroupID++
	s := NewSubgroupBus(id)
	r.Subgroups = append(r.Subgroups, s)
	return s
}

func (r *Router) FindSubgroup(id int) *SubgroupBus {
	for _, s := range r.Subgroups {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// RemoveSubgroup deletes the subgroup with the given id, renumbers every
// higher id down by one, and rewrites every track's RouteToSubgroups set
// to follow the shift, per spec.md §3/§9.
func (r *Router) RemoveSubgroup(id int) bool {
	idx := -1
	for i, s := range r.Subgroups {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.Subgroups = append(r.Subgroups[:idx], r.Subgroups[idx+1:]...)
	for i, s := range r.Subgroups {
		s.ID = i
	}
	r.nextSubgroupID = len(r.Subgroups)

	for _, t := range r.Tracks {
		rewritten := t.RouteToSubgroups[:0]
		for _, sid := range t.RouteToSubgroups {
			switch {
			case sid == id:
				// dropped, membership in the removed subgroup vanishes
			case sid > id:
				rewritten = append(rewritten, sid-1)
			default:
				rewritten = append(rewritten, sid)
			}
		}
		t.RouteToSubgroups = rewritten
	}
	return true
}

// ProcessFrame executes one output frame through the full graph and
// returns the interleaved output slice (len == OutputChannels), per
// spec.md §4.8.
func (r *Router) ProcessFrame(input []float64) []float64 {
	output := make([]float64, r.OutputChannels)

	// Step 1: run every track once, cache outputs.
	trackL := make([]float64, len(r.Tracks))
	trackR := make([]float64, len(r.Tracks))
	for i, t := range r.Tracks {
		trackL[i], trackR[i] = t.Process(input)
	}

	// Step 2: subgroups sum member tracks' cached outputs.
	for _, t := range r.Tracks {
		for _, sid := range t.RouteToSubgroups {
			if sg := r.FindSubgroup(sid); sg != nil {
				sg.Mix(t.lastMainL, t.lastMainR)
			}
		}
	}
	subgroupOut := make([][2]float64, len(r.Subgroups))
	for i, sg := range r.Subgroups {
		l, rr := sg.Finish()
		subgroupOut[i] = [2]float64{l, rr}
	}

	// Step 3: aux buses sum each track's aux-send output, then reverb,
	// delay, gain.
	for ai, aux := range r.AuxBuses {
		for _, t := range r.Tracks {
			al, ar := t.AuxOutput(ai)
			aux.Mix(al, ar)
		}
	}
	auxOut := make([][2]float64, numAuxBuses)
	for i, aux := range r.AuxBuses {
		l, rr := aux.Finish()
		auxOut[i] = [2]float64{l, rr}
	}

	// Step 4: master mix from tracks with RouteToMaster, through master
	// parametric EQ, gain, and FX chain.
	for i, t := range r.Tracks {
		if t.RouteToMaster {
			r.Master.Mix(trackL[i], trackR[i])
		}
	}
	masterL, masterR := r.Master.ProcessTrackMix()

	// Step 5: add subgroup/aux contributions routed to master, scaled by
	// master gain (parallel with direct track routing, per the resolved
	// open question in spec.md §9).
	for i, sg := range r.Subgroups {
		if sg.RouteToMaster {
			masterL += subgroupOut[i][0] * r.Master.Gain
			masterR += subgroupOut[i][1] * r.Master.Gain
		}
	}
	for i, aux := range r.AuxBuses {
		if aux.RouteToMaster {
			masterL += auxOut[i][0] * r.Master.Gain
			masterR += auxOut[i][1] * r.Master.Gain
		}
	}
	masterL, masterR = r.Master.Finalize(masterL, masterR)

	// Step 6: final interleaved output — master plus every output-enabled
	// subgroup/aux, summed into shared channels.
	if r.Master.OutputChannelL < len(output) {
		output[r.Master.OutputChannelL] += masterL
	}
	if r.Master.OutputChannelR < len(output) {
		output[r.Master.OutputChannelR] += masterR
	}
	for i, sg := range r.Subgroups {
		if !sg.OutputEnabled {
			continue
		}
		if sg.OutputChannelL < len(output) {
			output[sg.OutputChannelL] += subgroupOut[i][0]
		}
		if sg.OutputChannelR < len(output) {
			output[sg.OutputChannelR] += subgroupOut[i][1]
		}
	}
	for i, aux := range r.AuxBuses {
		if !aux.OutputEnabled {
			continue
		}
		if aux.OutputChannelL < len(output) {
			output[aux.OutputChannelL] += auxOut[i][0]
		}
		if aux.OutputChannelR < len(output) {
			output[aux.OutputChannelR] += auxOut[i][1]
		}
	}

	// Step 7: feed the post-master-FX pair into the spectrum analyzer.
	r.Analyzer.Feed(masterL, masterR)

	return output
}

// ResetPeaks zeroes every peak counter after a meter publication.
func (r *Router) ResetPeaks() {
	for _, t := range r.Tracks {
		t.ResetPeaks()
	}
	for _, s := range r.Subgroups {
		s.ResetPeaks()
	}
	for _, a := range r.AuxBuses {
		a.ResetPeaks()
	}
	r.Master.ResetPeaks()
}
