// bus_master.go - singleton master bus, per spec.md §3/§4.8
//
// Grounded on the teacher's final-mix stage in audio_chip.go (master gain
// applied once after summing all channels) generalised with a parametric
// EQ and the full compressor->reverb->delay->limiter FX chain spec.md
// requires.

package main

// MasterFXChain is the master bus's fixed-order effects chain:
// compressor, reverb, delay, limiter, per spec.md §4.8 step 4.
type MasterFXChain struct {
	Compressor *Compressor
	Reverb     *Reverb
	Delay      *Delay
	Limiter    *Limiter
}

func newMasterFXChain(sampleRate float64) *MasterFXChain {
	return &MasterFXChain{
		Compressor: NewCompressor(sampleRate),
		Reverb:     NewReverb(sampleRate),
		Delay:      NewDelay(sampleRate),
		Limiter:    NewLimiter(sampleRate),
	}
}

func (fx *MasterFXChain) SetSampleRate(sampleRate float64) {
	fx.Compressor.SetSampleRate(sampleRate)
	fx.Reverb.SetSampleRate(sampleRate)
	fx.Delay.SetSampleRate(sampleRate)
	fx.Limiter.SetSampleRate(sampleRate)
}

func (fx *MasterFXChain) process(l, r float64) (float64, float64) {
	l, r = fx.Compressor.Process(l, r)
	l, r = fx.Reverb.Process(l, r)
	l, r = fx.Delay.Process(l, r)
	l, r = fx.Limiter.Process(l, r)
	return l, r
}

// MasterBus is the singleton final-mix bus.
type MasterBus struct {
	Gain           float64
	Mute           bool
	OutputChannelL int
	OutputChannelR int

	ParamEQ *parametricEQ
	FX      *MasterFXChain

	PeakL, PeakR float64

	mixL, mixR float64
}

func NewMasterBus(sampleRate float64) *MasterBus {
	return &MasterBus{
		Gain:           1.0,
		OutputChannelL: 0,
		OutputChannelR: 1,
		ParamEQ:        newParametricEQ(),
		FX:             newMasterFXChain(sampleRate),
	}
}

func (m *MasterBus) SetSampleRate(sampleRate float64) {
	m.ParamEQ.SetSampleRate(sampleRate)
	m.FX.SetSampleRate(sampleRate)
}

func (m *MasterBus) Mix(l, r float64) {
	m.mixL += l
	m.mixR += r
}

// ProcessTrackMix runs the accumulated track-only sum through the master
// parametric EQ, master gain, and the full FX chain (spec.md §4.8 step 4).
// The accumulator is reset; peaks are not yet updated here because
// subgroup/aux contributions are still to be added (step 5).
func (m *MasterBus) ProcessTrackMix() (float64, float64) {
	l, r := m.mixL, m.mixR
	m.mixL, m.mixR = 0, 0

	l, r = m.ParamEQ.process(l, r)
	l *= m.Gain
	r *= m.Gain
	l, r = m.FX.process(l, r)
	return l, r
}

// Finalize takes the track-FX output plus the already gain-scaled
// subgroup/aux contributions routed to master (spec.md §4.8 step 5),
// applies mute, and updates peaks on the combined total — the figure
// reported as the master meter.
func (m *MasterBus) Finalize(l, r float64) (float64, float64) {
	if m.Mute {
		l, r = 0, 0
	}

	m.PeakL = maxF(m.PeakL, absF(l))
	m.PeakR = maxF(m.PeakR, absF(r))
	return l, r
}

func (m *MasterBus) ResetPeaks() {
	m.PeakL = 0
	m.PeakR = 0
}
