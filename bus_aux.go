// bus_aux.go - fixed effects-send bus, per spec.md §3/§4.8
//
// Grounded on the teacher's reverb-send idiom in audio_chip.go (a shared
// reverb instance fed by a send level per channel) but generalised to a
// fixed bank of N_AUX buses, each owning its own Reverb and Delay.

package main

// AuxBus is one of the fixed N_AUX effects-send buses. It sums each
// track's aux-send contribution, runs it through its own reverb then
// delay, then gain/mute/output routing.
type AuxBus struct {
	ID             int
	Gain           float64
	Mute           bool
	RouteToMaster  bool
	OutputEnabled  bool
	OutputChannelL int
	OutputChannelR int

	Reverb *Reverb
	Delay  *Delay

	PeakL, PeakR float64

	mixL, mixR float64
}

func NewAuxBus(id int, sampleRate float64) *AuxBus {
	return &AuxBus{
		ID:             id,
		Gain:           1.0,
		OutputChannelL: 0,
		OutputChannelR: 1,
		Reverb:         NewReverb(sampleRate),
		Delay:          NewDelay(sampleRate),
	}
}

func (a *AuxBus) SetSampleRate(sampleRate float64) {
	a.Reverb.SetSampleRate(sampleRate)
	a.Delay.SetSampleRate(sampleRate)
}

func (a *AuxBus) Mix(l, r float64) {
	a.mixL += l
	a.mixR += r
}

// Finish runs the accumulated sum through reverb then delay (per spec.md
// §4.8 step 3), applies gain/mute, updates peaks, and resets the
// accumulator.
func (a *AuxBus) Finish() (float64, float64) {
	l, r := a.mixL, a.mixR
	a.mixL, a.mixR = 0, 0

	l, r = a.Reverb.Process(l, r)
	l, r = a.Delay.Process(l, r)

	l *= a.Gain
	r *= a.Gain

	if a.Mute {
		l, r = 0, 0
	}

	a.PeakL = maxF(a.PeakL, absF(l))
	a.PeakR = maxF(a.PeakR, absF(r))
	return l, r
}

func (a *AuxBus) ResetPeaks() {
	a.PeakL = 0
	a.PeakR = 0
}
