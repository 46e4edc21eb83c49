// bus_subgroup.go - dynamically added/removed sub-mix bus, per spec.md §3/§4.8
//
// Grounded on the teacher's bus-like Mixer aggregation step in
// audio_chip.go's mixChannels, generalised to a named, removable entity
// with its own gain/mute/output routing instead of a single fixed sum.

package main

// SubgroupBus sums the cached outputs of its member tracks (membership is
// tracked on the Track side via RouteToSubgroups, not here) and applies
// gain, mute, and output routing.
type SubgroupBus struct {
	ID             int
	Gain           float64
	Mute           bool
	RouteToMaster  bool
	OutputEnabled  bool
	OutputChannelL int
	OutputChannelR int

	PeakL, PeakR float64

	mixL, mixR float64
}

func NewSubgroupBus(id int) *SubgroupBus {
	return &SubgroupBus{
		ID:             id,
		Gain:           1.0,
		RouteToMaster:  true,
		OutputChannelL: 0,
		OutputChannelR: 1,
	}
}

// Mix accumulates one track's contribution into this frame's sum.
func (s *SubgroupBus) Mix(l, r float64) {
	s.mixL += l
	s.mixR += r
}

// Finish applies gain/mute to the accumulated sum, updates peaks, and
// returns the bus output for this frame. It resets the accumulator for the
// next frame.
func (s *SubgroupBus) Finish() (float64, float64) {
	l, r := s.mixL*s.Gain, s.mixR*s.Gain
	s.mixL, s.mixR = 0, 0

	if s.Mute {
		l, r = 0, 0
	}

	s.PeakL = maxF(s.PeakL, absF(l))
	s.PeakR = maxF(s.PeakR, absF(r))
	return l, r
}

func (s *SubgroupBus) ResetPeaks() {
	s.PeakL = 0
	s.PeakR = 0
}
