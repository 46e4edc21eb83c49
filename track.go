// track.go - per-track source selection and 15-step DSP chain, per spec.md §4.7
//
// Grounded on the teacher's Channel type in audio_chip.go (a source
// selector feeding a fixed chain of optional effects) but the chain
// itself is rebuilt step-for-step to match the mixer's pad/gain/HPF/
// gate/compressor/4-band-EQ/parametric-EQ/pan/fader/aux-send ordering.

package main

const (
	padGainLinear        = 0.0630957344 // 10^(-24/20)
	defaultInputGain     = 0.7          // microphone safety margin
	trackHPFFrequency    = 80.0
	eqLowShelfFreq       = 80.0
	eqLowMidFreq         = 400.0
	eqHighMidFreq        = 2500.0
	eqHighShelfFreq      = 8000.0
)

type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceAudioInput
	SourceGenerator
	SourceFilePlayer
)

// AuxSend describes one track's tap into an aux bus.
type AuxSend struct {
	Level     float64
	PreFader  bool
	Muted     bool
}

// fourBandEQ is the track's fixed-topology tone control: low-shelf,
// two peaking bands, and a high-shelf, enabled or bypassed together.
type fourBandEQ struct {
	enabled  bool
	lowShelf *Biquad
	lowMid   *Biquad
	highMid  *Biquad
	highShelf *Biquad
}

func newFourBandEQ(sampleRate float64) *fourBandEQ {
	return &fourBandEQ{
		lowShelf:  NewBiquad(FilterLowShelf, eqLowShelfFreq, 0, 0.707, sampleRate),
		lowMid:    NewBiquad(FilterPeaking, eqLowMidFreq, 0, 1.0, sampleRate),
		highMid:   NewBiquad(FilterPeaking, eqHighMidFreq, 0, 1.0, sampleRate),
		highShelf: NewBiquad(FilterHighShelf, eqHighShelfFreq, 0, 0.707, sampleRate),
	}
}

func (eq *fourBandEQ) SetSampleRate(sampleRate float64) {
	eq.lowShelf.SetSampleRate(sampleRate)
	eq.lowMid.SetSampleRate(sampleRate)
	eq.highMid.SetSampleRate(sampleRate)
	eq.highShelf.SetSampleRate(sampleRate)
}

func (eq *fourBandEQ) process(l, r float64) (float64, float64) {
	if !eq.enabled {
		return l, r
	}
	l, r = eq.lowShelf.Process(l, r)
	l, r = eq.lowMid.Process(l, r)
	l, r = eq.highMid.Process(l, r)
	l, r = eq.highShelf.Process(l, r)
	return l, r
}

// parametricBand is one user-defined band in a track's or the master's
// parametric EQ chain. Unlike the fixed four-band EQ, entries may be
// appended, replaced, or cleared wholesale.
type parametricBand struct {
	filter  *Biquad
	enabled bool
}

type parametricEQ struct {
	enabled bool
	bands   []*parametricBand
}

func newParametricEQ() *parametricEQ {
	return &parametricEQ{}
}

func (p *parametricEQ) SetSampleRate(sampleRate float64) {
	for _, b := range p.bands {
		b.filter.SetSampleRate(sampleRate)
	}
}

func (p *parametricEQ) clear() {
	p.bands = nil
}

func (p *parametricEQ) process(l, r float64) (float64, float64) {
	if !p.enabled {
		return l, r
	}
	for _, b := range p.bands {
		if !b.enabled {
			continue
		}
		l, r = b.filter.Process(l, r)
	}
	return l, r
}

// Track is one input channel strip: a source selector feeding the full
// DSP chain described in spec.md §4.7.
type Track struct {
	ID int

	Source SourceKind

	// AudioInput source state: indices into the interleaved input frame.
	InputChannelL int
	InputChannelR int

	// Generator source state.
	Generator *Generator

	// FilePlayer source state.
	File *FileSource

	PadEnabled bool
	Gain       float64
	HPFEnabled bool
	hpf        *Biquad

	Gate       *Gate
	Compressor *Compressor
	FourBandEQ *fourBandEQ
	ParamEQ    *parametricEQ

	Pan          float64
	Volume       float64
	Mute         bool
	RouteToMaster bool
	RouteToSubgroups []int

	AuxSends [numAuxBuses]AuxSend

	// Per-frame scratch, re-derived each process() call.
	auxOutputsL [numAuxBuses]float64
	auxOutputsR [numAuxBuses]float64

	PeakL, PeakR float64

	waveform     [waveformRingSize]float64
	waveformPos  int

	lastMainL, lastMainR float64
}

func NewTrack(id int, sampleRate float64) *Track {
	t := &Track{
		ID:            id,
		Gain:          1.0,
		Volume:        1.0,
		RouteToMaster: true,
		Generator:     NewGenerator(sampleRate),
		File:          NewFileSource(sampleRate),
		Gate:          NewGate(sampleRate),
		Compressor:    NewCompressor(sampleRate),
		FourBandEQ:    newFourBandEQ(sampleRate),
		ParamEQ:       newParametricEQ(),
		hpf:           NewBiquad(FilterHighPass, trackHPFFrequency, 0, 0.707, sampleRate),
	}
	for i := range t.AuxSends {
		t.AuxSends[i] = AuxSend{Level: 0, PreFader: false, Muted: true}
	}
	return t
}

func (t *Track) SetSampleRate(sampleRate float64) {
	t.Generator.SetSampleRate(sampleRate)
	t.File.SetEngineSampleRate(sampleRate)
	t.Gate.SetSampleRate(sampleRate)
	t.Compressor.SetSampleRate(sampleRate)
	t.FourBandEQ.SetSampleRate(sampleRate)
	t.ParamEQ.SetSampleRate(sampleRate)
	t.hpf.SetSampleRate(sampleRate)
}

// SetSourceInput switches the track to the AudioInput source, stopping the
// file player (rewinding it to the start) and applying the microphone
// safety-margin gain default, per spec.md §4.7. The generator's waveform
// and frequency are left as they were.
func (t *Track) SetSourceInput(channelL, channelR int) {
	t.Source = SourceAudioInput
	t.InputChannelL = channelL
	t.InputChannelR = channelR
	t.Gain = defaultInputGain
	t.File.Stop()
}

func (t *Track) SetSourceGenerator(waveform Waveform, freq float64) {
	t.Source = SourceGenerator
	t.Generator.Waveform = waveform
	t.Generator.SetFrequency(freq)
	t.File.Stop()
}

func (t *Track) SetSourceFile(samplesL, samplesR []float64, fileRate float64) {
	t.Source = SourceFilePlayer
	t.File.Load(samplesL, samplesR, fileRate)
}

func (t *Track) SetSourceNone() {
	t.Source = SourceNone
	t.File.Stop()
}

func (t *Track) readSource(input []float64) (float64, float64) {
	switch t.Source {
	case SourceAudioInput:
		var l, r float64
		if t.InputChannelL >= 0 && t.InputChannelL < len(input) {
			l = input[t.InputChannelL]
		}
		if t.InputChannelR >= 0 && t.InputChannelR < len(input) {
			r = input[t.InputChannelR]
		}
		return l, r
	case SourceGenerator:
		v := t.Generator.Next()
		return v, v
	case SourceFilePlayer:
		return t.File.Next()
	default:
		return 0, 0
	}
}

// Process runs the full 15-step chain for one frame and returns the main
// stereo output pair. input is the current interleaved capture frame (may
// be nil/empty if no input device is open).
func (t *Track) Process(input []float64) (float64, float64) {
	l, r := t.readSource(input)

	if t.PadEnabled {
		l *= padGainLinear
		r *= padGainLinear
	}

	l *= t.Gain
	r *= t.Gain

	if t.HPFEnabled {
		l, r = t.hpf.Process(l, r)
	}

	l, r = t.Gate.Process(l, r)
	l, r = t.Compressor.Process(l, r)
	l, r = t.FourBandEQ.process(l, r)
	l, r = t.ParamEQ.process(l, r)

	p := clamp(t.Pan, -1, 1)
	l *= minF(1, 1-p)
	r *= minF(1, 1+p)

	preFaderL, preFaderR := l, r

	l *= t.Volume
	r *= t.Volume

	for i := range t.AuxSends {
		send := &t.AuxSends[i]
		if send.Muted {
			t.auxOutputsL[i] = 0
			t.auxOutputsR[i] = 0
			continue
		}
		var sl, sr float64
		if send.PreFader {
			sl, sr = preFaderL, preFaderR
		} else {
			sl, sr = l, r
		}
		t.auxOutputsL[i] = sl * send.Level
		t.auxOutputsR[i] = sr * send.Level
	}

	t.PeakL = maxF(t.PeakL, absF(l))
	t.PeakR = maxF(t.PeakR, absF(r))

	t.waveform[t.waveformPos] = (l + r) * 0.5
	t.waveformPos = (t.waveformPos + 1) % waveformRingSize

	if t.Mute {
		t.lastMainL, t.lastMainR = 0, 0
		return 0, 0
	}
	t.lastMainL, t.lastMainR = l, r
	return l, r
}

// AuxOutput returns this track's contribution to aux bus i for the frame
// just processed.
func (t *Track) AuxOutput(i int) (float64, float64) {
	return t.auxOutputsL[i], t.auxOutputsR[i]
}

// ResetPeaks zeroes the peak counters immediately after a meter publication.
func (t *Track) ResetPeaks() {
	t.PeakL = 0
	t.PeakR = 0
}

// WaveformSnapshot returns a downsampled copy of the waveform ring, used by
// the telemetry layer's levels message (spec.md §6 wants 128 samples).
func (t *Track) WaveformSnapshot(outLen int) []float64 {
	out := make([]float64, outLen)
	stride := waveformRingSize / outLen
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < outLen; i++ {
		idx := (t.waveformPos + i*stride) % waveformRingSize
		out[i] = t.waveform[idx]
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
