// dsp_generator.go - synthetic signal generator, per spec.md §4.6
//
// Phase-accumulator oscillators follow the shape of the teacher's
// Channel.generateSample in audio_chip.go, generalised from the chip's
// fixed four waveforms to the six the mixer needs and re-based on a
// [0,1) phase accumulator instead of the chip's [0,2π) one.

package main

import (
	"math"
	"math/rand"
)

type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
	WaveWhiteNoise
	WavePinkNoise
)

// pinkNoiseState is the Paul Kellet refined pink noise filter: seven
// one-poles summed and scaled by 0.11, per spec.md §4.6.
type pinkNoiseState struct {
	b0, b1, b2, b3, b4, b5, b6 float64
}

func (p *pinkNoiseState) next(white float64) float64 {
	p.b0 = 0.99886*p.b0 + white*0.0555179
	p.b1 = 0.99332*p.b1 + white*0.0750759
	p.b2 = 0.96900*p.b2 + white*0.1538520
	p.b3 = 0.86650*p.b3 + white*0.3104856
	p.b4 = 0.55000*p.b4 + white*0.5329522
	p.b5 = -0.7616*p.b5 - white*0.0168980
	out := p.b0 + p.b1 + p.b2 + p.b3 + p.b4 + p.b5 + p.b6 + white*0.5362
	p.b6 = white * 0.115926
	return out * 0.11
}

// Generator produces one of six waveforms from a phase accumulator.
type Generator struct {
	Waveform  Waveform
	Frequency float64 // Hz, clamped to [20, 20000]

	sampleRate float64
	phase      float64 // [0,1)
	rng        *rand.Rand
	pink       pinkNoiseState
}

func NewGenerator(sampleRate float64) *Generator {
	return &Generator{
		Waveform:   WaveSine,
		Frequency:  440,
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(1)),
	}
}

func (g *Generator) SetSampleRate(sampleRate float64) {
	g.sampleRate = sampleRate
}

func (g *Generator) SetFrequency(freq float64) {
	g.Frequency = clamp(freq, 20, 20000)
}

// Next advances the oscillator by one sample and returns its value in
// [-1, 1] (noise variants included). Square and sawtooth are corrected
// with polyBLEP at each discontinuity to suppress aliasing, reusing the
// teacher's polyBLEP32 primitive from audio_lut.go; triangle has no
// discontinuity and is left uncorrected.
func (g *Generator) Next() float64 {
	dt := float32(g.Frequency / g.sampleRate)
	t := float32(g.phase)

	var out float64
	switch g.Waveform {
	case WaveSine:
		out = math.Sin(2 * math.Pi * g.phase)
	case WaveSquare:
		var v float32 = 1
		if g.phase >= 0.5 {
			v = -1
		}
		v += polyBLEP32(t, dt)
		tHalf := t - 0.5
		if tHalf < 0 {
			tHalf += 1
		}
		v -= polyBLEP32(tHalf, dt)
		out = float64(v)
	case WaveSawtooth:
		v := 2*t - 1
		v -= polyBLEP32(t, dt)
		out = float64(v)
	case WaveTriangle:
		out = 4*absF(g.phase-0.5) - 1
	case WaveWhiteNoise:
		out = g.rng.Float64()*2 - 1
	case WavePinkNoise:
		white := g.rng.Float64()*2 - 1
		out = g.pink.next(white)
	}

	if g.Waveform != WaveWhiteNoise && g.Waveform != WavePinkNoise {
		g.phase += g.Frequency / g.sampleRate
		if g.phase >= 1 {
			g.phase -= 1
		}
	}
	return out
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
