// dsp_dynamics.go - compressor, limiter and noise gate
//
// All three share the envelope-follower-plus-soft-knee shape the teacher
// uses for its own per-channel envelope generator (audio_chip.go's
// updateEnvelope), but compute gain reduction from a dB domain knee
// instead of a linear ADSR ramp, per spec.md §4.2.

package main

import "math"

const grSmoothTauSeconds = 0.010 // 10ms zipper-noise smoothing, shared by compressor/limiter

// Compressor implements the soft-knee feedforward compressor of spec.md §4.2.
type Compressor struct {
	Enabled   bool
	Threshold float64 // dB
	Ratio     float64 // >= 1.0
	KneeWidth float64 // dB, default 10

	env      *EnvelopeFollower
	grSmooth float64
	grCoef   float64

	// Exported unsmoothed metering values.
	InputLevelDB    float64
	GainReductionDB float64
}

func NewCompressor(sampleRate float64) *Compressor {
	c := &Compressor{
		Threshold: -20,
		Ratio:     1,
		KneeWidth: 10,
		env:       NewEnvelopeFollower(sampleRate, 1, 100),
	}
	c.SetSampleRate(sampleRate)
	return c
}

func (c *Compressor) SetSampleRate(sampleRate float64) {
	c.env.SetSampleRate(sampleRate)
	c.grCoef = smoothingCoeff(grSmoothTauSeconds, sampleRate)
}

func (c *Compressor) SetParams(thresholdDB, ratio, attackMs, releaseMs float64) {
	c.Threshold = thresholdDB
	c.Ratio = math.Max(ratio, 1.0)
	c.env.SetTimes(math.Max(attackMs, 0.1), math.Max(releaseMs, 1.0))
}

func (c *Compressor) Reset() {
	c.env.Reset()
	c.grSmooth = 0
	c.InputLevelDB = 0
	c.GainReductionDB = 0
}

// gainReductionDB computes the soft-knee GR curve from spec.md §4.2.
func gainReductionDB(xDB, threshold, ratio, knee float64) float64 {
	switch {
	case xDB > threshold+knee/2:
		return (xDB - threshold) * (1 - 1/ratio)
	case math.Abs(xDB-threshold) <= knee/2:
		t := (xDB - threshold + knee/2) / knee
		return t * t * knee * (1 - 1/ratio) / 4
	default:
		return 0
	}
}

// Process applies the compressor to one stereo sample, returning the
// gain-reduced pair.
func (c *Compressor) Process(l, r float64) (float64, float64) {
	level := c.env.Process(l, r)
	xDB := linearToDB(level)
	c.InputLevelDB = xDB

	if !c.Enabled {
		c.GainReductionDB = 0
		return l, r
	}

	gr := gainReductionDB(xDB, c.Threshold, c.Ratio, c.KneeWidth)
	c.GainReductionDB = gr

	c.grSmooth = c.grCoef*c.grSmooth + (1-c.grCoef)*gr
	gain := dbToLinear(-c.grSmooth)
	return l * gain, r * gain
}

// Limiter is a Compressor special-case: infinite ratio, fixed fast attack,
// 2dB knee, per spec.md §4.2. Its output magnitude never exceeds the
// ceiling.
type Limiter struct {
	Enabled bool
	Ceiling float64 // dB

	env      *EnvelopeFollower
	grSmooth float64
	grCoef   float64

	GainReductionDB float64
}

const limiterKneeDB = 2.0
const limiterAttackMs = 0.1

func NewLimiter(sampleRate float64) *Limiter {
	l := &Limiter{
		Ceiling: -1,
		env:     NewEnvelopeFollower(sampleRate, limiterAttackMs, 100),
	}
	l.SetSampleRate(sampleRate)
	return l
}

func (l *Limiter) SetSampleRate(sampleRate float64) {
	l.env.SetSampleRate(sampleRate)
	l.grCoef = smoothingCoeff(grSmoothTauSeconds, sampleRate)
}

func (l *Limiter) SetParams(ceilingDB, releaseMs float64) {
	l.Ceiling = ceilingDB
	l.env.SetTimes(limiterAttackMs, clamp(releaseMs, 10, 1000))
}

func (l *Limiter) Reset() {
	l.env.Reset()
	l.grSmooth = 0
	l.GainReductionDB = 0
}

func (l *Limiter) Process(inL, inR float64) (float64, float64) {
	level := l.env.Process(inL, inR)
	xDB := linearToDB(level)

	if !l.Enabled {
		l.GainReductionDB = 0
		return inL, inR
	}

	// Infinite ratio: anything past the knee is clamped fully to the
	// ceiling; the knee softens the transition below that.
	var gr float64
	switch {
	case xDB > l.Ceiling+limiterKneeDB/2:
		gr = xDB - l.Ceiling
	case math.Abs(xDB-l.Ceiling) <= limiterKneeDB/2:
		t := (xDB - l.Ceiling + limiterKneeDB/2) / limiterKneeDB
		gr = t * t * limiterKneeDB / 4
	default:
		gr = 0
	}
	l.GainReductionDB = gr

	l.grSmooth = l.grCoef*l.grSmooth + (1-l.grCoef)*gr
	gain := dbToLinear(-l.grSmooth)

	// The envelope and GR smoothing lag a sudden rise and the knee leaves a
	// residual overshoot, so the output is finally held at the ceiling.
	ceiling := dbToLinear(l.Ceiling)
	return clamp(inL*gain, -ceiling, ceiling), clamp(inR*gain, -ceiling, ceiling)
}

// Gate implements the noise gate of spec.md §4.2.
type Gate struct {
	Enabled   bool
	Threshold float64 // dB
	RangeDB   float64 // clamped to [-100,0]

	env *EnvelopeFollower

	InputLevelDB  float64
	AttenuationDB float64
}

func NewGate(sampleRate float64) *Gate {
	return &Gate{
		Threshold: -40,
		RangeDB:   -60,
		env:       NewEnvelopeFollower(sampleRate, 1, 100),
	}
}

func (g *Gate) SetSampleRate(sampleRate float64) {
	g.env.SetSampleRate(sampleRate)
}

func (g *Gate) SetParams(thresholdDB, rangeDB, attackMs, releaseMs float64) {
	g.Threshold = thresholdDB
	g.RangeDB = clamp(rangeDB, -100, 0)
	g.env.SetTimes(math.Max(attackMs, 0.1), math.Max(releaseMs, 1))
}

func (g *Gate) Reset() {
	g.env.Reset()
	g.InputLevelDB = 0
	g.AttenuationDB = 0
}

func (g *Gate) Process(l, r float64) (float64, float64) {
	level := g.env.Process(l, r)
	xDB := linearToDB(level)
	g.InputLevelDB = xDB

	if !g.Enabled {
		g.AttenuationDB = 0
		return l, r
	}

	var attenuation float64
	if xDB < g.Threshold {
		attenuation = math.Max(g.RangeDB, -(g.Threshold - xDB))
	}
	g.AttenuationDB = attenuation

	if attenuation <= -90 {
		return 0, 0
	}
	gain := dbToLinear(attenuation)
	return l * gain, r * gain
}
