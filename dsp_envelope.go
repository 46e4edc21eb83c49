// dsp_envelope.go - peak envelope follower shared by gate/compressor/limiter

package main

import "math"

// EnvelopeFollower is a one-pole peak detector on max(|L|,|R|) with
// independent attack/release time constants, per spec.md §4.2.
type EnvelopeFollower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64
	attackCoef float64
	releaseCoef float64
	level      float64
}

func NewEnvelopeFollower(sampleRate, attackMs, releaseMs float64) *EnvelopeFollower {
	e := &EnvelopeFollower{sampleRate: sampleRate}
	e.SetTimes(attackMs, releaseMs)
	return e
}

func (e *EnvelopeFollower) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
	e.SetTimes(e.attackMs, e.releaseMs)
}

func (e *EnvelopeFollower) SetTimes(attackMs, releaseMs float64) {
	e.attackMs = attackMs
	e.releaseMs = releaseMs
	e.attackCoef = smoothingCoeff(attackMs/1000.0, e.sampleRate)
	e.releaseCoef = smoothingCoeff(releaseMs/1000.0, e.sampleRate)
}

// Process advances the envelope by one sample and returns the new level.
func (e *EnvelopeFollower) Process(l, r float64) float64 {
	input := math.Max(math.Abs(l), math.Abs(r))
	var coef float64
	if input > e.level {
		coef = e.attackCoef
	} else {
		coef = e.releaseCoef
	}
	e.level = coef*e.level + (1-coef)*input
	return e.level
}

func (e *EnvelopeFollower) Reset() {
	e.level = 0
}
