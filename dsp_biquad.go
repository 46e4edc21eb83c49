// dsp_biquad.go - Audio EQ Cookbook biquad filter and parametric band
//
// Direct-form I realisation with separate per-channel (L,R) history, in
// the spirit of the teacher's per-channel state kept alongside each
// oscillator in audio_chip.go's Channel. Coefficients follow the
// RBJ/"Audio EQ Cookbook" forms.

package main

import "math"

// FilterKind selects which Audio EQ Cookbook form a band realises.
type FilterKind int

const (
	FilterLowShelf FilterKind = iota
	FilterHighShelf
	FilterPeaking
	FilterLowPass
	FilterHighPass
)

// biquadCoeffs holds the five normalised direct-form-I coefficients.
type biquadCoeffs struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// biquadHistory is the two-sample input/output delay line for one channel.
type biquadHistory struct {
	x1, x2 float64
	y1, y2 float64
}

func (h *biquadHistory) reset() {
	*h = biquadHistory{}
}

// Biquad is a single second-order IIR section with independent L/R
// history, shared coefficients, and amortised coefficient recomputation.
type Biquad struct {
	kind FilterKind

	targetFreq float64
	targetGain float64
	targetQ    float64

	currentFreq float64
	currentGain float64
	currentQ    float64

	coeffs biquadCoeffs

	sampleRate   float64
	smooth       float64
	samplesSince int

	left, right biquadHistory
}

// NewBiquad constructs a band for the given kind with initial parameters
// already at rest (current == target, coefficients computed).
func NewBiquad(kind FilterKind, freq, gainDB, q, sampleRate float64) *Biquad {
	b := &Biquad{
		kind:       kind,
		sampleRate: sampleRate,
	}
	b.SetSampleRate(sampleRate)
	b.SetTarget(freq, gainDB, q)
	b.currentFreq = b.targetFreq
	b.currentGain = b.targetGain
	b.currentQ = b.targetQ
	b.recompute()
	return b
}

// SetSampleRate updates the smoothing coefficient for the new rate.
// Coefficients are recomputed automatically on the next Process call,
// since samplesSince is set to the recompute threshold.
func (b *Biquad) SetSampleRate(sampleRate float64) {
	b.sampleRate = sampleRate
	b.smooth = smoothingCoeff(bandSmoothTauSeconds, sampleRate)
	b.samplesSince = coeffRecomputeEvery // force recompute on next sample
}

// SetTarget clamps and stores the target (freq, gain, Q) triple; the
// "current" triple chases it via one-pole smoothing in Process.
func (b *Biquad) SetTarget(freq, gainDB, q float64) {
	b.targetFreq = clamp(freq, minEQFreq, maxEQFreq)
	b.targetGain = clamp(gainDB, minEQGain, maxEQGain)
	b.targetQ = clamp(q, minEQQ, maxEQQ)
}

// SetKind changes the filter topology; coefficients are recomputed on the
// next processed sample.
func (b *Biquad) SetKind(kind FilterKind) {
	b.kind = kind
	b.samplesSince = coeffRecomputeEvery
}

func (b *Biquad) Reset() {
	b.left.reset()
	b.right.reset()
}

// recompute derives direct-form-I coefficients from the current triple
// using the Audio EQ Cookbook formulas.
func (b *Biquad) recompute() {
	freq := b.currentFreq
	q := b.currentQ
	if q <= 0 {
		q = minEQQ
	}
	a := math.Pow(10, b.currentGain/40.0)
	w0 := 2 * math.Pi * freq / b.sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64

	switch b.kind {
	case FilterLowShelf:
		sqrtA := math.Sqrt(a)
		beta := 2 * sqrtA * alpha
		b0 = a * ((a + 1) - (a-1)*cosW0 + beta)
		b1 = 2 * a * ((a - 1) - (a+1)*cosW0)
		b2 = a * ((a + 1) - (a-1)*cosW0 - beta)
		a0 = (a + 1) + (a-1)*cosW0 + beta
		a1 = -2 * ((a - 1) + (a+1)*cosW0)
		a2 = (a + 1) + (a-1)*cosW0 - beta
	case FilterHighShelf:
		sqrtA := math.Sqrt(a)
		beta := 2 * sqrtA * alpha
		b0 = a * ((a + 1) + (a-1)*cosW0 + beta)
		b1 = -2 * a * ((a - 1) + (a+1)*cosW0)
		b2 = a * ((a + 1) + (a-1)*cosW0 - beta)
		a0 = (a + 1) - (a-1)*cosW0 + beta
		a1 = 2 * ((a - 1) - (a+1)*cosW0)
		a2 = (a + 1) - (a-1)*cosW0 - beta
	case FilterPeaking:
		b0 = 1 + alpha*a
		b1 = -2 * cosW0
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosW0
		a2 = 1 - alpha/a
	case FilterLowPass:
		b1 = 1 - cosW0
		b0 = b1 / 2
		b2 = b0
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case FilterHighPass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = b0
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	}

	b.coeffs = biquadCoeffs{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

func (b *Biquad) advanceTarget() {
	b.currentFreq = b.smooth*b.currentFreq + (1-b.smooth)*b.targetFreq
	b.currentGain = b.smooth*b.currentGain + (1-b.smooth)*b.targetGain
	b.currentQ = b.smooth*b.currentQ + (1-b.smooth)*b.targetQ
}

// Process runs one stereo sample through the band, direct-form I.
func (b *Biquad) Process(l, r float64) (float64, float64) {
	b.advanceTarget()
	b.samplesSince++
	if b.samplesSince >= coeffRecomputeEvery {
		b.recompute()
		b.samplesSince = 0
	}

	c := b.coeffs
	outL := c.b0*l + c.b1*b.left.x1 + c.b2*b.left.x2 - c.a1*b.left.y1 - c.a2*b.left.y2
	b.left.x2, b.left.x1 = b.left.x1, l
	b.left.y2, b.left.y1 = b.left.y1, outL

	outR := c.b0*r + c.b1*b.right.x1 + c.b2*b.right.x2 - c.a1*b.right.y1 - c.a2*b.right.y2
	b.right.x2, b.right.x1 = b.right.x1, r
	b.right.y2, b.right.y1 = b.right.y1, outR

	return outL, outR
}
