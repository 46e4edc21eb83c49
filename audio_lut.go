// audio_lut.go - band-limiting helper for synthetic waveform generation
//
// Adapted from the teacher's oscillator anti-aliasing primitive of the
// same name; the sine/tanh lookup tables and the chip's fixed-point phase
// convention they served were specific to its register-mapped channel
// model and were dropped with it (see DESIGN.md), leaving polyBLEP32 as
// the one piece reused, now correcting the phase-accumulator oscillators
// in dsp_generator.go.

package main

// polyBLEP32 applies polynomial band-limited step correction. t is the
// normalised phase position in [0,1), dt is the phase increment per
// sample (frequency/sampleRate).
//
//go:nosplit
func polyBLEP32(t, dt float32) float32 {
	if t < dt {
		t /= dt
		return t + t - t*t - 1.0
	} else if t > 1.0-dt {
		t = (t - 1.0) / dt
		return t*t + t + t + 1.0
	}
	return 0.0
}
