// dsp_fft.go - post-master spectrum analyzer, per spec.md §4.9
//
// No FFT library appears anywhere in the retrieval pack (checked every
// go.mod under _examples/); this is a hand-rolled iterative radix-2
// Cooley-Tukey transform on stdlib complex128, justified in DESIGN.md
// as the one stdlib-fallback exception in the DSP layer.

package main

import (
	"math"
	"math/cmplx"
)

const fftSize = 2048

// hannWindow is precomputed once; every analyzer instance shares it since
// the window only depends on fftSize, which is a package constant.
var hannWindow [fftSize]float64

func init() {
	for i := 0; i < fftSize; i++ {
		hannWindow[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}
}

// fftBitReverse permutes buf in place for the iterative Cooley-Tukey pass.
func fftBitReverse(buf []complex128) {
	n := len(buf)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j &^= bit
		}
		j |= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
}

// fftForward computes an in-place iterative radix-2 DIT FFT. len(buf) must
// be a power of two.
func fftForward(buf []complex128) {
	n := len(buf)
	fftBitReverse(buf)
	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wLen := cmplx.Rect(1, angle)
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for j := 0; j < length/2; j++ {
				u := buf[i+j]
				v := buf[i+j+length/2] * w
				buf[i+j] = u + v
				buf[i+j+length/2] = u - v
				w *= wLen
			}
		}
	}
}

// fftBins is the number of magnitude bins published per channel, per
// spec.md §6 (bins_left[1024]/bins_right[1024]) — the Nyquist bin at
// index fftSize/2 is dropped to match that wire contract.
const fftBins = fftSize / 2

// Analyzer computes independent per-channel magnitude spectra from two
// running rings of the most recent fftSize samples, per spec.md §3.
type Analyzer struct {
	ringL, ringR [fftSize]float64
	writePos     int
	ready        bool
	magnitudeL   [fftBins]float64
	magnitudeR   [fftBins]float64
	scratch      [fftSize]complex128
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Feed appends one post-master stereo sample to the per-channel rings. ready
// is set once per ring wrap, so Analyze produces one spectrum per completed
// fftSize-sample window rather than on every frame, per spec.md §4.9.
func (a *Analyzer) Feed(l, r float64) {
	a.ringL[a.writePos] = l
	a.ringR[a.writePos] = r
	a.writePos++
	if a.writePos == fftSize {
		a.writePos = 0
		a.ready = true
	}
}

// Ready reports whether a full fftSize window has completed since the last
// Analyze call.
func (a *Analyzer) Ready() bool {
	return a.ready
}

// Analyze windows the current ring contents and returns independent
// magnitude bins for the left and right channels, normalized by fftSize.
// Calling Analyze clears the ready flag until the next window completes.
// The returned slices are only valid until the next call to Analyze.
func (a *Analyzer) Analyze() (left, right []float64) {
	if !a.ready {
		return nil, nil
	}
	a.ready = false

	a.transform(a.ringL[:], a.magnitudeL[:])
	a.transform(a.ringR[:], a.magnitudeR[:])
	return a.magnitudeL[:], a.magnitudeR[:]
}

// transform windows ring (oldest-first, starting at writePos), runs the
// forward FFT, and writes fftBins magnitudes into out.
func (a *Analyzer) transform(ring []float64, out []float64) {
	for i := 0; i < fftSize; i++ {
		idx := (a.writePos + i) % fftSize
		a.scratch[i] = complex(ring[idx]*hannWindow[i], 0)
	}

	fftForward(a.scratch[:])

	for i := 0; i < fftBins; i++ {
		out[i] = cmplx.Abs(a.scratch[i]) / float64(fftSize)
	}
}

// BinFrequency returns the centre frequency of bin i for the given sample rate.
func BinFrequency(bin int, sampleRate float64) float64 {
	return float64(bin) * sampleRate / float64(fftSize)
}
