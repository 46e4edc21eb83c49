//go:build !headless

// backend_oto.go - oto/v3 audio output backend
//
// Adapted from the teacher's OtoPlayer in its former audio_backend_oto.go:
// same atomic-pointer-to-callback pattern for a lock-free Read() hot path,
// generalised from a single SoundChip ring-buffer source to an engine-
// supplied stereo frame filler and from mono float32 to stereo.

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// FrameFiller fills buf (interleaved stereo float32, len a multiple of 2)
// with the next block of output samples.
type FrameFiller func(buf []float32)

type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	fill      atomic.Pointer[FrameFiller]
	sampleBuf []float32

	started bool
	mutex   sync.Mutex
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoPlayer{ctx: ctx}, nil
}

func (op *OtoPlayer) SetupPlayer(fill FrameFiller) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.fill.Store(&fill)
	op.player = op.ctx.NewPlayer(op)
	op.sampleBuf = make([]float32, 4096)
}

// Read implements io.Reader for oto.Player; it is called on oto's own
// real-time thread and must not allocate beyond the pre-sized scratch
// buffer's occasional growth.
func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	fill := op.fill.Load()
	if fill == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]

	(*fill)(samples)

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Close()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
