//go:build headless

package main

type OtoPlayer struct {
	started bool
	fill    FrameFiller
}

type FrameFiller func(buf []float32)

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) SetupPlayer(fill FrameFiller) {
	op.fill = fill
}

func (op *OtoPlayer) Start() { op.started = true }
func (op *OtoPlayer) Stop()  { op.started = false }
func (op *OtoPlayer) Close() { op.started = false }

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}
