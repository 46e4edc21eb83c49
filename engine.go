// engine.go - audio I/O lifecycle, shared state, per spec.md §4.10/§5
//
// Grounded on the teacher's own engine-ish glue in audio_chip.go (a single
// SoundChip owning its OtoPlayer and a ring buffer filled under lock) but
// split out into the mixer's three concurrency domains: a coarse router
// mutex, a short-scoped input-slot mutex, and small mutexes around the
// dependent-track set and the master tap, per spec.md §5.

package main

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// inputSlot is the single-producer/single-consumer shared snapshot of the
// most recently delivered capture block.
type inputSlot struct {
	mu     sync.Mutex
	frame  []float64
	valid  bool
}

func (s *inputSlot) set(frame []float64) {
	s.mu.Lock()
	s.frame = frame
	s.valid = true
	s.mu.Unlock()
}

func (s *inputSlot) get() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return nil
	}
	return s.frame
}

// masterTap is the bounded recorder listening at the final master output.
type masterTap struct {
	mu        sync.Mutex
	enabled   bool
	path      string
	buf       []float64 // interleaved L,R,L,R,...
	maxFrames int
}

func newMasterTap(sampleRate int) *masterTap {
	return &masterTap{maxFrames: sampleRate * maxTapSeconds}
}

func (t *masterTap) enable(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = true
	t.path = path
	t.buf = t.buf[:0]
}

// disable returns the accumulated buffer and path for the caller to flush
// to disk outside any lock, and clears the tap's own state.
func (t *masterTap) disable() (buf []float64, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	buf, path = t.buf, t.path
	t.enabled = false
	t.buf = nil
	t.path = ""
	return buf, path
}

func (t *masterTap) append(l, r float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	if len(t.buf)/2 >= t.maxFrames {
		return
	}
	t.buf = append(t.buf, l, r)
}

// performanceAccumulator tracks rolling process-time statistics for
// PerformanceStats telemetry, per spec.md §4.10.
type performanceAccumulator struct {
	mu         sync.Mutex
	sumMs      float64
	count      int
	minMs      float64
	maxMs      float64
	lastReport time.Time
}

func newPerformanceAccumulator() *performanceAccumulator {
	return &performanceAccumulator{lastReport: time.Time{}}
}

func (p *performanceAccumulator) record(elapsed time.Duration) {
	ms := float64(elapsed) / float64(time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count == 0 || ms < p.minMs {
		p.minMs = ms
	}
	if ms > p.maxMs {
		p.maxMs = ms
	}
	p.sumMs += ms
	p.count++
}

// snapshot returns (avg, min, max) and resets the accumulator.
func (p *performanceAccumulator) snapshot() (avg, min, max float64, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count == 0 {
		return 0, 0, 0, 0
	}
	avg = p.sumMs / float64(p.count)
	min, max, n = p.minMs, p.maxMs, p.count
	p.sumMs, p.count, p.minMs, p.maxMs = 0, 0, 0, 0
	return avg, min, max, n
}

// Engine owns the audio-IO abstraction, the router behind its coarse
// mutex, and the ancillary per-concern mutexes spec.md §5 describes.
type Engine struct {
	mu     sync.Mutex // coarse router lock
	router *Router

	output AudioOutput

	sampleRate     int
	bufferSize     int
	outputChannels int

	input            *inputSlot
	inputDeviceName  string
	inputStream      captureStream
	dependentTracks  map[int]bool
	dependentMu      sync.Mutex

	tap *masterTap

	UpdatesSuspended bool

	perf          *performanceAccumulator
	meterFrameCount int
	lastPerformanceReport time.Time

	logger *log.Logger

	started bool
}

// AudioOutput is the engine's host playback abstraction; enumerating and
// instantiating real devices is outside this component's scope (spec.md
// §1) — OtoPlayer satisfies it in both build modes this repository ships
// (backend_oto.go by default, the stub in backend_headless.go under the
// headless tag).
type AudioOutput interface {
	SetupPlayer(fill FrameFiller)
	Start()
	Stop()
	Close()
	IsStarted() bool
}

func NewEngine(logger *log.Logger) *Engine {
	return &Engine{
		sampleRate:      defaultSampleRate,
		bufferSize:      defaultBufferSize,
		outputChannels:  2,
		input:           &inputSlot{},
		dependentTracks: make(map[int]bool),
		tap:             newMasterTap(defaultSampleRate),
		perf:            newPerformanceAccumulator(),
		logger:          logger,
	}
}

// Start opens the host's default output device at the requested sample
// rate and buffer size (defaultSampleRate/defaultBufferSize when zero),
// propagates that rate to every DSP component, and installs the playback
// callback. outputDevice is only logged; the device's preferred rate is not
// queried. The input device is not opened here, per the privacy default in
// spec.md §4.10.
func (e *Engine) Start(sampleRate, bufferSize int, outputDevice string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}

	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	e.sampleRate = sampleRate
	e.bufferSize = bufferSize
	e.tap = newMasterTap(sampleRate)

	if e.router == nil {
		e.router = NewRouter(float64(sampleRate), e.outputChannels)
	} else {
		e.router.SetSampleRate(float64(sampleRate))
	}

	player, err := NewOtoPlayer(sampleRate)
	if err != nil {
		return WrapEngineError(ErrHostStream, "failed to open output device", err)
	}
	e.output = player
	e.output.SetupPlayer(e.fillBuffer)
	e.output.Start()
	e.started = true

	if e.logger != nil {
		e.logger.Info("engine started", "sample_rate", sampleRate, "buffer_size", bufferSize, "output_device", outputDevice)
	}
	return nil
}

// Stop drops the output stream; the host guarantees no further callbacks
// after Close returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}
	if e.output != nil {
		e.output.Close()
	}
	e.started = false
	if e.logger != nil {
		e.logger.Info("engine stopped")
	}
}

// fillBuffer is the playback callback, driven by the output backend on its
// own real-time thread. It measures elapsed time, drives the router under
// the coarse lock, writes interleaved float32 samples, and emits telemetry
// outside the lock, per spec.md §4.10.
func (e *Engine) fillBuffer(buf []float32) {
	start := time.Now()
	numFrames := len(buf) / e.outputChannels

	inputFrame := e.input.get()

	e.mu.Lock()
	var levels *levelsMessage
	var fft *fftMessage

	for i := 0; i < numFrames; i++ {
		out := e.router.ProcessFrame(inputFrame)
		for ch := 0; ch < e.outputChannels; ch++ {
			idx := i*e.outputChannels + ch
			if idx < len(buf) {
				buf[idx] = float32(clamp(out[ch], -1, 1))
			}
		}
		if len(out) >= 2 {
			e.tap.append(out[0], out[1])
		}

		e.meterFrameCount++
		if e.meterFrameCount >= meterIntervalFrames {
			e.meterFrameCount = 0
			levels = e.buildLevelsMessage()
			e.router.ResetPeaks()
		}
		if e.router.Analyzer.Ready() {
			fft = e.buildFFTMessage()
		}
	}
	e.mu.Unlock()

	if !e.UpdatesSuspended {
		if levels != nil {
			emitTelemetry(levels)
		}
		if fft != nil {
			emitTelemetry(fft)
		}
	}

	e.perf.record(time.Since(start))
	if !e.UpdatesSuspended {
		if perf := e.maybeBuildPerformanceMessage(); perf != nil {
			emitTelemetry(perf)
		}
	}
}

// openAudioInput is the implementation backing set_track_source_input; it
// records track_id as depending on input. When the set was empty or the
// device changed, it stops any running capture stream, clears the shared
// slot, and opens the device through openCaptureStream, whose blocks feed
// the slot via feedCapture. Actual device instantiation is the host
// backend's concern (spec.md §1).
func (e *Engine) openAudioInput(trackID int, device string) {
	e.dependentMu.Lock()
	defer e.dependentMu.Unlock()

	wasEmpty := len(e.dependentTracks) == 0
	deviceChanged := device != "" && device != e.inputDeviceName
	if wasEmpty || deviceChanged {
		if e.inputStream != nil {
			e.inputStream.stop()
			e.inputStream = nil
		}
		e.input.set(nil)
		e.inputDeviceName = device

		stream, err := openCaptureStream(device, e.sampleRate, e.bufferSize)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("failed to open capture device", "device", device, "error", err)
			}
		} else if stream != nil {
			if err := stream.start(e.feedCapture); err != nil {
				if e.logger != nil {
					e.logger.Warn("failed to start capture stream", "device", device, "error", err)
				}
			} else {
				e.inputStream = stream
			}
		}
	}
	e.dependentTracks[trackID] = true
}

func (e *Engine) closeAudioInput(trackID int) {
	e.dependentMu.Lock()
	defer e.dependentMu.Unlock()

	delete(e.dependentTracks, trackID)
	if len(e.dependentTracks) == 0 {
		if e.inputStream != nil {
			e.inputStream.stop()
			e.inputStream = nil
		}
		e.input.set(nil)
		e.inputDeviceName = ""
	}
}

// feedCapture is the capture-callback entry point: it overwrites the
// shared input slot with the latest delivered block, matching the
// single-producer/single-consumer contract in spec.md §5.
func (e *Engine) feedCapture(frame []float64) {
	e.input.set(frame)
}
