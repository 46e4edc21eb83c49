// engine_telemetry.go - meter/spectrum/performance publishing, per spec.md §6
//
// Grounded on the teacher's own line-delimited JSON idiom for its debug/
// status output (runtime_status.go emitted structured JSON over a
// channel); generalised here to the three message shapes the mixer needs.

package main

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"
)

const waveformSnapshotLen = 128

var (
	telemetryOut   = bufio.NewWriter(os.Stdout)
	telemetryMutex sync.Mutex
)

func emitTelemetry(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	telemetryMutex.Lock()
	defer telemetryMutex.Unlock()
	telemetryOut.Write(data)
	telemetryOut.WriteByte('\n')
	telemetryOut.Flush()
}

type trackLevel struct {
	Track                int       `json:"track"`
	LevelL               float64   `json:"level_l"`
	LevelR               float64   `json:"level_r"`
	Waveform             []float64 `json:"waveform"`
	CompressorInputDB    float64   `json:"compressor_input_db"`
	CompressorReductionDB float64  `json:"compressor_reduction_db"`
	GateInputDB          float64   `json:"gate_input_db"`
	GateAttenuationDB    float64   `json:"gate_attenuation_db"`
}

type busLevel struct {
	ID     int     `json:"id"`
	LevelL float64 `json:"level_l"`
	LevelR float64 `json:"level_r"`
}

type levelsMessage struct {
	Type      string       `json:"type"`
	Tracks    []trackLevel `json:"tracks"`
	Subgroups []busLevel   `json:"subgroups"`
	MasterL   float64      `json:"master_l"`
	MasterR   float64      `json:"master_r"`
}

type fftMessage struct {
	Type       string    `json:"type"`
	BinsLeft   []float64 `json:"bins_left"`
	BinsRight  []float64 `json:"bins_right"`
	SampleRate int       `json:"sample_rate"`
}

type performanceMessage struct {
	Type          string  `json:"type"`
	BufferSize    int     `json:"buffer_size"`
	LatencyMs     float64 `json:"latency_ms"`
	AvgProcessMs  float64 `json:"avg_process_ms"`
	CPUPercent    float64 `json:"cpu_percent"`
	MinProcessMs  float64 `json:"min_process_ms"`
	MaxProcessMs  float64 `json:"max_process_ms"`
}

// buildLevelsMessage snapshots per-track/subgroup/master peaks and a
// downsampled waveform, per spec.md §4.10. Called under the router lock;
// callers reset peaks immediately afterward.
func (e *Engine) buildLevelsMessage() *levelsMessage {
	msg := &levelsMessage{
		Type:    "levels",
		MasterL: e.router.Master.PeakL,
		MasterR: e.router.Master.PeakR,
	}
	for _, t := range e.router.Tracks {
		msg.Tracks = append(msg.Tracks, trackLevel{
			Track:                 t.ID,
			LevelL:                t.PeakL,
			LevelR:                t.PeakR,
			Waveform:              t.WaveformSnapshot(waveformSnapshotLen),
			CompressorInputDB:     t.Compressor.InputLevelDB,
			CompressorReductionDB: t.Compressor.GainReductionDB,
			GateInputDB:           t.Gate.InputLevelDB,
			GateAttenuationDB:     t.Gate.AttenuationDB,
		})
	}
	for _, s := range e.router.Subgroups {
		msg.Subgroups = append(msg.Subgroups, busLevel{ID: s.ID, LevelL: s.PeakL, LevelR: s.PeakR})
	}
	return msg
}

// buildFFTMessage polls the analyzer for a completed window and, when one
// just finished, copies its independent left/right magnitude bins into a
// telemetry message, per spec.md §6.
func (e *Engine) buildFFTMessage() *fftMessage {
	left, right := e.router.Analyzer.Analyze()
	if left == nil {
		return nil
	}
	cpyL := make([]float64, len(left))
	cpyR := make([]float64, len(right))
	copy(cpyL, left)
	copy(cpyR, right)
	return &fftMessage{
		Type:       "fft",
		BinsLeft:   cpyL,
		BinsRight:  cpyR,
		SampleRate: e.sampleRate,
	}
}

const performanceIntervalSeconds = 2

func (e *Engine) maybeBuildPerformanceMessage() *performanceMessage {
	now := time.Now()
	if !e.lastPerformanceReport.IsZero() && now.Sub(e.lastPerformanceReport) < performanceIntervalSeconds*time.Second {
		return nil
	}
	e.lastPerformanceReport = now

	avg, min, max, n := e.perf.snapshot()
	if n == 0 {
		return nil
	}
	latencyMs := float64(e.bufferSize) / float64(e.sampleRate) * 1000
	cpuPercent := 0.0
	if latencyMs > 0 {
		cpuPercent = avg / latencyMs * 100
	}
	return &performanceMessage{
		Type:         "performance",
		BufferSize:   e.bufferSize,
		LatencyMs:    latencyMs,
		AvgProcessMs: avg,
		CPUPercent:   cpuPercent,
		MinProcessMs: min,
		MaxProcessMs: max,
	}
}
