// config.go - CLI flags and optional session-preset file
//
// Flag parsing follows the pack's pflag usage (see doismellburning-samoyed's
// cmd/direwolf/main.go); the optional YAML preset format is new but uses
// gopkg.in/yaml.v3, also declared in that repo's go.mod.

package main

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// CLIConfig holds the parsed command-line configuration.
type CLIConfig struct {
	SampleRate   int
	BufferSize   int
	OutputDevice string
	InputDevice  string
	LogLevel     string
	ConfigPath   string
}

func ParseFlags(args []string) (*CLIConfig, error) {
	fs := pflag.NewFlagSet("mixengine", pflag.ContinueOnError)

	sampleRate := fs.Int("sample-rate", 0, "Output sample rate in Hz, 0 selects the engine default.")
	bufferSize := fs.Int("buffer-size", defaultBufferSize, "Playback buffer size in frames.")
	outputDevice := fs.String("output-device", "", "Output device name, empty selects the host default.")
	inputDevice := fs.String("input-device", "", "Input device name, empty selects the host default.")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error.")
	configPath := fs.String("config", "", "Path to an optional YAML session preset.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &CLIConfig{
		SampleRate:   *sampleRate,
		BufferSize:   *bufferSize,
		OutputDevice: *outputDevice,
		InputDevice:  *inputDevice,
		LogLevel:     *logLevel,
		ConfigPath:   *configPath,
	}, nil
}

// SessionPreset describes an initial track/bus layout that can be loaded
// at startup instead of building the session purely from control commands.
type SessionPreset struct {
	SampleRate int                   `yaml:"sample_rate"`
	BufferSize int                   `yaml:"buffer_size"`
	Tracks     []TrackPreset         `yaml:"tracks"`
	Subgroups  int                   `yaml:"subgroups"`
	AuxBuses   []AuxBusPreset        `yaml:"aux_buses"`
	Master     *MasterBusPresetEntry `yaml:"master,omitempty"`
}

type TrackPreset struct {
	Name   string  `yaml:"name"`
	Gain   float64 `yaml:"gain"`
	Volume float64 `yaml:"volume"`
	Pan    float64 `yaml:"pan"`
	Mute   bool    `yaml:"mute"`
}

type AuxBusPreset struct {
	ID       int     `yaml:"id"`
	Gain     float64 `yaml:"gain"`
	RoomSize float64 `yaml:"room_size"`
	Wet      float64 `yaml:"wet"`
}

type MasterBusPresetEntry struct {
	Gain float64 `yaml:"gain"`
}

func LoadSessionPreset(path string) (*SessionPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var preset SessionPreset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, err
	}
	return &preset, nil
}

// ApplyTo seeds a freshly constructed Router with this preset's tracks,
// subgroups, and aux parameters.
func (p *SessionPreset) ApplyTo(r *Router) {
	for range p.Tracks {
		r.AddTrack()
	}
	for i, tp := range p.Tracks {
		t := r.Tracks[i]
		if tp.Gain > 0 {
			t.Gain = tp.Gain
		}
		if tp.Volume > 0 {
			t.Volume = tp.Volume
		}
		t.Pan = clamp(tp.Pan, -1, 1)
		t.Mute = tp.Mute
	}
	for i := 0; i < p.Subgroups; i++ {
		r.AddSubgroup()
	}
	for _, ap := range p.AuxBuses {
		if ap.ID < 0 || ap.ID >= numAuxBuses {
			continue
		}
		aux := r.AuxBuses[ap.ID]
		if ap.Gain > 0 {
			aux.Gain = ap.Gain
		}
		aux.Reverb.SetParams(ap.RoomSize, aux.Reverb.Damping, ap.Wet, aux.Reverb.Width)
	}
	if p.Master != nil && p.Master.Gain > 0 {
		r.Master.Gain = p.Master.Gain
	}
}
