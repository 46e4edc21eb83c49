// wav_writer.go - canonical 16-bit PCM stereo WAV writer, per spec.md §4.11
//
// No media codec library appears in the retrieval pack's go.mod files, and
// the teacher itself writes its own WAV I/O by hand rather than importing
// one; this file follows that practice with encoding/binary.

package main

import (
	"encoding/binary"
	"math"
	"os"
)

const (
	wavBitsPerSample = 16
	wavChannels      = 2
)

// quantize16 converts a float64 sample clamped to [-1,1] into a signed
// 16-bit PCM value using the asymmetric rounding rule from spec.md §4.11.
func quantize16(x float64) int16 {
	x = clamp(x, -1, 1)
	if x < 0 {
		return int16(math.Round(x * 32768))
	}
	return int16(math.Round(x * 32767))
}

// WriteWAV writes an interleaved stereo float64 buffer (L,R,L,R,...) to
// path as a canonical RIFF/WAVE PCM16 file at the given sample rate.
func WriteWAV(path string, interleaved []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	numSamples := len(interleaved)
	dataSize := uint32(numSamples * 2) // 2 bytes per 16-bit sample
	byteRate := uint32(sampleRate * wavChannels * (wavBitsPerSample / 8))
	blockAlign := uint16(wavChannels * (wavBitsPerSample / 8))

	if err := writeString(f, "RIFF"); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(36+dataSize)); err != nil {
		return err
	}
	if err := writeString(f, "WAVE"); err != nil {
		return err
	}

	if err := writeString(f, "fmt "); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(16)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(1)); err != nil { // PCM
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(wavChannels)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, byteRate); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, blockAlign); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(wavBitsPerSample)); err != nil {
		return err
	}

	if err := writeString(f, "data"); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, dataSize); err != nil {
		return err
	}

	for _, s := range interleaved {
		if err := binary.Write(f, binary.LittleEndian, quantize16(s)); err != nil {
			return err
		}
	}
	return nil
}

func writeString(f *os.File, s string) error {
	_, err := f.WriteString(s)
	return err
}
