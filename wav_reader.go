// wav_reader.go - minimal 16-bit PCM WAV reader
//
// Paired with wav_writer.go so the tap's round-trip law (spec.md §8) and
// file-player loading can both be exercised without a codec dependency.
// Reads exactly the canonical layout wav_writer.go produces: RIFF/fmt
// /data chunks, PCM16.

package main

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// ReadWAV reads a canonical PCM16 stereo (or mono) WAV file and returns
// deinterleaved float64 samples in [-1,1] plus its sample rate.
func ReadWAV(path string) (samplesL, samplesR []float64, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	var riffHeader [12]byte
	if _, err := io.ReadFull(f, riffHeader[:]); err != nil {
		return nil, nil, 0, err
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return nil, nil, 0, errors.New("wav: not a RIFF/WAVE file")
	}

	var channels uint16
	var bitsPerSample uint16
	var dataBytes []byte
	foundFmt := false

	for {
		var chunkID [4]byte
		var chunkSize uint32
		if _, err := io.ReadFull(f, chunkID[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, 0, err
		}
		if err := binary.Read(f, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, 0, err
		}

		switch string(chunkID[:]) {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, body); err != nil {
				return nil, nil, 0, err
			}
			channels = binary.LittleEndian.Uint16(body[2:4])
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			foundFmt = true
		case "data":
			dataBytes = make([]byte, chunkSize)
			if _, err := io.ReadFull(f, dataBytes); err != nil {
				return nil, nil, 0, err
			}
		default:
			if _, err := f.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return nil, nil, 0, err
			}
		}
		if chunkSize%2 == 1 {
			if _, err := f.Seek(1, io.SeekCurrent); err != nil {
				return nil, nil, 0, err
			}
		}
	}

	if !foundFmt || dataBytes == nil {
		return nil, nil, 0, errors.New("wav: missing fmt or data chunk")
	}
	if bitsPerSample != 16 {
		return nil, nil, 0, errors.New("wav: only 16-bit PCM is supported")
	}

	numFrames := len(dataBytes) / 2 / int(channels)
	samplesL = make([]float64, numFrames)
	samplesR = make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		base := i * int(channels) * 2
		l := int16(binary.LittleEndian.Uint16(dataBytes[base : base+2]))
		samplesL[i] = dequantize16(l)
		if channels >= 2 {
			r := int16(binary.LittleEndian.Uint16(dataBytes[base+2 : base+4]))
			samplesR[i] = dequantize16(r)
		} else {
			samplesR[i] = samplesL[i]
		}
	}
	return samplesL, samplesR, sampleRate, nil
}

func dequantize16(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768.0
	}
	return float64(v) / 32767.0
}
