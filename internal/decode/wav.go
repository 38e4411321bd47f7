// SPDX-License-Identifier: MIT
//
// Package decode reads WAV files into the mono float buffer the
// analysis core consumes. Integer PCM (8/16/24/32 bit) and 32-bit
// IEEE-float encodings are supported; compressed formats are out of
// scope for this tool.
package decode

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// WAVE format tags this decoder accepts. Extensible wraps plain PCM
// in practice for the 24-bit files that use it, so it is decoded the
// same way.
const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE
)

// AudioData is a fully decoded, downmixed audio stream plus the
// metadata shown in the file-information panel.
type AudioData struct {
	Samples    []float64 // Mono, approx [-1,1].
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Load decodes a WAV file into mono float samples. Multi-channel
// sources are downmixed by averaging across channels, since the
// analysis core expects a single channel.
func Load(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	isFloat := false
	switch dec.WavAudioFormat {
	case wavFormatPCM, wavFormatExtensible:
	case wavFormatIEEEFloat:
		isFloat = true
	default:
		return nil, fmt.Errorf("unsupported WAV encoding %d: only PCM and IEEE-float are supported", dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	if isFloat && bitDepth != 32 {
		return nil, fmt.Errorf("unsupported float WAV bit depth %d: only 32 is supported", bitDepth)
	}
	if !isFloat && bitDepth != 8 && bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return nil, fmt.Errorf("unsupported WAV bit depth %d", bitDepth)
	}

	duration, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV duration: %w", err)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += sampleToFloat(buf.Data[i*channels+c], bitDepth, isFloat)
		}
		samples[i] = sum / float64(channels)
	}

	return &AudioData{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   duration,
	}, nil
}

// sampleToFloat normalizes one raw decoded sample into [-1,1].
//
// The PCM reader hands 32-bit words through unconverted, so a float
// WAV's samples arrive as raw IEEE-754 bit patterns and are
// reinterpreted here. 8-bit PCM is the one unsigned format in the WAV
// family, silence sits at 128, so it is re-centered before scaling.
func sampleToFloat(v, bitDepth int, isFloat bool) float64 {
	if isFloat {
		return float64(math.Float32frombits(uint32(int32(v))))
	}
	if bitDepth == 8 {
		return (float64(v) - 128) / 128
	}
	return float64(v) / float64(int64(1)<<(bitDepth-1))
}
