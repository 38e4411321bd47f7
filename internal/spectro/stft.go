// SPDX-License-Identifier: MIT
package spectro

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/dsp/fourier"

	"spekgram/pkg/bitint"
)

// ErrInsufficientSamples is returned when the input holds fewer samples
// than one analysis window. Nothing is computed in that case.
var ErrInsufficientSamples = fmt.Errorf("not enough samples for analysis")

// Grid is the completed short-time spectrum of one sample buffer: a
// magnitude matrix indexed frame-first, frame i starting at sample
// offset i*HopSize. Immutable once built; every downstream stage reads
// it concurrently without locking.
type Grid struct {
	Mag        [][]float64 // Frames x FreqBins magnitudes.
	Frames     int
	Bins       int
	SampleRate int
}

// Nyquist returns the highest representable frequency in Hz.
func (g *Grid) Nyquist() float64 {
	return float64(g.SampleRate) / 2
}

// BinWidth returns the frequency span of one bin in Hz.
func (g *Grid) BinWidth() float64 {
	return float64(g.SampleRate) / float64(WindowSize)
}

// FrameCount returns the number of analysis frames a buffer of n
// samples produces, or 0 if the buffer is shorter than one window.
func FrameCount(n int) int {
	if n < WindowSize {
		return 0
	}
	return (n-WindowSize)/HopSize + 1
}

// computeSTFT slices samples into overlapping frames, windows each one
// and transforms it to a magnitude spectrum. Frames are independent, so
// they are fanned out to a bounded worker pool; each worker owns its
// own FFT plan and scratch buffer and writes only to its own frame
// rows, so results land indexed by frame number regardless of
// completion order.
func computeSTFT(samples []float64, sampleRate int, hann []float64, progress *atomic.Uint64) (*Grid, error) {
	if len(samples) < WindowSize {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d",
			ErrInsufficientSamples, WindowSize, len(samples))
	}
	if !bitint.IsPowerOfTwo(WindowSize) {
		return nil, fmt.Errorf("window size %d must be a power of 2", WindowSize)
	}

	numFrames := FrameCount(len(samples))

	mag := make([][]float64, numFrames)
	for i := range mag {
		mag[i] = make([]float64, FreqBins)
	}

	jobs := make(chan int, numFrames)
	var wg sync.WaitGroup

	for i := 0; i < workerCount(numFrames); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// One transform plan and scratch buffer per worker,
			// reused across all frames the worker picks up.
			plan := fourier.NewFFT(WindowSize)
			frame := make([]float64, WindowSize)
			coeffs := make([]complex128, WindowSize/2+1)

			for idx := range jobs {
				start := idx * HopSize
				copy(frame, samples[start:start+WindowSize])
				for i := range frame {
					frame[i] *= hann[i]
				}

				plan.Coefficients(coeffs, frame)
				for k := 0; k < FreqBins; k++ {
					mag[idx][k] = cmplx.Abs(coeffs[k])
				}

				if progress != nil {
					progress.Add(1)
				}
			}
		}()
	}

	for idx := 0; idx < numFrames; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return &Grid{
		Mag:        mag,
		Frames:     numFrames,
		Bins:       FreqBins,
		SampleRate: sampleRate,
	}, nil
}

// workerCount scales the pool size to the workload so short clips do
// not pay full fan-out cost.
func workerCount(units int) int {
	numCPU := runtime.NumCPU()

	if units < 64 {
		return max(1, min(numCPU/2, units))
	}
	if units < 1024 {
		return min(numCPU, 8)
	}
	return numCPU
}
