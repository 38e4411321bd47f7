// SPDX-License-Identifier: MIT
//
// Package spectro turns a mono sample buffer into a spectrogram image:
// a parallel STFT over overlapping Hann-windowed frames, an adaptive
// dynamic-range normalization anchored to the recording's own peak,
// a bilinear time/frequency remapping onto the requested pixel grid and
// a gradient-LUT colorization, plus an optional spectral-rolloff curve.
//
// The whole pipeline is a deterministic pure function of its inputs.
// Every parallel unit reads only immutable shared state and writes to
// a slot identified by its own index, so the output is byte-identical
// to a sequential run at any degree of parallelism.
package spectro

import (
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Options configures one pipeline run.
type Options struct {
	Width    int  // Output image width in pixels.
	Height   int  // Output image height in pixels.
	LogScale bool // Logarithmic frequency axis instead of linear.
	Rolloff  bool // Compute the per-column spectral rolloff series.

	// Stops is the gradient palette. Empty substitutes the built-in
	// default palette.
	Stops []ColorStop

	// Progress, when non-nil, is bumped once per completed work unit
	// (frame transformed, rolloff frame measured, column rendered).
	// Purely advisory; callers poll it at their own cadence.
	Progress *atomic.Uint64
}

// Result is the output of one pipeline run.
type Result struct {
	// Image is the assembled spectrogram. Row 0 is the highest
	// visualized frequency.
	Image *image.RGBA

	// Rolloff holds one frequency in Hz per image column, or nil when
	// the stage is disabled. 0Hz marks a near-silent column.
	Rolloff []float64

	Frames  int     // Number of analysis frames.
	Nyquist float64 // Highest representable frequency in Hz.
	MaxDB   float64 // Adaptive ceiling of the rendered dB window.
	MinDB   float64 // Floor of the rendered dB window.
}

// ProgressUnits reports the total number of progress increments a run
// over sampleCount samples will perform with the given options, for
// callers that want to turn the advisory counter into a percentage.
func ProgressUnits(sampleCount int, opts Options) uint64 {
	frames := uint64(FrameCount(sampleCount))
	units := frames + uint64(opts.Width)
	if opts.Rolloff {
		units += frames
	}
	return units
}

// Generate runs the full analysis-and-render pipeline over a mono
// sample buffer. The buffer is borrowed for the duration of the call
// and never mutated.
//
// It fails fast with ErrInvalidDimensions or ErrInsufficientSamples
// before any computation; every other edge case resolves to a
// documented sentinel value instead of an error.
func Generate(samples []float64, sampleRate int, opts Options) (*Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, opts.Width, opts.Height)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	hann := hannWindow(WindowSize)

	grid, err := computeSTFT(samples, sampleRate, hann, opts.Progress)
	if err != nil {
		return nil, err
	}

	// Hard stage barrier: everything past this point needs the whole
	// grid. The range reduction and the rolloff scan only read it, so
	// they run side by side.
	var (
		rng      dbRange
		perFrame []float64
		group    errgroup.Group
	)
	group.Go(func() error {
		rng = computeRange(grid)
		return nil
	})
	if opts.Rolloff {
		group.Go(func() error {
			perFrame = computeRolloff(grid, opts.Progress)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	lut := BuildLUT(opts.Stops, LUTSize)
	img := renderImage(grid, rng, lut, opts.Width, opts.Height, opts.LogScale, opts.Progress)

	res := &Result{
		Image:   img,
		Frames:  grid.Frames,
		Nyquist: grid.Nyquist(),
		MaxDB:   rng.maxDB,
		MinDB:   rng.minDB,
	}
	if opts.Rolloff {
		res.Rolloff = resampleColumns(perFrame, opts.Width)
	}
	return res, nil
}
