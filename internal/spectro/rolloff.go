// SPDX-License-Identifier: MIT
package spectro

import (
	"sync"
	"sync/atomic"
)

// rolloffThreshold is the fraction of a frame's spectral energy the rolloff
// frequency must contain. 85% is the conventional cutoff proxy; lossy
// codecs show up as a hard ceiling in this curve.
const rolloffThreshold = 0.85

// silenceEnergy is the total-energy floor below which a frame counts
// as silent and reports the 0Hz sentinel instead of a rolloff.
const silenceEnergy = 1e-10

// computeRolloff calculates the spectral rolloff frequency of every
// frame in the grid. Frames are independent, so they run on the same
// bounded worker pool shape as the transform itself.
func computeRolloff(g *Grid, progress *atomic.Uint64) []float64 {
	rolloffs := make([]float64, g.Frames)

	jobs := make(chan int, g.Frames)
	var wg sync.WaitGroup

	for i := 0; i < workerCount(g.Frames); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rolloffs[idx] = frameRolloff(g.Mag[idx], g.Nyquist())
				if progress != nil {
					progress.Add(1)
				}
			}
		}()
	}

	for idx := 0; idx < g.Frames; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return rolloffs
}

// frameRolloff scans one magnitude spectrum in increasing-frequency
// order and returns the frequency of the first bin whose cumulative
// energy crosses the threshold. Near-silent frames report 0Hz, a
// documented sentinel rather than an error.
func frameRolloff(spectrum []float64, nyquist float64) float64 {
	total := 0.0
	for _, m := range spectrum {
		total += m * m
	}
	if total < silenceEnergy {
		return 0
	}

	target := rolloffThreshold * total
	cumulative := 0.0
	for i, m := range spectrum {
		cumulative += m * m
		if cumulative >= target {
			return float64(i) / float64(len(spectrum)) * nyquist
		}
	}

	// Unreachable when energy sums to total, kept as the documented
	// exhaustion fallback.
	return nyquist
}

// resampleColumns reduces the per-frame rolloff series to one value per
// output pixel column by nearest-frame lookup. No interpolation across
// frames: the overlay should show the measured ceiling, not a smoothed
// one.
func resampleColumns(perFrame []float64, width int) []float64 {
	cols := make([]float64, width)
	frames := len(perFrame)
	for x := 0; x < width; x++ {
		idx := int(float64(x) / float64(width) * float64(frames))
		idx = min(max(idx, 0), frames-1)
		cols[x] = perFrame[idx]
	}
	return cols
}
