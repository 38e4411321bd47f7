// SPDX-License-Identifier: MIT
package spectro

import (
	"math"
	"sync"
)

// dbFloorOffset is the fixed dynamic-range window rendered below the
// peak. Everything quieter than peak-100dB maps to the palette floor.
const dbFloorOffset = 100.0

// dbRange is the dynamic-range window derived from the loudest
// magnitude in the grid. Anchoring the ceiling to the recording's own
// peak means files of any absolute loudness render with full visual
// contrast.
type dbRange struct {
	peak  float64 // Global maximum magnitude, 0 for a silent grid.
	maxDB float64 // Ceiling in absolute dB, for reporting.
	minDB float64 // Floor in absolute dB, for reporting.
}

// computeRange reduces the whole magnitude grid to its global peak and
// derives the adaptive dB window from it. The reduction is a max fold,
// associative and commutative, so the grid is partitioned across
// workers and each partial lands in its own slot before the final
// sequential fold.
func computeRange(g *Grid) dbRange {
	workers := workerCount(g.Frames)

	partials := make([]float64, workers)
	chunk := (g.Frames + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, g.Frames)
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(slot, lo, hi int) {
			defer wg.Done()
			peak := 0.0
			for _, row := range g.Mag[lo:hi] {
				for _, m := range row {
					if m > peak {
						peak = m
					}
				}
			}
			partials[slot] = peak
		}(w, lo, hi)
	}
	wg.Wait()

	globalPeak := 0.0
	for _, p := range partials {
		if p > globalPeak {
			globalPeak = p
		}
	}

	// A silent buffer has no peak to anchor to. Fall back to the fixed
	// 0dB ceiling so silence renders at the palette floor instead of
	// pinning the adaptive ceiling onto the noise epsilon.
	maxDB := 0.0
	if globalPeak > 0 {
		maxDB = magToDB(globalPeak, g.Bins)
	}

	return dbRange{
		peak:  globalPeak,
		maxDB: maxDB,
		minDB: maxDB - dbFloorOffset,
	}
}

// magToDB converts a raw magnitude to absolute dB, scaled so that a
// full-scale sine through the Hann window lands near 0dB. The epsilon
// keeps the log finite for empty bins.
func magToDB(mag float64, bins int) float64 {
	return 20 * math.Log10(mag/(float64(bins)/2)+1e-9)
}

// normalizeMag maps a raw magnitude into [0,1] within the dynamic
// window. Working on the peak-relative ratio keeps the mapping exactly
// invariant under any constant input gain, since the gain cancels
// before the epsilon is applied.
func (r dbRange) normalizeMag(mag float64, bins int) float64 {
	var db float64
	if r.peak > 0 {
		db = 20 * math.Log10(mag/r.peak+1e-9)
	} else {
		db = magToDB(mag, bins)
	}
	v := db/dbFloorOffset + 1
	return min(max(v, 0), 1)
}
