// SPDX-License-Identifier: MIT
package spectro

import (
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"
)

// ErrInvalidDimensions is returned when a zero-sized image is
// requested.
var ErrInvalidDimensions = fmt.Errorf("invalid image dimensions")

// renderImage maps the magnitude grid onto a width x height pixel grid
// and colors it through the LUT. Row 0 is the highest visualized
// frequency. Columns are independent, so they are fanned out to a
// worker pool; each column writes only its own x slice of the image,
// which keeps the output identical to a sequential render no matter
// the completion order.
func renderImage(g *Grid, rng dbRange, lut LUT, width, height int, logScale bool, progress *atomic.Uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	jobs := make(chan int, width)
	var wg sync.WaitGroup

	for i := 0; i < workerCount(width); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := range jobs {
				renderColumn(img, g, rng, lut, x, width, height, logScale)
				if progress != nil {
					progress.Add(1)
				}
			}
		}()
	}

	for x := 0; x < width; x++ {
		jobs <- x
	}
	close(jobs)
	wg.Wait()

	return img
}

// renderColumn fills one pixel column. Each pixel bilinearly
// interpolates the four neighboring grid magnitudes: along time first
// at both bracketing bins, then along frequency.
func renderColumn(img *image.RGBA, g *Grid, rng dbRange, lut LUT, x, width, height int, logScale bool) {
	// Continuous time position of this column in the frame grid.
	t := float64(x) / float64(width) * float64(g.Frames)
	t0 := min(max(int(math.Floor(t)), 0), g.Frames-1)
	t1 := min(t0+1, g.Frames-1)
	tFrac := t - float64(t0)

	nyquist := g.Nyquist()

	for y := 0; y < height; y++ {
		// Row 0 is the top of the image, i.e. the highest frequency.
		yInv := height - 1 - y
		yRatio := float64(yInv) / float64(height)

		var binPos float64
		if logScale {
			freq := MinLogFreq * math.Pow(nyquist/MinLogFreq, yRatio)
			binPos = freq / nyquist * float64(g.Bins)
		} else {
			binPos = yRatio * float64(g.Bins)
		}

		f0 := min(max(int(math.Floor(binPos)), 0), g.Bins-1)
		f1 := min(f0+1, g.Bins-1)
		fFrac := binPos - float64(f0)

		low := lerp(g.Mag[t0][f0], g.Mag[t1][f0], tFrac)
		high := lerp(g.Mag[t0][f1], g.Mag[t1][f1], tFrac)
		mag := lerp(low, high, fFrac)

		v := rng.normalizeMag(mag, g.Bins)
		idx := int(v * float64(len(lut)-1))

		img.SetRGBA(x, y, lut[idx])
	}
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
