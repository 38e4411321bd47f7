// SPDX-License-Identifier: MIT
//
// Package render composites overlays onto a finished spectrogram:
// the spectral-rolloff curve and the axis tick marks. Text labels and
// font handling are deliberately out of scope.
package render

import (
	"image"
	"image/color"
	"math"
	"time"

	"spekgram/internal/spectro"
)

var (
	rolloffColor = color.RGBA{R: 255, G: 200, B: 50, A: 255}
	tickColor    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

const tickLength = 10

// DrawRolloff draws the per-column rolloff series as a connected
// polyline. The series must hold one frequency per image column; the
// vertical placement uses the same linear/log mapping as the
// spectrogram itself so the line sits on the matching pixels.
func DrawRolloff(img *image.RGBA, series []float64, nyquist float64, logScale bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	prevX, prevY := -1, -1
	for x, freq := range series {
		if x >= w {
			break
		}
		y := freqToY(freq, nyquist, h, logScale)
		if prevX >= 0 {
			drawLine(img, prevX, prevY, x, y, rolloffColor)
		}
		prevX, prevY = x, y
	}
}

// DrawTicks marks the frequency axis on the left edge and the time
// axis along the bottom edge with short gridline stubs.
func DrawTicks(img *image.RGBA, nyquist float64, duration time.Duration, logScale bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if logScale {
		for _, freq := range []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000} {
			if freq > nyquist {
				break
			}
			y := freqToY(freq, nyquist, h, true)
			drawLine(img, 0, y, tickLength, y, tickColor)
		}
	} else {
		for freq := 0.0; freq <= nyquist; freq += 5000 {
			y := freqToY(freq, nyquist, h, false)
			drawLine(img, 0, y, tickLength, y, tickColor)
		}
	}

	secs := duration.Seconds()
	if secs <= 0 {
		return
	}
	step := 10.0
	if secs >= 60 {
		step = 30
	}
	for t := 0.0; t <= secs; t += step {
		x := int(float64(w) * t / secs)
		if x >= w {
			x = w - 1
		}
		drawLine(img, x, h-1, x, h-1-tickLength, tickColor)
	}
}

// freqToY converts a frequency to a row index, clamped into the image.
func freqToY(freq, nyquist float64, height int, logScale bool) int {
	hf := float64(height)

	var y float64
	if logScale {
		if freq < spectro.MinLogFreq {
			y = hf - 1
		} else {
			ratio := math.Log10(freq/spectro.MinLogFreq) / math.Log10(nyquist/spectro.MinLogFreq)
			y = hf - 1 - ratio*hf
		}
	} else {
		y = hf * (1 - freq/nyquist)
	}

	return int(math.Min(math.Max(y, 0), hf-1))
}

// drawLine rasterizes a straight segment with the classic Bresenham
// walk. Endpoints outside the image are skipped pixel by pixel.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	b := img.Bounds()

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if image.Pt(x0, y0).In(b) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
