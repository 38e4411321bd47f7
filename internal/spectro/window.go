// SPDX-License-Identifier: MIT
package spectro

import (
	"gonum.org/v1/gonum/dsp/window"
)

// Analysis parameters. The window covers 2048 samples with 75% overlap,
// which keeps the hop at 512 samples and yields 1024 usable frequency
// bins below Nyquist.
const (
	WindowSize = 2048
	HopSize    = WindowSize / 4
	FreqBins   = WindowSize / 2
)

// MinLogFreq is the lowest frequency (Hz) shown on the logarithmic
// frequency axis.
const MinLogFreq = 20.0

// hannWindow returns the Hann coefficients for one analysis frame.
// Computed once per pipeline run and shared read-only by all workers.
func hannWindow(size int) []float64 {
	coeffs := make([]float64, size)
	for i := range coeffs {
		coeffs[i] = 1
	}
	return window.Hann(coeffs)
}
