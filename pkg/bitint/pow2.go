// Package bitint provides the power-of-2 helpers used for FFT and
// buffer sizing. All operations are O(1) and allocation free.
package bitint

import "math/bits"

// NextPowerOfTwo returns the next power of 2 >= size. Exact powers of
// 2 are returned unchanged; the size-1 subtraction is what prevents
// them from doubling. Non-positive sizes return 1.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len64(uint64(size-1))
}

// IsPowerOfTwo checks if n is a power of 2. Powers of 2 have exactly
// one bit set, so n & (n-1) clears to zero only for them.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
