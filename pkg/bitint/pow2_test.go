package bitint

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{512, 512},
		{513, 1024},
		{2047, 2048},
		{2048, 2048},
		{2049, 4096},
	}

	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want bool
	}{
		{-2, false},
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{2048, true},
		{2050, false},
	}

	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
