// SPDX-License-Identifier: MIT
package spectro

import (
	"image/color"
	"reflect"
	"testing"
)

func TestLUTEndpointsExact(t *testing.T) {
	t.Parallel()

	stops := []ColorStop{
		{Position: 0.0, Color: "#112233"},
		{Position: 0.5, Color: "#445566"},
		{Position: 1.0, Color: "#AABBCC"},
	}
	lut := BuildLUT(stops, LUTSize)

	if len(lut) != LUTSize {
		t.Fatalf("LUT size %d, want %d", len(lut), LUTSize)
	}
	if want := (color.RGBA{0x11, 0x22, 0x33, 255}); lut[0] != want {
		t.Errorf("LUT[0] = %v, want first stop %v", lut[0], want)
	}
	if want := (color.RGBA{0xAA, 0xBB, 0xCC, 255}); lut[LUTSize-1] != want {
		t.Errorf("LUT[last] = %v, want last stop %v", lut[LUTSize-1], want)
	}
}

func TestLUTEmptyStopsSubstituteDefault(t *testing.T) {
	t.Parallel()

	got := BuildLUT(nil, LUTSize)
	want := BuildLUT(Palette(DefaultPalette), LUTSize)
	if !reflect.DeepEqual(got, want) {
		t.Error("empty stop set should build the default palette LUT")
	}
}

func TestLUTMalformedHexIsBlack(t *testing.T) {
	t.Parallel()

	cases := []string{"#GGHHII", "12345", "#12345", "", "#1234567", "red"}
	for _, bad := range cases {
		lut := BuildLUT([]ColorStop{{Position: 0, Color: bad}, {Position: 1, Color: bad}}, 16)
		for i, c := range lut {
			if c != (color.RGBA{0, 0, 0, 255}) {
				t.Errorf("color %q: LUT[%d] = %v, want black", bad, i, c)
				break
			}
		}
	}
}

func TestLUTSingleStopUniform(t *testing.T) {
	t.Parallel()

	lut := BuildLUT([]ColorStop{{Position: 0.3, Color: "#805020"}}, 64)
	want := color.RGBA{0x80, 0x50, 0x20, 255}
	for i, c := range lut {
		if c != want {
			t.Fatalf("LUT[%d] = %v, want uniform %v", i, c, want)
		}
	}
}

// Positions outside the stop range clamp to the nearest endpoint stop.
func TestLUTOutOfRangeClamps(t *testing.T) {
	t.Parallel()

	lut := BuildLUT([]ColorStop{
		{Position: 0.25, Color: "#FF0000"},
		{Position: 0.75, Color: "#0000FF"},
	}, 256)

	red := color.RGBA{0xFF, 0, 0, 255}
	blue := color.RGBA{0, 0, 0xFF, 255}
	if lut[0] != red {
		t.Errorf("LUT[0] = %v, want clamp to first stop %v", lut[0], red)
	}
	if lut[255] != blue {
		t.Errorf("LUT[last] = %v, want clamp to last stop %v", lut[255], blue)
	}
}

func TestLUTUnsortedStopsSortedBeforeUse(t *testing.T) {
	t.Parallel()

	sorted := BuildLUT([]ColorStop{
		{Position: 0.0, Color: "#000000"},
		{Position: 0.5, Color: "#808080"},
		{Position: 1.0, Color: "#FFFFFF"},
	}, 128)
	shuffled := BuildLUT([]ColorStop{
		{Position: 1.0, Color: "#FFFFFF"},
		{Position: 0.0, Color: "#000000"},
		{Position: 0.5, Color: "#808080"},
	}, 128)

	if !reflect.DeepEqual(sorted, shuffled) {
		t.Error("stop order must not affect the LUT")
	}
}

func TestPaletteUnknownNameFallsBack(t *testing.T) {
	t.Parallel()

	if !reflect.DeepEqual(Palette("no-such-palette"), Palette(DefaultPalette)) {
		t.Error("unknown palette name should fall back to the default")
	}
	if len(PaletteNames()) == 0 {
		t.Error("expected built-in palettes")
	}
}
