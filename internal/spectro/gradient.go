// SPDX-License-Identifier: MIT
package spectro

import (
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// LUTSize is the resolution of the color lookup table. Every normalized
// value in [0,1] maps to exactly one of these entries.
const LUTSize = 1024

// ColorStop anchors a color at a position along the gradient.
// Positions are expected in [0,1]; out-of-range lookups clamp to the
// nearest endpoint stop.
type ColorStop struct {
	Position float64
	Color    string // "#RRGGBB"
}

// LUT is a precomputed gradient: a fixed table mapping a normalized
// scalar to an RGB color. Built once per render pass, then shared
// read-only across all pixel computations.
type LUT []color.RGBA

// Built-in palettes, selectable by name. Audacity is the default and
// mirrors the classic black-blue-red-white spectrogram ramp.
var palettes = map[string][]ColorStop{
	"audacity": {
		{Position: 0.0, Color: "#000000"},
		{Position: 0.4, Color: "#0000FF"},
		{Position: 0.7, Color: "#FF0000"},
		{Position: 1.0, Color: "#FFFFFF"},
	},
	"magma": {
		{Position: 0.0, Color: "#000004"},
		{Position: 0.25, Color: "#51127C"},
		{Position: 0.5, Color: "#B63679"},
		{Position: 0.75, Color: "#FB8861"},
		{Position: 1.0, Color: "#FCFDBF"},
	},
	"viridis": {
		{Position: 0.0, Color: "#440154"},
		{Position: 0.25, Color: "#3B528B"},
		{Position: 0.5, Color: "#21918C"},
		{Position: 0.75, Color: "#5EC962"},
		{Position: 1.0, Color: "#FDE725"},
	},
	"inferno": {
		{Position: 0.0, Color: "#000004"},
		{Position: 0.25, Color: "#57106E"},
		{Position: 0.5, Color: "#BC3754"},
		{Position: 0.75, Color: "#F98E09"},
		{Position: 1.0, Color: "#FCFFA4"},
	},
	"grayscale": {
		{Position: 0.0, Color: "#000000"},
		{Position: 1.0, Color: "#FFFFFF"},
	},
}

// DefaultPalette is the stop set used when no palette is configured.
const DefaultPalette = "audacity"

// PaletteNames returns the built-in palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette returns the stop set for a built-in palette name. Unknown
// names fall back to the default palette.
func Palette(name string) []ColorStop {
	if stops, ok := palettes[strings.ToLower(name)]; ok {
		return stops
	}
	return palettes[DefaultPalette]
}

// BuildLUT interpolates a stop set into a fixed-size lookup table.
// Stops are sorted by position with a stable sort, so on ties the
// first-seen stop wins. An empty stop set substitutes the built-in
// default palette rather than failing.
func BuildLUT(stops []ColorStop, size int) LUT {
	if len(stops) == 0 {
		stops = palettes[DefaultPalette]
	}

	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	lut := make(LUT, size)
	for i := 0; i < size; i++ {
		pos := float64(i) / float64(size-1)
		s0, s1 := bracketStops(sorted, pos)

		t := 0.0
		if span := s1.Position - s0.Position; span > 1e-12 {
			t = (pos - s0.Position) / span
		}

		r0, g0, b0 := hexToRGB(s0.Color)
		r1, g1, b1 := hexToRGB(s1.Color)

		lut[i] = color.RGBA{
			R: lerpChannel(r0, r1, t),
			G: lerpChannel(g0, g1, t),
			B: lerpChannel(b0, b1, t),
			A: 255,
		}
	}
	return lut
}

// bracketStops finds the stop pair surrounding pos in a sorted stop
// set via linear scan, first match wins. Positions outside the stop
// range clamp to the nearest endpoint as a degenerate segment.
func bracketStops(sorted []ColorStop, pos float64) (ColorStop, ColorStop) {
	if pos <= sorted[0].Position {
		return sorted[0], sorted[0]
	}
	last := sorted[len(sorted)-1]
	if pos >= last.Position {
		return last, last
	}
	for i := 0; i < len(sorted)-1; i++ {
		if pos >= sorted[i].Position && pos <= sorted[i+1].Position {
			return sorted[i], sorted[i+1]
		}
	}
	return last, last
}

// lerpChannel interpolates one 8-bit channel, truncating rather than
// rounding so endpoint stops reproduce exactly.
func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// hexToRGB parses "#RRGGBB". Anything that is not exactly six hex
// digits after stripping the hash resolves to black; a bad palette
// entry should never abort a render.
func hexToRGB(hex string) (r, g, b uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	r = parseHexByte(hex[0:2])
	g = parseHexByte(hex[2:4])
	b = parseHexByte(hex[4:6])
	return r, g, b
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}
