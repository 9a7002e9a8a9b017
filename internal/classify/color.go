package classify

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Unknown is the color name for samples no palette range contains.
const Unknown = "Unknown"

// Palette color names, in matching order.
const (
	Yellow     = "Yellow"
	Red        = "Red"
	Blue       = "Blue"
	LightBlue  = "Light Blue"
	DarkBlue   = "Dark Blue"
	Green      = "Green"
	LightGreen = "Light Green"
	DarkGreen  = "Dark Green"
	Orange     = "Orange"
	Purple     = "Purple"
	Pink       = "Pink"
	Brown      = "Brown"
	Black      = "Black"
)

// Sample is a color in B-G-R channel order. Each channel is in [0, 255];
// fractional values come from averaging many pixels.
type Sample struct {
	B float64 `json:"b"` // Blue channel (0-255)
	G float64 `json:"g"` // Green channel (0-255)
	R float64 `json:"r"` // Red channel (0-255)
}

// HSL is a color in hue/saturation/lightness form.
type HSL struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// Range is a named box in B-G-R space. Both bounds are inclusive.
type Range struct {
	Name string `json:"name"`
	Min  Sample `json:"min"`
	Max  Sample `json:"max"`
}

// Contains reports whether every channel of s lies within r's bounds.
func (r Range) Contains(s Sample) bool {
	return s.B >= r.Min.B && s.B <= r.Max.B &&
		s.G >= r.Min.G && s.G <= r.Max.G &&
		s.R >= r.Min.R && s.R <= r.Max.R
}

// Midpoint returns the sample halfway between r's bounds on every channel.
func (r Range) Midpoint() Sample {
	return Sample{
		B: (r.Min.B + r.Max.B) / 2,
		G: (r.Min.G + r.Max.G) / 2,
		R: (r.Min.R + r.Max.R) / 2,
	}
}

// palette is consulted in order; see ClassifyColor.
var palette = [...]Range{
	{Name: Yellow, Min: Sample{B: 20, G: 100, R: 100}, Max: Sample{B: 40, G: 255, R: 255}},
	{Name: Red, Min: Sample{B: 0, G: 0, R: 100}, Max: Sample{B: 40, G: 40, R: 255}},
	{Name: Blue, Min: Sample{B: 100, G: 0, R: 0}, Max: Sample{B: 255, G: 40, R: 40}},
	{Name: LightBlue, Min: Sample{B: 100, G: 100, R: 0}, Max: Sample{B: 255, G: 255, R: 40}},
	{Name: DarkBlue, Min: Sample{B: 0, G: 0, R: 80}, Max: Sample{B: 100, G: 100, R: 255}},
	{Name: Green, Min: Sample{B: 0, G: 100, R: 0}, Max: Sample{B: 40, G: 255, R: 40}},
	{Name: LightGreen, Min: Sample{B: 0, G: 150, R: 0}, Max: Sample{B: 40, G: 255, R: 40}},
	{Name: DarkGreen, Min: Sample{B: 0, G: 50, R: 0}, Max: Sample{B: 60, G: 150, R: 60}},
	{Name: Orange, Min: Sample{B: 0, G: 70, R: 150}, Max: Sample{B: 40, G: 190, R: 255}},
	{Name: Purple, Min: Sample{B: 80, G: 0, R: 80}, Max: Sample{B: 255, G: 80, R: 255}},
	{Name: Pink, Min: Sample{B: 150, G: 0, R: 100}, Max: Sample{B: 255, G: 40, R: 255}},
	{Name: Brown, Min: Sample{B: 0, G: 50, R: 50}, Max: Sample{B: 40, G: 150, R: 150}},
	{Name: Black, Min: Sample{B: 0, G: 0, R: 0}, Max: Sample{B: 40, G: 40, R: 40}},
}

// Palette returns a copy of the ordered palette.
func Palette() []Range {
	out := make([]Range, len(palette))
	copy(out, palette[:])
	return out
}

// Match returns the first palette range containing s.
func Match(s Sample) (Range, bool) {
	for _, r := range palette {
		if r.Contains(s) {
			return r, true
		}
	}
	return Range{}, false
}

// ClassifyColor returns the name of the first palette range containing s, or
// Unknown. Several ranges overlap, so a sample inside "Light Green" is
// reported as "Green", which comes first.
func ClassifyColor(s Sample) string {
	if r, ok := Match(s); ok {
		return r.Name
	}
	return Unknown
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional) into a sample.
func ParseHex(s string) (Sample, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Sample{B: float64(b), G: float64(g), R: float64(r)}, nil
}

func (s Sample) toColorful() colorful.Color {
	return colorful.Color{R: s.R / 255, G: s.G / 255, B: s.B / 255}.Clamped()
}

// Hex formats s as "#RRGGBB", rounding each channel to the nearest integer.
func (s Sample) Hex() string {
	return strings.ToUpper(s.toColorful().Hex())
}

// HSL converts s to hue/saturation/lightness.
func (s Sample) HSL() HSL {
	h, sat, l := s.toColorful().Hsl()
	return HSL{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(sat * 100)),
		L: int(math.Round(l * 100)),
	}
}

// String formats s as "(B,G,R)" with one decimal place.
func (s Sample) String() string {
	return fmt.Sprintf("(%.1f,%.1f,%.1f)", s.B, s.G, s.R)
}
