// Package palette provides the waterfall color palettes. The palette table
// is built once at start-up and handed to consumers by reference; nothing in
// it is initialized lazily.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// GradientSize is the number of entries in a palette gradient
const GradientSize = 256

// Gradient maps a normalized level (0-255) to a color
type Gradient [GradientSize]color.RGBA

// Palette is a named waterfall gradient
type Palette struct {
	Name     string
	Gradient Gradient
}

// Stop is a color anchored at a position in [0, 1]
type Stop struct {
	Position float64
	Color    color.RGBA
}

// Names of the built-in palettes
const (
	DefaultName = "Default"
	GqrxName    = "Gqrx"
)

// Color returns the gradient color for a level in [0, 1]
func (p *Palette) Color(level float64) color.RGBA {
	idx := int(level * (GradientSize - 1))
	if idx < 0 {
		idx = 0
	}
	if idx >= GradientSize {
		idx = GradientSize - 1
	}
	return p.Gradient[idx]
}

// Gqrx returns the classic gqrx waterfall palette: black, blue, light blue,
// yellow, red and finally white.
func Gqrx() Palette {
	var g Gradient
	for i := 0; i < GradientSize; i++ {
		var r, gr, b int
		switch {
		case i < 20:
			// black background
		case i < 70:
			b = 140 * (i - 20) / 50
		case i < 100:
			r = 60 * (i - 70) / 30
			gr = 125 * (i - 70) / 30
			b = 115*(i-70)/30 + 140
		case i < 150:
			r = 195*(i-100)/50 + 60
			gr = 130*(i-100)/50 + 125
			b = 255 - (255 * (i - 100) / 50)
		case i < 250:
			r = 255
			gr = 255 - 255*(i-150)/100
		default:
			r = 255
			gr = 255 * (i - 250) / 5
			b = 255 * (i - 250) / 5
		}
		g[i] = color.RGBA{R: uint8(r), G: uint8(gr), B: uint8(b), A: 0xff}
	}
	return Palette{Name: GqrxName, Gradient: g}
}

var defaultStops = []Stop{
	{0.0, color.RGBA{0x00, 0x00, 0x00, 0xff}},
	{0.2, color.RGBA{0x00, 0x00, 0x80, 0xff}},
	{0.4, color.RGBA{0x00, 0xa0, 0xff, 0xff}},
	{0.6, color.RGBA{0x00, 0xff, 0x80, 0xff}},
	{0.8, color.RGBA{0xff, 0xff, 0x00, 0xff}},
	{1.0, color.RGBA{0xff, 0x00, 0x00, 0xff}},
}

// Default returns the built-in default palette
func Default() Palette {
	p, _ := FromStops(DefaultName, defaultStops)
	return p
}

// FromStops builds a palette by linear interpolation between color stops
func FromStops(name string, stops []Stop) (Palette, error) {
	if name == "" {
		return Palette{}, ErrNoName
	}
	if len(stops) < 2 {
		return Palette{}, fmt.Errorf("%w: %s has %d", ErrTooFewStops, name, len(stops))
	}

	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	for _, s := range sorted {
		if s.Position < 0 || s.Position > 1 {
			return Palette{}, fmt.Errorf("%w: %s stop at %g", ErrStopPosition, name, s.Position)
		}
	}

	p := Palette{Name: name}
	seg := 0
	for i := 0; i < GradientSize; i++ {
		pos := float64(i) / (GradientSize - 1)
		for seg < len(sorted)-2 && pos > sorted[seg+1].Position {
			seg++
		}
		a, b := sorted[seg], sorted[seg+1]

		var t float64
		switch {
		case pos <= a.Position:
			t = 0
		case pos >= b.Position:
			t = 1
		default:
			t = (pos - a.Position) / (b.Position - a.Position)
		}
		p.Gradient[i] = lerp(a.Color, b.Color, t)
	}

	return p, nil
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

// ParseHex parses a "#rrggbb" color
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats a color as "#rrggbb"
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
