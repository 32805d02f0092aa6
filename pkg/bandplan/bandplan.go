// Package bandplan loads frequency allocation tables (band plans) used to
// annotate the spectrum display.
package bandplan

import (
	"fmt"
	"image/color"

	"github.com/herlein/panscan/pkg/palette"
	"github.com/spf13/cast"
)

// DefaultColor is used for bands without a valid color
var DefaultColor = color.RGBA{0x1f, 0x1f, 0x1f, 0xff}

// Band is one entry of a frequency allocation table
type Band struct {
	Min       int64
	Max       int64
	Primary   string
	Secondary string
	Footnotes string
	Color     color.RGBA
}

// Contains reports whether f falls inside the band
func (b Band) Contains(f int64) bool {
	return f >= b.Min && f <= b.Max
}

// Table is a named, ordered list of bands
type Table struct {
	Name  string
	Bands []Band
}

// DecodeBand decodes a band from a generic object as produced by a YAML or
// JSON decoder. Missing numbers read as 0 and missing strings as empty; a
// missing or malformed color falls back to DefaultColor. A field of the
// wrong type fails the whole band.
func DecodeBand(entry interface{}) (Band, error) {
	obj, err := cast.ToStringMapE(entry)
	if err != nil {
		return Band{}, ErrBadEntry
	}

	var b Band
	if b.Min, err = intField(obj, "min"); err != nil {
		return Band{}, err
	}
	if b.Max, err = intField(obj, "max"); err != nil {
		return Band{}, err
	}
	if b.Primary, err = stringField(obj, "primary"); err != nil {
		return Band{}, err
	}
	if b.Secondary, err = stringField(obj, "secondary"); err != nil {
		return Band{}, err
	}
	if b.Footnotes, err = stringField(obj, "footnotes"); err != nil {
		return Band{}, err
	}

	b.Color = DefaultColor
	if s, ok := obj["color"].(string); ok {
		if c, err := palette.ParseHex(s); err == nil {
			b.Color = c
		}
	}

	return b, nil
}

func intField(obj map[string]interface{}, name string) (int64, error) {
	v, ok := obj[name]
	if !ok || v == nil {
		return 0, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBadField, name, err)
	}
	return int64(f), nil
}

func stringField(obj map[string]interface{}, name string) (string, error) {
	v, ok := obj[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: want text, got %T", ErrBadField, name, v)
	}
	return s, nil
}

// DecodeTable builds a table from generic band objects. Bands that fail to
// decode are left out and reported; they never abort the table.
func DecodeTable(name string, entries []interface{}) (*Table, []error) {
	t := &Table{Name: name, Bands: make([]Band, 0, len(entries))}
	var skipped []error

	for i, entry := range entries {
		b, err := DecodeBand(entry)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: band %d: %w", name, i, err))
			continue
		}
		t.Bands = append(t.Bands, b)
	}

	return t, skipped
}

// BandsAt returns the bands of the table covering f, in table order
func (t *Table) BandsAt(f int64) []Band {
	var out []Band
	for _, b := range t.Bands {
		if b.Contains(f) {
			out = append(out, b)
		}
	}
	return out
}
