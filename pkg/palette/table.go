package palette

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is the read-only, ordered set of palettes available to the display
type Table struct {
	palettes []Palette
}

// NewTable builds the palette table: the built-in palettes first, then the
// extra ones in order. A palette whose name is already taken is ignored.
func NewTable(extra ...Palette) *Table {
	t := &Table{}
	for _, p := range append([]Palette{Default(), Gqrx()}, extra...) {
		if t.Index(p.Name) >= 0 {
			continue
		}
		t.palettes = append(t.palettes, p)
	}
	return t
}

// Lookup returns the palette with the given name
func (t *Table) Lookup(name string) (*Palette, bool) {
	if i := t.Index(name); i >= 0 {
		return &t.palettes[i], true
	}
	return nil, false
}

// Index returns the position of the named palette, or -1
func (t *Table) Index(name string) int {
	for i := range t.palettes {
		if t.palettes[i].Name == name {
			return i
		}
	}
	return -1
}

// Names returns the palette names in table order
func (t *Table) Names() []string {
	names := make([]string, len(t.palettes))
	for i, p := range t.palettes {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of palettes
func (t *Table) Len() int {
	return len(t.palettes)
}

// fileFormat is the YAML layout of a user palette file
type fileFormat struct {
	Palettes []struct {
		Name  string `yaml:"name"`
		Stops []struct {
			Position float64 `yaml:"position"`
			Color    string  `yaml:"color"`
		} `yaml:"stops"`
	} `yaml:"palettes"`
}

// LoadFile reads user palettes from a YAML file. Palettes that fail to build
// are skipped and reported in the returned slice; the error is only set
// when the file itself cannot be read or parsed.
func LoadFile(path string) ([]Palette, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	return Decode(data)
}

// Decode parses user palettes from YAML (or JSON) data
func Decode(data []byte) ([]Palette, []error, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, nil, fmt.Errorf("failed to parse palettes: %w", err)
	}

	var palettes []Palette
	var skipped []error
	for _, entry := range ff.Palettes {
		stops := make([]Stop, 0, len(entry.Stops))
		var bad error
		for _, s := range entry.Stops {
			c, err := ParseHex(s.Color)
			if err != nil {
				bad = fmt.Errorf("palette %s: %w", entry.Name, err)
				break
			}
			stops = append(stops, Stop{Position: s.Position, Color: c})
		}
		if bad != nil {
			skipped = append(skipped, bad)
			continue
		}

		p, err := FromStops(entry.Name, stops)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		palettes = append(palettes, p)
	}

	return palettes, skipped, nil
}
