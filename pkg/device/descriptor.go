// Package device describes the SDR receivers the scanner can drive: their
// tunable range, gain stages and USB identity.
package device

import (
	"fmt"
	"time"
)

// GainStage is one adjustable gain element of a receiver
type GainStage struct {
	Name    string  `json:"name"`
	Min     float32 `json:"min"`
	Max     float32 `json:"max"`
	Step    float32 `json:"step"`
	Default float32 `json:"default"`
}

// Clamp forces a gain value into the stage bounds
func (g GainStage) Clamp(v float32) float32 {
	if v < g.Min {
		return g.Min
	}
	if v > g.Max {
		return g.Max
	}
	return v
}

// Descriptor describes a receiver as seen by the scanner
type Descriptor struct {
	Driver    string      `json:"driver"`
	Label     string      `json:"label"`
	Serial    string      `json:"serial,omitempty"`
	Bus       int         `json:"bus"`
	Address   int         `json:"address"`
	MinFreq   float64     `json:"min_freq"`
	MaxFreq   float64     `json:"max_freq"`
	Gains     []GainStage `json:"gains"`
	Available bool        `json:"available"`
}

// Desc returns the display name that identifies the receiver in selection
// lists and in the persisted configuration
func (d Descriptor) Desc() string {
	if d.Serial != "" {
		return fmt.Sprintf("%s (%s)", d.Label, d.Serial)
	}
	return fmt.Sprintf("%s (%d:%d)", d.Label, d.Bus, d.Address)
}

// Gain returns the named gain stage
func (d Descriptor) Gain(name string) (GainStage, bool) {
	for _, g := range d.Gains {
		if g.Name == name {
			return g, true
		}
	}
	return GainStage{}, false
}

// Usable returns the receivers a scan can run on: available ones that
// report a tunable range.
func Usable(devices []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(devices))
	for _, d := range devices {
		if d.MaxFreq > 0 && d.Available {
			out = append(out, d)
		}
	}
	return out
}

// PreferredRtt returns the preferred round trip time of a driver. The
// second value is false for drivers without a preference.
func PreferredRtt(driver string) (time.Duration, bool) {
	switch driver {
	case "rtlsdr":
		return 60 * time.Millisecond, true
	case "airspy":
		return 16 * time.Millisecond, true
	case "hackrf":
		return 10 * time.Millisecond, true
	}
	return 0, false
}
