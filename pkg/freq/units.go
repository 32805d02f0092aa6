package freq

import "fmt"

// Units returns the display granularity for a frequency: 1 Hz below 1 kHz,
// then kHz, MHz and GHz.
func Units(freq int64) int64 {
	if freq < 0 {
		freq = -freq
	}

	switch {
	case freq < 1000:
		return 1
	case freq < 1000000:
		return 1000
	case freq < 1000000000:
		return 1000000
	default:
		return 1000000000
	}
}

// UnitSuffix returns the unit name for a value returned by Units
func UnitSuffix(units int64) string {
	switch units {
	case 1000:
		return "kHz"
	case 1000000:
		return "MHz"
	case 1000000000:
		return "GHz"
	default:
		return "Hz"
	}
}

// Format renders a frequency scaled to its display unit
func Format(freq int64) string {
	units := Units(freq)
	if units == 1 {
		return fmt.Sprintf("%d Hz", freq)
	}
	return fmt.Sprintf("%.6g %s", float64(freq)/float64(units), UnitSuffix(units))
}
