// Package freq provides the frequency arithmetic shared by the spectrum and
// panoramic controllers: filter edges, demodulation envelopes, LNB
// de-shifting, display unit scaling and device range clamping.
package freq

import (
	"fmt"
	"strings"
)

// Skewness selects which side bands of the demodulation filter are enabled
type Skewness int

const (
	// Symmetric enables both side bands around the LO
	Symmetric Skewness = iota
	// Lower enables only the lower side band
	Lower
	// Upper enables only the upper side band
	Upper
)

// String returns the skewness name
func (s Skewness) String() string {
	switch s {
	case Symmetric:
		return "symmetric"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return fmt.Sprintf("Skewness(%d)", int(s))
	}
}

// ParseSkewness parses a skewness name ("symmetric", "lower"/"lsb", "upper"/"usb")
func ParseSkewness(s string) (Skewness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symmetric", "sym", "":
		return Symmetric, nil
	case "lower", "lsb":
		return Lower, nil
	case "upper", "usb":
		return Upper, nil
	}
	return Symmetric, fmt.Errorf("%w: %q", ErrUnknownSkewness, s)
}

// LowerSideBand reports whether the lower side band is enabled
func (s Skewness) LowerSideBand() bool {
	return s == Symmetric || s == Lower
}

// UpperSideBand reports whether the upper side band is enabled
func (s Skewness) UpperSideBand() bool {
	return s == Symmetric || s == Upper
}
