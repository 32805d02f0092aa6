package freq

// Tuned returns the absolute tuned frequency for a displayed center
// frequency once the LNB down-conversion offset is removed.
func Tuned(center, lnb int64) int64 {
	return center - lnb
}

// LOAbsolute returns the absolute demodulation frequency for an LO offset
// expressed relative to the center frequency.
func LOAbsolute(center, lo int64) int64 {
	return center + lo
}

// LORelative is the inverse of LOAbsolute.
func LORelative(center, abs int64) int64 {
	return abs - center
}

// FilterEdges returns the low and high cut frequencies of a demodulation
// filter of the given bandwidth, relative to the LO.
func FilterEdges(bandwidth uint32, skw Skewness) (low, high int64) {
	half := int64(bandwidth) / 2
	if skw.LowerSideBand() {
		low = -half
	}
	if skw.UpperSideBand() {
		high = half
	}
	return low, high
}

// BandwidthFromEdges recovers the filter bandwidth from a pair of edges
// dragged on the display. Single side band filters only span half of the
// bandwidth, hence the factor of two.
func BandwidthFromEdges(low, high int64, skw Skewness) uint32 {
	width := high - low
	if width < 0 {
		width = -width
	}
	if skw != Symmetric {
		width *= 2
	}
	return uint32(width)
}

// Envelope is the range the display allows each filter edge to move in
type Envelope struct {
	LowMin, LowMax   int64
	HighMin, HighMax int64
	Symmetric        bool
}

// DemodEnvelope returns the ranging envelope for the filter edges at the
// given sample rate. A disabled side band pins its edge to the LO.
func DemodEnvelope(rate uint64, skw Skewness) Envelope {
	half := int64(rate / 2)
	env := Envelope{Symmetric: skw == Symmetric}
	if skw.LowerSideBand() {
		env.LowMin = -half
	}
	if skw.UpperSideBand() {
		env.HighMax = half
	}
	return env
}

// Clamp forces a pair of edges inside the envelope
func (e Envelope) Clamp(low, high int64) (int64, int64) {
	return clamp(low, e.LowMin, e.LowMax), clamp(high, e.HighMin, e.HighMax)
}

// Contains reports whether both edges already lie inside the envelope
func (e Envelope) Contains(low, high int64) bool {
	cl, ch := e.Clamp(low, high)
	return cl == low && ch == high
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
