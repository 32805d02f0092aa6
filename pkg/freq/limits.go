package freq

import "math"

// SafetyBound is the highest frequency (Hz) ever handed to the display.
// Device limits beyond it are clamped so downstream unsigned arithmetic
// cannot overflow.
const SafetyBound int64 = 2000000000

// Limits is a tunable frequency interval, Min <= Max
type Limits struct {
	Min int64
	Max int64
}

// Range is a requested scan range, not necessarily ordered
type Range struct {
	Start int64
	End   int64
}

// ScanLimits computes the scan limits of a device once the LNB offset is
// removed, clamping both edges independently into [0, SafetyBound].
func ScanLimits(devMin, devMax, lnb float64) Limits {
	lo := clampSafe(devMin - lnb)
	hi := clampSafe(devMax - lnb)
	if lo > hi {
		lo, hi = hi, lo
	}
	return Limits{Min: lo, Max: hi}
}

func clampSafe(f float64) int64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > float64(SafetyBound) {
		return SafetyBound
	}
	return int64(f)
}

// Width returns the width of the interval in Hz
func (l Limits) Width() int64 {
	return l.Max - l.Min
}

// Empty reports whether the interval is degenerate (narrower than 1 Hz)
func (l Limits) Empty() bool {
	return l.Width() < 1
}

// Clamp forces f into the interval
func (l Limits) Clamp(f int64) int64 {
	return clamp(f, l.Min, l.Max)
}

// Contains reports whether f lies inside the interval
func (l Limits) Contains(f int64) bool {
	return f >= l.Min && f <= l.Max
}

// Ordered returns the range with Start <= End
func (r Range) Ordered() Range {
	if r.Start > r.End {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Width returns the absolute width of the range
func (r Range) Width() int64 {
	o := r.Ordered()
	return o.End - o.Start
}

// Center returns the midpoint of the range
func (r Range) Center() int64 {
	return (r.Start + r.End) / 2
}

// ResolveRange fits a requested scan range into the limits. Each edge is
// clamped first; a degenerate result or the full range flag snaps the
// range to the whole interval. The result is always in ascending order.
func ResolveRange(l Limits, req Range, fullRange bool) Range {
	r := Range{Start: l.Clamp(req.Start), End: l.Clamp(req.End)}
	if fullRange || r.Width() < 1 {
		r = Range{Start: l.Min, End: l.Max}
	}
	return r.Ordered()
}
