// Package specan provides the spectral frames fed to the panoramic scanner,
// frame analysis helpers and a synthetic frame source.
package specan

import "time"

// Frame represents a single power spectrum over [FreqStart, FreqEnd]
type Frame struct {
	Timestamp time.Time
	FreqStart uint64    // Hz
	FreqEnd   uint64    // Hz
	Samples   []float32 // dB, one per bin, ascending frequency
}

// Width returns the frame bandwidth in Hz
func (f *Frame) Width() uint64 {
	if f.FreqEnd < f.FreqStart {
		return 0
	}
	return f.FreqEnd - f.FreqStart
}

// Center returns the frame center frequency
func (f *Frame) Center() uint64 {
	return f.FreqStart + f.Width()/2
}

// SameBounds reports whether two frames cover the same interval
func (f *Frame) SameBounds(o *Frame) bool {
	return o != nil && f.FreqStart == o.FreqStart && f.FreqEnd == o.FreqEnd
}

// Clone returns a deep copy of the frame
func (f *Frame) Clone() *Frame {
	c := *f
	c.Samples = make([]float32, len(f.Samples))
	copy(c.Samples, f.Samples)
	return &c
}

// BinFrequency returns the frequency of the start of a bin
func BinFrequency(frame *Frame, bin int) uint64 {
	n := len(frame.Samples)
	if n == 0 {
		return frame.FreqStart
	}
	return frame.FreqStart + frame.Width()*uint64(bin)/uint64(n)
}
