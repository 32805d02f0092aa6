package panoramic

import (
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
)

// Waterfall is the panoramic display surface. Frequencies are in Hz.
type Waterfall interface {
	// CenterFreq is the center frequency the display was tuned to
	CenterFreq() int64
	// FftCenterFreq is the offset of the visible (zoomed) area from CenterFreq
	FftCenterFreq() int64
	// SpanFreq is the visible bandwidth
	SpanFreq() int64
	FilterOffset() int64
	FilterBw() int64

	SetCenterFreq(f int64)
	SetSampleRate(rate int64)
	SetDemodRanges(env freq.Envelope)
	SetHiLowCutFrequencies(low, high int64)
	ResetHorizontalZoom()
	SetLocked(locked bool)
	SetSpectrum(samples []float32)
	SetPalette(p *palette.Palette)
	SetPandapterRange(min, max float32)
	SetWaterfallRange(min, max float32)
}

// Recorder observes autorange activity. *metrics.Collector implements it.
type Recorder interface {
	DetailChanged(source string, start, end uint64, fixed bool)
	FrameFed(adjusted bool)
	Reentered(op string)
	ScanRefused()
}

type nopRecorder struct{}

func (nopRecorder) DetailChanged(string, uint64, uint64, bool) {}
func (nopRecorder) FrameFed(bool)                              {}
func (nopRecorder) Reentered(string)                           {}
func (nopRecorder) ScanRefused()                               {}
