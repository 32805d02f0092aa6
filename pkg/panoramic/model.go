package panoramic

import (
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
)

// Model is a headless Waterfall. It keeps the display state in memory so
// the scanner can run without a screen, and lets a driver zoom and pan it
// the way a user would.
type Model struct {
	center    int64
	fftCenter int64
	span      int64
	rate      int64

	filterOffset int64
	low, high    int64
	env          freq.Envelope
	locked       bool

	spectrum []float32
	palette  *palette.Palette
	panMin   float32
	panMax   float32
	wfMin    float32
	wfMax    float32

	updates int
}

// NewModel creates a model showing rate Hz around center
func NewModel(center, rate int64) *Model {
	return &Model{center: center, rate: rate, span: rate}
}

// CenterFreq returns the center frequency the display is tuned to
func (m *Model) CenterFreq() int64 { return m.center }

// FftCenterFreq returns the offset of the visible area from the center
func (m *Model) FftCenterFreq() int64 { return m.fftCenter }

// SpanFreq returns the visible bandwidth
func (m *Model) SpanFreq() int64 { return m.span }

// FilterOffset returns the filter position relative to the center
func (m *Model) FilterOffset() int64 { return m.filterOffset }

// FilterBw returns the distance between the filter cut frequencies
func (m *Model) FilterBw() int64 { return m.high - m.low }

// SetCenterFreq tunes the display to f
func (m *Model) SetCenterFreq(f int64) {
	m.center = f
	m.updates++
}

// SetSampleRate sets the display bandwidth. The span never exceeds it.
func (m *Model) SetSampleRate(rate int64) {
	m.rate = rate
	if m.span > rate {
		m.span = rate
	}
	m.updates++
}

// SetDemodRanges sets the envelope the filter edges are clamped to
func (m *Model) SetDemodRanges(env freq.Envelope) {
	m.env = env
}

// SetHiLowCutFrequencies sets the filter edges, clamped to the envelope
func (m *Model) SetHiLowCutFrequencies(low, high int64) {
	m.low, m.high = m.env.Clamp(low, high)
}

// ResetHorizontalZoom shows the whole sample rate around the center
func (m *Model) ResetHorizontalZoom() {
	m.span = m.rate
	m.fftCenter = 0
}

// SetLocked locks or unlocks the view
func (m *Model) SetLocked(locked bool) { m.locked = locked }

// SetSpectrum draws a spectrum
func (m *Model) SetSpectrum(samples []float32) { m.spectrum = samples }

// SetPalette selects the waterfall palette
func (m *Model) SetPalette(p *palette.Palette) { m.palette = p }

// SetPandapterRange sets the spectrum plot dB range
func (m *Model) SetPandapterRange(min, max float32) { m.panMin, m.panMax = min, max }

// SetWaterfallRange sets the waterfall dB range
func (m *Model) SetWaterfallRange(min, max float32) { m.wfMin, m.wfMax = min, max }

// Zoom shows rate/factor Hz around the visible center. Factors below 1
// show the whole sample rate.
func (m *Model) Zoom(factor float64) {
	if factor < 1 {
		factor = 1
	}
	m.span = int64(float64(m.rate) / factor)
	if m.span < 1 {
		m.span = 1
	}
}

// PanTo moves the visible center to the absolute frequency f
func (m *Model) PanTo(f int64) {
	m.fftCenter = f - m.center
}

// SetFilterOffset moves the demodulation filter relative to the center
func (m *Model) SetFilterOffset(offset int64) {
	m.filterOffset = offset
}

// VisibleCenter returns the absolute center of the visible area
func (m *Model) VisibleCenter() int64 { return m.center + m.fftCenter }

// SampleRate returns the display sample rate
func (m *Model) SampleRate() int64 { return m.rate }

// Locked reports whether the view is locked
func (m *Model) Locked() bool { return m.locked }

// FilterEdges returns the filter cut frequencies
func (m *Model) FilterEdges() (int64, int64) { return m.low, m.high }

// Spectrum returns the last spectrum drawn
func (m *Model) Spectrum() []float32 { return m.spectrum }

// Palette returns the palette in use, or nil
func (m *Model) Palette() *palette.Palette { return m.palette }

// PandapterRange returns the spectrum plot dB range
func (m *Model) PandapterRange() (float32, float32) { return m.panMin, m.panMax }

// WaterfallRange returns the waterfall dB range
func (m *Model) WaterfallRange() (float32, float32) { return m.wfMin, m.wfMax }

// Updates counts center and sample rate changes
func (m *Model) Updates() int { return m.updates }
