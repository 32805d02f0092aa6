package spectrum

import (
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
)

// Config holds optional controller settings
type Config struct {
	Listener Listener

	// Debug callback (optional)
	DebugLog func(format string, args ...interface{}) `json:"-"`
}

// Controller maintains the mapping between center frequency, LO offset,
// LNB offset, filter bandwidth/skewness and zoom, and mirrors it onto a
// Display. It is driven from a single event loop and is not safe for
// concurrent use.
type Controller struct {
	display  Display
	listener Listener
	debugLog func(format string, args ...interface{})

	center    int64
	lo        int64 // relative to center
	lnb       int64
	rate      uint64
	zoom      uint
	bandwidth uint32
	skewness  freq.Skewness

	// Device tuning limits, before LNB correction
	limited bool
	minFreq int64
	maxFreq int64

	centerRange freq.Limits
	loRange     freq.Limits // absolute
}

// New creates a controller driving the given display
func New(display Display, cfg *Config) *Controller {
	if display == nil {
		display = NopDisplay{}
	}
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Controller{
		display:  display,
		listener: cfg.Listener,
		debugLog: cfg.DebugLog,
		zoom:     1,
		skewness: freq.Symmetric,
	}
	c.SetCenterFreq(0)
	return c
}

func (c *Controller) debug(format string, args ...interface{}) {
	if c.debugLog != nil {
		c.debugLog(format, args...)
	}
}

// SetListener replaces the notification callbacks
func (c *Controller) SetListener(l Listener) {
	c.listener = l
}

// --- Setters ---

// SetFrequencyLimits sets the device tunable range. The center frequency
// is restricted to this range minus the LNB offset.
func (c *Controller) SetFrequencyLimits(min, max int64) {
	if min > max {
		min, max = max, min
	}
	c.limited = true
	c.minFreq = min
	c.maxFreq = max
	c.updateLimits()
	c.enforceCenter()
}

// SetCenterFreq moves the center frequency. The LO keeps its offset
// relative to the center.
func (c *Controller) SetCenterFreq(f int64) {
	if c.limited {
		f = c.centerRange.Clamp(f)
	}
	c.center = f
	c.display.SetCenterFreq(f)
	c.display.SetFreqUnits(freq.Units(f))
	c.updateLimits()
	c.debug("SetCenterFreq: %d Hz, LO at %d Hz", f, c.LoAbsolute())
}

// SetLoFreq sets the LO offset relative to the center frequency. Setting
// the current value again does nothing and emits no notification.
func (c *Controller) SetLoFreq(lo int64) {
	lo = c.clampLo(lo)
	if lo == c.lo {
		return
	}
	c.lo = lo
	c.display.SetFilterOffset(lo)
	c.emitLo()
}

// SetLnbFreq sets the LNB down-conversion offset
func (c *Controller) SetLnbFreq(lnb int64) {
	c.lnb = lnb
	c.updateLimits()
	c.enforceCenter()
}

// SetFilterBandwidth sets the demodulation filter bandwidth and pushes the
// resulting edges to the display.
func (c *Controller) SetFilterBandwidth(bw uint32) {
	if bw == c.bandwidth {
		return
	}
	c.applyEdges(bw)
	c.bandwidth = bw
}

// SetFilterSkewness changes the filter skewness. The display envelope is
// reset to the full sample rate range for the new skewness first, and only
// then is the stored bandwidth reapplied; the envelope depends on the
// skewness and would reject edges computed for the old one. Setting the
// current skewness again does nothing.
func (c *Controller) SetFilterSkewness(skw freq.Skewness) {
	if skw == c.skewness {
		return
	}
	c.skewness = skw
	bw := c.bandwidth

	c.display.SetDemodRanges(freq.DemodEnvelope(c.rate, skw))

	c.bandwidth = 0
	c.SetFilterBandwidth(bw)

	c.debug("SetFilterSkewness: %s, bandwidth %d Hz", skw, c.bandwidth)
	c.emitBandwidth()
}

// SetZoom sets the zoom factor. Zero is ignored.
func (c *Controller) SetZoom(zoom uint) {
	if zoom == 0 {
		return
	}
	c.zoom = zoom
	c.display.SetSpanFreq(c.Span())
}

// SetSampleRate sets the sample rate, which bounds the filter envelope, the
// visible span and the LO range.
func (c *Controller) SetSampleRate(rate uint64) {
	if rate == c.rate {
		return
	}

	c.display.SetDemodRanges(freq.DemodEnvelope(rate, c.skewness))
	c.display.SetSampleRate(rate)
	c.display.SetSpanFreq(rate / uint64(c.zoom))

	c.rate = rate
	c.updateLimits()
	c.debug("SetSampleRate: %d Hz, span %d Hz", rate, c.Span())

	// The LO must stay inside the new passband
	if lo := c.clampLo(c.lo); lo != c.lo {
		c.SetLoFreq(lo)
	}
}

// SetPandapterRange sets the spectrum plot dB range
func (c *Controller) SetPandapterRange(min, max float32) {
	c.display.SetPandapterRange(min, max)
}

// SetWfRange sets the waterfall dB range
func (c *Controller) SetWfRange(min, max float32) {
	c.display.SetWaterfallRange(min, max)
}

// SetPaletteGradient selects the waterfall palette
func (c *Controller) SetPaletteGradient(p *palette.Palette) {
	if p != nil {
		c.display.SetPalette(p)
	}
}

// --- Input handlers ---

// HandleFrequencyInput handles a center frequency entered by the user
func (c *Controller) HandleFrequencyInput(f int64) {
	c.SetCenterFreq(f)
	if c.listener.FrequencyChanged != nil {
		c.listener.FrequencyChanged(c.center)
	}
	c.display.SetFilterOffset(c.lo)
	c.emitLo()
}

// HandleLnbInput handles an LNB offset entered by the user
func (c *Controller) HandleLnbInput(lnb int64) {
	c.SetLnbFreq(lnb)
	if c.listener.LnbFrequencyChanged != nil {
		c.listener.LnbFrequencyChanged(lnb)
	}
}

// HandleLoInput handles an absolute demodulation frequency entered by the user
func (c *Controller) HandleLoInput(abs int64) {
	c.lo = c.clampLo(freq.LORelative(c.center, abs))
	c.display.SetFilterOffset(c.lo)
	c.emitLo()
}

// HandleDemodOffset handles the LO being dragged on the display
func (c *Controller) HandleDemodOffset(offset int64) {
	c.lo = c.clampLo(offset)
	c.emitLo()
}

// HandleFilterEdges handles the filter edges being dragged on the display
func (c *Controller) HandleFilterEdges(low, high int64) {
	c.SetFilterBandwidth(freq.BandwidthFromEdges(low, high, c.skewness))
	c.emitBandwidth()
}

// HandleCenterFreq handles the display being re-centered by the user
func (c *Controller) HandleCenterFreq(f int64) {
	if c.limited {
		f = c.centerRange.Clamp(f)
	}
	c.center = f
	c.display.SetFreqUnits(freq.Units(f))
	c.updateLimits()
}

// HandleZoomLevel forwards a zoom level change from the display
func (c *Controller) HandleZoomLevel(level float32) {
	if c.listener.ZoomChanged != nil {
		c.listener.ZoomChanged(level)
	}
}

// HandleRangeChanged forwards a dB range change from the display
func (c *Controller) HandleRangeChanged(min, max float32) {
	if c.listener.RangeChanged != nil {
		c.listener.RangeChanged(min, max)
	}
}

// --- Getters ---

// CenterFreq returns the center frequency
func (c *Controller) CenterFreq() int64 { return c.center }

// LoFreq returns the LO offset relative to the center frequency
func (c *Controller) LoFreq() int64 { return c.lo }

// LoAbsolute returns the absolute demodulation frequency
func (c *Controller) LoAbsolute() int64 { return freq.LOAbsolute(c.center, c.lo) }

// LnbFreq returns the LNB offset
func (c *Controller) LnbFreq() int64 { return c.lnb }

// TunedFreq returns the center frequency with the LNB offset removed
func (c *Controller) TunedFreq() int64 { return freq.Tuned(c.center, c.lnb) }

// Bandwidth returns the stored filter bandwidth
func (c *Controller) Bandwidth() uint32 { return c.bandwidth }

// Skewness returns the filter skewness
func (c *Controller) Skewness() freq.Skewness { return c.skewness }

// FilterEdges returns the filter edges as pushed to the display
func (c *Controller) FilterEdges() (int64, int64) {
	return c.edges(c.bandwidth)
}

// Zoom returns the zoom factor
func (c *Controller) Zoom() uint { return c.zoom }

// SampleRate returns the sample rate
func (c *Controller) SampleRate() uint64 { return c.rate }

// Span returns the visible frequency span
func (c *Controller) Span() uint64 { return c.rate / uint64(c.zoom) }

// CenterRange returns the legal center frequency range. It is only
// meaningful once frequency limits have been set.
func (c *Controller) CenterRange() freq.Limits { return c.centerRange }

// LoRange returns the legal absolute LO range
func (c *Controller) LoRange() freq.Limits { return c.loRange }

// --- Internals ---

func (c *Controller) updateLimits() {
	if c.limited {
		c.centerRange = freq.Limits{Min: c.minFreq - c.lnb, Max: c.maxFreq - c.lnb}
	}

	half := int64(c.rate / 2)
	c.loRange = freq.Limits{Min: c.center - half, Max: c.center + half}
}

func (c *Controller) enforceCenter() {
	if c.limited && !c.centerRange.Contains(c.center) {
		c.SetCenterFreq(c.center)
	}
}

// clampLo restricts a relative LO offset to the passband. Without a sample
// rate there is no passband yet and the offset is taken as is.
func (c *Controller) clampLo(lo int64) int64 {
	if c.rate == 0 {
		return lo
	}
	half := int64(c.rate / 2)
	if lo < -half {
		return -half
	}
	if lo > half {
		return half
	}
	return lo
}

func (c *Controller) edges(bw uint32) (int64, int64) {
	low, high := freq.FilterEdges(bw, c.skewness)
	if c.rate > 0 {
		low, high = freq.DemodEnvelope(c.rate, c.skewness).Clamp(low, high)
	}
	return low, high
}

func (c *Controller) applyEdges(bw uint32) {
	low, high := c.edges(bw)
	c.display.SetFilterEdges(low, high)
}

func (c *Controller) emitLo() {
	if c.listener.LoChanged != nil {
		c.listener.LoChanged(c.lo)
	}
}

func (c *Controller) emitBandwidth() {
	if c.listener.BandwidthChanged != nil {
		c.listener.BandwidthChanged(c.bandwidth)
	}
}
