package panoramic

import (
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/specan"
)

// Window is a reported scan window. Start <= End, both inside the scan
// limits and never above freq.SafetyBound.
type Window struct {
	Start uint64
	End   uint64
	Fixed bool
}

// Width returns the window width in Hz
func (w Window) Width() uint64 {
	return w.End - w.Start
}

// Measures summarizes the last fed frame
type Measures struct {
	DemodFreq int64  // filter offset + frame center
	FilterBw  int64  // Hz
	Frames    uint64 // frames fed since the scan started
}

// AutorangeConfig holds autorange settings
type AutorangeConfig struct {
	MinBwForZoom uint64
	RelBw        float64

	// OnDetailChanged receives every reported window (optional)
	OnDetailChanged func(Window)

	Recorder Recorder

	// Debug callback (optional)
	DebugLog func(format string, args ...interface{}) `json:"-"`
}

// Autorange keeps the waterfall window inside the scan limits and decides
// between scanning and fixed frequency mode. It owns the scan limits and
// the reported window and is not safe for concurrent use.
type Autorange struct {
	wf       Waterfall
	limits   freq.Limits
	minBw    uint64
	relBw    float64
	currBw   int64
	fixed    bool
	adjusted bool // a window was reported at least once

	// Bounds of the last frame applied to the display
	freqStart uint64
	freqEnd   uint64

	adjusting bool
	window    Window
	saved     *specan.Frame
	measures  Measures

	onDetail func(Window)
	recorder Recorder
	debugLog func(format string, args ...interface{})
}

// NewAutorange creates the state machine driving wf
func NewAutorange(wf Waterfall, cfg *AutorangeConfig) *Autorange {
	if cfg == nil {
		cfg = &AutorangeConfig{}
	}
	a := &Autorange{
		wf:       wf,
		minBw:    cfg.MinBwForZoom,
		relBw:    cfg.RelBw,
		onDetail: cfg.OnDetailChanged,
		recorder: cfg.Recorder,
		debugLog: cfg.DebugLog,
	}
	if a.minBw == 0 {
		a.minBw = DefaultMinBwForZoom
	}
	if a.relBw <= 0 {
		a.relBw = float64(DefaultRelBwPercent) / 100
	}
	if a.recorder == nil {
		a.recorder = nopRecorder{}
	}
	return a
}

func (a *Autorange) debug(format string, args ...interface{}) {
	if a.debugLog != nil {
		a.debugLog(format, args...)
	}
}

// SetLimits sets the scan limits (the requested scan range)
func (a *Autorange) SetLimits(l freq.Limits) {
	if l.Min > l.Max {
		l.Min, l.Max = l.Max, l.Min
	}
	a.limits = l
}

// Limits returns the scan limits
func (a *Autorange) Limits() freq.Limits { return a.limits }

// SetMinBwForZoom sets the fixed frequency mode threshold
func (a *Autorange) SetMinBwForZoom(bw uint64) {
	if bw > 0 {
		a.minBw = bw
	}
}

// MinBwForZoom returns the fixed frequency mode threshold
func (a *Autorange) MinBwForZoom() uint64 { return a.minBw }

// SetRelBw sets the relative bandwidth factor
func (a *Autorange) SetRelBw(rel float64) {
	if rel > 0 {
		a.relBw = rel
	}
}

// RelBw returns the relative bandwidth factor
func (a *Autorange) RelBw() float64 { return a.relBw }

// Fixed reports whether fixed frequency mode is active
func (a *Autorange) Fixed() bool { return a.fixed }

// CurrentBandwidth returns the bandwidth last applied to the display
func (a *Autorange) CurrentBandwidth() int64 { return a.currBw }

// Window returns the last reported window
func (a *Autorange) Window() (Window, bool) { return a.window, a.adjusted }

// Measures returns the measures of the last fed frame
func (a *Autorange) Measures() Measures { return a.measures }

// LastFrame returns the last fed frame, or nil
func (a *Autorange) LastFrame() *specan.Frame { return a.saved }

// ResetFrames zeroes the frame counter
func (a *Autorange) ResetFrames() {
	a.measures.Frames = 0
}

// enter sets the in-progress flag. It returns false when a recomputation is
// already running, in which case the caller must do nothing.
func (a *Autorange) enter(op string) bool {
	if a.adjusting {
		a.recorder.Reentered(op)
		a.debug("%s: ignored, range adjustment in progress", op)
		return false
	}
	a.adjusting = true
	return true
}

func (a *Autorange) leave() {
	a.adjusting = false
}

// HandleZoom recomputes the window after the display zoom level changed
func (a *Autorange) HandleZoom() {
	if !a.enter(SourceZoom) {
		return
	}
	defer a.leave()

	fc := a.wf.CenterFreq() + a.wf.FftCenterFreq()
	if fc < 0 {
		fc = -fc
	}
	span := a.wf.SpanFreq()

	min := fc - span/2
	max := fc + span/2
	adjLeft, adjRight := false, false

	if min < a.limits.Min {
		min = a.limits.Min
		adjLeft = true
	}
	if max > a.limits.Max {
		max = a.limits.Max
		adjRight = true
	}

	// The view is wider than the whole range
	if adjLeft && adjRight {
		a.wf.ResetHorizontalZoom()
	}

	a.fixed = float64(max-min) <= float64(a.minBw)*a.relBw

	// Follow the tuner's own center, its step may differ from ours
	if a.fixed {
		fc = a.wf.CenterFreq()
		min = fc - span/2
		max = fc + span/2
	}

	a.setWfRange(min, max)
	a.report(SourceZoom, min, max)
}

// HandleCenterFreq recomputes the window after the display was panned to f
func (a *Autorange) HandleCenterFreq(f int64) {
	if !a.enter(SourcePan) {
		return
	}
	defer a.leave()

	span := a.currBw
	min := f - span/2
	max := f + span/2
	leftBorder, rightBorder := false, false

	if min <= a.limits.Min {
		leftBorder = true
		min = a.limits.Min
	}
	if max >= a.limits.Max {
		rightBorder = true
		max = a.limits.Max
	}

	// Push a collapsing window back against the touched border
	if max-min < int64(a.minBw) {
		if leftBorder && !rightBorder {
			max = min + span
		} else if rightBorder && !leftBorder {
			min = max - span
		}
	}

	if leftBorder || rightBorder {
		a.wf.SetCenterFreq((min + max) / 2)
	}

	a.report(SourcePan, min, max)
}

// Feed pushes a spectral frame to the display. A frame whose bounds differ
// from the previous one re-runs the window adjustment first.
func (a *Autorange) Feed(frame *specan.Frame) {
	adjusted := false
	if frame.FreqStart != a.freqStart || frame.FreqEnd != a.freqEnd {
		// Bounds are stored only once applied to the display
		if a.enter("feed") {
			a.setWfRange(int64(frame.FreqStart), int64(frame.FreqEnd))
			a.leave()
			a.freqStart = frame.FreqStart
			a.freqEnd = frame.FreqEnd
			adjusted = true
		}
	}

	a.saved = frame.Clone()
	a.wf.SetSpectrum(frame.Samples)
	a.measures.Frames++
	a.redrawMeasures()
	a.recorder.FrameFed(adjusted)
}

// RedrawMeasures recomputes the measures after the filter moved
func (a *Autorange) RedrawMeasures() {
	a.redrawMeasures()
}

func (a *Autorange) redrawMeasures() {
	var center int64
	if a.saved != nil {
		center = int64(a.saved.Center())
	}
	a.measures.DemodFreq = a.wf.FilterOffset() + center
	a.measures.FilterBw = a.wf.FilterBw()
}

// setWfRange applies a frequency window to the display. In fixed mode only
// the sample rate is pinned to the threshold; in scanning mode the display
// follows the window center, and a bandwidth change resets the zoom and
// filter.
func (a *Autorange) setWfRange(freqStart, freqEnd int64) {
	if a.fixed {
		bw := int64(a.minBw)
		if bw != a.currBw {
			a.wf.SetSampleRate(bw)
			a.currBw = bw
		}
		return
	}

	fc := (freqStart + freqEnd) / 2
	bw := freqEnd - freqStart

	a.wf.SetCenterFreq(fc)

	if bw != a.currBw {
		a.wf.SetLocked(false)
		a.wf.SetSampleRate(bw)
		a.wf.SetDemodRanges(freq.Envelope{
			LowMin:    -bw / 2,
			HighMax:   bw / 2,
			Symmetric: true,
		})
		a.wf.SetHiLowCutFrequencies(-bw/20, bw/20)
		a.wf.ResetHorizontalZoom()
		a.currBw = bw
		a.debug("setWfRange: bandwidth now %d Hz around %d Hz", bw, fc)
	}
}

// report clamps the window and delivers it
func (a *Autorange) report(source string, min, max int64) {
	min = a.limits.Clamp(min)
	max = a.limits.Clamp(max)
	min = clampSafe(min)
	max = clampSafe(max)
	if min > max {
		min, max = max, min
	}

	a.window = Window{Start: uint64(min), End: uint64(max), Fixed: a.fixed}
	a.adjusted = true

	a.debug("detailChanged (%s): [%d, %d] Hz, fixed=%v", source, min, max, a.fixed)
	a.recorder.DetailChanged(source, a.window.Start, a.window.End, a.window.Fixed)
	if a.onDetail != nil {
		a.onDetail(a.window)
	}
}

func clampSafe(f int64) int64 {
	if f < 0 {
		return 0
	}
	if f > freq.SafetyBound {
		return freq.SafetyBound
	}
	return f
}
