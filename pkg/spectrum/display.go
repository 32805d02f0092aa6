// Package spectrum keeps the main spectrum's frequency state consistent:
// center frequency, LO offset, LNB offset, demodulation filter and zoom.
package spectrum

import (
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
)

// Display is the pandapter/waterfall surface driven by the controller
type Display interface {
	SetCenterFreq(freq int64)
	SetSampleRate(rate uint64)
	SetSpanFreq(span uint64)
	SetDemodRanges(env freq.Envelope)
	SetFilterEdges(low, high int64)
	SetFilterOffset(offset int64)
	SetFreqUnits(units int64)
	SetPandapterRange(min, max float32)
	SetWaterfallRange(min, max float32)
	SetPalette(p *palette.Palette)
}

// Listener receives change notifications. Nil callbacks are skipped.
type Listener struct {
	FrequencyChanged    func(freq int64)
	LoChanged           func(lo int64)
	BandwidthChanged    func(bw uint32)
	LnbFrequencyChanged func(lnb int64)
	ZoomChanged         func(level float32)
	RangeChanged        func(min, max float32)
}

// NopDisplay discards every update
type NopDisplay struct{}

func (NopDisplay) SetCenterFreq(int64)                {}
func (NopDisplay) SetSampleRate(uint64)               {}
func (NopDisplay) SetSpanFreq(uint64)                 {}
func (NopDisplay) SetDemodRanges(freq.Envelope)       {}
func (NopDisplay) SetFilterEdges(int64, int64)        {}
func (NopDisplay) SetFilterOffset(int64)              {}
func (NopDisplay) SetFreqUnits(int64)                 {}
func (NopDisplay) SetPandapterRange(float32, float32) {}
func (NopDisplay) SetWaterfallRange(float32, float32) {}
func (NopDisplay) SetPalette(*palette.Palette)        {}
