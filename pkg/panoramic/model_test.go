package panoramic

import (
	"testing"

	"github.com/herlein/panscan/pkg/freq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelZoomAndPan(t *testing.T) {
	m := NewModel(100000000, 8000000)
	assert.Equal(t, int64(8000000), m.SpanFreq())

	m.Zoom(4)
	assert.Equal(t, int64(2000000), m.SpanFreq())
	m.Zoom(0.5)
	assert.Equal(t, int64(8000000), m.SpanFreq(), "cannot zoom out past the sample rate")

	m.PanTo(101000000)
	assert.Equal(t, int64(1000000), m.FftCenterFreq())
	assert.Equal(t, int64(101000000), m.VisibleCenter())

	m.Zoom(8)
	m.ResetHorizontalZoom()
	assert.Equal(t, int64(0), m.FftCenterFreq())
	assert.Equal(t, int64(8000000), m.SpanFreq())
}

func TestModelFilter(t *testing.T) {
	m := NewModel(0, 2000000)
	m.SetDemodRanges(freq.Envelope{LowMin: -1000000, HighMax: 1000000, Symmetric: true})
	m.SetHiLowCutFrequencies(-1500000, 50000)

	low, high := m.FilterEdges()
	assert.Equal(t, int64(-1000000), low)
	assert.Equal(t, int64(50000), high)
	assert.Equal(t, int64(1050000), m.FilterBw())
}

func TestModelDrivesAutorange(t *testing.T) {
	m := NewModel(98000000, 8000000)
	var windows []Window
	a := NewAutorange(m, &AutorangeConfig{
		MinBwForZoom:    1000000,
		RelBw:           0.5,
		OnDetailChanged: func(w Window) { windows = append(windows, w) },
	})
	a.SetLimits(freq.Limits{Min: 88000000, Max: 108000000})

	m.Zoom(4)
	a.HandleZoom()
	require.Len(t, windows, 1)
	assert.Equal(t, Window{Start: 97000000, End: 99000000}, windows[0])
	assert.Equal(t, int64(2000000), m.SampleRate())

	m.Zoom(10)
	a.HandleZoom()
	require.Len(t, windows, 2)
	assert.Equal(t, Window{Start: 97900000, End: 98100000, Fixed: true}, windows[1])
	assert.Equal(t, int64(1000000), m.SampleRate())
	assert.Equal(t, int64(200000), m.SpanFreq())
}

func TestModelSampleRateCapsSpan(t *testing.T) {
	m := NewModel(100000000, 8000000)
	m.PanTo(102000000)

	m.SetSampleRate(2000000)
	assert.Equal(t, int64(2000000), m.SpanFreq())
	assert.Equal(t, int64(2000000), m.FftCenterFreq(), "pan kept until the zoom is reset")

	m.SetSampleRate(4000000)
	assert.Equal(t, int64(2000000), m.SpanFreq(), "a wider rate does not zoom out")

	m.ResetHorizontalZoom()
	assert.Equal(t, int64(4000000), m.SpanFreq())
	assert.Equal(t, int64(100000000), m.VisibleCenter())

	m.SetCenterFreq(101000000)
	assert.Equal(t, 3, m.Updates())
}
