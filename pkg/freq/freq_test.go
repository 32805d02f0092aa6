package freq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEdges(t *testing.T) {
	tests := []struct {
		skw       Skewness
		low, high int64
	}{
		{Symmetric, -5000, 5000},
		{Lower, -5000, 0},
		{Upper, 0, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.skw.String(), func(t *testing.T) {
			low, high := FilterEdges(10000, tt.skw)
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
		})
	}
}

func TestBandwidthFromEdgesInvertsFilterEdges(t *testing.T) {
	for _, skw := range []Skewness{Symmetric, Lower, Upper} {
		low, high := FilterEdges(12000, skw)
		assert.Equal(t, uint32(12000), BandwidthFromEdges(low, high, skw), skw.String())
	}
}

func TestDemodEnvelope(t *testing.T) {
	env := DemodEnvelope(2000000, Symmetric)
	assert.Equal(t, Envelope{LowMin: -1000000, HighMax: 1000000, Symmetric: true}, env)

	env = DemodEnvelope(2000000, Lower)
	assert.Equal(t, int64(-1000000), env.LowMin)
	assert.Equal(t, int64(0), env.HighMax)
	assert.False(t, env.Symmetric)

	low, high := env.Clamp(-3000000, 5000)
	assert.Equal(t, int64(-1000000), low)
	assert.Equal(t, int64(0), high)
	assert.False(t, env.Contains(-3000000, 5000))
	assert.True(t, env.Contains(-5000, 0))
}

func TestParseSkewness(t *testing.T) {
	skw, err := ParseSkewness("USB")
	require.NoError(t, err)
	assert.Equal(t, Upper, skw)

	_, err = ParseSkewness("diagonal")
	assert.ErrorIs(t, err, ErrUnknownSkewness)
}

func TestTunedAndLO(t *testing.T) {
	assert.Equal(t, int64(1200000000), Tuned(10950000000+1200000000, 10950000000))
	assert.Equal(t, int64(100250000), LOAbsolute(100000000, 250000))
	assert.Equal(t, int64(250000), LORelative(100000000, 100250000))
}

func TestUnits(t *testing.T) {
	tests := []struct {
		freq  int64
		units int64
	}{
		{0, 1},
		{999, 1},
		{-999, 1},
		{1000, 1000},
		{999999, 1000},
		{1000000, 1000000},
		{999999999, 1000000},
		{1000000000, 1000000000},
		{-2400000000, 1000000000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.units, Units(tt.freq), "freq %d", tt.freq)
	}
	assert.Equal(t, "MHz", UnitSuffix(Units(433920000)))
	assert.Equal(t, "433.92 MHz", Format(433920000))
	assert.Equal(t, "12 Hz", Format(12))
}

func TestScanLimits(t *testing.T) {
	tests := []struct {
		name           string
		devMin, devMax float64
		lnb            float64
		want           Limits
	}{
		{"plain", 24e6, 1766e6, 0, Limits{24000000, 1766000000}},
		{"lnb shift", 24e6, 1766e6, 100e6, Limits{0, 1666000000}},
		{"above bound", 1e6, 6e9, 0, Limits{1000000, SafetyBound}},
		{"negative lnb", 1e6, 1.9e9, -500e6, Limits{501000000, SafetyBound}},
		{"fully below", 1e6, 5e6, 10e6, Limits{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanLimits(tt.devMin, tt.devMax, tt.lnb)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Min, got.Max)
		})
	}
}

func TestScanLimitsProperty(t *testing.T) {
	for a := -3e9; a <= 3e9; a += 7.3e8 {
		for b := a; b <= 4e9; b += 9.1e8 {
			for _, lnb := range []float64{-1e9, 0, 1e8, 2.5e9} {
				got := ScanLimits(a, b, lnb)
				assert.Equal(t, clampSafe(a-lnb), got.Min)
				assert.Equal(t, clampSafe(b-lnb), got.Max)
				assert.LessOrEqual(t, got.Min, got.Max)
				assert.GreaterOrEqual(t, got.Min, int64(0))
				assert.LessOrEqual(t, got.Max, SafetyBound)
			}
		}
	}
}

func TestResolveRange(t *testing.T) {
	l := Limits{Min: 24000000, Max: 1766000000}

	// Inside the limits, untouched
	r := ResolveRange(l, Range{Start: 88000000, End: 108000000}, false)
	assert.Equal(t, Range{88000000, 108000000}, r)

	// Out of order requests are swapped
	r = ResolveRange(l, Range{Start: 108000000, End: 88000000}, false)
	assert.Equal(t, Range{88000000, 108000000}, r)

	// Edges outside the limits are clamped
	r = ResolveRange(l, Range{Start: 1000000, End: 3000000000}, false)
	assert.Equal(t, Range{24000000, 1766000000}, r)

	// Degenerate ranges snap to the full interval
	r = ResolveRange(l, Range{Start: 100000000, End: 100000000}, false)
	assert.Equal(t, Range{24000000, 1766000000}, r)

	// Full range flag always snaps
	r = ResolveRange(l, Range{Start: 88000000, End: 108000000}, true)
	assert.Equal(t, Range{24000000, 1766000000}, r)
}
