package main

import (
	"context"
	"testing"

	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuneAppliesSetup(t *testing.T) {
	drv, err := device.LookupDriver("rtlsdr")
	require.NoError(t, err)
	gqrx := palette.Gqrx()

	c, disp := tune(context.Background(), drv, tuneOptions{
		Center:    100000000,
		Rate:      2400000,
		Zoom:      4,
		Bandwidth: 12000,
		Skewness:  freq.Lower,
		Lo:        100500000,
		Palette:   &gqrx,
	})

	assert.Equal(t, int64(100000000), c.CenterFreq())
	assert.Equal(t, freq.Limits{Min: 24000000, Max: 1766000000}, c.CenterRange())
	assert.Equal(t, uint64(600000), c.Span())
	assert.Equal(t, uint64(600000), disp.span)
	assert.Equal(t, int64(500000), c.LoFreq())
	assert.Equal(t, int64(100500000), c.LoAbsolute())
	assert.Equal(t, int64(500000), disp.offset)
	assert.Equal(t, uint32(12000), c.Bandwidth())
	assert.Equal(t, int64(-6000), disp.low)
	assert.Equal(t, int64(0), disp.high)
	assert.Equal(t, int64(1000000), disp.units)
	assert.Same(t, &gqrx, disp.palette)
}

func TestTuneClampsToReceiver(t *testing.T) {
	drv, err := device.LookupDriver("rtlsdr")
	require.NoError(t, err)

	c, _ := tune(context.Background(), drv, tuneOptions{
		Center:    10000000,
		Rate:      2400000,
		Zoom:      1,
		Bandwidth: 200000,
		Lo:        30000000,
	})
	assert.Equal(t, int64(24000000), c.CenterFreq(), "center below the tuner range")
	assert.Equal(t, int64(1200000), c.LoFreq(), "LO kept inside the passband")

	c, _ = tune(context.Background(), drv, tuneOptions{
		Center:    100000000,
		Lnb:       -125000000,
		Rate:      2400000,
		Zoom:      1,
		Bandwidth: 200000,
	})
	assert.Equal(t, freq.Limits{Min: 149000000, Max: 1891000000}, c.CenterRange())
	assert.Equal(t, int64(149000000), c.CenterFreq())
	assert.Equal(t, int64(0), c.LoFreq())
}
