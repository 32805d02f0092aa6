package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectTypedGetters(t *testing.T) {
	obj := NewObject("test")
	obj.Set("flag", true)
	obj.Set("count", 42)
	obj.Set("rate", "8000000")
	obj.Set("neg", -5)
	obj.Set("name", "airspy")
	obj.Set("junk", []int{1, 2})

	assert.True(t, obj.GetBool("flag", false))
	assert.Equal(t, int64(42), obj.GetInt64("count", 0))
	assert.Equal(t, uint64(8000000), obj.GetUint64("rate", 0))
	assert.Equal(t, uint64(7), obj.GetUint64("neg", 7), "negative rejected")
	assert.Equal(t, "airspy", obj.GetString("name", ""))
	assert.Equal(t, 1.5, obj.GetFloat64("junk", 1.5), "unconvertible falls back")
	assert.Equal(t, float32(-3), obj.GetFloat32("missing", -3))
	assert.False(t, obj.Has("missing"))

	obj.Delete("flag")
	assert.False(t, obj.GetBool("flag", false))
	assert.Equal(t, []string{"count", "junk", "name", "neg", "rate"}, obj.Fields())
}

func TestPanoramicRoundTrip(t *testing.T) {
	cfg := NewPanoramicConfig()
	cfg.FullRange = true
	cfg.RangeMin = 100e6
	cfg.RangeMax = 150e6
	cfg.PanRangeMin = -120
	cfg.LnbFreq = -125e6
	cfg.Device = "Airspy Mini"
	cfg.SampleRate = 6000000
	cfg.Strategy = "Progressive"
	cfg.Palette = "Default"
	cfg.Gains.Set("rtlsdr", "RF", 12.5)
	cfg.Gains.Set("airspy", "LNA", 7)

	path := filepath.Join(t.TempDir(), "state", "panscan.yaml")
	require.NoError(t, Save(path, map[string]*Object{"panoramic": cfg.Serialize()}))

	objects, err := Load(path)
	require.NoError(t, err)
	obj, ok := objects["panoramic"]
	require.True(t, ok)
	assert.Equal(t, PanoramicClass, obj.Class)
	assert.True(t, obj.Has("gain.rtlsdr.RF"))

	got := NewPanoramicConfig()
	got.Deserialize(obj)

	assert.True(t, got.FullRange)
	assert.Equal(t, 100e6, got.RangeMin)
	assert.Equal(t, 150e6, got.RangeMax)
	assert.Equal(t, float32(-120), got.PanRangeMin)
	assert.Equal(t, DefaultPanRangeMax, got.PanRangeMax)
	assert.Equal(t, -125e6, got.LnbFreq)
	assert.Equal(t, "Airspy Mini", got.Device)
	assert.Equal(t, uint64(6000000), got.SampleRate)
	assert.Equal(t, "Progressive", got.Strategy)
	assert.Equal(t, "Default", got.Palette)
	assert.Equal(t, float32(12.5), got.Gains.Get("rtlsdr", "RF"))
	assert.Equal(t, float32(7), got.Gains.Get("airspy", "LNA"))
	assert.Equal(t, float32(0), got.Gains.Get("rtlsdr", "IF"))
}

func TestDeserializeMissingFieldsKeepDefaults(t *testing.T) {
	obj := NewObject(PanoramicClass)
	obj.Set(FieldRangeMin, "garbage")
	obj.Set("gain.hackrf.VGA", 16)
	obj.Set("gain.", 3)

	cfg := NewPanoramicConfig()
	cfg.Deserialize(obj)

	assert.Equal(t, DefaultRangeMin, cfg.RangeMin)
	assert.Equal(t, DefaultSampleRate, cfg.SampleRate)
	assert.Equal(t, DefaultStrategy, cfg.Strategy)
	assert.Equal(t, float32(16), cfg.Gains.Get("hackrf", "VGA"))
	assert.Equal(t, 1, cfg.Gains.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestAppConfig(t *testing.T) {
	v := NewViper()
	cfg, err := LoadAppConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, float64(DefaultMinBwForZoom), cfg.MinBwForZoom)
	assert.Equal(t, 0.5, cfg.RelBw())

	v.Set("rel_bw_percent", 0)
	_, err = LoadAppConfig(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	v.Set("rel_bw_percent", 25)
	v.Set("log_format", "xml")
	_, err = LoadAppConfig(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAppConfigEnvironment(t *testing.T) {
	t.Setenv("PANSCAN_MIN_BW_FOR_ZOOM", "250000")
	cfg, err := LoadAppConfig(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 250000.0, cfg.MinBwForZoom)
}
