package config

import (
	"strings"

	"github.com/herlein/panscan/pkg/gain"
)

// Field names of the persisted panoramic scan settings
const (
	FieldFullRange    = "fullRange"
	FieldRangeMin     = "rangeMin"
	FieldRangeMax     = "rangeMax"
	FieldPanRangeMin  = "panRangeMin"
	FieldPanRangeMax  = "panRangeMax"
	FieldLnbFreq      = "lnbFreq"
	FieldDevice       = "device"
	FieldSampleRate   = "sampRate"
	FieldStrategy     = "strategy"
	FieldPartitioning = "partitioning"
	FieldPalette      = "palette"
)

// PanoramicConfig holds the panoramic scan settings that survive restarts
type PanoramicConfig struct {
	FullRange    bool
	RangeMin     float64
	RangeMax     float64
	PanRangeMin  float32
	PanRangeMax  float32
	LnbFreq      float64
	Device       string
	SampleRate   uint64
	Strategy     string
	Partitioning string
	Palette      string

	// Gains holds per driver gain stage values, persisted as gain.* fields
	Gains *gain.Store
}

// NewPanoramicConfig returns the default scan settings
func NewPanoramicConfig() *PanoramicConfig {
	return &PanoramicConfig{
		RangeMin:     DefaultRangeMin,
		RangeMax:     DefaultRangeMax,
		PanRangeMin:  DefaultPanRangeMin,
		PanRangeMax:  DefaultPanRangeMax,
		SampleRate:   DefaultSampleRate,
		Strategy:     DefaultStrategy,
		Partitioning: DefaultPartitioning,
		Palette:      DefaultPalette,
		Gains:        gain.NewStore(),
	}
}

// Deserialize loads settings from an object. Absent or unreadable fields
// keep their current value.
func (c *PanoramicConfig) Deserialize(obj *Object) {
	c.FullRange = obj.GetBool(FieldFullRange, c.FullRange)
	c.RangeMin = obj.GetFloat64(FieldRangeMin, c.RangeMin)
	c.RangeMax = obj.GetFloat64(FieldRangeMax, c.RangeMax)
	c.PanRangeMin = obj.GetFloat32(FieldPanRangeMin, c.PanRangeMin)
	c.PanRangeMax = obj.GetFloat32(FieldPanRangeMax, c.PanRangeMax)
	c.LnbFreq = obj.GetFloat64(FieldLnbFreq, c.LnbFreq)
	c.Device = obj.GetString(FieldDevice, c.Device)
	c.SampleRate = obj.GetUint64(FieldSampleRate, c.SampleRate)
	c.Strategy = obj.GetString(FieldStrategy, c.Strategy)
	c.Partitioning = obj.GetString(FieldPartitioning, c.Partitioning)
	c.Palette = obj.GetString(FieldPalette, c.Palette)

	if c.Gains == nil {
		c.Gains = gain.NewStore()
	}
	for _, field := range obj.Fields() {
		if !strings.HasPrefix(field, gain.FieldPrefix) {
			continue
		}
		key, ok := gain.ParseField(field)
		if !ok {
			continue
		}
		c.Gains.Set(key.Driver, key.Stage, obj.GetFloat32(field, 0))
	}
}

// Serialize stores the settings into a new object
func (c *PanoramicConfig) Serialize() *Object {
	obj := NewObject(PanoramicClass)

	obj.Set(FieldFullRange, c.FullRange)
	obj.Set(FieldRangeMin, c.RangeMin)
	obj.Set(FieldRangeMax, c.RangeMax)
	obj.Set(FieldPanRangeMin, c.PanRangeMin)
	obj.Set(FieldPanRangeMax, c.PanRangeMax)
	obj.Set(FieldLnbFreq, c.LnbFreq)
	obj.Set(FieldSampleRate, c.SampleRate)
	obj.Set(FieldDevice, c.Device)
	obj.Set(FieldStrategy, c.Strategy)
	obj.Set(FieldPartitioning, c.Partitioning)
	obj.Set(FieldPalette, c.Palette)

	if c.Gains != nil {
		for _, e := range c.Gains.Entries() {
			obj.Set(gain.FieldName(e.Key), e.Value)
		}
	}

	return obj
}
