package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds the command line tool settings
type AppConfig struct {
	LogLevel     string  `mapstructure:"log_level"`
	LogFormat    string  `mapstructure:"log_format"`
	StateFile    string  `mapstructure:"state_file"`
	BandplanDir  string  `mapstructure:"bandplan_dir"`
	PaletteFile  string  `mapstructure:"palette_file"`
	MinBwForZoom float64 `mapstructure:"min_bw_for_zoom"`
	RelBwPercent float64 `mapstructure:"rel_bw_percent"`
	Fps          int     `mapstructure:"fps"`
	MetricsAddr  string  `mapstructure:"metrics_addr"`
}

// SetDefaults registers the default application settings
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("state_file", DefaultStateFile)
	v.SetDefault("bandplan_dir", "")
	v.SetDefault("palette_file", "")
	v.SetDefault("min_bw_for_zoom", DefaultMinBwForZoom)
	v.SetDefault("rel_bw_percent", DefaultRelBwPercent)
	v.SetDefault("fps", DefaultFps)
	v.SetDefault("metrics_addr", "")
}

// NewViper returns a viper instance with defaults and PANSCAN_ environment
// overrides
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PANSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadAppConfig decodes the application settings from viper
func LoadAppConfig(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency
func (c *AppConfig) Validate() error {
	if c.MinBwForZoom <= 0 {
		return fmt.Errorf("%w: min_bw_for_zoom must be positive", ErrInvalidConfig)
	}
	if c.RelBwPercent <= 0 || c.RelBwPercent > 100 {
		return fmt.Errorf("%w: rel_bw_percent must be within (0, 100]", ErrInvalidConfig)
	}
	if c.Fps <= 0 {
		return fmt.Errorf("%w: fps must be positive", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// RelBw returns the relative bandwidth factor
func (c *AppConfig) RelBw() float64 {
	return c.RelBwPercent / 100
}
