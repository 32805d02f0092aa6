package config

// Panoramic scan defaults
const (
	// PanoramicClass is the object class of the persisted scan settings
	PanoramicClass = "PanoramicDialogConfig"

	DefaultRangeMin    float64 = 88000000
	DefaultRangeMax    float64 = 108000000
	DefaultPanRangeMin float32 = -90
	DefaultPanRangeMax float32 = -10
	DefaultSampleRate  uint64  = 8000000

	DefaultStrategy     = "Stochastic"
	DefaultPartitioning = "Discrete"
	DefaultPalette      = "Gqrx"
)

// Application setting defaults
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultStateFile    = "panscan-state.yaml"
	DefaultMinBwForZoom = 1000000
	DefaultRelBwPercent = 50
	DefaultFps          = 30
)
