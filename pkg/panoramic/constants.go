// Package panoramic implements the panoramic scanner: the autorange state
// machine that keeps the scan window inside the device limits and the scan
// session holding device, range, gain and display settings.
package panoramic

// NoGainsLabel marks a device without gain stages
const NoGainsLabel = "(device has no gains)"

// Detail change sources
const (
	SourceZoom = "zoom"
	SourcePan  = "pan"
)

// Default autorange parameters
const (
	// DefaultMinBwForZoom is the bandwidth (Hz) below which zooming enters
	// fixed frequency mode, before applying the relative factor
	DefaultMinBwForZoom uint64 = 1000000

	// DefaultRelBwPercent is the default relative bandwidth slider value
	DefaultRelBwPercent = 50
)
