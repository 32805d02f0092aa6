package specan

// DefaultBins is the default FFT size of synthetic frames
const DefaultBins = 1024

// Signal tracking defaults
const (
	// DefaultHoldMax is the number of frames a signal is held
	DefaultHoldMax = 20

	// DefaultResolution is the grouping resolution for signals (Hz)
	DefaultResolution uint64 = 10000
)

// Frequency smoothing defaults
const (
	// DefaultSmoothThreshold is the threshold for fast/slow adaptation (Hz)
	DefaultSmoothThreshold float64 = 500000

	// DefaultKFast is the adaptation coefficient for large changes
	DefaultKFast float64 = 0.9

	// DefaultKSlow is the adaptation coefficient for small changes
	DefaultKSlow float64 = 0.03
)
