package freq

import "errors"

var (
	// ErrUnknownSkewness indicates an unrecognized skewness name
	ErrUnknownSkewness = errors.New("unknown filter skewness")
)
