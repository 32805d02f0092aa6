package specan

import "errors"

var (
	// ErrUnknownStrategy indicates an unsupported walk strategy
	ErrUnknownStrategy = errors.New("unknown sweep strategy")

	// ErrUnknownPartitioning indicates an unsupported partitioning
	ErrUnknownPartitioning = errors.New("unknown sweep partitioning")
)
