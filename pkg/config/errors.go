package config

import "errors"

// ErrInvalidConfig indicates invalid application settings
var ErrInvalidConfig = errors.New("invalid configuration")
