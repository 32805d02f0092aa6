package device

import "errors"

var (
	// ErrNoDevices indicates no usable receiver was found
	ErrNoDevices = errors.New("no SDR receivers found")

	// ErrDeviceNotFound indicates no receiver matched the selector
	ErrDeviceNotFound = errors.New("no matching SDR receiver")

	// ErrInvalidSelector indicates a malformed device selector
	ErrInvalidSelector = errors.New("invalid device selector")

	// ErrAmbiguousSerial indicates several receivers share a serial number
	ErrAmbiguousSerial = errors.New("multiple receivers share the serial number")

	// ErrUnknownDriver indicates a driver missing from the known driver table
	ErrUnknownDriver = errors.New("unknown driver")
)
