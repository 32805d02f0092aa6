package panoramic

import "errors"

// Session errors
var (
	// ErrDeviceInUse indicates the selected device is in use by the main window
	ErrDeviceInUse = errors.New("scan cannot start because the selected device is in use by the main window")

	// ErrNoDevice indicates no device is selected
	ErrNoDevice = errors.New("no device selected")

	// ErrUnknownDevice indicates a device description missing from the device list
	ErrUnknownDevice = errors.New("unknown device")

	// ErrUnknownGain indicates a gain name the selected device does not have
	ErrUnknownGain = errors.New("unknown gain stage")

	// ErrUnknownPalette indicates a palette missing from the palette table
	ErrUnknownPalette = errors.New("unknown palette")

	// ErrRunning indicates a setting that cannot change while scanning
	ErrRunning = errors.New("scan is running")
)
