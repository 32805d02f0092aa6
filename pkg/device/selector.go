package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector specifies how to pick a receiver from a list
// Supported formats:
//   - ""           : First device
//   - "serial"     : Match by serial number (e.g., "00000001")
//   - "bus:addr"   : Match by USB bus and address (e.g., "1:10")
//   - "#N"         : Nth device, 0-indexed (e.g., "#0", "#1")
type Selector string

// Select picks the receiver matching the selector
func Select(devices []Descriptor, selector Selector) (Descriptor, error) {
	sel := string(selector)

	if len(devices) == 0 {
		return Descriptor{}, ErrNoDevices
	}

	// Empty selector - use first device
	if sel == "" {
		return devices[0], nil
	}

	// Index selector: #0, #1, etc.
	if strings.HasPrefix(sel, "#") {
		index, err := strconv.Atoi(sel[1:])
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: bad index %q", ErrInvalidSelector, sel)
		}
		if index < 0 || index >= len(devices) {
			return Descriptor{}, fmt.Errorf("%w: index %d out of range (found %d devices)",
				ErrDeviceNotFound, index, len(devices))
		}
		return devices[index], nil
	}

	// Bus:Address selector: 1:10, 2:5, etc.
	if busStr, addrStr, ok := strings.Cut(sel, ":"); ok {
		bus, err := strconv.Atoi(busStr)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: bad bus number %q", ErrInvalidSelector, busStr)
		}
		addr, err := strconv.Atoi(addrStr)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: bad address %q", ErrInvalidSelector, addrStr)
		}
		for _, d := range devices {
			if d.Bus == bus && d.Address == addr {
				return d, nil
			}
		}
		return Descriptor{}, fmt.Errorf("%w: bus %d address %d", ErrDeviceNotFound, bus, addr)
	}

	// Serial number selector
	var matches []Descriptor
	for _, d := range devices {
		if d.Serial == sel {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return Descriptor{}, fmt.Errorf("%w: serial %s", ErrDeviceNotFound, sel)
	case 1:
		return matches[0], nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %d devices with serial %s; use bus:addr or #N",
			ErrAmbiguousSerial, len(matches), sel)
	}
}

// SelectorUsage returns the help text for a device selector flag
func SelectorUsage() string {
	return `device selector: "" first device, "serial", "bus:addr" or "#N" (0-indexed)`
}
