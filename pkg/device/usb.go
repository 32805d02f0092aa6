package device

import (
	"fmt"
	"sort"

	"github.com/google/gousb"
)

// Enumerate lists the known receivers attached over USB. Matching devices
// are opened only to read their serial number and are closed before
// returning. A receiver that matches but cannot be opened (claimed by
// another process or lacking permissions) is reported as unavailable.
func Enumerate(ctx *gousb.Context) ([]Descriptor, error) {
	type location struct{ bus, address int }
	matched := make(map[location]Driver)

	usbDevices, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		drv, ok := lookupUSB(uint16(desc.Vendor), uint16(desc.Product))
		if ok {
			matched[location{desc.Bus, desc.Address}] = drv
		}
		return ok
	})
	defer func() {
		for _, d := range usbDevices {
			d.Close()
		}
	}()
	if err != nil && len(matched) == 0 {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	opened := make(map[location]bool)
	var devices []Descriptor
	for _, usbDev := range usbDevices {
		loc := location{usbDev.Desc.Bus, usbDev.Desc.Address}
		serial, _ := usbDev.SerialNumber()
		devices = append(devices, matched[loc].Describe(serial, loc.bus, loc.address))
		opened[loc] = true
	}

	for loc, drv := range matched {
		if opened[loc] {
			continue
		}
		d := drv.Describe("", loc.bus, loc.address)
		d.Available = false
		devices = append(devices, d)
	}

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Bus != devices[j].Bus {
			return devices[i].Bus < devices[j].Bus
		}
		return devices[i].Address < devices[j].Address
	})

	return devices, nil
}
