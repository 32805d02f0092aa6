package device

import "fmt"

// Driver is the static description of a supported receiver family
type Driver struct {
	Name      string
	Label     string
	VendorID  uint16
	ProductID uint16
	MinFreq   float64
	MaxFreq   float64
	Gains     []GainStage
}

// knownDrivers lists the receivers recognised during USB enumeration
var knownDrivers = []Driver{
	{
		Name:      "rtlsdr",
		Label:     "RTL-SDR",
		VendorID:  0x0bda,
		ProductID: 0x2838,
		MinFreq:   24e6,
		MaxFreq:   1766e6,
		Gains: []GainStage{
			{Name: "TUNER", Min: 0, Max: 49.6, Step: 0.1, Default: 30},
		},
	},
	{
		Name:      "hackrf",
		Label:     "HackRF One",
		VendorID:  0x1d50,
		ProductID: 0x6089,
		MinFreq:   1e6,
		MaxFreq:   6e9,
		Gains: []GainStage{
			{Name: "AMP", Min: 0, Max: 14, Step: 14, Default: 0},
			{Name: "LNA", Min: 0, Max: 40, Step: 8, Default: 16},
			{Name: "VGA", Min: 0, Max: 62, Step: 2, Default: 20},
		},
	},
	{
		Name:      "airspy",
		Label:     "Airspy",
		VendorID:  0x1d50,
		ProductID: 0x60a1,
		MinFreq:   24e6,
		MaxFreq:   1800e6,
		Gains: []GainStage{
			{Name: "LNA", Min: 0, Max: 15, Step: 1, Default: 7},
			{Name: "MIX", Min: 0, Max: 15, Step: 1, Default: 7},
			{Name: "VGA", Min: 0, Max: 15, Step: 1, Default: 5},
		},
	},
	{
		// CC1111 based transceiver; no adjustable gain stages
		Name:      "yardstick",
		Label:     "YARD Stick One",
		VendorID:  0x1d50,
		ProductID: 0x605b,
		MinFreq:   300e6,
		MaxFreq:   928e6,
	},
}

// Drivers returns the known driver table
func Drivers() []Driver {
	out := make([]Driver, len(knownDrivers))
	copy(out, knownDrivers)
	return out
}

// LookupDriver returns the known driver with the given name
func LookupDriver(name string) (Driver, error) {
	for _, d := range knownDrivers {
		if d.Name == name {
			return d, nil
		}
	}
	return Driver{}, fmt.Errorf("%w: %s", ErrUnknownDriver, name)
}

// lookupUSB returns the driver matching a USB vendor/product pair
func lookupUSB(vid, pid uint16) (Driver, bool) {
	for _, d := range knownDrivers {
		if d.VendorID == vid && d.ProductID == pid {
			return d, true
		}
	}
	return Driver{}, false
}

// Describe builds a descriptor for a receiver of this driver
func (d Driver) Describe(serial string, bus, address int) Descriptor {
	gains := make([]GainStage, len(d.Gains))
	copy(gains, d.Gains)
	return Descriptor{
		Driver:    d.Name,
		Label:     d.Label,
		Serial:    serial,
		Bus:       bus,
		Address:   address,
		MinFreq:   d.MinFreq,
		MaxFreq:   d.MaxFreq,
		Gains:     gains,
		Available: true,
	}
}
