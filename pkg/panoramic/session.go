package panoramic

import (
	"fmt"
	"time"

	"github.com/herlein/panscan/pkg/config"
	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
	"github.com/herlein/panscan/pkg/specan"
)

// GainControl is the state of one gain stage of the selected device
type GainControl struct {
	Name  string
	Min   float32
	Max   float32
	Step  float32
	Value float32
}

// Editable tells which settings may currently change
type Editable struct {
	Device     bool
	FullRange  bool
	Range      bool
	Lnb        bool
	SampleRate bool
}

// SessionEvents receives session notifications. Nil callbacks are skipped.
type SessionEvents struct {
	OnDetailChanged       func(Window)
	OnGainChanged         func(name string, value float32)
	OnStart               func()
	OnStop                func()
	OnStrategyChanged     func(specan.Strategy)
	OnPartitioningChanged func(specan.Partitioning)
	OnRttChanged          func(time.Duration)
	OnRelBwChanged        func(rel float64)
}

// SessionConfig holds session settings
type SessionConfig struct {
	MinBwForZoom uint64
	RelBwPercent int
	Palettes     *palette.Table
	State        *config.PanoramicConfig
	Recorder     Recorder
	Events       SessionEvents

	// Debug callback (optional)
	DebugLog func(format string, args ...interface{}) `json:"-"`
}

// Session is the panoramic scan session: device selection, scan range,
// gains and display settings around an Autorange.
type Session struct {
	wf   Waterfall
	auto *Autorange

	devices  []device.Descriptor
	selected int
	banned   string

	lnb       float64
	fullRange bool
	devLimits freq.Limits
	scan      freq.Range

	gains []GainControl

	rtt          time.Duration
	relBwPercent int
	strategy     specan.Strategy
	partitioning specan.Partitioning
	palettes     *palette.Table
	paletteName  string
	sampleRate   uint64
	running      bool

	state    *config.PanoramicConfig
	events   SessionEvents
	recorder Recorder
	debugLog func(format string, args ...interface{})
}

// NewSession creates a session driving wf
func NewSession(wf Waterfall, cfg *SessionConfig) *Session {
	if cfg == nil {
		cfg = &SessionConfig{}
	}

	s := &Session{
		wf:           wf,
		selected:     -1,
		relBwPercent: cfg.RelBwPercent,
		strategy:     specan.StrategyStochastic,
		partitioning: specan.PartitionDiscrete,
		palettes:     cfg.Palettes,
		state:        cfg.State,
		events:       cfg.Events,
		recorder:     cfg.Recorder,
		debugLog:     cfg.DebugLog,
	}
	if s.palettes == nil {
		s.palettes = palette.NewTable()
	}
	if s.state == nil {
		s.state = config.NewPanoramicConfig()
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.relBwPercent <= 0 || s.relBwPercent > 100 {
		s.relBwPercent = DefaultRelBwPercent
	}

	s.auto = NewAutorange(wf, &AutorangeConfig{
		MinBwForZoom:    cfg.MinBwForZoom,
		RelBw:           float64(s.relBwPercent) / 100,
		OnDetailChanged: s.detailChanged,
		Recorder:        s.recorder,
		DebugLog:        cfg.DebugLog,
	})
	s.sampleRate = s.state.SampleRate
	s.scan = freq.Range{Start: int64(s.state.RangeMin), End: int64(s.state.RangeMax)}

	return s
}

func (s *Session) debug(format string, args ...interface{}) {
	if s.debugLog != nil {
		s.debugLog(format, args...)
	}
}

func (s *Session) detailChanged(w Window) {
	if s.events.OnDetailChanged != nil {
		s.events.OnDetailChanged(w)
	}
}

// Autorange returns the session's autorange state machine
func (s *Session) Autorange() *Autorange { return s.auto }

// --- Devices ---

// SetDevices replaces the device list. Only available devices reporting a
// tunable range are kept. The device saved in the configuration is
// selected when present, otherwise the first one.
func (s *Session) SetDevices(list []device.Descriptor) {
	s.devices = device.Usable(list)
	s.selected = -1

	if len(s.devices) > 0 {
		s.selected = 0
		for i, d := range s.devices {
			if d.Desc() == s.state.Device {
				s.selected = i
				break
			}
		}
	}

	s.deviceChanged()
}

// Devices returns the selectable devices
func (s *Session) Devices() []device.Descriptor {
	out := make([]device.Descriptor, len(s.devices))
	copy(out, s.devices)
	return out
}

// SelectDevice selects a device by description
func (s *Session) SelectDevice(desc string) error {
	if s.running {
		return ErrRunning
	}
	for i, d := range s.devices {
		if d.Desc() == desc {
			s.selected = i
			s.deviceChanged()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownDevice, desc)
}

// SelectedDevice returns the selected device
func (s *Session) SelectedDevice() (device.Descriptor, bool) {
	if s.selected < 0 || s.selected >= len(s.devices) {
		return device.Descriptor{}, false
	}
	return s.devices[s.selected], true
}

// SetBannedDevice names the device in use by the main window. Scans on it
// are refused.
func (s *Session) SetBannedDevice(desc string) {
	s.banned = desc
}

func (s *Session) deviceChanged() {
	dev, ok := s.SelectedDevice()
	if !ok {
		s.gains = nil
		s.devLimits = freq.Limits{}
		return
	}

	s.setRanges(dev)
	s.refreshGains(dev)
	if rtt, ok := device.PreferredRtt(dev.Driver); ok {
		s.SetRtt(rtt)
	}
	s.debug("device changed: %s, limits [%d, %d] Hz", dev.Desc(), s.devLimits.Min, s.devLimits.Max)
}

// --- Ranges ---

func (s *Session) setRanges(dev device.Descriptor) {
	s.devLimits = freq.ScanLimits(dev.MinFreq, dev.MaxFreq, s.lnb)
	s.applyScan(freq.ResolveRange(s.devLimits, s.scan, s.fullRange))
}

func (s *Session) applyScan(r freq.Range) {
	s.scan = r.Ordered()
	s.auto.SetLimits(freq.Limits{Min: s.scan.Start, Max: s.scan.End})
}

// SetLnbOffset sets the LNB offset and recomputes the ranges
func (s *Session) SetLnbOffset(lnb float64) {
	s.lnb = lnb
	if dev, ok := s.SelectedDevice(); ok {
		s.setRanges(dev)
	}
}

// LnbOffset returns the LNB offset
func (s *Session) LnbOffset() float64 { return s.lnb }

// SetFullRange toggles scanning the whole device range
func (s *Session) SetFullRange(full bool) {
	s.fullRange = full
	if _, ok := s.SelectedDevice(); ok && full {
		s.applyScan(freq.Range{Start: s.devLimits.Min, End: s.devLimits.Max})
	}
}

// FullRange reports whether the whole device range is scanned
func (s *Session) FullRange() bool { return s.fullRange }

// SetScanRange sets the scan range. Edges are clamped into the device
// limits and swapped when out of order.
func (s *Session) SetScanRange(start, end float64) {
	r := freq.Range{Start: int64(start), End: int64(end)}
	if _, ok := s.SelectedDevice(); ok {
		r = freq.Range{Start: s.devLimits.Clamp(r.Start), End: s.devLimits.Clamp(r.End)}
	}
	s.applyScan(r)
}

// ScanRange returns the scan range
func (s *Session) ScanRange() freq.Range { return s.scan }

// DeviceLimits returns the selected device's limits after LNB correction
func (s *Session) DeviceLimits() freq.Limits { return s.devLimits }

// --- Gains ---

func (s *Session) refreshGains(dev device.Descriptor) {
	s.gains = make([]GainControl, 0, len(dev.Gains))
	for _, g := range dev.Gains {
		value := g.Default
		if s.state.Gains.Has(dev.Driver, g.Name) {
			value = s.state.Gains.Get(dev.Driver, g.Name)
		}
		s.gains = append(s.gains, GainControl{
			Name:  g.Name,
			Min:   g.Min,
			Max:   g.Max,
			Step:  g.Step,
			Value: g.Clamp(value),
		})
	}
}

// GainControls returns the gain stages of the selected device
func (s *Session) GainControls() []GainControl {
	out := make([]GainControl, len(s.gains))
	copy(out, s.gains)
	return out
}

// NoGains reports whether the selected device has no gain stages
func (s *Session) NoGains() bool {
	return len(s.gains) == 0
}

// GainLabel returns a one-line gain summary for display
func (s *Session) GainLabel() string {
	if s.NoGains() {
		return NoGainsLabel
	}
	label := ""
	for i, g := range s.gains {
		if i > 0 {
			label += ", "
		}
		label += fmt.Sprintf("%s %g dB", g.Name, g.Value)
	}
	return label
}

// Gain returns the value of a gain stage, or 0
func (s *Session) Gain(name string) float32 {
	for _, g := range s.gains {
		if g.Name == name {
			return g.Value
		}
	}
	return 0
}

// SetGain changes a gain stage of the selected device and stores it in the
// gain profile of the device's driver
func (s *Session) SetGain(name string, value float32) error {
	dev, ok := s.SelectedDevice()
	if !ok {
		return ErrNoDevice
	}
	for i := range s.gains {
		if s.gains[i].Name != name {
			continue
		}
		stage := device.GainStage{Min: s.gains[i].Min, Max: s.gains[i].Max}
		value = stage.Clamp(value)
		s.gains[i].Value = value
		s.state.Gains.Set(dev.Driver, name, value)
		if s.events.OnGainChanged != nil {
			s.events.OnGainChanged(name, value)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownGain, name)
}

// --- Scan control ---

// StartScan starts scanning on the selected device. It is refused when the
// device is in use by the main window.
func (s *Session) StartScan() error {
	dev, ok := s.SelectedDevice()
	if !ok {
		return ErrNoDevice
	}
	if s.banned != "" && dev.Desc() == s.banned {
		s.recorder.ScanRefused()
		return ErrDeviceInUse
	}

	s.setRunning(true)
	if s.events.OnStart != nil {
		s.events.OnStart()
	}
	return nil
}

// StopScan stops scanning
func (s *Session) StopScan() {
	s.setRunning(false)
	if s.events.OnStop != nil {
		s.events.OnStop()
	}
}

func (s *Session) setRunning(running bool) {
	if running && !s.running {
		s.auto.ResetFrames()
	} else if !running && s.running {
		s.sampleRate = s.state.SampleRate
	}
	s.running = running
}

// Running reports whether a scan is in progress
func (s *Session) Running() bool { return s.running }

// Editable reports which settings the user may change now
func (s *Session) Editable() Editable {
	empty := len(s.devices) == 0
	return Editable{
		Device:     !s.running && !empty,
		FullRange:  !s.running && !empty,
		Range:      !s.running && !empty && !s.fullRange,
		Lnb:        !s.running,
		SampleRate: !s.running,
	}
}

// SetSampleRate sets the preferred sample rate. It is stored in the
// configuration only while not scanning.
func (s *Session) SetSampleRate(rate uint64) {
	s.sampleRate = rate
	if !s.running {
		s.state.SampleRate = rate
	}
}

// PreferredSampleRate returns the preferred sample rate
func (s *Session) PreferredSampleRate() uint64 { return s.sampleRate }

// SetMinBwForZoom sets the fixed mode threshold, which is also the
// preferred sample rate
func (s *Session) SetMinBwForZoom(bw uint64) {
	s.auto.SetMinBwForZoom(bw)
	s.SetSampleRate(bw)
}

// SetRelBwPercent sets the relative bandwidth slider, 1 to 100
func (s *Session) SetRelBwPercent(percent int) {
	if percent < 1 {
		percent = 1
	}
	if percent > 100 {
		percent = 100
	}
	s.relBwPercent = percent
	s.auto.SetRelBw(s.RelBw())
	if s.events.OnRelBwChanged != nil {
		s.events.OnRelBwChanged(s.RelBw())
	}
}

// RelBw returns the relative bandwidth factor
func (s *Session) RelBw() float64 {
	return float64(s.relBwPercent) / 100
}

// SetRtt sets the frame round trip time
func (s *Session) SetRtt(rtt time.Duration) {
	s.rtt = rtt
	if s.events.OnRttChanged != nil {
		s.events.OnRttChanged(rtt)
	}
}

// Rtt returns the frame round trip time
func (s *Session) Rtt() time.Duration { return s.rtt }

// SetStrategy sets the sweep strategy
func (s *Session) SetStrategy(st specan.Strategy) {
	s.strategy = st
	if s.events.OnStrategyChanged != nil {
		s.events.OnStrategyChanged(st)
	}
}

// Strategy returns the sweep strategy
func (s *Session) Strategy() specan.Strategy { return s.strategy }

// SetPartitioning sets the sweep partitioning
func (s *Session) SetPartitioning(p specan.Partitioning) {
	s.partitioning = p
	if s.events.OnPartitioningChanged != nil {
		s.events.OnPartitioningChanged(p)
	}
}

// Partitioning returns the effective partitioning: progressive sweeps are
// always discrete
func (s *Session) Partitioning() specan.Partitioning {
	if s.strategy == specan.StrategyProgressive {
		return specan.PartitionDiscrete
	}
	return s.partitioning
}

// PartitioningEditable reports whether the partitioning may be chosen
func (s *Session) PartitioningEditable() bool {
	return s.strategy != specan.StrategyProgressive
}

// --- Display ---

// SetPaletteGradient selects the waterfall palette by name
func (s *Session) SetPaletteGradient(name string) error {
	p, ok := s.palettes.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPalette, name)
	}
	s.paletteName = name
	s.wf.SetPalette(p)
	return nil
}

// PaletteGradient returns the selected palette name
func (s *Session) PaletteGradient() string { return s.paletteName }

// HandleRangeChanged stores a pandapter dB range change and mirrors it on
// the waterfall
func (s *Session) HandleRangeChanged(min, max float32) {
	s.state.PanRangeMin = min
	s.state.PanRangeMax = max
	s.wf.SetWaterfallRange(min, max)
}

// HandleZoom forwards a display zoom change to the autorange
func (s *Session) HandleZoom() { s.auto.HandleZoom() }

// HandleCenterFreq forwards a display pan to the autorange
func (s *Session) HandleCenterFreq(f int64) { s.auto.HandleCenterFreq(f) }

// HandleFilterChanged refreshes the measures after the filter moved
func (s *Session) HandleFilterChanged() { s.auto.RedrawMeasures() }

// Feed forwards a spectral frame to the autorange
func (s *Session) Feed(frame *specan.Frame) { s.auto.Feed(frame) }

// --- Configuration ---

// SaveConfig stores the session settings in the configuration
func (s *Session) SaveConfig() *config.PanoramicConfig {
	if dev, ok := s.SelectedDevice(); ok {
		s.state.Device = dev.Desc()
	} else {
		s.state.Device = ""
	}
	s.state.LnbFreq = s.lnb
	s.state.Palette = s.paletteName
	s.state.RangeMin = float64(s.scan.Start)
	s.state.RangeMax = float64(s.scan.End)
	s.state.Strategy = string(s.strategy)
	s.state.Partitioning = string(s.partitioning)
	s.state.FullRange = s.fullRange
	return s.state
}

// ApplyConfig restores the session settings from the configuration
func (s *Session) ApplyConfig() {
	if s.state.Palette != "" {
		if err := s.SetPaletteGradient(s.state.Palette); err != nil {
			s.debug("ApplyConfig: %v", err)
		}
	}

	s.lnb = s.state.LnbFreq
	s.scan = freq.Range{Start: int64(s.state.RangeMin), End: int64(s.state.RangeMax)}
	s.fullRange = s.state.FullRange
	s.sampleRate = s.state.SampleRate

	if st, err := specan.ParseStrategy(s.state.Strategy); err == nil {
		s.strategy = st
	}
	if p, err := specan.ParsePartitioning(s.state.Partitioning); err == nil {
		s.partitioning = p
	}

	s.wf.SetPandapterRange(s.state.PanRangeMin, s.state.PanRangeMax)
	s.wf.SetWaterfallRange(s.state.PanRangeMin, s.state.PanRangeMax)

	for i, d := range s.devices {
		if d.Desc() == s.state.Device {
			s.selected = i
			break
		}
	}
	s.deviceChanged()
	if _, ok := s.SelectedDevice(); !ok {
		s.applyScan(s.scan)
	}
}
