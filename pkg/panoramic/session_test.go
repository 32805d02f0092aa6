package panoramic

import (
	"testing"
	"time"

	"github.com/herlein/panscan/pkg/config"
	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/palette"
	"github.com/herlein/panscan/pkg/specan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describe(t *testing.T, driver, serial string) device.Descriptor {
	t.Helper()
	d, err := device.LookupDriver(driver)
	require.NoError(t, err)
	return d.Describe(serial, 1, 2)
}

func newSession(t *testing.T, state *config.PanoramicConfig) (*Session, *fakeWaterfall, *countingRecorder) {
	t.Helper()
	wf := &fakeWaterfall{}
	rec := &countingRecorder{}
	s := NewSession(wf, &SessionConfig{
		MinBwForZoom: 1000000,
		RelBwPercent: 50,
		State:        state,
		Recorder:     rec,
	})
	return s, wf, rec
}

func TestSetDevicesKeepsUsable(t *testing.T) {
	s, _, _ := newSession(t, nil)

	rtl := describe(t, "rtlsdr", "0001")
	busy := describe(t, "hackrf", "abc")
	busy.Available = false
	broken := describe(t, "airspy", "x")
	broken.MaxFreq = 0

	s.SetDevices([]device.Descriptor{rtl, busy, broken})

	require.Len(t, s.Devices(), 1)
	dev, ok := s.SelectedDevice()
	require.True(t, ok)
	assert.Equal(t, "RTL-SDR (0001)", dev.Desc())

	s.SetDevices(nil)
	_, ok = s.SelectedDevice()
	assert.False(t, ok)
	assert.True(t, s.NoGains())
	assert.Equal(t, NoGainsLabel, s.GainLabel())
}

func TestSetDevicesSelectsSavedDevice(t *testing.T) {
	state := config.NewPanoramicConfig()
	state.Device = "HackRF One (abc)"
	s, _, _ := newSession(t, state)

	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001"), describe(t, "hackrf", "abc")})

	dev, ok := s.SelectedDevice()
	require.True(t, ok)
	assert.Equal(t, "hackrf", dev.Driver)
	assert.Equal(t, freq.Limits{Min: 1000000, Max: freq.SafetyBound}, s.DeviceLimits())

	err := s.SelectDevice("nope")
	assert.ErrorIs(t, err, ErrUnknownDevice)
	require.NoError(t, s.SelectDevice("RTL-SDR (0001)"))
	assert.Equal(t, freq.Limits{Min: 24000000, Max: 1766000000}, s.DeviceLimits())
}

func TestScanRangeFollowsDeviceAndLnb(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001")})

	assert.Equal(t, freq.Range{Start: 88000000, End: 108000000}, s.ScanRange())
	assert.Equal(t, freq.Limits{Min: 88000000, Max: 108000000}, s.Autorange().Limits())

	s.SetLnbOffset(10000000)
	assert.Equal(t, freq.Limits{Min: 14000000, Max: 1756000000}, s.DeviceLimits())
	assert.Equal(t, freq.Range{Start: 88000000, End: 108000000}, s.ScanRange())

	// The saved range falls below the shifted limits and snaps to all of them
	s.SetLnbOffset(-125000000)
	assert.Equal(t, freq.Limits{Min: 149000000, Max: 1891000000}, s.DeviceLimits())
	assert.Equal(t, freq.Range{Start: 149000000, End: 1891000000}, s.ScanRange())
}

func TestSetScanRangeClampsAndOrders(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001")})

	s.SetScanRange(120e6, 100e6)
	assert.Equal(t, freq.Range{Start: 100000000, End: 120000000}, s.ScanRange())

	s.SetScanRange(1e6, 50e6)
	assert.Equal(t, freq.Range{Start: 24000000, End: 50000000}, s.ScanRange())
	assert.Equal(t, freq.Limits{Min: 24000000, Max: 50000000}, s.Autorange().Limits())
}

func TestFullRange(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001")})

	s.SetFullRange(true)
	assert.Equal(t, freq.Range{Start: 24000000, End: 1766000000}, s.ScanRange())
	assert.False(t, s.Editable().Range)

	s.SetLnbOffset(4000000)
	assert.Equal(t, freq.Range{Start: 20000000, End: 1762000000}, s.ScanRange())
}

func TestGainControlsUseStoredValues(t *testing.T) {
	state := config.NewPanoramicConfig()
	state.Gains.Set("rtlsdr", "TUNER", 12.5)
	s, _, _ := newSession(t, state)

	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001"), describe(t, "hackrf", "abc")})
	controls := s.GainControls()
	require.Len(t, controls, 1)
	assert.Equal(t, float32(12.5), controls[0].Value)
	assert.Equal(t, "TUNER 12.5 dB", s.GainLabel())

	require.NoError(t, s.SelectDevice("HackRF One (abc)"))
	controls = s.GainControls()
	require.Len(t, controls, 3)
	assert.Equal(t, "LNA", controls[1].Name)
	assert.Equal(t, float32(16), controls[1].Value, "device default without a stored value")
}

func TestSetGainPersistsPerDriver(t *testing.T) {
	var names []string
	var values []float32
	state := config.NewPanoramicConfig()
	s := NewSession(&fakeWaterfall{}, &SessionConfig{
		State: state,
		Events: SessionEvents{
			OnGainChanged: func(name string, value float32) {
				names = append(names, name)
				values = append(values, value)
			},
		},
	})
	s.SetDevices([]device.Descriptor{describe(t, "hackrf", "abc")})

	require.NoError(t, s.SetGain("LNA", 24))
	require.NoError(t, s.SetGain("VGA", 100))
	assert.ErrorIs(t, s.SetGain("TUNER", 1), ErrUnknownGain)

	assert.Equal(t, []string{"LNA", "VGA"}, names)
	assert.Equal(t, []float32{24, 62}, values)
	assert.Equal(t, float32(24), state.Gains.Get("hackrf", "LNA"))
	assert.Equal(t, float32(62), s.Gain("VGA"))
	assert.False(t, state.Gains.Has("rtlsdr", "LNA"))
}

func TestDeviceWithoutGains(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetDevices([]device.Descriptor{describe(t, "yardstick", "")})

	assert.True(t, s.NoGains())
	assert.Equal(t, NoGainsLabel, s.GainLabel())
	assert.ErrorIs(t, s.SetGain("LNA", 1), ErrUnknownGain)
}

func TestStartScanRefusesBannedDevice(t *testing.T) {
	started := 0
	rec := &countingRecorder{}
	s := NewSession(&fakeWaterfall{}, &SessionConfig{
		Recorder: rec,
		Events:   SessionEvents{OnStart: func() { started++ }},
	})

	assert.ErrorIs(t, s.StartScan(), ErrNoDevice)

	rtl := describe(t, "rtlsdr", "0001")
	s.SetDevices([]device.Descriptor{rtl, describe(t, "airspy", "x")})
	s.SetBannedDevice(rtl.Desc())

	assert.ErrorIs(t, s.StartScan(), ErrDeviceInUse)
	assert.False(t, s.Running())
	assert.Equal(t, 1, rec.refusals)
	assert.Equal(t, 0, started)

	require.NoError(t, s.SelectDevice("Airspy (x)"))
	require.NoError(t, s.StartScan())
	assert.True(t, s.Running())
	assert.Equal(t, 1, started)

	assert.ErrorIs(t, s.SelectDevice(rtl.Desc()), ErrRunning)
}

func TestStartScanResetsFrames(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001")})

	s.Feed(&specan.Frame{FreqStart: 88000000, FreqEnd: 96000000})
	s.Feed(&specan.Frame{FreqStart: 88000000, FreqEnd: 96000000})
	require.Equal(t, uint64(2), s.Autorange().Measures().Frames)

	require.NoError(t, s.StartScan())
	assert.Equal(t, uint64(0), s.Autorange().Measures().Frames)
}

func TestEditable(t *testing.T) {
	s, _, _ := newSession(t, nil)
	assert.Equal(t, Editable{Lnb: true, SampleRate: true}, s.Editable())

	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001")})
	assert.Equal(t, Editable{Device: true, FullRange: true, Range: true, Lnb: true, SampleRate: true}, s.Editable())

	require.NoError(t, s.StartScan())
	assert.Equal(t, Editable{}, s.Editable())

	s.StopScan()
	assert.True(t, s.Editable().Device)
}

func TestStopScanRestoresSampleRate(t *testing.T) {
	stopped := 0
	state := config.NewPanoramicConfig()
	s := NewSession(&fakeWaterfall{}, &SessionConfig{
		State:  state,
		Events: SessionEvents{OnStop: func() { stopped++ }},
	})
	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001")})

	s.SetSampleRate(2000000)
	assert.Equal(t, uint64(2000000), state.SampleRate)

	require.NoError(t, s.StartScan())
	s.SetSampleRate(4000000)
	assert.Equal(t, uint64(4000000), s.PreferredSampleRate())
	assert.Equal(t, uint64(2000000), state.SampleRate, "not stored while scanning")

	s.StopScan()
	assert.Equal(t, uint64(2000000), s.PreferredSampleRate())
	assert.Equal(t, 1, stopped)
}

func TestMinBwForZoomSetsSampleRate(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetMinBwForZoom(2000000)

	assert.Equal(t, uint64(2000000), s.Autorange().MinBwForZoom())
	assert.Equal(t, uint64(2000000), s.PreferredSampleRate())
}

func TestRelBwPercent(t *testing.T) {
	var got []float64
	s := NewSession(&fakeWaterfall{}, &SessionConfig{
		Events: SessionEvents{OnRelBwChanged: func(rel float64) { got = append(got, rel) }},
	})
	assert.Equal(t, 0.5, s.RelBw())

	s.SetRelBwPercent(0)
	assert.Equal(t, 0.01, s.Autorange().RelBw())
	s.SetRelBwPercent(250)
	assert.Equal(t, 1.0, s.Autorange().RelBw())
	assert.Equal(t, []float64{0.01, 1}, got)
}

func TestPreferredRtt(t *testing.T) {
	var rtts []time.Duration
	s := NewSession(&fakeWaterfall{}, &SessionConfig{
		Events: SessionEvents{OnRttChanged: func(d time.Duration) { rtts = append(rtts, d) }},
	})
	s.SetDevices([]device.Descriptor{describe(t, "rtlsdr", "0001"), describe(t, "yardstick", "")})
	assert.Equal(t, 60*time.Millisecond, s.Rtt())

	require.NoError(t, s.SelectDevice("YARD Stick One (1:2)"))
	assert.Equal(t, 60*time.Millisecond, s.Rtt(), "drivers without a preference keep the current value")
	assert.Equal(t, []time.Duration{60 * time.Millisecond}, rtts)
}

func TestPartitioningForcedByProgressive(t *testing.T) {
	s, _, _ := newSession(t, nil)

	s.SetPartitioning(specan.PartitionContinuous)
	assert.Equal(t, specan.PartitionContinuous, s.Partitioning())
	assert.True(t, s.PartitioningEditable())

	s.SetStrategy(specan.StrategyProgressive)
	assert.Equal(t, specan.PartitionDiscrete, s.Partitioning())
	assert.False(t, s.PartitioningEditable())

	s.SetStrategy(specan.StrategyStochastic)
	assert.Equal(t, specan.PartitionContinuous, s.Partitioning())
}

func TestPaletteAndRanges(t *testing.T) {
	state := config.NewPanoramicConfig()
	s, wf, _ := newSession(t, state)

	require.NoError(t, s.SetPaletteGradient(palette.GqrxName))
	require.NotNil(t, wf.palette)
	assert.Equal(t, palette.GqrxName, wf.palette.Name)
	assert.ErrorIs(t, s.SetPaletteGradient("Rainbow"), ErrUnknownPalette)
	assert.Equal(t, palette.GqrxName, s.PaletteGradient())

	s.HandleRangeChanged(-110, -30)
	assert.Equal(t, float32(-110), state.PanRangeMin)
	assert.Equal(t, float32(-30), state.PanRangeMax)
	assert.Equal(t, float32(-110), wf.wfMin)
	assert.Equal(t, float32(-30), wf.wfMax)
}

func TestSaveApplyConfigRoundTrip(t *testing.T) {
	devices := []device.Descriptor{describe(t, "rtlsdr", "0001"), describe(t, "airspy", "x")}

	s, _, _ := newSession(t, nil)
	s.SetDevices(devices)
	require.NoError(t, s.SelectDevice("Airspy (x)"))
	s.SetLnbOffset(-1000000)
	s.SetScanRange(400e6, 470e6)
	s.SetStrategy(specan.StrategyProgressive)
	s.SetPartitioning(specan.PartitionContinuous)
	require.NoError(t, s.SetPaletteGradient(palette.DefaultName))
	require.NoError(t, s.SetGain("MIX", 11))
	s.HandleRangeChanged(-100, -20)

	obj := s.SaveConfig().Serialize()
	restored := config.NewPanoramicConfig()
	restored.Deserialize(obj)

	r, wf, _ := newSession(t, restored)
	r.SetDevices(devices)
	r.ApplyConfig()

	dev, ok := r.SelectedDevice()
	require.True(t, ok)
	assert.Equal(t, "Airspy (x)", dev.Desc())
	assert.Equal(t, float64(-1000000), r.LnbOffset())
	assert.Equal(t, freq.Range{Start: 400000000, End: 470000000}, r.ScanRange())
	assert.Equal(t, specan.StrategyProgressive, r.Strategy())
	assert.Equal(t, specan.PartitionDiscrete, r.Partitioning())
	assert.Equal(t, palette.DefaultName, r.PaletteGradient())
	assert.Equal(t, float32(11), r.Gain("MIX"))
	assert.Equal(t, float32(-100), wf.panMin)
	assert.Equal(t, float32(-20), wf.wfMax)
}
