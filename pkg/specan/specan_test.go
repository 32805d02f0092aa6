package specan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameAnalysis(t *testing.T) {
	frame := &Frame{
		FreqStart: 100000000,
		FreqEnd:   100001000,
		Samples:   []float32{-90, -85, -40, -88, -60, -92, -91, -89, -90, -95},
	}

	assert.Equal(t, uint64(1000), frame.Width())
	assert.Equal(t, uint64(100000500), frame.Center())
	assert.Equal(t, uint64(100000200), BinFrequency(frame, 2))

	stats := Analyze(frame)
	assert.Equal(t, 2, stats.Peak.Bin)
	assert.Equal(t, float32(-40), stats.Peak.Level)
	assert.Equal(t, 9, stats.Floor.Bin)
	assert.Equal(t, float32(55), stats.SNR())
	assert.InDelta(t, -82.0, stats.Average, 0.001)

	empty := Analyze(&Frame{FreqStart: 7})
	assert.Equal(t, -1, empty.Peak.Bin)
	assert.Equal(t, uint64(7), empty.Peak.FrequencyHz)
	assert.Equal(t, NoSignalLevel, empty.Average)
	assert.Equal(t, float32(0), empty.SNR())
}

func TestCarriersCollapseRuns(t *testing.T) {
	frame := &Frame{
		FreqStart: 0,
		FreqEnd:   1000,
		Samples:   []float32{-90, -50, -45, -55, -90, -60, -90, -90, -30, -35},
	}

	carriers := Carriers(frame, -70)
	require.Len(t, carriers, 3)
	assert.Equal(t, Peak{Bin: 8, FrequencyHz: 800, Level: -30}, carriers[0])
	assert.Equal(t, Peak{Bin: 2, FrequencyHz: 200, Level: -45}, carriers[1])
	assert.Equal(t, Peak{Bin: 5, FrequencyHz: 500, Level: -60}, carriers[2])

	assert.Empty(t, Carriers(frame, -10))
	assert.Empty(t, Carriers(&Frame{}, -100))
}

func TestFrameCloneAndBounds(t *testing.T) {
	a := &Frame{FreqStart: 10, FreqEnd: 20, Samples: []float32{1, 2}}
	b := a.Clone()
	b.Samples[0] = 9

	assert.Equal(t, float32(1), a.Samples[0])
	assert.True(t, a.SameBounds(b))
	assert.False(t, a.SameBounds(nil))
	assert.False(t, a.SameBounds(&Frame{FreqStart: 10, FreqEnd: 21}))
}

func TestSynthesizerPlacesCarrier(t *testing.T) {
	s := NewSynthesizer(&SynthConfig{
		Bins:    512,
		NoiseDB: -80,
		Carriers: []Carrier{
			{FrequencyHz: 100250000, LevelDB: -20},
			{FrequencyHz: 500000000, LevelDB: 0},
		},
		Seed: 1,
	})

	frame := s.Synthesize(100000000, 101000000)
	require.Len(t, frame.Samples, 512)

	stats := Analyze(frame)
	assert.InDelta(t, 100250000, float64(stats.Peak.FrequencyHz), 4000)
	assert.InDelta(t, -20, float64(stats.Peak.Level), 3)
	assert.Less(t, stats.Floor.Level, float32(-60))

	carriers := Carriers(frame, -50)
	require.NotEmpty(t, carriers)
	assert.Equal(t, stats.Peak, carriers[0])
}

func TestSynthesizerEmptyWindow(t *testing.T) {
	s := NewSynthesizer(&SynthConfig{Bins: 16})
	frame := s.Synthesize(5, 5)
	require.Len(t, frame.Samples, 16)
	assert.Equal(t, NoSignalLevel, frame.Samples[0])
}

func TestSweeperProgressive(t *testing.T) {
	s := NewSweeper(1000, StrategyProgressive, PartitionContinuous, 1)
	s.SetWindow(0, 2500, false)

	var starts []uint64
	for i := 0; i < 4; i++ {
		lo, hi := s.Next()
		assert.Equal(t, uint64(1000), hi-lo)
		starts = append(starts, lo)
	}
	assert.Equal(t, []uint64{0, 1000, 1500, 0}, starts)
	assert.Equal(t, PartitionDiscrete, s.Partitioning())
}

func TestSweeperStochasticStaysInWindow(t *testing.T) {
	for _, p := range []Partitioning{PartitionContinuous, PartitionDiscrete} {
		s := NewSweeper(1000, StrategyStochastic, p, 7)
		s.SetWindow(10000, 20000, false)
		for i := 0; i < 200; i++ {
			lo, hi := s.Next()
			assert.GreaterOrEqual(t, lo, uint64(10000))
			assert.LessOrEqual(t, hi, uint64(20000))
			if p == PartitionDiscrete {
				assert.Zero(t, (lo-10000)%1000)
			}
		}
	}
}

func TestSweeperFixedWindow(t *testing.T) {
	s := NewSweeper(1000000, StrategyStochastic, PartitionContinuous, 1)
	s.SetWindow(100200000, 100000000, true)

	lo, hi := s.Next()
	assert.Equal(t, uint64(99600000), lo)
	assert.Equal(t, uint64(100600000), hi)

	s.SetWindow(0, 100, false)
	lo, hi = s.Next()
	assert.Equal(t, uint64(0), lo)
	assert.Equal(t, uint64(1000000), hi)
}

func TestParseNames(t *testing.T) {
	st, err := ParseStrategy("Progressive")
	require.NoError(t, err)
	assert.Equal(t, StrategyProgressive, st)
	_, err = ParseStrategy("progressive")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	p, err := ParsePartitioning("Discrete")
	require.NoError(t, err)
	assert.Equal(t, PartitionDiscrete, p)
	_, err = ParsePartitioning("")
	assert.ErrorIs(t, err, ErrUnknownPartitioning)
}

func TestSmootherAdapts(t *testing.T) {
	s := NewSmoother(0, 0, 0)

	assert.Equal(t, 100.0, s.Update(100))
	assert.InDelta(t, 900100.0, s.Update(1000100), 0.001, "large jumps adapt fast")
	assert.InDelta(t, 900103.0, s.Update(900200), 0.001, "small changes adapt slowly")

	s.Reset()
	assert.Equal(t, 0.0, s.Value())
}

func trackerFrame(peakLevel float32) *Frame {
	samples := []float32{-90, -91, -92, -90, -90, -89, -90, -93, -90, -91}
	samples[4] = peakLevel
	return &Frame{FreqStart: 100000000, FreqEnd: 100001000, Samples: samples}
}

func TestTrackerHoldAndLoss(t *testing.T) {
	var detected, lost []Signal
	tr := NewTracker(&TrackerConfig{
		ThresholdDB: -50,
		HoldMax:     4,
		LostAt:      2,
		OnDetected:  func(s Signal) { detected = append(detected, s) },
		OnLost:      func(s Signal) { lost = append(lost, s) },
	})

	tr.Update(trackerFrame(-30))
	tr.Update(trackerFrame(-20))
	require.Len(t, detected, 1)
	assert.Equal(t, uint64(100000400), detected[0].FrequencyHz)

	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, 2, active.Detections)
	assert.Equal(t, float32(-20), active.MaxLevel)

	for i := 0; i < 4; i++ {
		tr.Update(trackerFrame(-90))
	}
	require.Len(t, lost, 1)
	assert.Equal(t, uint64(100000400), lost[0].RawHz)

	_, ok = tr.Active()
	assert.False(t, ok)
	assert.Equal(t, 1, tr.Len())

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
}
