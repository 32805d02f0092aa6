package specan

import (
	"math"
	"math/cmplx"
	"math/rand"
	"time"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Carrier is a continuous wave tone placed in the synthetic spectrum
type Carrier struct {
	FrequencyHz uint64
	LevelDB     float64
}

// SynthConfig holds synthetic frame source configuration
type SynthConfig struct {
	Bins     int     // FFT size, bins per frame
	NoiseDB  float64 // noise floor
	Carriers []Carrier
	Seed     int64

	// Debug callback (optional)
	DebugLog func(format string, args ...interface{}) `json:"-"`
}

// Synthesizer produces power spectrum frames for arbitrary windows by
// generating baseband IQ samples and running them through a windowed FFT
type Synthesizer struct {
	bins     int
	noise    float64
	carriers []Carrier
	hann     []float64
	rng      *rand.Rand
	debugLog func(format string, args ...interface{})
}

// NewSynthesizer creates a synthetic frame source
func NewSynthesizer(cfg *SynthConfig) *Synthesizer {
	bins := cfg.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	carriers := make([]Carrier, len(cfg.Carriers))
	copy(carriers, cfg.Carriers)

	return &Synthesizer{
		bins:     bins,
		noise:    math.Pow(10, cfg.NoiseDB/20),
		carriers: carriers,
		hann:     window.Hann(bins),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		debugLog: cfg.DebugLog,
	}
}

func (s *Synthesizer) debug(format string, args ...interface{}) {
	if s.debugLog != nil {
		s.debugLog(format, args...)
	}
}

// Bins returns the number of bins per frame
func (s *Synthesizer) Bins() int {
	return s.bins
}

// Synthesize returns the power spectrum of [start, end] as a receiver tuned
// to the window center with a sample rate equal to its width would see it
func (s *Synthesizer) Synthesize(start, end uint64) *Frame {
	frame := &Frame{
		Timestamp: time.Now(),
		FreqStart: start,
		FreqEnd:   end,
		Samples:   make([]float32, s.bins),
	}
	if end <= start {
		for i := range frame.Samples {
			frame.Samples[i] = NoSignalLevel
		}
		return frame
	}

	rate := float64(end - start)
	center := float64(start) + rate/2
	n := s.bins

	iq := make([]complex128, n)
	sigma := s.noise / math.Sqrt2
	for i := range iq {
		iq[i] = complex(s.rng.NormFloat64()*sigma, s.rng.NormFloat64()*sigma)
	}

	visible := 0
	for _, c := range s.carriers {
		f := float64(c.FrequencyHz)
		if f < float64(start) || f >= float64(end) {
			continue
		}
		visible++
		amp := math.Pow(10, c.LevelDB/20)
		step := 2 * math.Pi * (f - center) / rate
		phase := s.rng.Float64() * 2 * math.Pi
		for i := range iq {
			iq[i] += cmplx.Rect(amp, phase+step*float64(i))
		}
	}

	for i := range iq {
		iq[i] *= complex(s.hann[i], 0)
	}

	spectrum := fft.FFT(iq)

	// Hann coherent gain is 0.5; scale so a tone of amplitude A reads 20log10(A)
	norm := 0.5 * float64(n)
	for i := range frame.Samples {
		// FFT shift: bin 0 of the frame is the lowest frequency
		k := (i + n/2) % n
		mag := cmplx.Abs(spectrum[k]) / norm
		if mag < 1e-10 {
			mag = 1e-10
		}
		frame.Samples[i] = float32(20 * math.Log10(mag))
	}

	s.debug("Synthesize: [%d, %d] Hz, %d carriers visible", start, end, visible)
	return frame
}
