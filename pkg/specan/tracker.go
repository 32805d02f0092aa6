package specan

import (
	"math"
	"sync"
	"time"
)

// Smoother implements adaptive frequency smoothing to prevent display jitter
// while staying responsive to new signals
type Smoother struct {
	value     float64 // current smoothed value, 0 when empty
	threshold float64 // Hz, above this difference use fast adaptation
	kFast     float64 // adaptation coefficient for large changes (0-1)
	kSlow     float64 // adaptation coefficient for small changes (0-1)
}

// NewSmoother creates a smoother. Zero parameters take the defaults.
func NewSmoother(threshold, kFast, kSlow float64) *Smoother {
	if threshold <= 0 {
		threshold = DefaultSmoothThreshold
	}
	if kFast <= 0 || kFast > 1 {
		kFast = DefaultKFast
	}
	if kSlow <= 0 || kSlow > 1 {
		kSlow = DefaultKSlow
	}
	return &Smoother{threshold: threshold, kFast: kFast, kSlow: kSlow}
}

// Update applies adaptive smoothing to a new value and returns the result
func (s *Smoother) Update(v float64) float64 {
	// First value is taken as is
	if s.value == 0 {
		s.value = v
		return v
	}

	k := s.kSlow
	if math.Abs(v-s.value) > s.threshold {
		k = s.kFast
	}
	s.value += (v - s.value) * k
	return s.value
}

// Value returns the current smoothed value
func (s *Smoother) Value() float64 { return s.value }

// Reset clears the smoother state
func (s *Smoother) Reset() { s.value = 0 }

// Signal is a carrier followed across frames
type Signal struct {
	FrequencyHz uint64 // smoothed
	RawHz       uint64 // last measured
	Level       float32
	MaxLevel    float32
	FirstSeen   time.Time
	LastSeen    time.Time
	Detections  int
}

// TrackerConfig holds signal tracker settings
type TrackerConfig struct {
	ThresholdDB float32 // minimum peak level for a detection
	HoldMax     int     // frames a signal is held after its last detection
	LostAt      int     // hold counter value at which OnLost fires
	Resolution  uint64  // Hz, detections closer than this are one signal

	// Callbacks (optional), called synchronously from Update
	OnDetected func(Signal)
	OnLost     func(Signal)

	// Debug callback (optional)
	DebugLog func(format string, args ...interface{}) `json:"-"`
}

// Tracker follows the strongest carrier of successive frames with
// hysteresis: a signal stays active for HoldMax frames without detection.
type Tracker struct {
	cfg      TrackerConfig
	smoother *Smoother

	mu      sync.RWMutex
	signals map[uint64]*Signal // key: frequency rounded to Resolution
	active  *Signal
	hold    int
}

// NewTracker creates a signal tracker
func NewTracker(cfg *TrackerConfig) *Tracker {
	c := TrackerConfig{}
	if cfg != nil {
		c = *cfg
	}
	if c.HoldMax <= 0 {
		c.HoldMax = DefaultHoldMax
	}
	if c.LostAt < 0 || c.LostAt >= c.HoldMax {
		c.LostAt = c.HoldMax * 3 / 4
	}
	if c.Resolution == 0 {
		c.Resolution = DefaultResolution
	}

	return &Tracker{
		cfg:      c,
		smoother: NewSmoother(0, 0, 0),
		signals:  make(map[uint64]*Signal),
	}
}

func (t *Tracker) debug(format string, args ...interface{}) {
	if t.cfg.DebugLog != nil {
		t.cfg.DebugLog(format, args...)
	}
}

// Update follows the strongest carrier of a frame
func (t *Tracker) Update(frame *Frame) {
	var detected, lost *Signal

	t.mu.Lock()
	if carriers := Carriers(frame, t.cfg.ThresholdDB); len(carriers) > 0 {
		detected = t.detect(frame, carriers[0])
	} else {
		lost = t.miss()
	}
	t.mu.Unlock()

	if detected != nil && t.cfg.OnDetected != nil {
		t.cfg.OnDetected(*detected)
	}
	if lost != nil && t.cfg.OnLost != nil {
		t.cfg.OnLost(*lost)
	}
}

// detect records a detection and returns a copy of the signal when it is
// new or replaces the active one
func (t *Tracker) detect(frame *Frame, peak Peak) *Signal {
	t.hold = t.cfg.HoldMax
	key := peak.FrequencyHz / t.cfg.Resolution * t.cfg.Resolution

	info, exists := t.signals[key]
	if !exists {
		info = &Signal{
			RawHz:     peak.FrequencyHz,
			Level:     peak.Level,
			MaxLevel:  peak.Level,
			FirstSeen: frame.Timestamp,
		}
		t.signals[key] = info
	}
	info.RawHz = peak.FrequencyHz
	info.Level = peak.Level
	info.LastSeen = frame.Timestamp
	info.Detections++
	if peak.Level > info.MaxLevel {
		info.MaxLevel = peak.Level
	}

	changed := t.active != info
	if changed {
		t.smoother.Reset()
	}
	info.FrequencyHz = uint64(math.Round(t.smoother.Update(float64(peak.FrequencyHz))))
	t.active = info

	if !changed {
		return nil
	}
	t.debug("tracker: signal at %d Hz, %.1f dB", info.FrequencyHz, info.Level)
	c := *info
	return &c
}

// miss counts down the hold counter and returns a copy of the active signal
// when it is considered lost
func (t *Tracker) miss() *Signal {
	if t.hold == 0 {
		return nil
	}
	t.hold--

	var lost *Signal
	if t.hold == t.cfg.LostAt && t.active != nil {
		c := *t.active
		lost = &c
	}
	if t.hold == 0 {
		t.active = nil
	}
	return lost
}

// Active returns the active signal
func (t *Tracker) Active() (Signal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil || t.hold == 0 {
		return Signal{}, false
	}
	return *t.active, true
}

// Signals returns every signal seen so far
func (t *Tracker) Signals() []Signal {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Signal, 0, len(t.signals))
	for _, s := range t.signals {
		out = append(out, *s)
	}
	return out
}

// Len returns the number of signals seen so far
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.signals)
}

// Prune removes signals not seen since the given time
func (t *Tracker) Prune(since time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for key, s := range t.signals {
		if s.LastSeen.Before(since) {
			if s == t.active {
				t.active = nil
				t.hold = 0
			}
			delete(t.signals, key)
			n++
		}
	}
	return n
}

// Clear forgets every signal
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.signals = make(map[uint64]*Signal)
	t.active = nil
	t.hold = 0
	t.smoother.Reset()
}
