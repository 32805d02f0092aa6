package specan

import (
	"fmt"
	"math/rand"
)

// Strategy selects how the sweeper walks a wide detail window
type Strategy string

// Partitioning selects where the sweeper may place its frames
type Partitioning string

const (
	// StrategyStochastic visits random positions of the window
	StrategyStochastic Strategy = "Stochastic"
	// StrategyProgressive visits the window in ascending order
	StrategyProgressive Strategy = "Progressive"

	// PartitionContinuous allows frames at any position
	PartitionContinuous Partitioning = "Continuous"
	// PartitionDiscrete aligns frames to a grid of frame widths
	PartitionDiscrete Partitioning = "Discrete"
)

// ParseStrategy validates a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStochastic, StrategyProgressive:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// ParsePartitioning validates a partitioning name
func ParsePartitioning(s string) (Partitioning, error) {
	switch Partitioning(s) {
	case PartitionContinuous, PartitionDiscrete:
		return Partitioning(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPartitioning, s)
}

// Sweeper decides which frame to acquire next inside the current detail
// window. A window narrower than the frame width is acquired in one frame
// centered on it.
type Sweeper struct {
	start, end   uint64
	fixed        bool
	width        uint64
	strategy     Strategy
	partitioning Partitioning
	next         uint64 // next progressive frame start
	rng          *rand.Rand
}

// NewSweeper creates a sweeper producing frames of the given width
func NewSweeper(width uint64, strategy Strategy, partitioning Partitioning, seed int64) *Sweeper {
	return &Sweeper{
		width:        width,
		strategy:     strategy,
		partitioning: partitioning,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// SetWindow replaces the detail window
func (s *Sweeper) SetWindow(start, end uint64, fixed bool) {
	if start > end {
		start, end = end, start
	}
	s.start, s.end, s.fixed = start, end, fixed
	s.next = start
}

// SetWidth changes the frame width
func (s *Sweeper) SetWidth(width uint64) {
	s.width = width
}

// SetStrategy changes the walk strategy
func (s *Sweeper) SetStrategy(strategy Strategy) {
	s.strategy = strategy
}

// SetPartitioning changes the partitioning
func (s *Sweeper) SetPartitioning(p Partitioning) {
	s.partitioning = p
}

// Partitioning returns the effective partitioning. Progressive walks are
// always discrete.
func (s *Sweeper) Partitioning() Partitioning {
	if s.strategy == StrategyProgressive {
		return PartitionDiscrete
	}
	return s.partitioning
}

// Next returns the bounds of the next frame to acquire
func (s *Sweeper) Next() (uint64, uint64) {
	span := s.end - s.start
	if s.fixed || span <= s.width || s.width == 0 {
		return s.around(s.start + span/2)
	}

	var lo uint64
	switch {
	case s.strategy == StrategyProgressive:
		lo = s.next
		s.next += s.width
		if s.next >= s.end {
			s.next = s.start
		}
	case s.Partitioning() == PartitionDiscrete:
		slots := (span + s.width - 1) / s.width
		lo = s.start + uint64(s.rng.Int63n(int64(slots)))*s.width
	default:
		lo = s.start + uint64(s.rng.Int63n(int64(span-s.width+1)))
	}

	if lo+s.width > s.end {
		lo = s.end - s.width
	}
	return lo, lo + s.width
}

func (s *Sweeper) around(center uint64) (uint64, uint64) {
	half := s.width / 2
	if center < half {
		return 0, s.width
	}
	return center - half, center - half + s.width
}
