package palette

import "errors"

var (
	ErrNoName       = errors.New("palette has no name")
	ErrTooFewStops  = errors.New("palette needs at least two color stops")
	ErrStopPosition = errors.New("palette stop position must be within [0, 1]")
	ErrBadColor     = errors.New("malformed color, expected #rrggbb")
)
