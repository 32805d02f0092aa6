package bandplan

import "errors"

var (
	// ErrNoName indicates a table without a name
	ErrNoName = errors.New("frequency allocation table has no name")

	// ErrBadEntry indicates a band entry that is not an object
	ErrBadEntry = errors.New("band entry is not an object")

	// ErrBadField indicates a band field of the wrong type
	ErrBadField = errors.New("band field has wrong type")
)
