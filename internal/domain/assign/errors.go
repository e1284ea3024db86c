package assign

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrEmptyCatalog     = errors.New("session catalog is empty")
	ErrDuplicateSession = errors.New("duplicate session name")
	ErrNegativeCapacity = errors.New("session capacity must not be negative")
	ErrEmptySessionName = errors.New("session name must not be empty")
)
