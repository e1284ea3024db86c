package matching

import "errors"

// Sentinel kinds for matching errors.
var (
	ErrEmptySignups = errors.New("fuzzy matching requires at least one signup")
)
