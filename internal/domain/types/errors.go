package types

import "errors"

// Errors shared by the service and the HTTP adapters.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidPage = errors.New("invalid page")
	ErrNotStarted  = errors.New("service not started")
)
