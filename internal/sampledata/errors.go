package sampledata

import "errors"

var (
	// ErrInvalidConfig is returned when the generator configuration is unusable.
	ErrInvalidConfig = errors.New("invalid sample data config")

	// ErrWrite is returned when an input document cannot be stored.
	ErrWrite = errors.New("write sample data")

	// ErrMismatch is returned when a running service disagrees with the dataset.
	ErrMismatch = errors.New("service result mismatch")
)
