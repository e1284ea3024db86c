package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound   = errors.New("qr code not found")
	ErrInvalidKey = errors.New("invalid qr key")
	ErrStorage    = errors.New("qr storage failed")
)
