// Package repository persists rendered badge artifacts.
package repository

import "context"

// Store reads and writes QR images addressed by a sanitized visitor key.
type Store interface {
	// Put stores png under key, replacing any previous image.
	Put(ctx context.Context, key string, png []byte) error

	// Get returns the image stored under key.
	// Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an image is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Count returns the number of images written by this store.
	Count(ctx context.Context) int
}
