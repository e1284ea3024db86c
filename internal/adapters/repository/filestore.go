package repository

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

const defaultExtension = ".png"

// FileStore implements Store on top of afs, so baseURL may be a local
// directory or any afs-supported location. Uploads run concurrently; mu
// guards only the written set.
type FileStore struct {
	mu      sync.RWMutex
	fs      afs.Service
	baseURL string
	ext     string
	written map[string]struct{}
}

// NewFileStore creates the base location if needed and returns a FileStore.
func NewFileStore(ctx context.Context, baseURL string, opts ...Option) (*FileStore, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base location must not be empty", ErrStorage)
	}
	s := &FileStore{
		fs:      afs.New(),
		ext:     defaultExtension,
		written: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	exists, err := s.fs.Exists(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !exists {
		if err := s.fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("%w: create %s: %w", ErrStorage, baseURL, err)
		}
	}
	s.baseURL = baseURL
	return s, nil
}

// Put stores png under key.
func (s *FileStore) Put(ctx context.Context, key string, png []byte) error {
	location, err := s.location(key)
	if err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(png)); err != nil {
		return fmt.Errorf("%w: upload %s: %w", ErrStorage, location, err)
	}
	s.mu.Lock()
	s.written[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Get returns the image stored under key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	location, err := s.location(key)
	if err != nil {
		return nil, err
	}
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %w", ErrStorage, location, err)
	}
	return data, nil
}

// Exists reports whether an image is stored under key.
func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	location, err := s.location(key)
	if err != nil {
		return false, err
	}
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return ok, nil
}

// Count returns the number of distinct keys written through this store.
func (s *FileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.written)
}

// location rejects keys that could escape the base location. Keys are
// expected to come from badge.SafeKey already; this is the last check.
func (s *FileStore) location(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.HasPrefix(key, ".") ||
		strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return url.Join(s.baseURL, key+s.ext), nil
}
