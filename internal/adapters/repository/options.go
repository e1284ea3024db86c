// Package repository persists rendered badge artifacts.
package repository

import "github.com/viant/afs"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithFileService overrides the afs backend, e.g. for tests.
func WithFileService(fs afs.Service) Option {
	return func(s *FileStore) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithExtension sets the file extension appended to keys.
func WithExtension(ext string) Option {
	return func(s *FileStore) {
		if ext != "" {
			s.ext = ext
		}
	}
}
