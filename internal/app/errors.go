package service

import (
	"errors"

	"github.com/okian/badger/internal/domain/types"
)

// Sentinel kinds for service errors. Reader errors reuse the shared kinds in
// types so HTTP adapters can classify them without importing this package.
var (
	ErrNotStarted  = types.ErrNotStarted
	ErrNotFound    = types.ErrNotFound
	ErrInvalidPage = types.ErrInvalidPage
	ErrPipeline    = errors.New("pipeline failed")
)
