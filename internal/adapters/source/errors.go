package source

import (
	"errors"
	"fmt"
)

// Sentinel kinds for source errors.
var (
	ErrRead          = errors.New("read source failed")
	ErrDecode        = errors.New("decode source failed")
	ErrInvalidRecord = errors.New("invalid record")
)

// RecordError describes one malformed input row.
type RecordError struct {
	Source string
	Line   int
	Field  string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s line %d: missing %s", e.Source, e.Line, e.Field)
}

// Unwrap lets callers match RecordError with errors.Is(err, ErrInvalidRecord).
func (e *RecordError) Unwrap() error { return ErrInvalidRecord }
