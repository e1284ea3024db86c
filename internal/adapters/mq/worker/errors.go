package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrRender = errors.New("render badge")
	ErrStore  = errors.New("store badge")
)
