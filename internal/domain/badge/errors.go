package badge

import "errors"

// Sentinel kinds for badge errors.
var (
	ErrEncode = errors.New("qr encode failed")
)
