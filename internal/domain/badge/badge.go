// Package badge prepares per-visitor badge artifacts such as QR codes.
package badge

import (
	"crypto/md5" //nolint:gosec // used for a short fallback key only
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/okian/badger/internal/domain/model"
	qrcode "github.com/skip2/go-qrcode"
)

// Fixed QR encoding parameters.
const (
	recoveryLevel = qrcode.Low
	// moduleSize is in pixels; go-qrcode adds a fixed 4-module quiet zone.
	moduleSize = 10

	fallbackKeyPrefix = "visitor-"
	fallbackHashBytes = 6
	suffixHashBytes   = 4
)

// Artifact is the rendered QR code for one visitor.
type Artifact struct {
	Key     string // filesystem-safe storage key derived from the email
	Payload string
	PNG     []byte
}

// Payload returns the QR payload for a visitor: name, a newline, then email.
func Payload(name, email string) string {
	return name + "\n" + email
}

// Preparer renders QR artifacts.
type Preparer struct {
	level      qrcode.RecoveryLevel
	moduleSize int
}

// NewPreparer returns a Preparer using the fixed encoding parameters.
func NewPreparer() *Preparer {
	return &Preparer{level: recoveryLevel, moduleSize: moduleSize}
}

// Prepare renders the visitor's QR code. Empty names or emails still
// produce a valid code.
func (p *Preparer) Prepare(v *model.Visitor) (Artifact, error) {
	payload := Payload(v.Name, v.Email)
	q, err := qrcode.New(payload, p.level)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	// A negative size asks for moduleSize pixels per module.
	png, err := q.PNG(-p.moduleSize)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return Artifact{Key: SafeKey(v.Email), Payload: payload, PNG: png}, nil
}

// SafeKey turns an untrusted email into a token usable as a single path
// component. It lowercases and trims the input, replaces every rune outside
// [a-z0-9._@+-] with "_", and strips leading dots. A rewritten key gets a
// short hash suffix of the lowercased email, so a/b@x.com and a_b@x.com stay
// distinct. Inputs that reduce to nothing get a hash-based key instead.
func SafeKey(email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	var b strings.Builder
	b.Grow(len(e))
	for _, r := range e {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '@', r == '+', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	key := strings.TrimLeft(b.String(), ".")
	if strings.Trim(key, "_") == "" {
		sum := md5.Sum([]byte(email)) //nolint:gosec // see import
		return fallbackKeyPrefix + hex.EncodeToString(sum[:fallbackHashBytes])
	}
	if key != e {
		sum := md5.Sum([]byte(e)) //nolint:gosec // see import
		key += "-" + hex.EncodeToString(sum[:suffixHashBytes])
	}
	return key
}
