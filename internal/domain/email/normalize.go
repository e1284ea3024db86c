// Package email canonicalizes attendee email addresses.
package email

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoDomain stands in for the domain of an address without an "@".
const NoDomain = "INVALID_MAIL_NO_DOMAIN"

// Normalizer lowercases and trims addresses and resolves known aliases.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a Normalizer. Alias keys are canonicalized with
// Canonical so lookups ignore case and surrounding whitespace; targets are
// canonicalized as well.
func NewNormalizer(aliases map[string]string) *Normalizer {
	n := &Normalizer{aliases: make(map[string]string, len(aliases))}
	for raw, target := range aliases {
		n.aliases[Canonical(raw)] = Canonical(target)
	}
	return n
}

// Canonical lowercases and trims s without alias resolution.
func Canonical(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Normalize returns the canonical form of raw, substituting its alias target
// when one is configured.
func (n *Normalizer) Normalize(raw string) string {
	e := Canonical(raw)
	if n == nil {
		return e
	}
	if target, ok := n.aliases[e]; ok {
		return target
	}
	return e
}

// Aliases returns the number of configured aliases.
func (n *Normalizer) Aliases() int {
	if n == nil {
		return 0
	}
	return len(n.aliases)
}

// Split separates an address into the text before the first "@" and the
// text between the first and second "@". ok is false when there is no "@",
// in which case domain is NoDomain.
func Split(addr string) (local, domain string, ok bool) {
	parts := strings.SplitN(addr, "@", 3)
	if len(parts) < 2 {
		return parts[0], NoDomain, false
	}
	return parts[0], parts[1], true
}
