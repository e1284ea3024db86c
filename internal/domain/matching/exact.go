// Package matching links visitors to breakout signup records by email.
package matching

import (
	"github.com/okian/badger/internal/domain/dedupe"
	"github.com/okian/badger/internal/domain/email"
	"github.com/okian/badger/internal/domain/model"
)

// ExactMatcher links visitors whose normalized email equals a signup key.
type ExactMatcher struct {
	normalizer *email.Normalizer
}

// NewExactMatcher creates an ExactMatcher. A nil normalizer canonicalizes
// without aliases.
func NewExactMatcher(n *email.Normalizer) *ExactMatcher {
	return &ExactMatcher{normalizer: n}
}

// Attach copies the signup sessions onto every visitor with an exact match,
// marks it matched and assigned, and records the claimed signup email in
// linked. Visitors without a match are left untouched. It returns the number
// of visitors matched.
func (m *ExactMatcher) Attach(visitors []*model.Visitor, signups *model.SignupSet, linked dedupe.Recorder) int {
	matched := 0
	for _, v := range visitors {
		key := m.normalizer.Normalize(v.Email)
		if key == "" {
			continue
		}
		s, ok := signups.Get(key)
		if !ok {
			continue
		}
		v.MorningBreakout = s.Morning
		v.AfternoonBreakout = s.Afternoon
		v.ExactMatch = true
		v.AssignedToBreakout = true
		if linked != nil {
			linked.SeenAndRecord(key)
		}
		matched++
	}
	return matched
}
