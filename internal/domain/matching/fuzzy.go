package matching

import (
	"fmt"

	"github.com/okian/badger/internal/domain/email"
	"github.com/okian/badger/internal/domain/model"
	"github.com/okian/badger/internal/domain/scoring"
)

// FuzzyMatcher finds, for every visitor, the signup whose local-part looks
// most like the visitor's. Results are informational and never affect
// breakout assignment.
type FuzzyMatcher struct {
	normalizer *email.Normalizer
	scorer     scoring.Scorer
}

// NewFuzzyMatcher creates a FuzzyMatcher. A nil scorer defaults to the
// ratio scorer.
func NewFuzzyMatcher(n *email.Normalizer, scorer scoring.Scorer) *FuzzyMatcher {
	if scorer == nil {
		scorer = scoring.NewRatioScorer()
	}
	return &FuzzyMatcher{normalizer: n, scorer: scorer}
}

// Attach overwrites FuzzyEmailMatch and FuzzyEmailScore on every visitor.
func (m *FuzzyMatcher) Attach(visitors []*model.Visitor, signups *model.SignupSet) error {
	if signups.Len() == 0 {
		return ErrEmptySignups
	}
	keys := signups.Keys()
	locals := make([]string, len(keys))
	domains := make([]string, len(keys))
	for i, k := range keys {
		locals[i], domains[i], _ = email.Split(k)
	}

	for _, v := range visitors {
		local, _, _ := email.Split(m.normalizer.Normalize(v.Email))
		best, err := scoring.BestMatch(m.scorer, local, locals)
		if err != nil {
			return fmt.Errorf("match %q: %w", v.Email, err)
		}
		v.FuzzyEmailMatch = best.Choice + "@" + domains[best.Index]
		v.FuzzyEmailScore = best.Score
	}
	return nil
}
