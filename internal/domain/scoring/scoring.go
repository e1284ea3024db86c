// Package scoring computes string-similarity scores on a 0-100 scale.
package scoring

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// maxScoreValue is the score of two identical strings.
const maxScoreValue = 100

// ErrNoChoices is returned by BestMatch when there is nothing to match against.
var ErrNoChoices = errors.New("no choices to match against")

// Scorer rates how similar two strings are.
type Scorer interface {
	// Score returns a value in [0, 100]; 100 means identical.
	Score(a, b string) float64
}

// Option applies a configuration option to the RatioScorer.
type Option func(*RatioScorer)

// WithPrecision rounds scores to the given number of decimals.
// Negative values disable rounding.
func WithPrecision(decimals int) Option {
	return func(s *RatioScorer) {
		s.precision = decimals
	}
}

// RatioScorer implements Scorer with the normalized Indel similarity
// 200*LCS(a,b) / (len(a)+len(b)), measured in runes. It is a plain ratio,
// not a weighted one: it does not switch to partial (substring) matching
// when one string is 1.5 or more times longer than the other, so such
// pairs score lower than a weighted ratio would rate them.
type RatioScorer struct {
	precision int
}

// NewRatioScorer creates a RatioScorer. Scores are rounded to two decimals
// unless overridden.
func NewRatioScorer(opts ...Option) *RatioScorer {
	s := &RatioScorer{precision: 2}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the similarity of a and b. Two empty strings score 100.
func (s *RatioScorer) Score(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return maxScoreValue
	}
	score := float64(2*edlib.LCS(a, b)) * maxScoreValue / float64(total)
	score = math.Max(0, math.Min(maxScoreValue, score))
	if s.precision >= 0 {
		p := math.Pow(10, float64(s.precision))
		score = math.Round(score*p) / p
	}
	return score
}

// Match is the best candidate selected by BestMatch.
type Match struct {
	Choice string
	Score  float64
	Index  int
}

// BestMatch returns the choice scoring highest against query. Ties resolve
// to the earliest choice.
func BestMatch(scorer Scorer, query string, choices []string) (Match, error) {
	if len(choices) == 0 {
		return Match{}, ErrNoChoices
	}
	best := Match{Index: -1, Score: -1}
	for i, c := range choices {
		sc := scorer.Score(query, c)
		if sc > best.Score {
			best = Match{Choice: c, Score: sc, Index: i}
			if sc == maxScoreValue {
				break
			}
		}
	}
	return best, nil
}
