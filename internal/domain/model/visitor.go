// Package model contains domain models passed between layers.
package model

// Visitor is a conference attendee loaded from the visitors source.
// Pipeline stages fill the breakout and fuzzy fields in place.
type Visitor struct {
	Position int    // 1-based position in the visitors source
	Email    string // raw email as loaded; unique, case-insensitive
	Name     string

	MorningBreakout   string
	AfternoonBreakout string

	// ExactMatch is true only when the visitor was linked to a signup record.
	ExactMatch bool
	// AssignedToBreakout is true once either the exact matcher or the
	// assigner has filled both breakout fields.
	AssignedToBreakout bool

	FuzzyEmailMatch string
	FuzzyEmailScore float64
}

// Signup is a breakout signup record keyed by normalized email.
type Signup struct {
	Email     string
	Date      string
	Morning   string
	Afternoon string
}

// SignupSet is an insertion-ordered collection of signups keyed by email.
// A repeated email keeps its first position and takes the latest values.
type SignupSet struct {
	keys  []string
	index map[string]Signup
}

// NewSignupSet builds a SignupSet from records in source order.
func NewSignupSet(records ...Signup) *SignupSet {
	s := &SignupSet{index: make(map[string]Signup, len(records))}
	for _, r := range records {
		s.Put(r)
	}
	return s
}

// Put inserts or replaces the signup for r.Email.
func (s *SignupSet) Put(r Signup) {
	if s.index == nil {
		s.index = make(map[string]Signup)
	}
	if _, ok := s.index[r.Email]; !ok {
		s.keys = append(s.keys, r.Email)
	}
	s.index[r.Email] = r
}

// Get returns the signup stored under email.
func (s *SignupSet) Get(email string) (Signup, bool) {
	if s == nil {
		return Signup{}, false
	}
	r, ok := s.index[email]
	return r, ok
}

// Keys returns signup emails in insertion order.
func (s *SignupSet) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// All returns signups in insertion order.
func (s *SignupSet) All() []Signup {
	if s == nil {
		return nil
	}
	out := make([]Signup, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.index[k])
	}
	return out
}

// Len returns the number of distinct signup emails.
func (s *SignupSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}
