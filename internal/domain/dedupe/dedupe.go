// Package dedupe records keys at most once while preserving first-seen order.
package dedupe

// Recorder records keys and reports whether they were already present.
type Recorder interface {
	// SeenAndRecord returns true if key was already recorded, otherwise
	// records it and returns false.
	SeenAndRecord(key string) bool
	Contains(key string) bool
	Size() int
}

// OrderedSet implements Recorder with a map for membership and a slice for
// first-seen order. It is not safe for concurrent mutation; callers that
// share it must serialize writes.
type OrderedSet struct {
	seen     map[string]struct{}
	order    []string
	capacity int
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet(opts ...Option) *OrderedSet {
	s := &OrderedSet{}
	for _, opt := range opts {
		opt(s)
	}
	s.seen = make(map[string]struct{}, s.capacity)
	s.order = make([]string, 0, s.capacity)
	return s
}

// SeenAndRecord records key unless it is already present.
func (s *OrderedSet) SeenAndRecord(key string) bool {
	if _, ok := s.seen[key]; ok {
		return true
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	return false
}

// Contains reports whether key was recorded.
func (s *OrderedSet) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[key]
	return ok
}

// Items returns the recorded keys in first-seen order.
func (s *OrderedSet) Items() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Size returns the number of recorded keys.
func (s *OrderedSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
