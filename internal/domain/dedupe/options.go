// Package dedupe records keys at most once while preserving first-seen order.
package dedupe

// Option applies a configuration option to the OrderedSet.
type Option func(*OrderedSet)

// WithCapacity pre-sizes the set for the expected number of keys.
func WithCapacity(n int) Option {
	return func(s *OrderedSet) {
		if n > 0 {
			s.capacity = n
		}
	}
}
