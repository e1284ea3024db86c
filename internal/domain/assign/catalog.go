package assign

import "fmt"

// Session is one breakout session with its starting and remaining seats.
type Session struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
}

// Catalog is the ordered set of sessions for one time slot. Declaration order
// is significant: hash indexes address the Nth session.
type Catalog struct {
	slot     string
	sessions []Session
	index    map[string]int
}

// Spec declares a session and its starting capacity.
type Spec struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// NewCatalog validates specs and builds a Catalog for slot.
func NewCatalog(slot string, specs []Spec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s: %w", slot, ErrEmptyCatalog)
	}
	c := &Catalog{
		slot:     slot,
		sessions: make([]Session, 0, len(specs)),
		index:    make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		switch {
		case s.Name == "":
			return nil, fmt.Errorf("%s: %w", slot, ErrEmptySessionName)
		case s.Capacity < 0:
			return nil, fmt.Errorf("%s %q: %w", slot, s.Name, ErrNegativeCapacity)
		}
		if _, dup := c.index[s.Name]; dup {
			return nil, fmt.Errorf("%s %q: %w", slot, s.Name, ErrDuplicateSession)
		}
		c.index[s.Name] = len(c.sessions)
		c.sessions = append(c.sessions, Session{Name: s.Name, Capacity: s.Capacity, Remaining: s.Capacity})
	}
	return c, nil
}

// Slot names the time slot, e.g. "morning".
func (c *Catalog) Slot() string { return c.slot }

// Len returns the number of sessions.
func (c *Catalog) Len() int { return len(c.sessions) }

// Sessions returns a copy of the sessions in declaration order.
func (c *Catalog) Sessions() []Session {
	out := make([]Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// take finds the first session with a free seat probing forward from start,
// wrapping once. It decrements that session and returns its name, or
// NoSpotsAvailable when every session is full.
func (c *Catalog) take(start int) string {
	n := len(c.sessions)
	for i := 0; i < n; i++ {
		s := &c.sessions[(start+i)%n]
		if s.Remaining >= 1 {
			s.Remaining--
			return s.Name
		}
	}
	return NoSpotsAvailable
}
