package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	repository "github.com/okian/badger/internal/adapters/repository"
	"github.com/okian/badger/internal/domain/assign"
	"github.com/okian/badger/internal/domain/model"
	"github.com/okian/badger/internal/domain/types"
)

// current returns the last successful run. Callers hold at least a read lock.
func (s *Service) current() (*run, error) {
	if !s.started || s.state == nil {
		return nil, ErrNotStarted
	}
	return s.state, nil
}

// Overview returns headline counts and the remaining seats per session.
func (s *Service) Overview(_ context.Context) (types.Overview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.current()
	if err != nil {
		return types.Overview{}, err
	}
	return types.Overview{
		VisitorsCount:         len(r.visitors),
		VisitorsBreakoutCount: r.exact,
		MorningBreakouts:      toSessions(r.morning),
		AfternoonBreakouts:    toSessions(r.afternoon),
	}, nil
}

// Visitors returns every visitor in input order.
func (s *Service) Visitors(_ context.Context) ([]types.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.current()
	if err != nil {
		return nil, err
	}
	return toVisitors(r, r.visitors), nil
}

// Page returns the 1-based page of visitors sized by the badges-per-page
// setting. Pages past the end are empty.
func (s *Service) Page(_ context.Context, page int) (types.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.current()
	if err != nil {
		return types.Page{}, err
	}
	if page < 1 {
		return types.Page{}, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	start := min((page-1)*s.perPage, len(r.visitors))
	end := min(start+s.perPage, len(r.visitors))
	return types.Page{
		Page:     page,
		PerPage:  s.perPage,
		Total:    len(r.visitors),
		Visitors: toVisitors(r, r.visitors[start:end]),
	}, nil
}

// Visitor returns the visitor at 1-based position n.
func (s *Service) Visitor(_ context.Context, n int) (types.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.current()
	if err != nil {
		return types.Visitor{}, err
	}
	if n < 1 || n > len(r.visitors) {
		return types.Visitor{}, fmt.Errorf("%w: visitor %d", ErrNotFound, n)
	}
	return toVisitor(r, r.visitors[n-1]), nil
}

// FuzzyReport returns visitors ordered by fuzzy score, best first. Equal
// scores keep input order.
func (s *Service) FuzzyReport(_ context.Context) ([]types.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.current()
	if err != nil {
		return nil, err
	}
	out := toVisitors(r, r.visitors)
	slices.SortStableFunc(out, func(a, b types.Visitor) int {
		switch {
		case a.FuzzyEmailScore > b.FuzzyEmailScore:
			return -1
		case a.FuzzyEmailScore < b.FuzzyEmailScore:
			return 1
		}
		return 0
	})
	return out, nil
}

// Unlinked returns the signups no visitor claimed, in signup order, along
// with the claimed emails.
func (s *Service) Unlinked(_ context.Context) (types.Unlinked, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.current()
	if err != nil {
		return types.Unlinked{}, err
	}
	out := types.Unlinked{
		LinkedEmails: r.linked.Items(),
		Signups:      []types.Signup{},
	}
	for _, sg := range r.signups.All() {
		if r.linked.Contains(sg.Email) {
			continue
		}
		out.Signups = append(out.Signups, types.Signup{
			Email:     sg.Email,
			Date:      sg.Date,
			Morning:   sg.Morning,
			Afternoon: sg.Afternoon,
		})
	}
	return out, nil
}

// QR returns the stored QR image for key.
func (s *Service) QR(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.current(); err != nil {
		return nil, err
	}
	png, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidKey) {
		return nil, fmt.Errorf("%w: qr %q", ErrNotFound, key)
	}
	return png, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"runs":    s.runs,
		"perPage": s.perPage,
	}
	if r := s.state; r != nil {
		stats["visitors"] = len(r.visitors)
		stats["signups"] = r.signups.Len()
		stats["aliases"] = r.aliases
		stats["exactMatches"] = r.exact
		stats["linkedSignups"] = r.linked.Size()
		stats["assigned"] = r.summary.Assigned
		stats["morningFull"] = r.summary.MorningFull
		stats["afternoonFull"] = r.summary.AfternoonFull
		stats["qrStored"] = len(r.qrKeys)
		stats["qrFailed"] = r.qrFailed
		stats["lastRun"] = r.finishedAt
		stats["lastRunMs"] = r.took.Milliseconds()
	}
	return stats
}

func toVisitors(r *run, vs []*model.Visitor) []types.Visitor {
	out := make([]types.Visitor, len(vs))
	for i, v := range vs {
		out[i] = toVisitor(r, v)
	}
	return out
}

func toVisitor(r *run, v *model.Visitor) types.Visitor {
	return types.Visitor{
		Position:           v.Position,
		Email:              v.Email,
		Name:               v.Name,
		MorningBreakout:    v.MorningBreakout,
		AfternoonBreakout:  v.AfternoonBreakout,
		ExactMatch:         v.ExactMatch,
		AssignedToBreakout: v.AssignedToBreakout,
		FuzzyEmailMatch:    v.FuzzyEmailMatch,
		FuzzyEmailScore:    v.FuzzyEmailScore,
		QRKey:              r.qrKeys[v.Position],
	}
}

func toSessions(c *assign.Catalog) []types.Session {
	src := c.Sessions()
	out := make([]types.Session, len(src))
	for i, sess := range src {
		out[i] = types.Session{Name: sess.Name, Capacity: sess.Capacity, Remaining: sess.Remaining}
	}
	return out
}
