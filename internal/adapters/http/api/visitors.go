package api

import (
	"context"
	"net/http"

	"github.com/okian/badger/internal/domain/types"
)

// VisitorReader exposes visitor listings.
type VisitorReader interface {
	Visitors(ctx context.Context) ([]types.Visitor, error)
	Page(ctx context.Context, page int) (types.Page, error)
	Visitor(ctx context.Context, n int) (types.Visitor, error)
}

// VisitorsHandler serves visitor listings.
type VisitorsHandler struct {
	deps VisitorReader
}

// NewVisitorsHandler creates a new visitors handler.
func NewVisitorsHandler(deps VisitorReader) *VisitorsHandler {
	return &VisitorsHandler{deps: deps}
}

// HandleList handles GET /api/visitors.
func (h *VisitorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_visitors"
	vs, err := h.deps.Visitors(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, vs)
}

// HandlePage handles GET /api/badges/{page}.
func (h *VisitorsHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	const op = "api.badge_page"
	page, err := pathInt(r, "page", op)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p, err := h.deps.Page(r.Context(), page)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleOne handles GET /api/visitor/{n}.
func (h *VisitorsHandler) HandleOne(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_visitor"
	n, err := pathInt(r, "n", op)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	v, err := h.deps.Visitor(r.Context(), n)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}
