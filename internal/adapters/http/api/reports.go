package api

import (
	"context"
	"net/http"

	"github.com/okian/badger/internal/domain/types"
)

// ReportReader exposes the aggregated pipeline reports.
type ReportReader interface {
	Overview(ctx context.Context) (types.Overview, error)
	FuzzyReport(ctx context.Context) ([]types.Visitor, error)
	Unlinked(ctx context.Context) (types.Unlinked, error)
}

// ReportsHandler serves overview, fuzzy and unlinked reports.
type ReportsHandler struct {
	deps ReportReader
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps ReportReader) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleOverview handles GET /api/overview.
func (h *ReportsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	o, err := h.deps.Overview(r.Context())
	if err != nil {
		writeServiceError(w, Wrap("api.overview", err))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// HandleFuzzy handles GET /api/fuzzy.
func (h *ReportsHandler) HandleFuzzy(w http.ResponseWriter, r *http.Request) {
	vs, err := h.deps.FuzzyReport(r.Context())
	if err != nil {
		writeServiceError(w, Wrap("api.fuzzy", err))
		return
	}
	writeJSON(w, http.StatusOK, vs)
}

// HandleUnlinked handles GET /api/unlinked.
func (h *ReportsHandler) HandleUnlinked(w http.ResponseWriter, r *http.Request) {
	u, err := h.deps.Unlinked(r.Context())
	if err != nil {
		writeServiceError(w, Wrap("api.unlinked", err))
		return
	}
	writeJSON(w, http.StatusOK, u)
}
