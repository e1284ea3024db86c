// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/badger/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	VisitorReader
	ReportReader
	QRReader

	// Rerun executes the assignment pipeline again from fresh inputs.
	Rerun(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	visitorsHandler *VisitorsHandler
	reportsHandler  *ReportsHandler
	qrHandler       *QRHandler
	rerunHandler    *RerunHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		visitorsHandler: NewVisitorsHandler(deps),
		reportsHandler:  NewReportsHandler(deps),
		qrHandler:       NewQRHandler(deps),
		rerunHandler:    NewRerunHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/overview", MetricsMiddleware(s.reportsHandler.HandleOverview, "overview"))
	mux.HandleFunc("GET /api/visitors", MetricsMiddleware(s.visitorsHandler.HandleList, "visitors"))
	mux.HandleFunc("GET /api/badges/{page}", MetricsMiddleware(s.visitorsHandler.HandlePage, "badges"))
	mux.HandleFunc("GET /api/visitor/{n}", MetricsMiddleware(s.visitorsHandler.HandleOne, "visitor"))
	mux.HandleFunc("GET /api/fuzzy", MetricsMiddleware(s.reportsHandler.HandleFuzzy, "fuzzy"))
	mux.HandleFunc("GET /api/unlinked", MetricsMiddleware(s.reportsHandler.HandleUnlinked, "unlinked"))
	mux.HandleFunc("POST /api/rerun", MetricsMiddleware(s.rerunHandler.HandleRerun, "rerun"))
	mux.HandleFunc("GET /qrcodes/{file}", MetricsMiddleware(s.qrHandler.HandleQR, "qrcodes"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps the shared service error kinds to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrInvalidPage), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, types.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// pathInt parses the named path value as a decimal integer.
func pathInt(r *http.Request, name, op string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, WrapKind(op, ErrBadRequest, err)
	}
	return n, nil
}
