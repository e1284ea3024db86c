package api

import (
	"context"
	"net/http"
)

// Rerunner re-executes the assignment pipeline.
type Rerunner interface {
	Rerun(ctx context.Context) error
}

// RerunHandler triggers a pipeline re-run.
type RerunHandler struct {
	deps Rerunner
}

// NewRerunHandler creates a new rerun handler.
func NewRerunHandler(deps Rerunner) *RerunHandler {
	return &RerunHandler{deps: deps}
}

type rerunResponse struct {
	Status string `json:"status"`
}

// HandleRerun handles POST /api/rerun.
func (h *RerunHandler) HandleRerun(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Rerun(r.Context()); err != nil {
		writeServiceError(w, Wrap("api.rerun", err))
		return
	}
	writeJSON(w, http.StatusOK, rerunResponse{Status: "ok"})
}
