package site

import (
	"net/http"
	"strconv"

	"github.com/okian/badger/internal/domain/types"
)

type slotData struct {
	Title    string
	Sessions []types.Session
}

type overviewData struct {
	types.Overview
	Slots []slotData
}

type badgesData struct {
	Title    string
	Visitors []types.Visitor
}

// HandleOverview handles GET /.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	o, err := h.deps.Overview(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "overview.html", overviewData{
		Overview: o,
		Slots: []slotData{
			{Title: "Morning breakouts", Sessions: o.MorningBreakouts},
			{Title: "Afternoon breakouts", Sessions: o.AfternoonBreakouts},
		},
	})
}

// HandleAllBadges handles GET /all_badges.
func (h *Handler) HandleAllBadges(w http.ResponseWriter, r *http.Request) {
	vs, err := h.deps.Visitors(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "badges.html", badgesData{Title: "All badges", Visitors: vs})
}

// HandleBadgePage handles GET /badge/{page}.
func (h *Handler) HandleBadgePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("page"))
	if err != nil {
		http.Error(w, "page must be a number", http.StatusBadRequest)
		return
	}
	p, err := h.deps.Page(r.Context(), n)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "badges.html", badgesData{Title: "Badges page " + strconv.Itoa(p.Page), Visitors: p.Visitors})
}

// HandleVisitor handles GET /visitor/{n}.
func (h *Handler) HandleVisitor(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		http.Error(w, "visitor must be a number", http.StatusBadRequest)
		return
	}
	v, err := h.deps.Visitor(r.Context(), n)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "badges.html", badgesData{Title: v.Name, Visitors: []types.Visitor{v}})
}

// HandleEmptyBadge handles GET /empty_badge.
func (h *Handler) HandleEmptyBadge(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "empty_badge.html", nil)
}

// HandleVisitorsList handles GET /visitors_list.
func (h *Handler) HandleVisitorsList(w http.ResponseWriter, r *http.Request) {
	vs, err := h.deps.Visitors(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "visitors_table.html", vs)
}

// HandleFuzzy handles GET /fuzzy_email.
func (h *Handler) HandleFuzzy(w http.ResponseWriter, r *http.Request) {
	vs, err := h.deps.FuzzyReport(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "fuzzy_email.html", vs)
}

// HandleUnlinked handles GET /unlinked_breakouts.
func (h *Handler) HandleUnlinked(w http.ResponseWriter, r *http.Request) {
	u, err := h.deps.Unlinked(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "unlinked_breakouts.html", u)
}
