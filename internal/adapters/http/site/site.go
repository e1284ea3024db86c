// Package site renders the HTML pages for badges and pipeline reports.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/okian/badger/internal/domain/assign"
	"github.com/okian/badger/internal/domain/types"
)

// Error constants
var (
	ErrTemplate = errors.New("site template failed")
	ErrRender   = errors.New("site render failed")
)

//go:embed templates/*.html static/*
var assets embed.FS

// Reader is the read side of the service the pages are built from.
type Reader interface {
	Overview(ctx context.Context) (types.Overview, error)
	Visitors(ctx context.Context) ([]types.Visitor, error)
	Page(ctx context.Context, page int) (types.Page, error)
	Visitor(ctx context.Context, n int) (types.Visitor, error)
	FuzzyReport(ctx context.Context) ([]types.Visitor, error)
	Unlinked(ctx context.Context) (types.Unlinked, error)
}

var pages = []string{
	"overview.html",
	"badges.html",
	"empty_badge.html",
	"visitors_table.html",
	"fuzzy_email.html",
	"unlinked_breakouts.html",
}

var funcs = template.FuncMap{
	"full":  assign.IsSentinel,
	"score": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
	"taken": func(s types.Session) int { return s.Capacity - s.Remaining },
}

// Handler renders the HTML site.
type Handler struct {
	deps      Reader
	templates map[string]*template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(deps Reader) (*Handler, error) {
	h := &Handler{deps: deps, templates: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(assets, "templates/layout.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, p, err)
		}
		h.templates[p] = t
	}
	return h, nil
}

// Register attaches the site routes to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Reader) error {
	if mux == nil {
		panic("mux is nil")
	}
	h, err := NewHandler(deps)
	if err != nil {
		return err
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /{$}", h.HandleOverview)
	mux.HandleFunc("GET /all_badges", h.HandleAllBadges)
	mux.HandleFunc("GET /badge/{page}", h.HandleBadgePage)
	mux.HandleFunc("GET /visitor/{n}", h.HandleVisitor)
	mux.HandleFunc("GET /empty_badge", h.HandleEmptyBadge)
	mux.HandleFunc("GET /visitors_list", h.HandleVisitorsList)
	mux.HandleFunc("GET /fuzzy_email", h.HandleFuzzy)
	mux.HandleFunc("GET /unlinked_breakouts", h.HandleUnlinked)
	return nil
}

// render executes page into a buffer first so template failures still yield
// a clean 500.
func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	t, ok := h.templates[page]
	if !ok {
		http.Error(w, fmt.Sprintf("%v: unknown page %s", ErrRender, page), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, fmt.Sprintf("%v: %v", ErrRender, err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvalidPage):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrNotStarted):
		status = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), status)
}
