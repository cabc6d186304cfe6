package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"taxonline/internal/platform/metrics"
	"taxonline/pkg/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// View is the data envelope every page template receives.
type View struct {
	Title       string
	Surface     string // public, portal, business, admin
	CurrentPage string
	Principal   domain.Principal
	Error       string
	Notice      string
	Form        map[string]string
	Data        any
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("K%.2f", v) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("02 Jan 2006")
	},
	"dateptr": func(t *time.Time) string {
		if t == nil {
			return "Not filed"
		}
		return t.Format("02 Jan 2006")
	},
	"month": func(t time.Time) string { return t.Format("Jan 2006") },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}

// Renderer executes the embedded page templates against the shared layout.
// Each page is parsed with its own clone of the layout at startup, so a bad
// template fails construction, not a request.
type Renderer struct {
	pages   map[string]*template.Template
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRenderer(logger *slog.Logger, m *metrics.Metrics) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, logger: logger, metrics: m}, nil
}

// Render executes the named page. The template runs into a buffer first so a
// mid-render failure produces a clean 500 page instead of a torn response.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, view View) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.fail(w, req, page, fmt.Errorf("unknown page template %q", page))
		return
	}
	if view.CurrentPage == "" {
		view.CurrentPage = page
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		r.fail(w, req, page, err)
		return
	}

	r.metrics.PagesRendered.WithLabelValues(page).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (r *Renderer) fail(w http.ResponseWriter, req *http.Request, page string, err error) {
	r.logger.ErrorContext(req.Context(), "page render failed", "page", page, "error", err)
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}

// StaticHandler serves the embedded client assets.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
