package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const staticCachePolicy = "public, max-age=3600"

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Pages    *PageSet
	StaticFS fs.FS // rooted at the static directory
	Debug    bool
	Metrics  bool
}

// NewRouter assembles the chi router with middleware, static assets, and the
// three page routes. Anything else falls through to chi's 404.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	if deps.StaticFS != nil {
		policy := staticCachePolicy
		if deps.Debug {
			policy = "no-store"
		}
		static := http.StripPrefix("/static", http.FileServerFS(deps.StaticFS))
		r.Handle("/static/*", withCachePolicy(policy, static))
	}

	if deps.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	pages := NewPagesHandler(deps.Pages)
	r.Get("/", pages.Index)
	r.Get("/left", pages.Left)
	r.Get("/scenario_right.html", pages.Right)

	return r
}

func withCachePolicy(policy string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", policy)
		next.ServeHTTP(w, r)
	})
}
