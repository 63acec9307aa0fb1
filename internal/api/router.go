package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// pagePaths are the routable page URLs. Detail routes take a slug
// parameter; everything else composes the home page via NotFound.
var pagePaths = []string{
	"/",
	"/about",
	"/projects",
	"/projects/{id}",
	"/services",
	"/contact",
	"/blog",
	"/blog/{id}",
}

// NewRouter creates a chi router with the page routes at the root and the
// REST API mounted under /api.
// authEnabled controls whether Bearer token auth is enforced on the
// subscriber listing. sseHandler, if non-nil, is mounted at GET /api/events.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	// Page view models. Unmatched paths compose home, not a 404.
	for _, p := range pagePaths {
		r.Get(p, h.Page)
	}
	r.NotFound(h.Page)

	r.Route("/api", func(r chi.Router) {
		// Content.
		r.Get("/posts", h.ListPosts)
		r.Get("/posts/categories", h.PostCategories)
		r.Get("/posts/{id}", h.GetPost)
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/featured", h.FeaturedProjects)
		r.Get("/projects/{id}", h.GetProject)

		// Newsletter.
		r.Post("/subscribe", h.Subscribe)
		r.Delete("/subscribe", h.Unsubscribe)
		r.With(AuthMiddleware(authEnabled, token)).Get("/subscribers", h.ListSubscribers)

		// Contact form.
		r.Post("/contact", h.Contact)

		// Widgets.
		r.Get("/metrics/contributions", h.Contributions)
		r.Get("/metrics/visits", h.Visits)

		// Site state.
		r.Get("/language", h.GetLanguage)
		r.Put("/language", h.PutLanguage)
		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.PutTheme)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
