package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixfield/seograph/internal/seoservice"
)

// NewPublicRouter creates a chi router with the unauthenticated artifact
// routes (sitemap, robots, feeds).
func NewPublicRouter(svc *seoservice.Service) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/rss.xml", h.Feed)
	r.Get("/rss/tag/{tag}.xml", h.TagFeed)
	r.Get("/rss/author/{author}.xml", h.AuthorFeed)
	r.Get("/rss/{category}.xml", h.CategoryFeed)
	return r
}

// NewRouter creates a chi router with the SEO JSON API mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *seoservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Per-post link intelligence.
	r.Get("/posts/{id}/links", h.SuggestLinks)
	r.Get("/posts/{id}/link-check", h.CheckLinks)
	r.Get("/posts/{id}/coverage", h.Coverage)

	// Site-wide reports.
	r.Get("/audit", h.Audit)
	r.Get("/sitemap/report", h.SitemapReport)
	r.Get("/duplicates", h.Duplicates)

	// Robots linting.
	r.Post("/robots/validate", h.ValidateRobots)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
