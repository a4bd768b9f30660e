package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixfield/seograph/internal/apperr"
	"github.com/mixfield/seograph/internal/seoservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *seoservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *seoservice.Service) *Handler {
	return &Handler{svc: svc}
}

// Sitemap handles GET /sitemap.xml.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.Sitemap(r.Context())
	if err != nil {
		slog.Error("sitemap failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeXML(w, http.StatusOK, body)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.svc.Robots(r.Context()))
}

// Feed handles GET /rss.xml.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.Feed(r.Context())
	if err != nil {
		slog.Error("feed failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeFeed(w, body)
}

// CategoryFeed handles GET /rss/{category}.xml.
func (h *Handler) CategoryFeed(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.CategoryFeed(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		slog.Error("category feed failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeFeed(w, body)
}

// TagFeed handles GET /rss/tag/{tag}.xml.
func (h *Handler) TagFeed(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.TagFeed(r.Context(), chi.URLParam(r, "tag"))
	if err != nil {
		slog.Error("tag feed failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeFeed(w, body)
}

// AuthorFeed handles GET /rss/author/{author}.xml.
func (h *Handler) AuthorFeed(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.AuthorFeed(r.Context(), chi.URLParam(r, "author"))
	if err != nil {
		slog.Error("author feed failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeFeed(w, body)
}

func writeFeed(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// SuggestLinks handles GET /api/seo/posts/{id}/links.
func (h *Handler) SuggestLinks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	links, err := h.svc.SuggestLinks(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("post not found"))
		} else {
			slog.Error("suggest links failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": links})
}

// CheckLinks handles GET /api/seo/posts/{id}/link-check.
func (h *Handler) CheckLinks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	checks, err := h.svc.CheckLinks(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("post not found"))
		} else {
			slog.Error("link check failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checks": checks})
}

// Coverage handles GET /api/seo/posts/{id}/coverage.
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cov, err := h.svc.Coverage(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("post not found"))
		} else {
			slog.Error("coverage failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, cov)
}

// Audit handles GET /api/seo/audit.
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	audit, err := h.svc.AuditContent(r.Context())
	if err != nil {
		slog.Error("audit failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, audit)
}

// SitemapReport handles GET /api/seo/sitemap/report.
func (h *Handler) SitemapReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.SitemapReport(r.Context())
	if err != nil {
		slog.Error("sitemap report failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Duplicates handles GET /api/seo/duplicates.
func (h *Handler) Duplicates(w http.ResponseWriter, r *http.Request) {
	dups, err := h.svc.Duplicates(r.Context())
	if err != nil {
		slog.Error("duplicates failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"duplicates": dups})
}

// ValidateRobots handles POST /api/seo/robots/validate.
func (h *Handler) ValidateRobots(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	issues := h.svc.ValidateRobots(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}
