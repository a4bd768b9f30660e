// Package canonical normalizes URLs and builds the canonical absolute
// URL for every page type. Every downstream generator goes through it.
package canonical

import (
	"strings"

	"github.com/mixfield/seograph/internal/models"
)

// Normalize strips the query string and fragment, lower-cases the URL,
// collapses duplicate path slashes (the protocol separator excepted) and
// removes a single trailing slash, root excepted. Idempotent.
func Normalize(raw string) string {
	s := raw
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.ToLower(strings.TrimSpace(s))

	scheme := ""
	if i := strings.Index(s, "://"); i >= 0 {
		scheme, s = s[:i+3], s[i+3:]
	}
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		s = strings.TrimSuffix(s, "/")
	}
	return scheme + s
}

// AreDuplicates reports whether two URLs normalize to the same form.
func AreDuplicates(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Duplicate flags a URL as a duplicate of an earlier canonical form.
type Duplicate struct {
	URL         string `json:"url"`
	DuplicateOf string `json:"duplicate_of"`
}

// FindDuplicates groups urls by normalized form and flags every
// occurrence after the first in each group.
func FindDuplicates(urls []string) []Duplicate {
	first := make(map[string]string, len(urls))
	var out []Duplicate
	for _, u := range urls {
		norm := Normalize(u)
		if orig, ok := first[norm]; ok {
			out = append(out, Duplicate{URL: u, DuplicateOf: orig})
			continue
		}
		first[norm] = u
	}
	return out
}

// PathFor maps a page type to its site-relative URL template.
func PathFor(kind models.Kind, slug, extra string) string {
	switch kind {
	case models.KindPost:
		return "/blog/" + slug
	case models.KindPillar:
		return "/" + slug
	case models.KindHub:
		return "/hub/" + slug
	case models.KindProgrammatic:
		return "/genre/" + slug + "/" + extra
	case models.KindResource:
		return "/resources/" + slug
	case models.KindAuthor:
		return "/author/" + slug
	case models.KindCategory:
		return "/category/" + slug
	case models.KindTag:
		return "/tag/" + slug
	default:
		return "/"
	}
}

// Resolver builds absolute canonical URLs against a site origin.
type Resolver struct {
	base string
}

// NewResolver creates a Resolver for the given site origin.
func NewResolver(base string) *Resolver {
	return &Resolver{base: Normalize(base)}
}

// Base returns the normalized site origin.
func (r *Resolver) Base() string { return r.base }

// Canonical prefixes the site origin onto a normalized, slash-prefixed path.
func (r *Resolver) Canonical(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Normalize(r.base + path)
}

// ForType returns the absolute canonical URL for a page type and slug.
func (r *Resolver) ForType(kind models.Kind, slug, extra string) string {
	return r.Canonical(PathFor(kind, slug, extra))
}
