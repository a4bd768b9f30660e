// Package sitemap renders a prioritized XML sitemap from the indexable
// view of the content snapshot, with a time-bounded render cache.
package sitemap

import (
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixfield/seograph/internal/canonical"
	"github.com/mixfield/seograph/internal/indexability"
	"github.com/mixfield/seograph/internal/models"
)

const (
	lastModLayout = "2006-01-02"

	// Fixed changefreq values per page family.
	freqHome      = "daily"
	freqHubPillar = "weekly"
	freqMonthly   = "monthly"

	aboutPriority = 0.5
)

// Entry is one <url> element of the sitemap.
type Entry struct {
	Loc        string  `json:"loc"`
	LastMod    string  `json:"lastmod"`
	ChangeFreq string  `json:"changefreq"`
	Priority   float64 `json:"priority"`
}

// Validate checks the entry against the sitemap protocol constraints.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Loc, validation.Required),
		validation.Field(&e.LastMod, validation.Required, validation.Date(lastModLayout)),
		validation.Field(&e.Priority, validation.Min(0.0), validation.Max(1.0)),
	)
}

// Issue reports one invalid entry. Invalid entries are never emitted.
type Issue struct {
	Loc     string `json:"loc"`
	Problem string `json:"problem"`
}

// Assembler builds and caches the rendered sitemap document.
type Assembler struct {
	resolver *canonical.Resolver
	settings models.SitemapSettings

	mu       sync.Mutex
	cached   string
	cachedAt time.Time
}

// New creates an Assembler for the given resolver and settings.
func New(resolver *canonical.Resolver, settings models.SitemapSettings) *Assembler {
	return &Assembler{resolver: resolver, settings: settings}
}

// Entries walks all content collections, filters through the
// indexability rules, and maps survivors to sitemap entries. The two
// static entries (home, about) are always present.
func (a *Assembler) Entries(snap *models.Snapshot, qs models.QualitySettings) []Entry {
	now := time.Now().UTC().Format(lastModLayout)
	pr := a.settings.Priorities

	entries := []Entry{
		{Loc: a.resolver.Canonical("/"), LastMod: now, ChangeFreq: freqHome, Priority: pr.Home},
		{Loc: a.resolver.Canonical("/about"), LastMod: now, ChangeFreq: freqMonthly, Priority: aboutPriority},
	}

	for _, p := range snap.Posts {
		// The post rule chain does not consult the noIndex flag; honor
		// it here so flagged posts stay out of the sitemap.
		if p.NoIndex || !indexability.Evaluate(p, qs).Indexable {
			continue
		}
		entries = append(entries, Entry{
			Loc:        a.resolver.ForType(models.KindPost, p.Slug, ""),
			LastMod:    p.LastModified().UTC().Format(lastModLayout),
			ChangeFreq: a.settings.ChangeFreq,
			Priority:   pr.Post,
		})
	}
	for _, h := range snap.Hubs {
		if !indexability.Evaluate(h, qs).Indexable {
			continue
		}
		entries = append(entries, Entry{
			Loc:        a.resolver.ForType(models.KindHub, h.Slug, ""),
			LastMod:    h.LastModified().UTC().Format(lastModLayout),
			ChangeFreq: freqHubPillar,
			Priority:   pr.Hub,
		})
	}
	for _, p := range snap.Pillars {
		if !indexability.Evaluate(p, qs).Indexable {
			continue
		}
		entries = append(entries, Entry{
			Loc:        a.resolver.ForType(models.KindPillar, p.Slug, ""),
			LastMod:    p.LastModified().UTC().Format(lastModLayout),
			ChangeFreq: freqHubPillar,
			Priority:   pr.Pillar,
		})
	}
	for _, p := range snap.Programmatic {
		if !indexability.Evaluate(p, qs).Indexable {
			continue
		}
		entries = append(entries, Entry{
			Loc:        a.resolver.ForType(models.KindProgrammatic, p.Genre, p.Topic),
			LastMod:    p.LastModified().UTC().Format(lastModLayout),
			ChangeFreq: freqMonthly,
			Priority:   pr.Programmatic,
		})
	}
	for _, r := range snap.Resources {
		if !indexability.Evaluate(r, qs).Indexable {
			continue
		}
		entries = append(entries, Entry{
			Loc:        a.resolver.ForType(models.KindResource, r.Slug, ""),
			LastMod:    r.LastModified().UTC().Format(lastModLayout),
			ChangeFreq: freqMonthly,
			Priority:   pr.Resource,
		})
	}
	for _, au := range snap.Authors {
		entries = append(entries, Entry{
			Loc:        a.resolver.ForType(models.KindAuthor, au.URLSlug(), ""),
			LastMod:    au.CreatedAt.UTC().Format(lastModLayout),
			ChangeFreq: freqMonthly,
			Priority:   pr.Author,
		})
	}

	return entries
}

// ValidateEntries reports every entry that violates the protocol.
func ValidateEntries(entries []Entry) []Issue {
	var issues []Issue
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			issues = append(issues, Issue{Loc: e.Loc, Problem: err.Error()})
		}
	}
	return issues
}

// Render serializes entries into a sitemap XML document. Text nodes are
// escaped; invalid entries must be filtered by the caller beforehand.
func Render(entries []Entry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, e := range entries {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", escape(e.Loc))
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", escape(e.LastMod))
		fmt.Fprintf(&b, "    <changefreq>%s</changefreq>\n", escape(e.ChangeFreq))
		fmt.Fprintf(&b, "    <priority>%.1f</priority>\n", e.Priority)
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}

// Generate returns the rendered sitemap, serving the cached document
// while it is younger than the configured TTL. Invalid entries are
// dropped from the rendered output; Report exposes them.
func (a *Assembler) Generate(snap *models.Snapshot, qs models.QualitySettings) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != "" && time.Since(a.cachedAt) < a.settings.CacheTTL {
		return a.cached
	}

	entries := a.Entries(snap, qs)
	valid := entries[:0:0]
	for _, e := range entries {
		if e.Validate() == nil {
			valid = append(valid, e)
		}
	}

	a.cached = Render(valid)
	a.cachedAt = time.Now()
	return a.cached
}

// Report returns all entries plus the validation issues among them.
func (a *Assembler) Report(snap *models.Snapshot, qs models.QualitySettings) ([]Entry, []Issue) {
	entries := a.Entries(snap, qs)
	return entries, ValidateEntries(entries)
}

// Invalidate discards the cached document so the next Generate rebuilds.
func (a *Assembler) Invalidate() {
	a.mu.Lock()
	a.cached = ""
	a.cachedAt = time.Time{}
	a.mu.Unlock()
}

// escape replaces the five XML-significant characters in text nodes.
func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
