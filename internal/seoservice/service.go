// Package seoservice coordinates the catalog and the artifact
// generators behind one facade the HTTP and MCP surfaces share.
package seoservice

import (
	"context"

	"github.com/mixfield/seograph/internal/apperr"
	"github.com/mixfield/seograph/internal/canonical"
	"github.com/mixfield/seograph/internal/catalog"
	"github.com/mixfield/seograph/internal/feed"
	"github.com/mixfield/seograph/internal/indexability"
	"github.com/mixfield/seograph/internal/linker"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/robots"
	"github.com/mixfield/seograph/internal/sitemap"
)

// Audit is the site-wide indexability report.
type Audit struct {
	Total     int         `json:"total"`
	Indexable int         `json:"indexable"`
	NoIndex   int         `json:"noindex"`
	Items     []AuditItem `json:"items"`
}

// AuditItem is the verdict for one content item.
type AuditItem struct {
	Kind      models.Kind `json:"kind"`
	URL       string      `json:"url"`
	Title     string      `json:"title"`
	Indexable bool        `json:"indexable"`
	Reason    string      `json:"reason,omitempty"`
}

// SitemapReport pairs the entry list with its validation issues.
type SitemapReport struct {
	Entries []sitemap.Entry `json:"entries"`
	Issues  []sitemap.Issue `json:"issues"`
}

// Service wires the content catalog to the generators.
type Service struct {
	cat      catalog.ContentCatalog
	resolver *canonical.Resolver
	quality  models.QualitySettings
	linker   *linker.Assembler
	sitemap  *sitemap.Assembler
	feeds    *feed.Generator
	robots   *robots.Generator
}

// New creates a Service for the given catalog and settings.
func New(cat catalog.ContentCatalog, site models.SiteMeta, quality models.QualitySettings, sm models.SitemapSettings, customRobots string) *Service {
	resolver := canonical.NewResolver(site.BaseURL)
	return &Service{
		cat:      cat,
		resolver: resolver,
		quality:  quality,
		linker:   linker.NewAssembler(),
		sitemap:  sitemap.New(resolver, sm),
		feeds:    feed.New(resolver, site),
		robots:   robots.New(resolver.Base(), customRobots),
	}
}

// Snapshot returns the current typed content snapshot.
func (s *Service) Snapshot(_ context.Context) (*models.Snapshot, error) {
	return s.cat.Snapshot()
}

// SuggestLinks returns ranked internal link suggestions for a post.
func (s *Service) SuggestLinks(ctx context.Context, postID string) ([]models.InternalLink, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	post, ok := snap.PostByID(postID)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s.linker.SuggestedLinks(post, snap), nil
}

// CheckLinks validates every internal link embedded in a post's content.
func (s *Service) CheckLinks(ctx context.Context, postID string) ([]linker.LinkCheck, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	post, ok := snap.PostByID(postID)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s.linker.ValidateInternalLinks(post.Content, linker.KnownURLs(snap)), nil
}

// Coverage reports which suggested links a post's content already embeds.
func (s *Service) Coverage(ctx context.Context, postID string) (linker.Coverage, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return linker.Coverage{}, err
	}
	post, ok := snap.PostByID(postID)
	if !ok {
		return linker.Coverage{}, apperr.ErrNotFound
	}
	return s.linker.CheckLinkCoverage(post, snap), nil
}

// AuditContent evaluates every content item against the indexability
// rules and aggregates the verdicts.
func (s *Service) AuditContent(_ context.Context) (Audit, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return Audit{}, err
	}

	audit := Audit{Items: []AuditItem{}}
	add := func(kind models.Kind, url, title string, d indexability.Decision) {
		audit.Total++
		if d.Indexable {
			audit.Indexable++
		} else {
			audit.NoIndex++
		}
		audit.Items = append(audit.Items, AuditItem{
			Kind:      kind,
			URL:       url,
			Title:     title,
			Indexable: d.Indexable,
			Reason:    d.Reason,
		})
	}

	for _, p := range snap.Posts {
		add(models.KindPost, s.resolver.ForType(models.KindPost, p.Slug, ""), p.Title,
			indexability.Evaluate(p, s.quality))
	}
	for _, h := range snap.Hubs {
		add(models.KindHub, s.resolver.ForType(models.KindHub, h.Slug, ""), h.Name,
			indexability.Evaluate(h, s.quality))
	}
	for _, p := range snap.Pillars {
		add(models.KindPillar, s.resolver.ForType(models.KindPillar, p.Slug, ""), p.Title,
			indexability.Evaluate(p, s.quality))
	}
	for _, p := range snap.Programmatic {
		add(models.KindProgrammatic, s.resolver.ForType(models.KindProgrammatic, p.Genre, p.Topic), p.Title,
			indexability.Evaluate(p, s.quality))
	}
	for _, r := range snap.Resources {
		add(models.KindResource, s.resolver.ForType(models.KindResource, r.Slug, ""), r.Title,
			indexability.Evaluate(r, s.quality))
	}

	return audit, nil
}

// Sitemap returns the rendered (possibly cached) sitemap XML.
func (s *Service) Sitemap(_ context.Context) (string, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return "", err
	}
	return s.sitemap.Generate(snap, s.quality), nil
}

// SitemapReport returns all sitemap entries and their validation issues.
func (s *Service) SitemapReport(_ context.Context) (SitemapReport, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return SitemapReport{}, err
	}
	entries, issues := s.sitemap.Report(snap, s.quality)
	return SitemapReport{Entries: entries, Issues: issues}, nil
}

// InvalidateSitemap drops the cached sitemap document.
func (s *Service) InvalidateSitemap() {
	s.sitemap.Invalidate()
}

// Feed renders the site-wide RSS feed.
func (s *Service) Feed(_ context.Context) (string, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return "", err
	}
	return s.feeds.GenerateFeed(snap, s.quality), nil
}

// CategoryFeed renders the RSS feed for one category slug.
func (s *Service) CategoryFeed(_ context.Context, category string) (string, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return "", err
	}
	return s.feeds.GenerateCategoryFeed(snap, s.quality, category), nil
}

// TagFeed renders the RSS feed for one tag.
func (s *Service) TagFeed(_ context.Context, tag string) (string, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return "", err
	}
	return s.feeds.GenerateTagFeed(snap, s.quality, tag), nil
}

// AuthorFeed renders the RSS feed for one author slug.
func (s *Service) AuthorFeed(_ context.Context, author string) (string, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return "", err
	}
	return s.feeds.GenerateAuthorFeed(snap, s.quality, author), nil
}

// Robots returns the robots.txt body.
func (s *Service) Robots(_ context.Context) string {
	return s.robots.Generate()
}

// ValidateRobots lints robots.txt text and returns the findings.
func (s *Service) ValidateRobots(_ context.Context, text string) []robots.Issue {
	return robots.Validate(text)
}

// IsPathAllowed evaluates a path against the active robots policy.
func (s *Service) IsPathAllowed(_ context.Context, path, agent string) bool {
	return s.robots.IsPathAllowed(path, agent)
}

// Duplicates reports canonical-URL duplicates across all known pages.
// URLs are enumerated in snapshot order so the first occurrence in each
// duplicate group is stable.
func (s *Service) Duplicates(_ context.Context) ([]canonical.Duplicate, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, p := range snap.Posts {
		urls = append(urls, s.resolver.ForType(models.KindPost, p.Slug, ""))
	}
	for _, h := range snap.Hubs {
		urls = append(urls, s.resolver.ForType(models.KindHub, h.Slug, ""))
	}
	for _, p := range snap.Pillars {
		urls = append(urls, s.resolver.ForType(models.KindPillar, p.Slug, ""))
	}
	for _, p := range snap.Programmatic {
		urls = append(urls, s.resolver.ForType(models.KindProgrammatic, p.Genre, p.Topic))
	}
	for _, r := range snap.Resources {
		urls = append(urls, s.resolver.ForType(models.KindResource, r.Slug, ""))
	}
	return canonical.FindDuplicates(urls), nil
}
