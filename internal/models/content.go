// Package models defines the domain types for the SEO content graph engine.
package models

import (
	"time"

	"github.com/mixfield/seograph/internal/slug"
)

// Kind identifies a content variant.
type Kind string

// Content kinds.
const (
	KindPost         Kind = "post"
	KindHub          Kind = "hub"
	KindPillar       Kind = "pillar"
	KindProgrammatic Kind = "programmatic"
	KindResource     Kind = "resource"
	KindAuthor       Kind = "author"
	KindCategory     Kind = "category"
	KindTag          Kind = "tag"
)

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Content is the closed set of page variants the engine evaluates.
// Only the types in this package implement it, so rule engines can
// type-switch exhaustively instead of probing for field presence.
type Content interface {
	ContentKind() Kind
}

// Post is a blog article authored in the CMS.
type Post struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Content       string     `json:"content"` // rendered HTML
	Excerpt       string     `json:"excerpt,omitempty"`
	Status        string     `json:"status"`
	NoIndex       bool       `json:"no_index,omitempty"`
	AuthorID      string     `json:"author_id,omitempty"`
	CategoryIDs   []string   `json:"category_ids,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ContentKind implements Content.
func (Post) ContentKind() Kind { return KindPost }

// Published reports whether the post is publicly visible.
func (p Post) Published() bool { return p.Status == StatusPublished }

// PublishDate returns the effective publication timestamp.
func (p Post) PublishDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// LastModified returns the updated timestamp, falling back to created.
func (p Post) LastModified() time.Time { return lastModified(p.CreatedAt, p.UpdatedAt) }

// Hub is a category-level landing page aggregating related posts and pillars.
type Hub struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	NoIndex     bool       `json:"no_index,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ContentKind implements Content.
func (Hub) ContentKind() Kind { return KindHub }

// LastModified returns the updated timestamp, falling back to created.
func (h Hub) LastModified() time.Time { return lastModified(h.CreatedAt, h.UpdatedAt) }

// PillarPage is a long-form guide targeting a broad topic.
type PillarPage struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Content   string     `json:"content"` // rendered HTML
	NoIndex   bool       `json:"no_index,omitempty"`
	HubIDs    []string   `json:"hub_ids,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ContentKind implements Content.
func (PillarPage) ContentKind() Kind { return KindPillar }

// LastModified returns the updated timestamp, falling back to created.
func (p PillarPage) LastModified() time.Time { return lastModified(p.CreatedAt, p.UpdatedAt) }

// ProgrammaticPage is an auto-generated page from a genre/topic combination.
type ProgrammaticPage struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content,omitempty"`
	Genre      string     `json:"genre"`
	Topic      string     `json:"topic"`
	HasContent bool       `json:"has_content"`
	NoIndex    bool       `json:"no_index,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ContentKind implements Content.
func (ProgrammaticPage) ContentKind() Kind { return KindProgrammatic }

// LastModified returns the updated timestamp, falling back to created.
func (p ProgrammaticPage) LastModified() time.Time { return lastModified(p.CreatedAt, p.UpdatedAt) }

// ResourcePage offers a downloadable asset with a description.
type ResourcePage struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DownloadURL string     `json:"download_url,omitempty"`
	NoIndex     bool       `json:"no_index,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ContentKind implements Content.
func (ResourcePage) ContentKind() Kind { return KindResource }

// LastModified returns the updated timestamp, falling back to created.
func (r ResourcePage) LastModified() time.Time { return lastModified(r.CreatedAt, r.UpdatedAt) }

// Author is a content creator referenced by posts.
type Author struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// URLSlug returns the author's URL segment, deriving one from the name
// when no explicit slug is set.
func (a Author) URLSlug() string {
	if a.Slug != "" {
		return a.Slug
	}
	return slug.Make(a.Name)
}

// Category is a taxonomy term posts are grouped under.
type Category struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Tag is a free-form taxonomy term.
type Tag struct {
	ID   string `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
	Name string `json:"name"`
}

// Snapshot is an immutable view of all content entities for one
// computation pass. Collections keep CMS ordering.
type Snapshot struct {
	Posts        []Post
	Hubs         []Hub
	Pillars      []PillarPage
	Programmatic []ProgrammaticPage
	Resources    []ResourcePage
	Authors      []Author
	Categories   []Category
	Tags         []Tag
}

// PostByID returns the post with the given id or slug.
func (s *Snapshot) PostByID(id string) (Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id || p.Slug == id {
			return p, true
		}
	}
	return Post{}, false
}

// CategoryByID returns the category with the given id or slug.
func (s *Snapshot) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id || c.Slug == id {
			return c, true
		}
	}
	return Category{}, false
}

// QualitySettings are the content-quality thresholds for one pass.
type QualitySettings struct {
	MinContentLength int
	AutoNoIndexEmpty bool
}

// SitemapPriorities holds the per-type <priority> values.
type SitemapPriorities struct {
	Home         float64
	Post         float64
	Hub          float64
	Pillar       float64
	Programmatic float64
	Resource     float64
	Author       float64
}

// SitemapSettings control sitemap rendering and caching.
type SitemapSettings struct {
	ChangeFreq string
	CacheTTL   time.Duration
	Priorities SitemapPriorities
}

// SiteMeta describes the site the artifacts are generated for.
type SiteMeta struct {
	BaseURL     string
	Title       string
	Description string
	Language    string
}

// LinkType classifies a suggested internal link.
type LinkType string

// Link types.
const (
	LinkTypePillar  LinkType = "pillar"
	LinkTypeHub     LinkType = "hub"
	LinkTypeRelated LinkType = "related"
	LinkTypeCluster LinkType = "cluster"
)

// InternalLink is a suggested internal link, computed on demand and
// never persisted.
type InternalLink struct {
	TargetURL      string   `json:"target_url"`
	AnchorText     string   `json:"anchor_text"`
	RelevanceScore int      `json:"relevance_score"`
	LinkType       LinkType `json:"link_type"`
}

// DocumentInfo is lightweight metadata for a content document on disk.
type DocumentInfo struct {
	Path      string
	Kind      Kind
	Checksum  string
	UpdatedAt time.Time
}

func lastModified(created time.Time, updated *time.Time) time.Time {
	if updated != nil && !updated.IsZero() {
		return *updated
	}
	return created
}
