// Package feed renders RSS 2.0 documents for the full site and for
// category, tag, and author scoped subsets.
package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mixfield/seograph/internal/canonical"
	"github.com/mixfield/seograph/internal/indexability"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/slug"
)

// Generator renders RSS documents against one site identity.
type Generator struct {
	resolver *canonical.Resolver
	site     models.SiteMeta
}

// New creates a Generator for the given resolver and site metadata.
func New(resolver *canonical.Resolver, site models.SiteMeta) *Generator {
	return &Generator{resolver: resolver, site: site}
}

// GenerateFeed renders the site-wide feed over all eligible posts.
func (g *Generator) GenerateFeed(snap *models.Snapshot, qs models.QualitySettings) string {
	return g.render(g.site.Title, g.resolver.Base(), g.site.Description, g.eligible(snap, qs), snap)
}

// GenerateCategoryFeed renders the feed for one category slug. Unknown
// slugs yield a valid empty channel.
func (g *Generator) GenerateCategoryFeed(snap *models.Snapshot, qs models.QualitySettings, categorySlug string) string {
	var cat models.Category
	for _, c := range snap.Categories {
		if c.Slug == categorySlug {
			cat = c
			break
		}
	}

	var posts []models.Post
	for _, p := range g.eligible(snap, qs) {
		for _, id := range p.CategoryIDs {
			if id == cat.ID || id == categorySlug {
				posts = append(posts, p)
				break
			}
		}
	}

	title := g.site.Title + " - " + firstNonEmpty(cat.Name, categorySlug)
	link := g.resolver.ForType(models.KindCategory, categorySlug, "")
	desc := "Posts in the " + firstNonEmpty(cat.Name, categorySlug) + " category"
	return g.render(title, link, desc, posts, snap)
}

// GenerateTagFeed renders the feed for one tag, matched by slugified
// comparison so "Mixing Tips" and "mixing-tips" select the same posts.
func (g *Generator) GenerateTagFeed(snap *models.Snapshot, qs models.QualitySettings, tag string) string {
	want := slug.Make(tag)

	var posts []models.Post
	for _, p := range g.eligible(snap, qs) {
		for _, t := range p.Tags {
			if slug.Make(t) == want {
				posts = append(posts, p)
				break
			}
		}
	}

	title := g.site.Title + " - #" + tag
	link := g.resolver.ForType(models.KindTag, want, "")
	return g.render(title, link, "Posts tagged "+tag, posts, snap)
}

// GenerateAuthorFeed renders the feed for one author slug.
func (g *Generator) GenerateAuthorFeed(snap *models.Snapshot, qs models.QualitySettings, authorSlug string) string {
	var author models.Author
	for _, a := range snap.Authors {
		if a.URLSlug() == authorSlug {
			author = a
			break
		}
	}

	var posts []models.Post
	for _, p := range g.eligible(snap, qs) {
		if p.AuthorID == author.ID || p.AuthorID == authorSlug {
			posts = append(posts, p)
		}
	}

	name := firstNonEmpty(author.Name, authorSlug)
	title := g.site.Title + " - " + name
	link := g.resolver.ForType(models.KindAuthor, authorSlug, "")
	return g.render(title, link, "Posts by "+name, posts, snap)
}

// eligible returns published, index-eligible posts sorted newest first.
func (g *Generator) eligible(snap *models.Snapshot, qs models.QualitySettings) []models.Post {
	var posts []models.Post
	for _, p := range snap.Posts {
		if !p.Published() || p.NoIndex {
			continue
		}
		if !indexability.Evaluate(p, qs).Indexable {
			continue
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishDate().After(posts[j].PublishDate())
	})
	return posts
}

// render writes one RSS 2.0 channel. Item order is the caller's; the
// channel is valid even with zero items.
func (g *Generator) render(title, link, description string, posts []models.Post, snap *models.Snapshot) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:media="http://search.yahoo.com/mrss/">` + "\n")
	b.WriteString("<channel>\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", escape(title))
	fmt.Fprintf(&b, "  <link>%s</link>\n", escape(link))
	fmt.Fprintf(&b, "  <description>%s</description>\n", escape(description))
	if g.site.Language != "" {
		fmt.Fprintf(&b, "  <language>%s</language>\n", escape(g.site.Language))
	}
	fmt.Fprintf(&b, "  <lastBuildDate>%s</lastBuildDate>\n", g.lastBuildDate(posts))
	fmt.Fprintf(&b, "  <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\"/>\n", escape(link))

	for _, p := range posts {
		g.renderItem(&b, p, snap)
	}

	b.WriteString("</channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

func (g *Generator) renderItem(b *strings.Builder, p models.Post, snap *models.Snapshot) {
	url := g.resolver.ForType(models.KindPost, p.Slug, "")

	b.WriteString("  <item>\n")
	fmt.Fprintf(b, "    <title>%s</title>\n", escape(p.Title))
	fmt.Fprintf(b, "    <link>%s</link>\n", escape(url))
	fmt.Fprintf(b, "    <guid isPermaLink=\"true\">%s</guid>\n", escape(url))
	fmt.Fprintf(b, "    <pubDate>%s</pubDate>\n", p.PublishDate().UTC().Format(time.RFC1123Z))
	if p.Excerpt != "" {
		fmt.Fprintf(b, "    <description>%s</description>\n", escape(p.Excerpt))
	}
	if p.Content != "" {
		fmt.Fprintf(b, "    <content:encoded><![CDATA[%s]]></content:encoded>\n", escapeCDATA(p.Content))
	}
	if name := g.authorName(p.AuthorID, snap); name != "" {
		fmt.Fprintf(b, "    <dc:creator>%s</dc:creator>\n", escape(name))
	}
	for _, id := range p.CategoryIDs {
		if cat, ok := snap.CategoryByID(id); ok {
			fmt.Fprintf(b, "    <category>%s</category>\n", escape(cat.Name))
		}
	}
	for _, t := range p.Tags {
		fmt.Fprintf(b, "    <category>%s</category>\n", escape(t))
	}
	if p.FeaturedImage != "" {
		fmt.Fprintf(b, "    <enclosure url=\"%s\" type=\"image/jpeg\" length=\"0\"/>\n", escape(p.FeaturedImage))
	}
	b.WriteString("  </item>\n")
}

// lastBuildDate is the newest publish date, or now for empty feeds.
func (g *Generator) lastBuildDate(posts []models.Post) string {
	if len(posts) == 0 {
		return time.Now().UTC().Format(time.RFC1123Z)
	}
	return posts[0].PublishDate().UTC().Format(time.RFC1123Z)
}

func (g *Generator) authorName(authorID string, snap *models.Snapshot) string {
	for _, a := range snap.Authors {
		if a.ID == authorID || a.URLSlug() == authorID {
			return a.Name
		}
	}
	return ""
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

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

// escapeCDATA splits "]]>" so embedded HTML cannot terminate the CDATA
// section early.
func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}
