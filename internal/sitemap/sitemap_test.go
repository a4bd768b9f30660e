package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/mixfield/seograph/internal/canonical"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/testutil"
)

func testSettings() models.SitemapSettings {
	return models.SitemapSettings{
		ChangeFreq: "weekly",
		CacheTTL:   time.Hour,
		Priorities: models.SitemapPriorities{
			Home: 1.0, Post: 0.8, Hub: 0.9, Pillar: 0.9,
			Programmatic: 0.6, Resource: 0.7, Author: 0.5,
		},
	}
}

func newTestAssembler() *Assembler {
	return New(canonical.NewResolver("https://example.com"), testSettings())
}

func TestEntriesIncludeStaticPages(t *testing.T) {
	a := newTestAssembler()
	entries := a.Entries(testutil.SampleSnapshot(), testutil.Quality())

	if len(entries) < 2 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Loc != "https://example.com" || entries[0].ChangeFreq != "daily" {
		t.Errorf("home entry = %+v", entries[0])
	}
	if entries[1].Loc != "https://example.com/about" || entries[1].Priority != 0.5 {
		t.Errorf("about entry = %+v", entries[1])
	}
}

func TestEntriesFilterNonIndexable(t *testing.T) {
	a := newTestAssembler()
	entries := a.Entries(testutil.SampleSnapshot(), testutil.Quality())

	locs := make(map[string]Entry)
	for _, e := range entries {
		locs[e.Loc] = e
	}

	if _, ok := locs["https://example.com/blog/best-compressor-tips"]; !ok {
		t.Error("published post missing")
	}
	if _, ok := locs["https://example.com/blog/upcoming-draft"]; ok {
		t.Error("draft post must be excluded")
	}
	if _, ok := locs["https://example.com/genre/house/reverb"]; ok {
		t.Error("programmatic page without generated body must be excluded")
	}
	if _, ok := locs["https://example.com/genre/techno/compression"]; !ok {
		t.Error("generated programmatic page missing")
	}
	if _, ok := locs["https://example.com/author/dana-reyes"]; !ok {
		t.Error("author page missing")
	}
}

func TestEntriesExcludeNoIndexPosts(t *testing.T) {
	snap := testutil.SampleSnapshot()
	snap.Posts[0].NoIndex = true

	a := newTestAssembler()
	for _, e := range a.Entries(snap, testutil.Quality()) {
		if strings.Contains(e.Loc, "best-compressor-tips") {
			t.Error("noindex post must not appear in the sitemap")
		}
	}
}

func TestEntriesLastModFormat(t *testing.T) {
	a := newTestAssembler()
	for _, e := range a.Entries(testutil.SampleSnapshot(), testutil.Quality()) {
		if _, err := time.Parse("2006-01-02", e.LastMod); err != nil {
			t.Errorf("lastmod %q for %s: %v", e.LastMod, e.Loc, err)
		}
	}
}

func TestRenderEscapesAndFormats(t *testing.T) {
	xml := Render([]Entry{
		{Loc: "https://example.com/a?b=1&c=<2>", LastMod: "2025-04-01", ChangeFreq: "weekly", Priority: 0.95},
	})

	if !strings.Contains(xml, "<loc>https://example.com/a?b=1&amp;c=&lt;2&gt;</loc>") {
		t.Errorf("loc not escaped:\n%s", xml)
	}
	if !strings.Contains(xml, "<priority>0.9</priority>") {
		t.Errorf("priority not rounded to one decimal:\n%s", xml)
	}
	if !strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("missing urlset namespace")
	}
}

func TestGenerateDropsInvalidEntries(t *testing.T) {
	settings := testSettings()
	settings.Priorities.Post = 1.5 // out of protocol range
	a := New(canonical.NewResolver("https://example.com"), settings)

	snap := testutil.SampleSnapshot()
	xml := a.Generate(snap, testutil.Quality())
	if strings.Contains(xml, "best-compressor-tips") {
		t.Error("entry with invalid priority must be dropped from output")
	}
	if !strings.Contains(xml, "hub/mixing") {
		t.Error("valid hub entry should survive")
	}

	_, issues := a.Report(snap, testutil.Quality())
	if len(issues) == 0 {
		t.Fatal("report should surface the invalid entries")
	}
	for _, is := range issues {
		if !strings.Contains(is.Loc, "/blog/") {
			t.Errorf("unexpected issue for %s", is.Loc)
		}
	}
}

func TestGenerateCachesUntilInvalidate(t *testing.T) {
	a := newTestAssembler()
	snap := testutil.SampleSnapshot()
	qs := testutil.Quality()

	first := a.Generate(snap, qs)

	snap.Posts = append(snap.Posts, models.Post{
		ID:          "p9",
		Slug:        "fresh-post",
		Title:       "Fresh Post",
		Content:     "<p>" + testutil.Words(500) + "</p>",
		Status:      models.StatusPublished,
		PublishedAt: testutil.Ptr(time.Now()),
	})

	if got := a.Generate(snap, qs); got != first {
		t.Error("expected cached document within TTL")
	}

	a.Invalidate()
	refreshed := a.Generate(snap, qs)
	if refreshed == first {
		t.Error("invalidate should force a rebuild")
	}
	if !strings.Contains(refreshed, "fresh-post") {
		t.Error("rebuilt sitemap should contain the new post")
	}
}

func TestValidateEntries(t *testing.T) {
	issues := ValidateEntries([]Entry{
		{Loc: "https://example.com/ok", LastMod: "2025-04-01", ChangeFreq: "weekly", Priority: 0.5},
		{Loc: "https://example.com/bad", LastMod: "not-a-date", ChangeFreq: "weekly", Priority: 0.5},
		{Loc: "https://example.com/high", LastMod: "2025-04-01", ChangeFreq: "weekly", Priority: 1.5},
	})
	if len(issues) != 2 {
		t.Fatalf("issues = %v", issues)
	}
	if issues[0].Loc != "https://example.com/bad" || issues[1].Loc != "https://example.com/high" {
		t.Errorf("unexpected issue locs: %+v", issues)
	}
}
