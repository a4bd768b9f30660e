// Package testutil provides shared test helpers for setting up content
// directories, catalogs, and sample snapshots.
package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/mixfield/seograph/internal/catalog"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/storage"
)

// TestDB creates a temporary SQLite catalog that is automatically cleaned up.
func TestDB(t *testing.T) *catalog.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "seograph-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := catalog.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContentDir creates a temporary content directory with a storage.Provider.
func TestContentDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// Quality returns the thresholds most tests share.
func Quality() models.QualitySettings {
	return models.QualitySettings{MinContentLength: 300, AutoNoIndexEmpty: true}
}

// Ptr returns a pointer to v, for optional timestamp fields.
func Ptr[T any](v T) *T { return &v }

// Words builds an n-word body for quality threshold tests.
func Words(n int) string {
	out := make([]byte, 0, n*5)
	for i := 0; i < n; i++ {
		out = append(out, "word "...)
	}
	return string(out)
}

// SampleSnapshot builds the music-blog fixture shared across tests: a
// mixing hub, a mixing guide pillar, and a set of posts in the mixing
// category.
func SampleSnapshot() *models.Snapshot {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	published := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	return &models.Snapshot{
		Posts: []models.Post{
			{
				ID:          "p1",
				Slug:        "best-compressor-tips",
				Title:       "Best Compressor Tips",
				Content:     "<p>" + Words(500) + "</p>",
				Excerpt:     "Compression settings that actually work.",
				Status:      models.StatusPublished,
				AuthorID:    "a1",
				CategoryIDs: []string{"c1"},
				Tags:        []string{"mixing", "compression"},
				PublishedAt: Ptr(published),
				CreatedAt:   created,
			},
			{
				ID:          "p2",
				Slug:        "eq-fundamentals",
				Title:       "EQ Fundamentals",
				Content:     "<p>" + Words(450) + "</p>",
				Status:      models.StatusPublished,
				AuthorID:    "a1",
				CategoryIDs: []string{"c1"},
				Tags:        []string{"mixing", "eq"},
				PublishedAt: Ptr(published.Add(24 * time.Hour)),
				CreatedAt:   created,
			},
			{
				ID:          "p3",
				Slug:        "mastering-loudness",
				Title:       "Mastering Loudness",
				Content:     "<p>" + Words(400) + "</p>",
				Status:      models.StatusPublished,
				AuthorID:    "a2",
				CategoryIDs: []string{"c2"},
				Tags:        []string{"mastering"},
				PublishedAt: Ptr(published.Add(48 * time.Hour)),
				CreatedAt:   created,
			},
			{
				ID:          "p4",
				Slug:        "upcoming-draft",
				Title:       "Upcoming Draft",
				Content:     "<p>" + Words(500) + "</p>",
				Status:      models.StatusDraft,
				CategoryIDs: []string{"c1"},
				CreatedAt:   created,
			},
		},
		Hubs: []models.Hub{
			{ID: "h1", Slug: "mixing", Name: "Mixing", Description: "Everything about mixing records.", CreatedAt: created},
			{ID: "h2", Slug: "mastering", Name: "Mastering", Description: "Loudness, limiting, delivery.", CreatedAt: created},
		},
		Pillars: []models.PillarPage{
			{
				ID:        "pl1",
				Slug:      "complete-mixing-guide",
				Title:     "The Complete Mixing Guide",
				Content:   "<p>" + Words(900) + "</p>",
				HubIDs:    []string{"h1"},
				CreatedAt: created,
			},
		},
		Programmatic: []models.ProgrammaticPage{
			{ID: "pr1", Title: "Techno Compression", Genre: "techno", Topic: "compression", HasContent: true, Content: "<p>" + Words(400) + "</p>", CreatedAt: created},
			{ID: "pr2", Title: "House Reverb", Genre: "house", Topic: "reverb", HasContent: false, CreatedAt: created},
		},
		Resources: []models.ResourcePage{
			{ID: "r1", Slug: "mix-checklist", Title: "Mix Checklist", Description: "Printable pre-mix checklist.", DownloadURL: "https://cdn.example.com/mix-checklist.pdf", CreatedAt: created},
		},
		Authors: []models.Author{
			{ID: "a1", Name: "Dana Reyes", CreatedAt: created},
			{ID: "a2", Slug: "sam-okafor", Name: "Sam Okafor", CreatedAt: created},
		},
		Categories: []models.Category{
			{ID: "c1", Slug: "mixing", Name: "Mixing"},
			{ID: "c2", Slug: "mastering", Name: "Mastering"},
		},
		Tags: []models.Tag{
			{Name: "mixing"},
			{Name: "compression"},
		},
	}
}
