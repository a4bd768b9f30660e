package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mixfield/seograph/internal/canonical"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/testutil"
)

func newTestGenerator() *Generator {
	site := models.SiteMeta{
		BaseURL:     "https://example.com",
		Title:       "Mix Notes",
		Description: "A music production blog",
		Language:    "en",
	}
	return New(canonical.NewResolver(site.BaseURL), site)
}

func TestGenerateFeed_NewestFirst(t *testing.T) {
	xml := newTestGenerator().GenerateFeed(testutil.SampleSnapshot(), testutil.Quality())

	// p3 published last, then p2, then p1.
	i3 := strings.Index(xml, "mastering-loudness")
	i2 := strings.Index(xml, "eq-fundamentals")
	i1 := strings.Index(xml, "best-compressor-tips")
	if i3 < 0 || i2 < 0 || i1 < 0 {
		t.Fatalf("missing items:\n%s", xml)
	}
	if !(i3 < i2 && i2 < i1) {
		t.Errorf("items not newest-first: %d %d %d", i3, i2, i1)
	}
	if strings.Contains(xml, "upcoming-draft") {
		t.Error("draft post leaked into feed")
	}
}

func TestGenerateFeed_ExcludesNoIndexPosts(t *testing.T) {
	snap := testutil.SampleSnapshot()
	snap.Posts[0].NoIndex = true

	xml := newTestGenerator().GenerateFeed(snap, testutil.Quality())
	if strings.Contains(xml, "best-compressor-tips") {
		t.Error("noindex post must not appear in the feed")
	}
}

func TestGenerateFeed_ItemShape(t *testing.T) {
	snap := testutil.SampleSnapshot()
	xml := newTestGenerator().GenerateFeed(snap, testutil.Quality())

	if !strings.Contains(xml, `<guid isPermaLink="true">https://example.com/blog/best-compressor-tips</guid>`) {
		t.Error("missing permalink guid")
	}
	wantDate := snap.Posts[0].PublishDate().UTC().Format(time.RFC1123Z)
	if !strings.Contains(xml, "<pubDate>"+wantDate+"</pubDate>") {
		t.Errorf("missing RFC822-style pubDate %q", wantDate)
	}
	if !strings.Contains(xml, "<dc:creator>Dana Reyes</dc:creator>") {
		t.Error("missing dc:creator")
	}
	if !strings.Contains(xml, "<category>Mixing</category>") {
		t.Error("missing category element")
	}
	if !strings.Contains(xml, "<content:encoded><![CDATA[") {
		t.Error("content not wrapped in CDATA")
	}
	for _, ns := range []string{
		`xmlns:content="http://purl.org/rss/1.0/modules/content/"`,
		`xmlns:dc="http://purl.org/dc/elements/1.1/"`,
		`xmlns:atom="http://www.w3.org/2005/Atom"`,
		`xmlns:media="http://search.yahoo.com/mrss/"`,
	} {
		if !strings.Contains(xml, ns) {
			t.Errorf("channel header missing namespace %s", ns)
		}
	}
}

func TestGenerateFeed_CDATAEscaping(t *testing.T) {
	snap := testutil.SampleSnapshot()
	snap.Posts[0].Content = "<p>" + testutil.Words(400) + "tricky ]]> sequence</p>"

	xml := newTestGenerator().GenerateFeed(snap, testutil.Quality())
	if strings.Contains(xml, "tricky ]]> sequence") {
		t.Error("raw ]]> must not survive inside CDATA")
	}
	if !strings.Contains(xml, "tricky ]]]]><![CDATA[> sequence") {
		t.Error("]]> should be split across CDATA sections")
	}
}

func TestGenerateCategoryFeed(t *testing.T) {
	g := newTestGenerator()
	xml := g.GenerateCategoryFeed(testutil.SampleSnapshot(), testutil.Quality(), "mixing")

	if !strings.Contains(xml, "<title>Mix Notes - Mixing</title>") {
		t.Errorf("channel title wrong:\n%s", xml)
	}
	if !strings.Contains(xml, "best-compressor-tips") || !strings.Contains(xml, "eq-fundamentals") {
		t.Error("mixing posts missing")
	}
	if strings.Contains(xml, "mastering-loudness") {
		t.Error("mastering post leaked into mixing feed")
	}
}

func TestGenerateCategoryFeed_UnknownSlugIsValidEmpty(t *testing.T) {
	xml := newTestGenerator().GenerateCategoryFeed(testutil.SampleSnapshot(), testutil.Quality(), "gardening")

	if strings.Contains(xml, "<item>") {
		t.Error("unknown category should produce zero items")
	}
	for _, want := range []string{"<rss version=\"2.0\"", "<channel>", "</channel>", "<lastBuildDate>"} {
		if !strings.Contains(xml, want) {
			t.Errorf("empty feed missing %q", want)
		}
	}
}

func TestGenerateTagFeed_SlugMatching(t *testing.T) {
	g := newTestGenerator()
	snap := testutil.SampleSnapshot()
	snap.Posts[0].Tags = append(snap.Posts[0].Tags, "Mixing Tips")

	xml := g.GenerateTagFeed(snap, testutil.Quality(), "mixing-tips")
	if !strings.Contains(xml, "best-compressor-tips") {
		t.Error("slugified tag should match display-form tag")
	}
	if strings.Contains(xml, "eq-fundamentals") {
		t.Error("untagged post leaked into tag feed")
	}
}

func TestGenerateAuthorFeed(t *testing.T) {
	xml := newTestGenerator().GenerateAuthorFeed(testutil.SampleSnapshot(), testutil.Quality(), "dana-reyes")

	if !strings.Contains(xml, "<title>Mix Notes - Dana Reyes</title>") {
		t.Errorf("channel title wrong:\n%s", xml)
	}
	if !strings.Contains(xml, "best-compressor-tips") || !strings.Contains(xml, "eq-fundamentals") {
		t.Error("author's posts missing")
	}
	if strings.Contains(xml, "mastering-loudness") {
		t.Error("other author's post leaked")
	}
}

func TestEscape(t *testing.T) {
	got := escape(`Tom & Jerry's <"quoted">`)
	want := "Tom &amp; Jerry&apos;s &lt;&quot;quoted&quot;&gt;"
	if got != want {
		t.Errorf("escape = %q, want %q", got, want)
	}
}
