// Package linker assembles ranked internal link suggestions for a post
// and validates links already embedded in content against the known URL
// set.
package linker

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mixfield/seograph/internal/canonical"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/relevance"
)

// Suggestions carry this many related-post links.
const relatedSuggestionCount = 2

// Extractor extracts site-internal href targets from rendered content.
// Kept as an interface so the HTML-parse extractor can be swapped out
// without touching callers.
type Extractor interface {
	InternalHrefs(content string) []string
}

// HTMLExtractor walks the parsed HTML tree and collects anchor hrefs
// that start with a single "/" (site-internal, not protocol-relative).
type HTMLExtractor struct{}

// InternalHrefs implements Extractor. Results are deduplicated in
// document order.
func (HTMLExtractor) InternalHrefs(content string) []string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := attr.Val
				if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
					if _, dup := seen[href]; !dup {
						seen[href] = struct{}{}
						out = append(out, href)
					}
				}
				break
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// LinkCheck is the validation verdict for one embedded link.
type LinkCheck struct {
	URL   string `json:"url"`
	Valid bool   `json:"valid"`
}

// LinkCoverage reports whether one suggested link is already embedded.
type LinkCoverage struct {
	TargetURL string `json:"target_url"`
	Covered   bool   `json:"covered"`
}

// Coverage reports which suggested links the post content already embeds.
type Coverage struct {
	Pillar  *LinkCoverage  `json:"pillar,omitempty"`
	Hub     *LinkCoverage  `json:"hub,omitempty"`
	Related []LinkCoverage `json:"related"`
}

// Assembler composes the relevance scorer and anchor text generator into
// ranked link suggestions.
type Assembler struct {
	extractor Extractor
}

// NewAssembler creates an Assembler with the HTML href extractor.
func NewAssembler() *Assembler {
	return &Assembler{extractor: HTMLExtractor{}}
}

// NewAssemblerWith creates an Assembler with a custom extractor.
func NewAssemblerWith(e Extractor) *Assembler {
	return &Assembler{extractor: e}
}

// SuggestedLinks returns, in fixed order: the best pillar, the best hub,
// then the top related posts — each only when its score is positive.
// Anchor text is title-derived (no explicit keyword).
func (a *Assembler) SuggestedLinks(post models.Post, snap *models.Snapshot) []models.InternalLink {
	src := sourceSignals(post, snap)
	var links []models.InternalLink

	if pillar, score, ok := relevance.BestPillar(src, snap.Pillars); ok {
		links = append(links, models.InternalLink{
			TargetURL:      canonical.PathFor(models.KindPillar, pillar.Slug, ""),
			AnchorText:     relevance.AnchorText("", pillar.Title),
			RelevanceScore: score,
			LinkType:       models.LinkTypePillar,
		})
	}

	if hub, score, ok := relevance.BestHub(src, snap.Hubs); ok {
		links = append(links, models.InternalLink{
			TargetURL:      canonical.PathFor(models.KindHub, hub.Slug, ""),
			AnchorText:     relevance.AnchorText("", hub.Name),
			RelevanceScore: score,
			LinkType:       models.LinkTypeHub,
		})
	}

	for _, sp := range relevance.TopRelated(post, snap.Posts, relatedSuggestionCount) {
		links = append(links, models.InternalLink{
			TargetURL:      canonical.PathFor(models.KindPost, sp.Post.Slug, ""),
			AnchorText:     relevance.AnchorText("", sp.Post.Title),
			RelevanceScore: sp.Score,
			LinkType:       models.LinkTypeRelated,
		})
	}

	return links
}

// ValidateInternalLinks checks every internal href in content against the
// known URL set. A link is valid when it, or its trailing-slash-stripped
// form, is known.
func (a *Assembler) ValidateInternalLinks(content string, knownURLs map[string]struct{}) []LinkCheck {
	hrefs := a.extractor.InternalHrefs(content)
	checks := make([]LinkCheck, 0, len(hrefs))
	for _, href := range hrefs {
		_, ok := knownURLs[href]
		if !ok {
			_, ok = knownURLs[strings.TrimSuffix(href, "/")]
		}
		checks = append(checks, LinkCheck{URL: href, Valid: ok})
	}
	return checks
}

// BrokenLinks returns the internal hrefs in content that fail validation.
func (a *Assembler) BrokenLinks(content string, knownURLs map[string]struct{}) []string {
	var broken []string
	for _, c := range a.ValidateInternalLinks(content, knownURLs) {
		if !c.Valid {
			broken = append(broken, c.URL)
		}
	}
	return broken
}

// CheckLinkCoverage reports whether the post's content already embeds its
// suggested pillar/hub/related links, by case-insensitive substring
// containment of the target URL. Content is never mutated.
func (a *Assembler) CheckLinkCoverage(post models.Post, snap *models.Snapshot) Coverage {
	content := strings.ToLower(post.Content)
	embedded := func(target string) bool {
		return strings.Contains(content, strings.ToLower(target))
	}

	cov := Coverage{Related: []LinkCoverage{}}
	for _, link := range a.SuggestedLinks(post, snap) {
		lc := LinkCoverage{TargetURL: link.TargetURL, Covered: embedded(link.TargetURL)}
		switch link.LinkType {
		case models.LinkTypePillar:
			p := lc
			cov.Pillar = &p
		case models.LinkTypeHub:
			h := lc
			cov.Hub = &h
		default:
			cov.Related = append(cov.Related, lc)
		}
	}
	return cov
}

// KnownURLs builds the set of site-relative URLs for every content
// entity in the snapshot, plus the static pages.
func KnownURLs(snap *models.Snapshot) map[string]struct{} {
	known := map[string]struct{}{
		"/":      {},
		"/about": {},
	}
	for _, p := range snap.Posts {
		known[canonical.PathFor(models.KindPost, p.Slug, "")] = struct{}{}
	}
	for _, h := range snap.Hubs {
		known[canonical.PathFor(models.KindHub, h.Slug, "")] = struct{}{}
	}
	for _, p := range snap.Pillars {
		known[canonical.PathFor(models.KindPillar, p.Slug, "")] = struct{}{}
	}
	for _, p := range snap.Programmatic {
		known[canonical.PathFor(models.KindProgrammatic, p.Genre, p.Topic)] = struct{}{}
	}
	for _, r := range snap.Resources {
		known[canonical.PathFor(models.KindResource, r.Slug, "")] = struct{}{}
	}
	for _, a := range snap.Authors {
		known[canonical.PathFor(models.KindAuthor, a.URLSlug(), "")] = struct{}{}
	}
	for _, c := range snap.Categories {
		known[canonical.PathFor(models.KindCategory, c.Slug, "")] = struct{}{}
	}
	return known
}

// sourceSignals resolves a post's category ids into category slugs. Ids
// that match no category are kept verbatim so scoring still sees them.
func sourceSignals(post models.Post, snap *models.Snapshot) relevance.Source {
	categories := make([]string, 0, len(post.CategoryIDs))
	for _, id := range post.CategoryIDs {
		if cat, ok := snap.CategoryByID(id); ok {
			categories = append(categories, cat.Slug)
			continue
		}
		categories = append(categories, id)
	}
	return relevance.Source{
		Title:      post.Title,
		Categories: categories,
		Tags:       post.Tags,
	}
}
