// Package relevance computes deterministic affinity scores between a
// source content item and candidate link targets. Scores are additive
// integer weights over taxonomy and title overlap; a score of zero means
// "not a candidate".
package relevance

import (
	"sort"
	"strings"

	"github.com/mixfield/seograph/internal/models"
)

// Scoring weights. Chosen empirically; kept stable for compatibility.
const (
	hubCategoryWeight = 50
	hubNameWeight     = 30
	hubTagWeight      = 20

	pillarKeywordWeight = 15
	pillarHubBonus      = 10

	relatedCategoryWeight = 30
	relatedTagWeight      = 20

	// Pillar-title words this short carry no topical signal.
	keywordMinLength = 3

	// Anchors longer than this are truncated to their first words.
	anchorMaxWords = 4

	// Explicit keywords shorter than this are ignored.
	explicitKeywordMinLength = 2
)

// DefaultRelatedCount is how many related posts are selected by default.
const DefaultRelatedCount = 3

// Source carries the signals a scorer reads from the source item:
// its title, resolved category tokens (slugs), and tags.
type Source struct {
	Title      string
	Categories []string
	Tags       []string
}

// HubScore scores a source against a hub candidate.
func HubScore(src Source, hub models.Hub) int {
	score := 0
	hubSlug := strings.ToLower(hub.Slug)
	title := strings.ToLower(src.Title)

	for _, c := range src.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || hubSlug == "" {
			continue
		}
		if strings.Contains(hubSlug, c) || strings.Contains(c, hubSlug) {
			score += hubCategoryWeight
			break
		}
	}

	if name := strings.ToLower(hub.Name); name != "" && strings.Contains(title, name) {
		score += hubNameWeight
	}

	for _, t := range src.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || hubSlug == "" {
			continue
		}
		if strings.Contains(hubSlug, t) || strings.Contains(t, hubSlug) {
			score += hubTagWeight
			break
		}
	}

	return score
}

// PillarScore scores a source against a pillar page candidate.
func PillarScore(src Source, pillar models.PillarPage) int {
	score := 0
	title := strings.ToLower(src.Title)

	for _, kw := range strings.Fields(strings.ToLower(pillar.Title)) {
		if len(kw) <= keywordMinLength {
			continue
		}
		if strings.Contains(title, kw) {
			score += pillarKeywordWeight
		}
	}

	if len(pillar.HubIDs) > 0 {
		score += pillarHubBonus
	}

	return score
}

// RelatedScore scores topical closeness between two posts.
func RelatedScore(a, b models.Post) int {
	score := 0

	seen := make(map[string]struct{}, len(a.CategoryIDs))
	for _, id := range a.CategoryIDs {
		seen[id] = struct{}{}
	}
	for _, id := range b.CategoryIDs {
		if _, ok := seen[id]; ok {
			score += relatedCategoryWeight
		}
	}

	tags := make(map[string]struct{}, len(a.Tags))
	for _, t := range a.Tags {
		tags[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range b.Tags {
		if _, ok := tags[strings.ToLower(t)]; ok {
			score += relatedTagWeight
		}
	}

	return score
}

// BestHub returns the highest-scoring hub. Ties keep the first candidate
// in collection order. ok is false when every candidate scores zero.
func BestHub(src Source, hubs []models.Hub) (best models.Hub, score int, ok bool) {
	for _, h := range hubs {
		if s := HubScore(src, h); s > score {
			best, score, ok = h, s, true
		}
	}
	return best, score, ok
}

// BestPillar returns the highest-scoring pillar page, ties keeping the
// first candidate encountered.
func BestPillar(src Source, pillars []models.PillarPage) (best models.PillarPage, score int, ok bool) {
	for _, p := range pillars {
		if s := PillarScore(src, p); s > score {
			best, score, ok = p, s, true
		}
	}
	return best, score, ok
}

// ScoredPost pairs a candidate post with its relevance score.
type ScoredPost struct {
	Post  models.Post
	Score int
}

// TopRelated returns up to n published sibling posts ranked by score
// descending. The source itself, drafts, and zero-score candidates are
// excluded. Equal scores keep collection order.
func TopRelated(src models.Post, posts []models.Post, n int) []ScoredPost {
	if n <= 0 {
		n = DefaultRelatedCount
	}

	var scored []ScoredPost
	for _, p := range posts {
		if p.ID == src.ID || !p.Published() {
			continue
		}
		if s := RelatedScore(src, p); s > 0 {
			scored = append(scored, ScoredPost{Post: p, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// AnchorText derives link text from an explicit keyword or the candidate
// title: a usable keyword is taken verbatim; otherwise short titles pass
// through whole and long titles are cut to their first words. The result
// is never empty when the title is non-empty.
func AnchorText(explicitKeyword, title string) string {
	if len(explicitKeyword) > explicitKeywordMinLength {
		return explicitKeyword
	}
	words := strings.Fields(title)
	if len(words) <= anchorMaxWords {
		return strings.TrimSpace(title)
	}
	return strings.Join(words[:anchorMaxWords], " ")
}
