// Package indexability decides whether a content item may appear in
// search engine results. Rules are evaluated per content type in a fixed
// order; the first matching rule wins.
package indexability

import (
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/quality"
)

// Pillar pages require more depth than posts before they index.
const pillarDepthFactor = 2

// NoIndex reasons, reported in audit output.
const (
	ReasonDraft           = "draft"
	ReasonExplicitNoIndex = "explicit noindex"
	ReasonEmptyContent    = "empty content"
	ReasonThinContent     = "thin content"
	ReasonEmptyDescription = "empty description"
	ReasonNoGeneratedBody = "no generated content"
	ReasonMissingDownload = "missing download or description"
	ReasonUnknownType     = "unknown content type"
)

// Decision is the terminal verdict for one content item.
type Decision struct {
	Indexable bool   `json:"indexable"`
	Reason    string `json:"reason,omitempty"`
}

func indexable() Decision         { return Decision{Indexable: true} }
func noIndex(reason string) Decision { return Decision{Reason: reason} }

// Evaluate runs the rule chain for the item's type. Unknown variants are
// treated as NoIndex so incomplete pages are never exposed.
func Evaluate(c models.Content, qs models.QualitySettings) Decision {
	switch v := c.(type) {
	case models.Post:
		return evaluatePost(v, qs)
	case models.PillarPage:
		return evaluatePillar(v, qs)
	case models.Hub:
		return evaluateHub(v, qs)
	case models.ProgrammaticPage:
		return evaluateProgrammatic(v, qs)
	case models.ResourcePage:
		return evaluateResource(v, qs)
	default:
		return noIndex(ReasonUnknownType)
	}
}

func evaluatePost(p models.Post, qs models.QualitySettings) Decision {
	if !p.Published() {
		return noIndex(ReasonDraft)
	}
	if qs.AutoNoIndexEmpty && quality.IsEmpty(p.Content) {
		return noIndex(ReasonEmptyContent)
	}
	if quality.IsThin(p.Content, qs.MinContentLength) {
		return noIndex(ReasonThinContent)
	}
	return indexable()
}

func evaluatePillar(p models.PillarPage, qs models.QualitySettings) Decision {
	if p.NoIndex {
		return noIndex(ReasonExplicitNoIndex)
	}
	if qs.AutoNoIndexEmpty && quality.IsEmpty(p.Content) {
		return noIndex(ReasonEmptyContent)
	}
	if quality.IsThin(p.Content, qs.MinContentLength*pillarDepthFactor) {
		return noIndex(ReasonThinContent)
	}
	return indexable()
}

func evaluateHub(h models.Hub, qs models.QualitySettings) Decision {
	if h.NoIndex {
		return noIndex(ReasonExplicitNoIndex)
	}
	if qs.AutoNoIndexEmpty && quality.IsEmpty(h.Description) {
		return noIndex(ReasonEmptyDescription)
	}
	return indexable()
}

func evaluateProgrammatic(p models.ProgrammaticPage, qs models.QualitySettings) Decision {
	if p.NoIndex {
		return noIndex(ReasonExplicitNoIndex)
	}
	if !p.HasContent {
		return noIndex(ReasonNoGeneratedBody)
	}
	if qs.AutoNoIndexEmpty && quality.IsEmpty(p.Content) {
		return noIndex(ReasonEmptyContent)
	}
	if quality.IsThin(p.Content, qs.MinContentLength) {
		return noIndex(ReasonThinContent)
	}
	return indexable()
}

func evaluateResource(r models.ResourcePage, qs models.QualitySettings) Decision {
	if r.NoIndex {
		return noIndex(ReasonExplicitNoIndex)
	}
	if qs.AutoNoIndexEmpty && (r.DownloadURL == "" || quality.IsEmpty(r.Description)) {
		return noIndex(ReasonMissingDownload)
	}
	return indexable()
}
