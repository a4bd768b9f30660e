package indexability

import (
	"strings"
	"testing"

	"github.com/mixfield/seograph/internal/models"
)

var qs = models.QualitySettings{MinContentLength: 300, AutoNoIndexEmpty: true}

func words(n int) string {
	return strings.Repeat("word ", n)
}

func TestPost_DraftNeverIndexes(t *testing.T) {
	p := models.Post{Status: models.StatusDraft, Content: words(500)}
	d := Evaluate(p, qs)
	if d.Indexable {
		t.Fatal("draft with long content must not index")
	}
	if d.Reason != ReasonDraft {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonDraft)
	}
}

func TestPost_PublishedLongContentIndexes(t *testing.T) {
	p := models.Post{Status: models.StatusPublished, Content: words(500)}
	if d := Evaluate(p, qs); !d.Indexable {
		t.Errorf("expected indexable, got reason %q", d.Reason)
	}
}

func TestPost_EmptyContent(t *testing.T) {
	p := models.Post{Status: models.StatusPublished, Content: "<p> </p>"}
	d := Evaluate(p, qs)
	if d.Indexable || d.Reason != ReasonEmptyContent {
		t.Errorf("got %+v, want empty content noindex", d)
	}
}

func TestPost_EmptyAllowedWhenAutoOff(t *testing.T) {
	relaxed := models.QualitySettings{MinContentLength: 1, AutoNoIndexEmpty: false}
	p := models.Post{Status: models.StatusPublished, Content: "one word here"}
	if d := Evaluate(p, relaxed); !d.Indexable {
		t.Errorf("got %+v", d)
	}
}

func TestPost_ThinContent(t *testing.T) {
	p := models.Post{Status: models.StatusPublished, Content: words(100)}
	d := Evaluate(p, qs)
	if d.Indexable || d.Reason != ReasonThinContent {
		t.Errorf("got %+v, want thin content noindex", d)
	}
}

func TestPillar_RequiresDoubleDepth(t *testing.T) {
	shallow := models.PillarPage{Content: words(400)}
	if d := Evaluate(shallow, qs); d.Indexable {
		t.Error("400 words should be thin for a pillar at threshold 600")
	}
	deep := models.PillarPage{Content: words(700)}
	if d := Evaluate(deep, qs); !d.Indexable {
		t.Errorf("700 words should pass, got %q", d.Reason)
	}
}

func TestPillar_ExplicitNoIndexWins(t *testing.T) {
	p := models.PillarPage{NoIndex: true, Content: words(900)}
	d := Evaluate(p, qs)
	if d.Indexable || d.Reason != ReasonExplicitNoIndex {
		t.Errorf("got %+v", d)
	}
}

func TestHub_DescriptionRequired(t *testing.T) {
	empty := models.Hub{Slug: "mixing"}
	if d := Evaluate(empty, qs); d.Indexable {
		t.Error("hub without description should not index")
	}
	described := models.Hub{Slug: "mixing", Description: "All about mixing."}
	if d := Evaluate(described, qs); !d.Indexable {
		t.Errorf("described hub should index, got %q", d.Reason)
	}
}

func TestProgrammatic_NeedsGeneratedBody(t *testing.T) {
	p := models.ProgrammaticPage{HasContent: false, Content: words(500)}
	d := Evaluate(p, qs)
	if d.Indexable || d.Reason != ReasonNoGeneratedBody {
		t.Errorf("got %+v", d)
	}
	ok := models.ProgrammaticPage{HasContent: true, Content: words(500)}
	if d := Evaluate(ok, qs); !d.Indexable {
		t.Errorf("got %q", d.Reason)
	}
}

func TestResource_NeedsDownloadAndDescription(t *testing.T) {
	missing := models.ResourcePage{Description: "A checklist."}
	if d := Evaluate(missing, qs); d.Indexable {
		t.Error("resource without download url should not index")
	}
	noDesc := models.ResourcePage{DownloadURL: "https://cdn.example.com/x.pdf"}
	if d := Evaluate(noDesc, qs); d.Indexable {
		t.Error("resource without description should not index")
	}
	full := models.ResourcePage{Description: "A checklist.", DownloadURL: "https://cdn.example.com/x.pdf"}
	if d := Evaluate(full, qs); !d.Indexable {
		t.Errorf("got %q", d.Reason)
	}
}

func TestUnknownVariantDefaultsToNoIndex(t *testing.T) {
	d := Evaluate(nil, qs)
	if d.Indexable || d.Reason != ReasonUnknownType {
		t.Errorf("got %+v", d)
	}
}
