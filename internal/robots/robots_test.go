package robots

import (
	"strings"
	"testing"
)

func TestGenerateDefaultPolicy(t *testing.T) {
	out := New("https://example.com", "").Generate()

	for _, want := range []string{
		"User-agent: *\n",
		"Allow: /\n",
		"Disallow: /admin/\n",
		"Disallow: /admin/*\n",
		"Disallow: /api/\n",
		"Disallow: /*.json$\n",
		"Disallow: /draft/\n",
		"User-agent: gptbot\n",
		"User-agent: ccbot\n",
		"Sitemap: https://example.com/sitemap.xml\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("default policy missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateCustomVerbatim(t *testing.T) {
	custom := "User-agent: *\nDisallow: /private/"
	out := New("https://example.com/", custom).Generate()

	if !strings.HasPrefix(out, custom) {
		t.Errorf("custom text not emitted verbatim:\n%s", out)
	}
	if !strings.Contains(out, "Sitemap: https://example.com/sitemap.xml") {
		t.Error("sitemap directive not appended to custom text")
	}
	if strings.Contains(out, "gptbot") {
		t.Error("custom text must replace the default policy entirely")
	}
}

func TestGenerateCustomKeepsOwnSitemap(t *testing.T) {
	custom := "User-agent: *\nAllow: /\nSitemap: https://example.com/other.xml"
	out := New("https://example.com", custom).Generate()

	if strings.Count(out, "Sitemap:") != 1 {
		t.Errorf("sitemap directive duplicated:\n%s", out)
	}
}

func TestIsPathAllowed(t *testing.T) {
	g := New("https://example.com", "")

	cases := []struct {
		path  string
		agent string
		want  bool
	}{
		{"/blog/post", "googlebot", true},
		{"/", "googlebot", true},
		{"/admin/foo", "googlebot", false},
		{"/api/seo/audit", "googlebot", false},
		{"/data.json", "googlebot", false},
		{"/draft/wip", "googlebot", false},
		{"/blog/post", "gptbot", false},
		{"/admin/foo", "gptbot", false},
		{"/blog/post", "*", true},
		{"/", "ccbot", false},
	}
	for _, c := range cases {
		if got := g.IsPathAllowed(c.path, c.agent); got != c.want {
			t.Errorf("IsPathAllowed(%q, %q) = %v, want %v", c.path, c.agent, got, c.want)
		}
	}
}

func TestIsPathAllowed_LongestPatternWins(t *testing.T) {
	custom := "User-agent: *\nDisallow: /docs/\nAllow: /docs/public/"
	g := New("https://example.com", custom)

	if g.IsPathAllowed("/docs/internal", "googlebot") {
		t.Error("/docs/internal should be disallowed")
	}
	if !g.IsPathAllowed("/docs/public/guide", "googlebot") {
		t.Error("longer Allow pattern should override the Disallow")
	}
}

func TestIsPathAllowed_DisallowWinsTies(t *testing.T) {
	custom := "User-agent: *\nAllow: /docs/\nDisallow: /docs/"
	g := New("https://example.com", custom)

	if g.IsPathAllowed("/docs/guide", "googlebot") {
		t.Error("equal-length Allow must not override the Disallow")
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/admin/", "/admin/users", true},
		{"/admin/", "/administrate", false},
		{"/admin/*", "/admin/users/5", true},
		{"/*.json$", "/data.json", true},
		{"/*.json$", "/api/export.json", true},
		{"/*.json$", "/data.json.bak", false},
		{"/", "/anything", true},
		{"", "/anything", false},
		{"/exact$", "/exact", true},
		{"/exact$", "/exactly", false},
	}
	for _, c := range cases {
		if got := MatchPattern(c.pattern, c.path); got != c.want {
			t.Errorf("MatchPattern(%q, %q) = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestValidate_CleanPolicy(t *testing.T) {
	out := New("https://example.com", "").Generate()
	if issues := Validate(out); len(issues) != 0 {
		t.Errorf("generated policy should validate cleanly, got %+v", issues)
	}
}

func TestValidate_RuleBeforeAgentIsError(t *testing.T) {
	issues := Validate("Disallow: /admin/\nUser-agent: *\nSitemap: https://example.com/sitemap.xml")

	if len(issues) != 1 {
		t.Fatalf("issues = %+v", issues)
	}
	if issues[0].Severity != SeverityError || issues[0].Line != 1 {
		t.Errorf("got %+v", issues[0])
	}
}

func TestValidate_MissingAgentAndSitemap(t *testing.T) {
	issues := Validate("# just a comment\n")

	var errs, warns int
	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		}
	}
	if errs != 1 || warns != 1 {
		t.Errorf("want 1 error (no agent) and 1 warning (no sitemap), got %+v", issues)
	}
}

func TestValidate_Warnings(t *testing.T) {
	text := "User-agent: *\nAllow: /\nnot a directive\nFoobar: value\nSitemap: https://example.com/sitemap.xml"
	issues := Validate(text)

	if len(issues) != 2 {
		t.Fatalf("issues = %+v", issues)
	}
	for _, is := range issues {
		if is.Severity != SeverityWarning {
			t.Errorf("expected warning, got %+v", is)
		}
	}
	if issues[0].Line != 3 || issues[1].Line != 4 {
		t.Errorf("line numbers wrong: %+v", issues)
	}
}
