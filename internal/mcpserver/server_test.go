package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mixfield/seograph/internal/catalog"
	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/seoservice"
	"github.com/mixfield/seograph/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db := testutil.TestDB(t)
	snap := testutil.SampleSnapshot()

	upsert := func(path string, kind models.Kind, id string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if err := db.UpsertDocument(catalog.DocumentRow{
			Path: path, Kind: kind, ID: id, Checksum: path, Data: data, UpdatedAt: time.Now(),
		}); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range snap.Posts {
		upsert("posts/"+p.Slug+".json", models.KindPost, p.ID, p)
	}
	for _, h := range snap.Hubs {
		upsert("hubs/"+h.Slug+".json", models.KindHub, h.ID, h)
	}
	for _, p := range snap.Pillars {
		upsert("pillars/"+p.Slug+".json", models.KindPillar, p.ID, p)
	}
	for _, c := range snap.Categories {
		upsert("categories/"+c.Slug+".json", models.KindCategory, c.ID, c)
	}

	svc := seoservice.New(db,
		models.SiteMeta{BaseURL: "https://example.com", Title: "Example"},
		testutil.Quality(),
		models.SitemapSettings{ChangeFreq: "weekly", CacheTTL: time.Hour,
			Priorities: models.SitemapPriorities{Home: 1.0, Post: 0.8, Hub: 0.9, Pillar: 0.9}},
		"")
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "suggest_links":
		result, err = srv.suggestLinks(ctx, req)
	case "audit_content":
		result, err = srv.auditContent(ctx, req)
	case "validate_robots":
		result, err = srv.validateRobots(ctx, req)
	case "get_sitemap":
		result, err = srv.getSitemap(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSuggestLinksTool(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "suggest_links", map[string]interface{}{"post_id": "p1"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var links []models.InternalLink
	if err := json.Unmarshal([]byte(resultText(r)), &links); err != nil {
		t.Fatalf("result is not link JSON: %v", err)
	}
	if len(links) == 0 {
		t.Error("expected at least one suggestion")
	}
}

func TestSuggestLinksToolMissingPost(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "suggest_links", map[string]interface{}{"post_id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing post")
	}
}

func TestAuditContentTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "audit_content", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"indexable"`) {
		t.Errorf("audit output missing verdicts: %s", resultText(r))
	}
}

func TestValidateRobotsTool(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "validate_robots", map[string]interface{}{
		"text": "User-agent: *\nAllow: /\nSitemap: https://example.com/sitemap.xml\n",
	})
	if resultText(r) != "no issues found" {
		t.Errorf("clean policy result = %q", resultText(r))
	}

	r = callTool(t, srv, "validate_robots", map[string]interface{}{
		"text": "Disallow: /private/\n",
	})
	if !strings.Contains(resultText(r), "User-agent") {
		t.Errorf("expected User-agent finding, got %q", resultText(r))
	}
}

func TestGetSitemapTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_sitemap", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "<urlset") {
		t.Error("sitemap output missing urlset element")
	}
}
