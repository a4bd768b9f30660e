// Package robots generates robots.txt policies, matches paths against
// robots patterns, and lints policy text for structural problems.
package robots

import (
	"regexp"
	"strings"
	"sync"
)

// Agents denied all access unless custom rules override the policy.
var defaultBlockedAgents = []string{"gptbot", "ccbot"}

// Paths disallowed for every agent in the default policy.
var defaultDisallows = []string{
	"/admin/",
	"/admin/*",
	"/api/",
	"/*.json$",
	"/draft/",
}

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one validation finding, anchored to a 1-based line number.
type Issue struct {
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Generator builds the robots.txt body for one site.
type Generator struct {
	base          string
	custom        string
	blockedAgents []string
}

// New creates a Generator. base is the canonical site origin used for
// the Sitemap directive; custom, when non-empty, replaces the default
// policy verbatim.
func New(base, custom string) *Generator {
	return &Generator{base: base, custom: custom, blockedAgents: defaultBlockedAgents}
}

// Generate returns the robots.txt body. Custom text is emitted verbatim
// with a Sitemap directive appended when it carries none; otherwise the
// default policy is rendered.
func (g *Generator) Generate() string {
	sitemapURL := strings.TrimSuffix(g.base, "/") + "/sitemap.xml"

	if custom := strings.TrimSpace(g.custom); custom != "" {
		out := custom + "\n"
		if !strings.Contains(strings.ToLower(custom), "sitemap:") {
			out += "\nSitemap: " + sitemapURL + "\n"
		}
		return out
	}

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range defaultDisallows {
		b.WriteString("Disallow: " + p + "\n")
	}
	for _, agent := range g.blockedAgents {
		b.WriteString("\nUser-agent: " + agent + "\n")
		b.WriteString("Disallow: /\n")
	}
	b.WriteString("\nSitemap: " + sitemapURL + "\n")
	return b.String()
}

// IsPathAllowed evaluates path for agent against the generated policy.
// Only the most specific matching group applies: a group naming the
// agent shadows the wildcard group. A matching Disallow blocks the path
// unless a strictly longer Allow pattern also matches.
func (g *Generator) IsPathAllowed(path, agent string) bool {
	agent = strings.ToLower(agent)

	type rule struct {
		allow   bool
		pattern string
	}
	var named, wildcard []rule

	currentAgents := []string{}
	addRule := func(r rule) {
		for _, a := range currentAgents {
			if a == agent {
				named = append(named, r)
				return
			}
		}
		for _, a := range currentAgents {
			if a == "*" {
				wildcard = append(wildcard, r)
				return
			}
		}
	}

	for _, line := range strings.Split(g.Generate(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			currentAgents = currentAgents[:0]
			continue
		}
		directive, value, ok := splitDirective(line)
		if !ok {
			continue
		}
		switch directive {
		case "user-agent":
			currentAgents = append(currentAgents, strings.ToLower(value))
		case "allow":
			if value != "" {
				addRule(rule{allow: true, pattern: value})
			}
		case "disallow":
			if value != "" {
				addRule(rule{allow: false, pattern: value})
			}
		}
	}

	rules := wildcard
	if len(named) > 0 {
		rules = named
	}

	allowLen, disallowLen := -1, -1
	for _, r := range rules {
		if !MatchPattern(r.pattern, path) {
			continue
		}
		if r.allow {
			if len(r.pattern) > allowLen {
				allowLen = len(r.pattern)
			}
		} else if len(r.pattern) > disallowLen {
			disallowLen = len(r.pattern)
		}
	}
	return disallowLen < 0 || allowLen > disallowLen
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

// MatchPattern reports whether path matches a robots pattern. "*"
// matches any run of characters; a trailing "$" anchors the end.
// Patterns are prefix matches otherwise.
func MatchPattern(pattern, path string) bool {
	if pattern == "" {
		return false
	}

	patternMu.Lock()
	re, ok := patternCache[pattern]
	patternMu.Unlock()

	if !ok {
		expr := pattern
		anchored := strings.HasSuffix(expr, "$")
		if anchored {
			expr = strings.TrimSuffix(expr, "$")
		}
		expr = regexp.QuoteMeta(expr)
		expr = strings.ReplaceAll(expr, `\*`, ".*")
		expr = "^" + expr
		if anchored {
			expr += "$"
		}

		var err error
		re, err = regexp.Compile(expr)
		if err != nil {
			return false
		}
		patternMu.Lock()
		patternCache[pattern] = re
		patternMu.Unlock()
	}

	return re.MatchString(path)
}

// Validate lints robots.txt text. Allow/Disallow before any User-agent
// group and a missing User-agent line entirely are errors; a missing
// Sitemap directive and unrecognized directives are warnings.
func Validate(text string) []Issue {
	var issues []Issue

	knownDirectives := map[string]struct{}{
		"user-agent":  {},
		"allow":       {},
		"disallow":    {},
		"sitemap":     {},
		"crawl-delay": {},
		"host":        {},
	}

	sawAgent := false
	sawSitemap := false
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lineNo := i + 1

		directive, _, ok := splitDirective(line)
		if !ok {
			issues = append(issues, Issue{
				Line:     lineNo,
				Severity: SeverityWarning,
				Message:  "line is not a directive: " + line,
			})
			continue
		}

		switch directive {
		case "user-agent":
			sawAgent = true
		case "sitemap":
			sawSitemap = true
		case "allow", "disallow":
			if !sawAgent {
				issues = append(issues, Issue{
					Line:     lineNo,
					Severity: SeverityError,
					Message:  directive + " directive before any User-agent group",
				})
			}
		default:
			if _, known := knownDirectives[directive]; !known {
				issues = append(issues, Issue{
					Line:     lineNo,
					Severity: SeverityWarning,
					Message:  "unrecognized directive: " + directive,
				})
			}
		}
	}

	if !sawAgent {
		issues = append(issues, Issue{
			Line:     0,
			Severity: SeverityError,
			Message:  "no User-agent directive found",
		})
	}
	if !sawSitemap {
		issues = append(issues, Issue{
			Line:     0,
			Severity: SeverityWarning,
			Message:  "no Sitemap directive found",
		})
	}

	return issues
}

func splitDirective(line string) (directive, value string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(line[:i])), strings.TrimSpace(line[i+1:]), true
}
