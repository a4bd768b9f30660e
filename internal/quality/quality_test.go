package quality

import (
	"strings"
	"testing"
)

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"<div><script>var x = 1;</script>visible</div>", "visible"},
		{"<style>.a{color:red}</style>styled", "styled"},
		{"", ""},
		{"<p></p>", ""},
	}
	for _, c := range cases {
		if got := StripMarkup(c.in); got != c.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWordCountIgnoresMarkup(t *testing.T) {
	plain := "one two three four five"
	wrapped := "<article><h1>one</h1><p>two <em>three</em> four</p><p>five</p></article>"
	if WordCount(plain) != 5 {
		t.Errorf("plain count = %d", WordCount(plain))
	}
	if WordCount(wrapped) != 5 {
		t.Errorf("wrapped count = %d", WordCount(wrapped))
	}
}

func TestWordCountMatchesPlainEquivalent(t *testing.T) {
	words := strings.Repeat("word ", 120)
	html := "<div>" + words + "</div>"
	if WordCount(words) != WordCount(html) {
		t.Errorf("markup changed word count: %d vs %d", WordCount(words), WordCount(html))
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty("") {
		t.Error("empty string should be empty")
	}
	if !IsEmpty("<p>   </p>") {
		t.Error("whitespace-only markup should be empty")
	}
	if IsEmpty("<p>x</p>") {
		t.Error("content should not be empty")
	}
}

func TestIsThin(t *testing.T) {
	body := strings.Repeat("word ", 299)
	if !IsThin(body, 300) {
		t.Error("299 words should be thin at threshold 300")
	}
	if IsThin(body+"word", 300) {
		t.Error("300 words should not be thin at threshold 300")
	}
}
