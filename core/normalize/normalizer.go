// Package normalize cleans up HTML-bearing description fragments.
// Storefronts routinely embed markup in JSON-LD description fields and
// meta content; this converts such fragments to Markdown and then strips
// the Markdown down to plain text suitable for a preview card.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Normalizer converts HTML fragments to plain text via Markdown.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Markdown converts an HTML fragment into Markdown.
func (n *Normalizer) Markdown(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

// PlainText converts an HTML fragment into whitespace-normalized plain
// text. Fragments without markup pass through with only whitespace
// normalization.
func (n *Normalizer) PlainText(fragment string) (string, error) {
	if !strings.Contains(fragment, "<") {
		return collapse(fragment), nil
	}
	markdown, err := n.Markdown(fragment)
	if err != nil {
		return "", err
	}
	return collapse(stripMarkdown(markdown)), nil
}

// --- Markdown stripping helpers ---

var (
	mdHeadingRe  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasisRe = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	mdCodeRe     = regexp.MustCompile("`([^`]+)`")
)

// stripMarkdown removes common Markdown formatting, keeping the text.
func stripMarkdown(md string) string {
	text := mdHeadingRe.ReplaceAllString(md, "")
	text = mdEmphasisRe.ReplaceAllString(text, "$1")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "```", "")
	text = mdCodeRe.ReplaceAllString(text, "$1")
	return text
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
