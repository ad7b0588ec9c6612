// Package render — Markdown renderer.
// Formats a preview as a compact Markdown card for pasting into notes
// and list descriptions.
package render

import (
	"fmt"
	"strings"

	"github.com/mediatrove/linkimport/core"
)

// MarkdownRenderer writes a preview as a Markdown card.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render formats the preview fields as Markdown. Absent optional fields
// are omitted rather than rendered empty.
func (r *MarkdownRenderer) Render(preview *core.ProductPreview) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", preview.Title)
	if preview.ImageURL != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", preview.Title, preview.ImageURL)
	}
	if preview.Price != nil {
		fmt.Fprintf(&b, "**Price:** %.2f", *preview.Price)
		if preview.Currency != "" {
			fmt.Fprintf(&b, " %s", preview.Currency)
		}
		b.WriteString("\n\n")
	}
	if preview.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", preview.Description)
	}
	fmt.Fprintf(&b, "**Store:** %s\n\n", preview.StoreDomain)
	fmt.Fprintf(&b, "**Confidence:** %.2f\n\n", preview.Confidence)
	fmt.Fprintf(&b, "[View product](%s)\n", preview.CanonicalURL)

	if preview.Debug != nil {
		b.WriteString("\n## Extraction notes\n\n")
		for _, note := range preview.Debug.ExtractionNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
