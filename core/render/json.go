// Package render provides output renderers for import previews.
// This file implements the JSON renderer, the canonical machine-readable
// output.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/mediatrove/linkimport/core"
)

// JSONRenderer produces indented JSON output from a preview.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the preview as indented JSON.
func (r *JSONRenderer) Render(preview *core.ProductPreview) ([]byte, error) {
	data, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
