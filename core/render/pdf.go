// Package render — PDF renderer.
// Renders a preview as a one-page product card using gofpdf. Images are
// referenced by URL, not embedded; the card is meant for sharing and
// printing list entries, not as a full page snapshot.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/mediatrove/linkimport/core"
)

// PDFRenderer renders a preview as a PDF card.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the preview into PDF bytes.
func (r *PDFRenderer) Render(preview *core.ProductPreview) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252-only; titles and notes may carry wider text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(preview.Title), "", "L", false)
	pdf.Ln(4)

	// Store and source URL.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Store: "+preview.StoreDomain, "", "L", false)
	pdf.MultiCell(0, 5, "Source: "+preview.CanonicalURL, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	if preview.Price != nil {
		line := fmt.Sprintf("Price: %.2f", *preview.Price)
		if preview.Currency != "" {
			line += " " + preview.Currency
		}
		pdf.MultiCell(0, 6, line, "", "L", false)
		pdf.Ln(2)
	}
	if preview.Description != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(preview.Description), "", "L", false)
		pdf.Ln(2)
	}
	if preview.ImageURL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Image: "+preview.ImageURL, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("Confidence: %.2f", preview.Confidence), "", "L", false)

	if preview.Debug != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, "Extraction notes", "", "L", false)
		pdf.SetFont("Helvetica", "", 9)
		for _, note := range preview.Debug.ExtractionNotes {
			pdf.MultiCell(0, 4.5, tr("- "+note), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
