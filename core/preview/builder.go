// Package preview validates the resolved record and assembles the final
// ProductPreview: tracking parameters stripped, store domain derived,
// confidence scored, and the full extraction trace attached.
package preview

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/normalize"
)

// Builder finalizes ExtractedData into a ProductPreview.
type Builder struct {
	norm *normalize.Normalizer
}

// New creates a Builder using the given description normalizer.
func New(norm *normalize.Normalizer) *Builder {
	return &Builder{norm: norm}
}

// Build returns the preview, or no_product_data when no title was
// resolved. Title is the only mandatory field; every other field is
// reasonably absent on legitimate product pages.
func (b *Builder) Build(data core.ExtractedData, finalURL string) (*core.ProductPreview, error) {
	if data.Title == "" {
		return nil, core.NewImportError(core.ErrNoProductData, "no title could be resolved by any method")
	}

	canonical := data.CanonicalURL
	if canonical == "" {
		canonical = finalURL
	}
	canonical = StripTrackingParams(canonical)

	p := &core.ProductPreview{
		Title:        data.Title,
		ImageURL:     data.ImageURL,
		Price:        data.Price,
		Currency:     data.Currency,
		StoreDomain:  storeDomain(canonical),
		CanonicalURL: canonical,
		Confidence:   confidence(data),
		FieldSources: core.FieldSources{
			Title:       data.TitleSource,
			Description: data.DescriptionSource,
			Image:       data.ImageSource,
			Price:       data.PriceSource,
			Currency:    data.CurrencySource,
			Canonical:   data.CanonicalSource,
		},
	}

	if data.Description != "" {
		// Descriptions may carry markup; failures keep the raw text.
		if text, err := b.norm.PlainText(data.Description); err == nil && text != "" {
			p.Description = text
		} else {
			p.Description = strings.TrimSpace(data.Description)
		}
	}

	p.Debug = &core.DebugTrace{
		RawExtraction:   data.Raw,
		ChosenValues:    chosenValues(p),
		ExtractionNotes: extractionNotes(p.FieldSources),
	}
	return p, nil
}

// trackingParamRe matches ad/campaign query parameters together with the
// separator that precedes them. The separator anchor keeps parameters
// whose names merely contain a tracking name ("xgclid", "custom_utm_tag")
// from matching.
var trackingParamRe = regexp.MustCompile(`(?i)([?&])(?:utm_[a-z0-9_]+|gclid|fbclid|gclsrc)=[^&#]*`)

// StripTrackingParams removes utm_*, gclid, fbclid, and gclsrc query
// parameters via targeted regex removal. Each removal keeps its leading
// separator, so consecutive removals leave "?&" or "&&" runs to collapse.
func StripTrackingParams(rawURL string) string {
	cleaned := trackingParamRe.ReplaceAllString(rawURL, "$1")
	for strings.Contains(cleaned, "?&") || strings.Contains(cleaned, "&&") {
		cleaned = strings.ReplaceAll(cleaned, "?&", "?")
		cleaned = strings.ReplaceAll(cleaned, "&&", "&")
	}
	cleaned = strings.TrimSuffix(cleaned, "&")
	cleaned = strings.TrimSuffix(cleaned, "?")
	return cleaned
}

// storeDomain derives a stable per-store identity from the canonical URL:
// the registrable domain where one can be determined, otherwise the
// hostname with a leading www. stripped. URL-parse failure yields the
// literal "unknown" rather than failing the pipeline.
func storeDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	host := strings.ToLower(u.Hostname())
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld1
	}
	return strings.TrimPrefix(host, "www.")
}

// confidence scores how much of the preview came from structured
// (retailer-authored) sources, additively, clamped to [0,1]:
//
//	title  +0.4 structured / +0.2 otherwise
//	image  +0.3 structured / +0.1 otherwise
//	price  +0.3 structured / +0.1 otherwise
func confidence(data core.ExtractedData) float64 {
	score := 0.0
	if data.Title != "" {
		if data.TitleSource.Structured() {
			score += 0.4
		} else {
			score += 0.2
		}
	}
	if data.ImageURL != "" {
		if data.ImageSource.Structured() {
			score += 0.3
		} else {
			score += 0.1
		}
	}
	if data.Price != nil {
		if data.PriceSource.Structured() {
			score += 0.3
		} else {
			score += 0.1
		}
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// extractionNotes builds the human-readable per-field provenance trace.
func extractionNotes(fs core.FieldSources) []string {
	return []string{
		"Title from: " + sourceOrDash(fs.Title),
		"Image from: " + sourceOrDash(fs.Image),
		"Price from: " + sourceOrDash(fs.Price),
		"Description from: " + sourceOrDash(fs.Description),
		"Canonical URL from: " + sourceOrDash(fs.Canonical),
	}
}

func sourceOrDash(s core.FieldSource) string {
	if s == "" {
		return "—"
	}
	return string(s)
}

// chosenValues snapshots the winning values for the debug trace.
func chosenValues(p *core.ProductPreview) map[string]string {
	values := map[string]string{
		"title":     p.Title,
		"image":     p.ImageURL,
		"canonical": p.CanonicalURL,
	}
	if p.Price != nil {
		values["price"] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *p.Price), "0"), ".")
		values["currency"] = p.Currency
	}
	if p.Description != "" {
		values["description"] = p.Description
	}
	return values
}
