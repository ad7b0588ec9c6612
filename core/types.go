// Package core defines the shared types and stage interfaces for the
// link-import pipeline. Each stage of the pipeline is a clean, testable
// interface over plain data; no stage mutates another stage's output.
package core

import "context"

// FieldSource identifies which extraction method produced a resolved field.
type FieldSource string

const (
	SourceOG        FieldSource = "og"
	SourceJSONLD    FieldSource = "jsonld"
	SourceTitle     FieldSource = "title"
	SourceMeta      FieldSource = "meta"
	SourceH1        FieldSource = "h1"
	SourceHeuristic FieldSource = "heuristic"
	SourceCanonical FieldSource = "canonical"
)

// Structured reports whether the source is retailer-authored metadata
// (Open Graph or JSON-LD) as opposed to ambient page content.
func (s FieldSource) Structured() bool {
	return s == SourceOG || s == SourceJSONLD
}

// FetchResult holds the raw HTML and response metadata from a fetch.
// FinalURL is the post-redirect URL, which all relative links resolve against.
type FetchResult struct {
	FinalURL   string
	StatusCode int
	HTML       string
}

// RawExtraction is the unreconciled bag of everything the extractors found.
// Extractors only add fields here; they never consult each other's output.
type RawExtraction struct {
	OGTags         map[string]string `json:"og_tags"`
	MetaTags       map[string]string `json:"meta_tags"`
	Title          string            `json:"title,omitempty"`
	CanonicalHref  string            `json:"canonical_href,omitempty"`
	JSONLDBlocks   []string          `json:"jsonld_blocks,omitempty"`
	JSONLDParsed   int               `json:"jsonld_parsed"`
	FirstH1        string            `json:"first_h1,omitempty"`
	HeuristicPrice string            `json:"heuristic_price,omitempty"`
	HeuristicImage string            `json:"heuristic_image,omitempty"`
}

// ExtractedData is the resolver's output: one candidate value per field,
// each paired with the source that won the priority contest for it.
// Invariant: if a field is set, its source tag is set too.
type ExtractedData struct {
	Title             string
	TitleSource       FieldSource
	Description       string
	DescriptionSource FieldSource
	ImageURL          string
	ImageSource       FieldSource
	Price             *float64
	PriceSource       FieldSource
	Currency          string
	CurrencySource    FieldSource
	CanonicalURL      string
	CanonicalSource   FieldSource
	Raw               RawExtraction
}

// FieldSources records per-field provenance on the final preview.
type FieldSources struct {
	Title       FieldSource `json:"title,omitempty"`
	Description FieldSource `json:"description,omitempty"`
	Image       FieldSource `json:"image,omitempty"`
	Price       FieldSource `json:"price,omitempty"`
	Currency    FieldSource `json:"currency,omitempty"`
	Canonical   FieldSource `json:"canonical,omitempty"`
}

// DebugTrace carries the full extraction audit trail for caller-side
// transparency. It is never consulted by pipeline logic.
type DebugTrace struct {
	RawExtraction   RawExtraction     `json:"raw_extraction"`
	ChosenValues    map[string]string `json:"chosen_values"`
	ExtractionNotes []string          `json:"extraction_notes"`
}

// ProductPreview is the final structured result of a link import.
// Title is always non-empty; its absence is a terminal error upstream.
type ProductPreview struct {
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	Price        *float64     `json:"price,omitempty"`
	Currency     string       `json:"currency,omitempty"`
	StoreDomain  string       `json:"store_domain"`
	CanonicalURL string       `json:"canonical_url"`
	Confidence   float64      `json:"confidence"`
	FieldSources FieldSources `json:"field_sources"`
	Debug        *DebugTrace  `json:"debug,omitempty"`
}

// ImportResult is what the top-level import returns on success.
type ImportResult struct {
	Preview  *ProductPreview `json:"preview"`
	FinalURL string          `json:"final_url"`
}

// Fetcher retrieves raw HTML from a validated URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts a preview into a final output format.
type Renderer interface {
	Render(preview *ProductPreview) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json").
	Extension() string
}
