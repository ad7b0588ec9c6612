// Package pipeline wires the import stages together:
// validate → fetch → extract → resolve → build preview.
//
// Each call is independent and shares no mutable state with concurrent
// calls, so an Importer is safe for concurrent use. Stages short-circuit
// to a terminal *core.ImportError; the pipeline never retries.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/config"
	"github.com/mediatrove/linkimport/core/extract"
	"github.com/mediatrove/linkimport/core/fetch"
	"github.com/mediatrove/linkimport/core/normalize"
	"github.com/mediatrove/linkimport/core/preview"
	"github.com/mediatrove/linkimport/core/resolve"
	"github.com/mediatrove/linkimport/core/validate"
)

// Importer runs product-link imports end to end. It is the sole interface
// the UI layer consumes.
type Importer struct {
	fetcher   core.Fetcher
	extractor *extract.Extractor
	resolver  *resolve.Resolver
	builder   *preview.Builder
	log       *zap.Logger
}

// New creates an Importer with the standard HTTP fetcher.
func New(cfg *config.Config, log *zap.Logger) *Importer {
	return NewWithFetcher(fetch.New(cfg), log)
}

// NewWithFetcher creates an Importer with a custom fetcher. Tests use
// this to substitute canned documents for live requests.
func NewWithFetcher(fetcher core.Fetcher, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		fetcher:   fetcher,
		extractor: extract.New(),
		resolver:  resolve.New(),
		builder:   preview.New(normalize.New()),
		log:       log,
	}
}

// ImportFromURL validates the input URL, fetches the page, and assembles
// a confidence-scored preview. Every failure is a *core.ImportError whose
// code the caller maps to user-facing copy; retrying is a caller decision.
func (i *Importer) ImportFromURL(ctx context.Context, inputURL string) (*core.ImportResult, error) {
	validated, err := validate.URL(inputURL)
	if err != nil {
		i.log.Debug("url validation failed", zap.String("input", inputURL), zap.Error(err))
		return nil, err
	}
	i.log.Debug("url validated", zap.String("url", validated))

	doc, err := i.fetcher.Fetch(ctx, validated)
	if err != nil {
		i.log.Debug("fetch failed", zap.String("url", validated), zap.Error(err))
		return nil, err
	}
	i.log.Debug("fetched",
		zap.String("final_url", doc.FinalURL),
		zap.Int("status", doc.StatusCode),
		zap.Int("bytes", len(doc.HTML)))

	raw := i.extractor.Extract(doc.HTML)
	i.log.Debug("extracted",
		zap.Int("og_tags", len(raw.OGTags)),
		zap.Int("meta_tags", len(raw.MetaTags)),
		zap.Int("jsonld_blocks", len(raw.JSONLDBlocks)),
		zap.Int("jsonld_parsed", raw.JSONLDParsed))

	data := i.resolver.Resolve(raw, doc.FinalURL)

	result, err := i.builder.Build(data, doc.FinalURL)
	if err != nil {
		i.log.Debug("preview rejected", zap.String("url", doc.FinalURL), zap.Error(err))
		return nil, err
	}
	i.log.Debug("preview built",
		zap.String("title", result.Title),
		zap.String("store", result.StoreDomain),
		zap.Float64("confidence", result.Confidence))

	return &core.ImportResult{Preview: result, FinalURL: doc.FinalURL}, nil
}
