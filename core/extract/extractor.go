// Package extract implements the HTML field extractors.
// Each extractor is total: it returns an empty value when nothing is
// found and never errors, because real-world e-commerce HTML is
// frequently invalid and partial extraction is the expected common case.
// Tag-shaped lookups go through goquery (an error-correcting HTML5
// parser); the price and image heuristics stay regex-based.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mediatrove/linkimport/core"
)

// Extractor scans raw HTML into a RawExtraction. Extractors only append
// to the record; none of them consults another's output.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs every field extractor over the HTML and collects the
// unreconciled results. It never fails: on unparseable input the
// regex-based heuristics still run over the raw string.
func (e *Extractor) Extract(html string) core.RawExtraction {
	raw := core.RawExtraction{
		OGTags:   make(map[string]string),
		MetaTags: make(map[string]string),
	}

	// The heuristics work on the raw string and need no parse.
	raw.HeuristicPrice = ScanPrice(html)
	raw.HeuristicImage = ScanImage(html)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return raw
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok || content == "" {
			return
		}
		if prop, ok := s.Attr("property"); ok && prop != "" {
			if _, seen := raw.OGTags[prop]; !seen {
				raw.OGTags[prop] = content
			}
		}
		if name, ok := s.Attr("name"); ok && name != "" {
			if _, seen := raw.MetaTags[name]; !seen {
				raw.MetaTags[name] = content
			}
		}
	})

	raw.Title = collapseSpace(doc.Find("title").First().Text())
	raw.FirstH1 = collapseSpace(doc.Find("h1").First().Text())

	doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if !strings.EqualFold(strings.TrimSpace(rel), "canonical") {
			return true
		}
		if href, ok := s.Attr("href"); ok && href != "" {
			raw.CanonicalHref = strings.TrimSpace(href)
			return false
		}
		return true
	})

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		if !strings.Contains(strings.ToLower(typ), "ld+json") {
			return
		}
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		raw.JSONLDBlocks = append(raw.JSONLDBlocks, body)
		if json.Valid([]byte(body)) {
			raw.JSONLDParsed++
		}
	})

	return raw
}

// collapseSpace trims and collapses all interior whitespace runs to a
// single space, normalizing multi-line tag text.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
