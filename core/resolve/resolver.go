// Package resolve merges the raw extractor outputs into a single
// candidate record under a fixed source-priority policy: retailer-authored
// structured metadata (Open Graph, JSON-LD) is trusted over ambient page
// content (<title>, <h1>), which is trusted over heuristic scans.
//
// Resolve always returns a record; a missing title is detected by the
// preview builder, not here.
package resolve

import (
	"html"
	"net/url"
	"strings"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/extract"
)

// Resolver merges a RawExtraction into ExtractedData.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve picks one value per field, first applicable source wins:
//
//	title:     og:title → twitter:title → <title> → <h1> → JSON-LD name
//	image:     og:image → twitter:image → JSON-LD image → heuristic scan
//	price:     og product:price → JSON-LD offers → heuristic scan
//	canonical: same-host og:url → <link rel=canonical> → JSON-LD offer URL → final URL
//
// Relative URLs absolutize against finalURL; absolutization failures and
// malformed JSON-LD blocks degrade to "no value", never to an error.
func (r *Resolver) Resolve(raw core.RawExtraction, finalURL string) core.ExtractedData {
	data := core.ExtractedData{Raw: raw}
	base, _ := url.Parse(finalURL)

	// --- Meta and ambient sources ---

	if v := raw.OGTags["og:title"]; v != "" {
		data.Title, data.TitleSource = decode(v), core.SourceOG
	} else if v := raw.MetaTags["twitter:title"]; v != "" {
		data.Title, data.TitleSource = decode(v), core.SourceMeta
	} else if raw.Title != "" {
		data.Title, data.TitleSource = decode(raw.Title), core.SourceTitle
	} else if raw.FirstH1 != "" {
		data.Title, data.TitleSource = decode(raw.FirstH1), core.SourceH1
	}

	if v := absolutize(raw.OGTags["og:image"], base); v != "" {
		data.ImageURL, data.ImageSource = v, core.SourceOG
	} else if v := absolutize(raw.MetaTags["twitter:image"], base); v != "" {
		data.ImageURL, data.ImageSource = v, core.SourceMeta
	}

	if amount := raw.OGTags["product:price:amount"]; amount != "" {
		if v, ok := extract.ParseAmount(amount); ok && extract.PriceInBounds(v) {
			data.Price, data.PriceSource = &v, core.SourceOG
			if cur := raw.OGTags["product:price:currency"]; cur != "" {
				data.Currency, data.CurrencySource = cur, core.SourceOG
			}
		}
	}

	if v := raw.OGTags["og:description"]; v != "" {
		data.Description, data.DescriptionSource = decode(v), core.SourceOG
	} else if v := firstMeta(raw.MetaTags, "twitter:description", "description"); v != "" {
		data.Description, data.DescriptionSource = decode(v), core.SourceMeta
	}

	// og:url is only trusted when it stays on the fetched host; storefronts
	// sometimes point it at an unrelated canonical/AMP mirror.
	if v := raw.OGTags["og:url"]; v != "" && sameHost(v, base) {
		data.CanonicalURL, data.CanonicalSource = v, core.SourceOG
	} else if v := absolutize(raw.CanonicalHref, base); v != "" {
		data.CanonicalURL, data.CanonicalSource = v, core.SourceCanonical
	}

	// --- JSON-LD fills whatever is still unresolved ---

	if prod := findProduct(raw.JSONLDBlocks); prod != nil {
		if data.Title == "" && prod.name != "" {
			data.Title, data.TitleSource = decode(prod.name), core.SourceJSONLD
		}
		if data.ImageURL == "" {
			if v := absolutize(prod.image, base); v != "" {
				data.ImageURL, data.ImageSource = v, core.SourceJSONLD
			}
		}
		if data.Price == nil && prod.price != nil && extract.PriceInBounds(*prod.price) {
			data.Price, data.PriceSource = prod.price, core.SourceJSONLD
			if prod.currency != "" {
				data.Currency, data.CurrencySource = prod.currency, core.SourceJSONLD
			}
		}
		if data.Description == "" && prod.description != "" {
			data.Description, data.DescriptionSource = decode(prod.description), core.SourceJSONLD
		}
		if data.CanonicalURL == "" {
			if v := absolutize(prod.offerURL, base); v != "" {
				data.CanonicalURL, data.CanonicalSource = v, core.SourceJSONLD
			}
		}
	}

	// --- Heuristic fallbacks ---

	if data.ImageURL == "" && raw.HeuristicImage != "" {
		data.ImageURL, data.ImageSource = raw.HeuristicImage, core.SourceHeuristic
	}
	if data.Price == nil && raw.HeuristicPrice != "" {
		if v, ok := extract.ParseAmount(raw.HeuristicPrice); ok && extract.PriceInBounds(v) {
			data.Price, data.PriceSource = &v, core.SourceHeuristic
			if cur := symbolCurrency(raw.HeuristicPrice); cur != "" {
				data.Currency, data.CurrencySource = cur, core.SourceHeuristic
			}
		}
	}

	if data.CanonicalURL == "" {
		data.CanonicalURL, data.CanonicalSource = finalURL, core.SourceCanonical
	}

	return data
}

// decode unescapes HTML entities (&amp;, &quot;, &#39;, &lt;, &gt;, ...)
// and trims surrounding whitespace.
func decode(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// absolutize resolves href against base. Malformed input is "no value".
func absolutize(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if base == nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// sameHost reports whether rawURL parses and shares base's hostname.
func sameHost(rawURL string, base *url.URL) bool {
	if base == nil {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Hostname() != "" && strings.EqualFold(u.Hostname(), base.Hostname())
}

// firstMeta returns the first non-empty value among the given meta names.
func firstMeta(meta map[string]string, names ...string) string {
	for _, n := range names {
		if v := meta[n]; v != "" {
			return v
		}
	}
	return ""
}

// symbolCurrency maps a currency symbol inside a heuristic price match to
// an ISO code. Ambiguous symbols keep their most common reading.
func symbolCurrency(price string) string {
	switch {
	case strings.Contains(price, "$"):
		return "USD"
	case strings.Contains(price, "£"):
		return "GBP"
	case strings.Contains(price, "€"):
		return "EUR"
	case strings.Contains(price, "¥"):
		return "JPY"
	}
	return ""
}
