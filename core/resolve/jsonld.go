// JSON-LD product walk. Each script block parses independently so one
// malformed block never blocks extraction from the others.
package resolve

import (
	"encoding/json"
	"strings"

	"github.com/mediatrove/linkimport/core/extract"
)

// productNode holds the fields pulled from the first schema.org node
// whose @type mentions "product".
type productNode struct {
	name        string
	description string
	image       string
	price       *float64
	currency    string
	offerURL    string
}

// findProduct parses each raw block in document order and returns the
// first qualifying product node. Parse failures are skipped, not fatal.
func findProduct(blocks []string) *productNode {
	for _, block := range blocks {
		var v any
		if err := json.Unmarshal([]byte(block), &v); err != nil {
			continue
		}
		if node := findProductObject(v); node != nil {
			return newProductNode(node)
		}
	}
	return nil
}

// findProductObject walks arrays and @graph containers recursively,
// returning the first object whose @type qualifies as a product.
func findProductObject(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if node := findProductObject(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if isProductType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				if node := findProductObject(item); node != nil {
					return node
				}
			}
		}
	}
	return nil
}

// isProductType matches @type values (string or array) containing the
// substring "product", case-insensitively. This catches Product,
// ProductGroup, and vendor-prefixed variants alike.
func isProductType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "product")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "product") {
				return true
			}
		}
	}
	return false
}

func newProductNode(node map[string]any) *productNode {
	p := &productNode{
		name:        asString(node["name"]),
		description: asString(node["description"]),
		image:       bestImage(node["image"]),
	}

	offer := firstOffer(node["offers"])
	if offer != nil {
		if v, ok := asAmount(offer["price"]); ok {
			p.price = &v
		}
		p.currency = asString(offer["priceCurrency"])
		p.offerURL = asString(offer["url"])
	}
	return p
}

// firstOffer unwraps offers given as a single object or an array.
func firstOffer(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

// bestImage picks an image URL from a string, an array of strings (scored
// the same way the heuristic image scan scores candidates), or an
// ImageObject with a url field.
func bestImage(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return asString(t["url"])
	case []any:
		var best string
		bestScore := 0
		for _, item := range t {
			u := ""
			switch iv := item.(type) {
			case string:
				u = strings.TrimSpace(iv)
			case map[string]any:
				u = asString(iv["url"])
			}
			if u == "" {
				continue
			}
			score := extract.ScoreImageURL(u)
			if best == "" || score > bestScore {
				best, bestScore = u, score
			}
		}
		return best
	}
	return ""
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asAmount accepts JSON-LD prices given as numbers or strings.
func asAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		return extract.ParseAmount(t)
	}
	return 0, false
}
