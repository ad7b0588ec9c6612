// Heuristic extractors: brute-force price and image scans used only when
// structured metadata is absent. Both operate on the raw HTML string.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Prices outside this range are treated as noise (SKUs, years, epoch
// timestamps) rather than plausible product prices.
const (
	MinPrice = 0.5
	MaxPrice = 1_000_000
)

var (
	// Currency-symbol-adjacent numeric tokens, symbol on either side.
	priceRe = regexp.MustCompile(`[$£€¥]\s?\d[\d.,]*|\d[\d.,]*\s?[$£€¥]`)

	imgTagRe = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	srcRe    = regexp.MustCompile(`(?is)\bsrc\s*=\s*["']([^"']+)["']`)

	// Dimension hints embedded in image URLs, e.g. 300x300 or _SR100,100_.
	dimPairRe  = regexp.MustCompile(`(\d{2,4})[xX](\d{2,4})`)
	dimCommaRe = regexp.MustCompile(`(\d{2,4}),(\d{2,4})`)
)

// ScanPrice scans HTML for currency-adjacent numeric tokens. Among all
// matches it prefers the first whose numeric value parses and falls
// within [MinPrice, MaxPrice]; otherwise it returns the first raw match.
func ScanPrice(html string) string {
	matches := priceRe.FindAllString(html, -1)
	if len(matches) == 0 {
		return ""
	}
	for _, m := range matches {
		if v, ok := ParseAmount(m); ok && PriceInBounds(v) {
			return m
		}
	}
	return matches[0]
}

// ScanImage collects <img src> candidates that are absolute, not data:
// URIs, not SVGs, and not obvious chrome (logo/icon/sprite), then returns
// the highest-scoring one. Ties keep the earliest-seen candidate.
func ScanImage(html string) string {
	var best string
	bestScore := 0
	for _, tag := range imgTagRe.FindAllString(html, -1) {
		m := srcRe.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		src := strings.TrimSpace(m[1])
		lower := strings.ToLower(src)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			continue
		}
		if strings.Contains(lower, ".svg") {
			continue
		}
		if containsAny(lower, "logo", "icon", "sprite") {
			continue
		}
		score := ScoreImageURL(src)
		if best == "" || score > bestScore {
			best = src
			bestScore = score
		}
	}
	return best
}

// ScoreImageURL rates how likely a URL points at the primary product
// image, from substring hints and embedded dimension hints. It is shared
// with the resolver's JSON-LD image-array selection, where candidates are
// not pre-filtered, so the chrome penalties apply here too.
func ScoreImageURL(u string) int {
	lower := strings.ToLower(u)
	score := 0
	if containsAny(lower, "logo", "icon", "sprite") {
		score -= 30
	}
	if containsAny(lower, "thumb", "thumbnail", "small") {
		score -= 12
	}
	if containsAny(lower, "main", "large", "product") {
		score += 8
	}
	if w, h, ok := dimensionHint(u); ok {
		area := w * h
		if area <= 15_000 {
			score -= 8
		}
		if area >= 120_000 {
			score += 6
		}
		bonus := area / 20_000
		if bonus > 20 {
			bonus = 20
		}
		score += bonus
	}
	return score
}

// dimensionHint pulls a width×height pair out of a URL, matching shapes
// like "300x300" or the Amazon-style "_SR100,100_".
func dimensionHint(u string) (w, h int, ok bool) {
	m := dimPairRe.FindStringSubmatch(u)
	if m == nil {
		m = dimCommaRe.FindStringSubmatch(u)
	}
	if m == nil {
		return 0, 0, false
	}
	w, _ = strconv.Atoi(m[1])
	h, _ = strconv.Atoi(m[2])
	if w == 0 || h == 0 {
		return 0, 0, false
	}
	return w, h, true
}

// ParseAmount parses a price-ish string ("$1,299.00", "29,99 €") into a
// number, tolerating currency symbols and comma/period separators.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '£', '€', '¥', ' ', ' ':
			return -1
		}
		return r
	}, s)
	// Sentence punctuation can ride along with a regex match ("$29.99.").
	cleaned = strings.TrimRight(cleaned, ".,")
	if cleaned == "" {
		return 0, false
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		// The later separator is the decimal one; drop the other.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		// A single comma followed by two digits reads as a decimal mark;
		// anything else reads as thousands grouping.
		if strings.Count(cleaned, ",") == 1 && len(cleaned)-strings.Index(cleaned, ",") == 3 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PriceInBounds reports whether v is a plausible product price.
func PriceInBounds(v float64) bool {
	return v >= MinPrice && v <= MaxPrice
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
