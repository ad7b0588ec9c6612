// Package urltext pulls candidate product URLs out of pasted free text,
// so a whole share-sheet blob or chat message can be imported in one go.
package urltext

import (
	"regexp"
	"strings"
)

// urlRe matches explicit http(s) URLs and bare domains with an optional
// path. Trailing punctuation that commonly follows a pasted link is
// trimmed afterwards.
var urlRe = regexp.MustCompile(`https?://[^\s<>"']+|\b[a-zA-Z0-9][a-zA-Z0-9.-]*\.[a-zA-Z]{2,}(?:/[^\s<>"']*)?`)

// FindURLs returns the candidate URLs found in text, deduplicated,
// in order of first appearance.
func FindURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?)")
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		urls = append(urls, m)
	}
	return urls
}
