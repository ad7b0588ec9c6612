// Package validate normalizes and rejects unsafe or malformed input URLs
// before anything reaches the network layer. It is a pure function with
// no side effects.
package validate

import (
	"net/netip"
	"net/url"
	"regexp"
	"strings"

	"github.com/mediatrove/linkimport/core"
)

// schemeRe matches input that already carries a URL scheme, including
// authority-less forms like "mailto:user@host". A colon followed by a
// digit reads as host:port instead.
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:[^0-9]`)

// privateRanges are IPv4 ranges that must never be fetched. Even though
// the import runs on the requesting device, accepting these would let a
// pasted link probe internal network resources.
var privateRanges = []netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("172.16.0.0/12"),
}

// URL normalizes raw user input into an absolute http/https URL:
// fragments are stripped, a missing scheme defaults to https, and
// loopback/private hosts are rejected. Every failure is invalid_url.
func URL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", core.NewImportError(core.ErrInvalidURL, "empty URL")
	}

	// Fragments never reach the network layer.
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	// Scheme-less input defaults to https. Input carrying some other
	// scheme, with or without the // authority marker, is left alone so
	// the check below rejects it.
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") &&
		!strings.Contains(s, "://") && !schemeRe.MatchString(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", core.NewImportError(core.ErrInvalidURL, "unparseable URL: "+err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", core.NewImportError(core.ErrInvalidURL, "unsupported scheme: "+u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return "", core.NewImportError(core.ErrInvalidURL, "missing host")
	}
	if isForbiddenHost(host) {
		return "", core.NewImportError(core.ErrInvalidURL, "local or private host: "+host)
	}

	return u.String(), nil
}

// isForbiddenHost reports whether host is loopback or inside a private range.
func isForbiddenHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		// Not an IP literal; hostnames are allowed through.
		return false
	}
	if addr.IsLoopback() {
		return true
	}
	for _, p := range privateRanges {
		if p.Contains(addr.Unmap()) {
			return true
		}
	}
	return false
}
