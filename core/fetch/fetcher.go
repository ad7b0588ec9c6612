// Package fetch implements the Fetcher interface.
// It performs one constrained HTTP GET per call: fixed timeout, body size
// cap, HTML-only content types, and a typed error for every failure mode.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/config"
)

// HTTPFetcher fetches product pages via HTTP. It never retries; a caller
// wanting retries owns that decision.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// New creates an HTTPFetcher with the configured timeout and body cap.
func New(cfg *config.Config) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodyBytes,
	}
}

// Fetch retrieves the HTML of the given URL, following redirects and
// reporting the post-redirect URL. Every failure is an ImportError:
// deadline → timeout, 403/429 → blocked, non-HTML → not_html, body cap
// exceeded → too_large, anything else → fetch_failed.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, core.NewImportError(core.ErrFetchFailed, fmt.Sprintf("creating request: %v", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	// resp.Request reflects the last request in the redirect chain.
	finalURL := resp.Request.URL.String()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return nil, core.NewImportError(core.ErrBlocked,
			fmt.Sprintf("origin rejected the request with status %d", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.NewImportError(core.ErrFetchFailed,
			fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, finalURL))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, core.NewImportError(core.ErrNotHTML, "content type "+contentType)
	}

	// Read one byte past the cap so an exactly-at-cap body still passes.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, core.NewImportError(core.ErrTooLarge,
			fmt.Sprintf("response exceeds %d bytes", f.maxBody))
	}

	return &core.FetchResult{
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// classifyTransportError maps a transport-level error onto the taxonomy.
// Go has no CORS layer, so unlike a browser runtime there is no
// network-exception branch for blocked; only deadline errors are special.
func classifyTransportError(err error) *core.ImportError {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewImportError(core.ErrTimeout, "fetch deadline exceeded")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return core.NewImportError(core.ErrTimeout, "fetch deadline exceeded")
	}
	return core.NewImportError(core.ErrFetchFailed, err.Error())
}
