package trending

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the origin the trending page is served from.
	DefaultBaseURL = "https://github.com"

	trendingPath = "/trending"

	// FetchTimeout bounds the single request made per invocation.
	FetchTimeout = 15 * time.Second

	maxBodyBytes = 10 << 20

	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	browserAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	browserLanguage  = "en-US,en;q=0.5"
)

// Fetcher retrieves the raw trending page markup.
type Fetcher interface {
	// Fetch returns the page for the given range. Every failure wraps ErrFetch.
	Fetch(ctx context.Context, since TimeRange) (string, error)
}

// HTTPFetcher fetches the trending page over HTTP, posing as a desktop
// browser. The site serves different or blocked content without those headers.
type HTTPFetcher struct {
	httpClient *http.Client
	baseURL    string
}

// FetcherConfig holds configuration for the HTTP fetcher.
type FetcherConfig struct {
	BaseURL string
}

// NewHTTPFetcher creates a fetcher with the fixed request timeout.
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: FetchTimeout,
		},
		baseURL: baseURL,
	}
}

// BaseURL returns the origin this fetcher talks to.
func (f *HTTPFetcher) BaseURL() string {
	return f.baseURL
}

// TrendingURL builds the page URL for a range.
func (f *HTTPFetcher) TrendingURL(since TimeRange) string {
	q := url.Values{}
	q.Set("since", string(since))
	return f.baseURL + trendingPath + "?" + q.Encode()
}

// Fetch performs one GET. There is no retry and no partial body on failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, since TimeRange) (string, error) {
	target := f.TrendingURL(since)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", browserAccept)
	req.Header.Set("Accept-Language", browserLanguage)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: trending page returned status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}

	slog.Debug("fetched trending page", "since", since, "bytes", len(body))
	return string(body), nil
}
