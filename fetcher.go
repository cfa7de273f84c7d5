package mdlocal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alnah/go-mdlocal/internal/fileutil"
)

// Fetch defaults.
const (
	DefaultUserAgent    = "go-mdlocal"
	DefaultMaxAssetSize = 50 << 20 // 50 MiB
)

// Fetcher retrieves the bytes behind an image URL.
// Implementations must honor ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches assets over HTTP(S). Only 2xx responses succeed.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	maxSize   int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient sets the underlying client (e.g. a proxy-aware transport).
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header. Empty keeps the default.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithFetchTimeout bounds each request. Zero or negative means no timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithMaxAssetSize limits the body size accepted per asset.
// Zero or negative keeps DefaultMaxAssetSize.
func WithMaxAssetSize(n int64) FetcherOption {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxSize = n
		}
	}
}

// NewHTTPFetcher creates a fetcher with defaults: http.DefaultClient,
// DefaultUserAgent, no timeout and DefaultMaxAssetSize.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    http.DefaultClient,
		userAgent: DefaultUserAgent,
		maxSize:   DefaultMaxAssetSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawURL. Every error wraps ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if !fileutil.IsURL(rawURL) {
		return nil, fmt.Errorf("%w: %w: %q", ErrFetch, ErrUnsupportedScheme, rawURL)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req) // #nosec G107 -- URL comes from the document being localized
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %w: %s", ErrFetch, ErrFetchStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("%w: %w: more than %d bytes", ErrFetch, ErrAssetTooLarge, f.maxSize)
	}

	return data, nil
}
