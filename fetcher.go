package gazette

import "context"

// FetchResult holds a fetched page.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL string

	// HTML is the raw response body.
	HTML string
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch requests the URL and returns the final URL and body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
