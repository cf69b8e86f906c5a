package insight

import "context"

// UserAgent is the client identifier sent with every outbound content fetch.
const UserAgent = "Mozilla/5.0 (compatible; AI-Tool-Bot/1.0)"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch retrieves the body of url. Non-success statuses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter rate-limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
