// Package http provides an HTTP-based implementation of insight.Fetcher
// for content sources that don't require JavaScript rendering.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/insight"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 * 1024 * 1024

// ErrBodyTooLarge is returned when a response body exceeds the configured
// limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Ensure Fetcher implements insight.Fetcher at compile time.
var _ insight.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content from URLs using HTTP requests.
// Every request carries the insight.UserAgent client identifier unless
// overridden with WithUserAgent.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	limiter   insight.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodyBytes limits the number of body bytes read per response.
// Larger responses fail with ErrBodyTooLarge.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithLimiter makes the fetcher wait on limiter before each request.
func WithLimiter(l insight.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: insight.UserAgent,
		maxBytes:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			// Redirects drop custom headers on cross-host hops.
			req.Header.Set("User-Agent", f.userAgent)
			return nil
		},
	}

	return f
}

// Fetch retrieves the body of the given URL, decoded to UTF-8 when the
// response declares a different charset.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", err
		}
		if err := f.limiter.Wait(ctx, u.Hostname()); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(raw)) > f.maxBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, rawURL, f.maxBytes)
	}

	var body io.Reader = bytes.NewReader(raw)
	if label := charsetLabel(resp.Header.Get("Content-Type")); label != "" {
		decoded, err := charset.NewReaderLabel(label, body)
		if err != nil {
			return "", fmt.Errorf("decoding %s body: %w", label, err)
		}
		body = decoded
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// charsetLabel returns the declared non-UTF-8 charset of a Content-Type
// header, or "" when the body can be used as is.
func charsetLabel(contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	cs := params["charset"]
	switch cs {
	case "", "utf-8", "UTF-8", "utf8":
		return ""
	}
	return cs
}
