package http

import (
	"context"
	"sync"

	"github.com/fwojciec/insight"
	"golang.org/x/time/rate"
)

var _ insight.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out fetches to the same host with one token bucket
// per host.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter returns a limiter allowing rps requests per second per
// host with a burst of 1. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until a request to domain is allowed.
// Returns the context error if ctx ends first.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	bucket, ok := d.buckets[domain]
	if !ok {
		bucket = rate.NewLimiter(d.limit, 1)
		d.buckets[domain] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}
