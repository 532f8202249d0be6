package imagecache

import (
	"context"
	"sync"

	"github.com/fwojciec/larder"
	"golang.org/x/time/rate"
)

var _ larder.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRate is the default number of requests per second sent to one host.
const DefaultRate = 1.0

// DomainLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter with a burst of 1, so requests to
// different hosts never wait for each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
