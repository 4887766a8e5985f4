package collect

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/pagevec"
	"golang.org/x/time/rate"
)

var _ pagevec.Limiter = (*Limiter)(nil)

// Limiter enforces a minimum spacing between request starts using token
// buckets with a burst of 1. A global limiter shares one bucket across all
// keys; a per-host limiter keeps one bucket per key.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	perHost  bool
}

// NewLimiter creates a Limiter that spaces requests delay apart.
// A non-positive delay disables spacing.
func NewLimiter(delay time.Duration, perHost bool) *Limiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		perHost:  perHost,
	}
}

// Wait blocks until a request for key may start.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	if !l.perHost {
		key = ""
	}

	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

// hostKey returns the limiter key of an address: its host name, or the
// address itself when it does not parse.
func hostKey(addr string) string {
	u, err := url.Parse(addr)
	if err != nil || u.Hostname() == "" {
		return addr
	}
	return u.Hostname()
}
