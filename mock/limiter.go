package mock

import (
	"context"

	"github.com/fwojciec/pagevec"
)

var _ pagevec.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of pagevec.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, key string) error
}

func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.WaitFn(ctx, key)
}
