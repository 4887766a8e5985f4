package mock

import (
	"context"

	"github.com/fwojciec/pagevec"
)

var _ pagevec.SourceLoader = (*SourceLoader)(nil)

// SourceLoader is a mock implementation of pagevec.SourceLoader.
type SourceLoader struct {
	LoadFn func(ctx context.Context, path string) ([]string, error)
}

func (l *SourceLoader) Load(ctx context.Context, path string) ([]string, error) {
	return l.LoadFn(ctx, path)
}
