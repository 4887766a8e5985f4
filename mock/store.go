package mock

import (
	"context"

	"github.com/fwojciec/pagevec"
)

var _ pagevec.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of pagevec.RecordStore.
type RecordStore struct {
	SeenFn   func(ctx context.Context) (pagevec.SeenSet, error)
	AppendFn func(ctx context.Context, records []*pagevec.Record) error
	CloseFn  func() error
}

func (s *RecordStore) Seen(ctx context.Context) (pagevec.SeenSet, error) {
	return s.SeenFn(ctx)
}

func (s *RecordStore) Append(ctx context.Context, records []*pagevec.Record) error {
	return s.AppendFn(ctx, records)
}

func (s *RecordStore) Close() error {
	return s.CloseFn()
}
