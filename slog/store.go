package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagevec"
)

// Ensure the decorators implement their interfaces.
var (
	_ pagevec.SourceLoader = (*LoggingSourceLoader)(nil)
	_ pagevec.RecordStore  = (*LoggingRecordStore)(nil)
)

// LoggingSourceLoader wraps a SourceLoader with logging.
type LoggingSourceLoader struct {
	next   pagevec.SourceLoader
	logger *slog.Logger
}

// NewLoggingSourceLoader creates a new LoggingSourceLoader.
func NewLoggingSourceLoader(next pagevec.SourceLoader, logger *slog.Logger) *LoggingSourceLoader {
	return &LoggingSourceLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the address count.
func (l *LoggingSourceLoader) Load(ctx context.Context, path string) (urls []string, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load",
			"path", path,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, path)
}

// LoggingRecordStore wraps a RecordStore with logging.
type LoggingRecordStore struct {
	next   pagevec.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next pagevec.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// Seen delegates to the wrapped store and logs the checkpoint size.
func (s *LoggingRecordStore) Seen(ctx context.Context) (seen pagevec.SeenSet, err error) {
	defer func(begin time.Time) {
		n := 0
		if seen != nil {
			n = seen.Len()
		}
		s.logger.Info("seen",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Seen(ctx)
}

// Append delegates to the wrapped store and logs the row count.
func (s *LoggingRecordStore) Append(ctx context.Context, records []*pagevec.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("append",
			"rows", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Append(ctx, records)
}

// Close delegates to the wrapped store.
func (s *LoggingRecordStore) Close() error {
	return s.next.Close()
}
