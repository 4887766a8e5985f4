package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/bloom"
	"github.com/google/uuid"
)

// Seen-set filter sizing.
const (
	minFilterSize = 1024
	filterFPRate  = 0.01
)

// Compile-time interface verification.
var _ pagevec.RecordStore = (*Store)(nil)

// Store implements pagevec.RecordStore on the records table.
type Store struct {
	db *DB
}

// NewStore creates a Store on an opened DB.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// OpenStore opens the database at path and returns a Store that owns it.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, pagevec.Errorf(pagevec.EINVALID, "output path required")
	}
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return nil, pagevec.Errorf(pagevec.EINVALID, "open output %s: %v", path, err)
	}
	return NewStore(db), nil
}

var insertRecord = fmt.Sprintf(
	"INSERT INTO records (%s, url, label, id, content_hash, created_at) VALUES (%s)",
	featureColumns, placeholders(pagevec.FeatureCount+5),
)

// Append inserts records in one transaction. Every record is validated
// first so a bad record never leaves a partial batch behind.
func (s *Store) Append(ctx context.Context, records []*pagevec.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	args := make([]any, pagevec.FeatureCount+5)
	for _, rec := range records {
		for i, n := range rec.Vector {
			args[i] = n
		}
		createdAt := rec.FetchedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		args[pagevec.FeatureCount] = rec.URL
		args[pagevec.FeatureCount+1] = int(rec.Label)
		args[pagevec.FeatureCount+2] = uuid.New().String()
		args[pagevec.FeatureCount+3] = rec.ContentHash
		args[pagevec.FeatureCount+4] = createdAt.UTC().Format(time.RFC3339)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Seen loads every stored address into a Bloom filter. Lookups that hit the
// filter are confirmed against the table, so the set is exact.
func (s *Store) Seen(ctx context.Context) (pagevec.SeenSet, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT url) FROM records").Scan(&n); err != nil {
		return nil, err
	}

	size := uint(max(n, minFilterSize))
	seen := &seenSet{db: s.db, filter: bloom.NewFilter(size, filterFPRate), n: n}

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT url FROM records")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		seen.filter.Add(url)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seen, nil
}

// Records returns stored rows in insertion order.
// Non-positive limit and offset are ignored.
func (s *Store) Records(ctx context.Context, limit, offset int) ([]*pagevec.Record, error) {
	var query strings.Builder
	var args []any

	fmt.Fprintf(&query, "SELECT %s, url, label, content_hash, created_at FROM records ORDER BY rowid", featureColumns)
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*pagevec.Record
	for rows.Next() {
		rec := &pagevec.Record{Vector: pagevec.NewVector()}
		var label int
		var createdAt string
		dest := make([]any, 0, pagevec.FeatureCount+4)
		for i := range rec.Vector {
			dest = append(dest, &rec.Vector[i])
		}
		dest = append(dest, &rec.URL, &label, &rec.ContentHash, &createdAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rec.Label = pagevec.Label(label)
		if rec.FetchedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// seenSet answers membership from the filter and confirms positives
// with an indexed lookup.
type seenSet struct {
	db     *DB
	filter *bloom.Filter
	n      int
}

func (s *seenSet) Has(url string) bool {
	if !s.filter.Test(url) {
		return false
	}
	var one int
	err := s.db.QueryRowContext(context.Background(), "SELECT 1 FROM records WHERE url = ? LIMIT 1", url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	// A failed lookup falls back to the filter answer.
	return true
}

func (s *seenSet) Len() int {
	return s.n
}
