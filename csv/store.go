package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fwojciec/pagevec"
)

// Ensure Store implements pagevec.RecordStore at compile time.
var _ pagevec.RecordStore = (*Store)(nil)

// Store is an append-only dataset file: the feature columns in vector
// order, then URL and label. The header is written once, when the file is
// created or empty.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store writing to path. The file itself is created on the
// first Append, but the directory must exist and be writable.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, pagevec.Errorf(pagevec.EINVALID, "output path required")
	}
	if err := checkWritable(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// checkWritable fails unless a file can be created in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".pagevec-*")
	if err != nil {
		return pagevec.Errorf(pagevec.EINVALID, "output directory %s is not writable: %v", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Seen reads the URL column of every row written so far. A missing file
// yields an empty set.
func (s *Store) Seen(ctx context.Context) (pagevec.SeenSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return pagevec.NewURLSet(), nil
	} else if err != nil {
		return nil, pagevec.Errorf(pagevec.EINTERNAL, "open output %s: %v", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err == io.EOF {
		return pagevec.NewURLSet(), nil
	} else if err != nil {
		return nil, pagevec.Errorf(pagevec.EINVALID, "read header of %s: %v", s.path, err)
	}
	col := -1
	for i, name := range header {
		if name == pagevec.URLColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, pagevec.Errorf(pagevec.EINVALID, "output %s has no %s column", s.path, pagevec.URLColumn)
	}

	seen := pagevec.NewURLSet()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pagevec.Errorf(pagevec.EINVALID, "read %s: %v", s.path, err)
		}
		if col < len(row) {
			seen.Add(row[col])
		}
	}
	return seen, nil
}

// Append writes records as rows in order. Every record is validated first
// so a bad record never leaves a partial batch behind.
func (s *Store) Append(ctx context.Context, records []*pagevec.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return pagevec.Errorf(pagevec.EINTERNAL, "open output %s: %v", s.path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return pagevec.Errorf(pagevec.EINTERNAL, "stat output %s: %v", s.path, err)
	}

	if err := Encode(f, records, info.Size() == 0); err != nil {
		_ = f.Close()
		return pagevec.Errorf(pagevec.EINTERNAL, "write output %s: %v", s.path, err)
	}
	if err := f.Close(); err != nil {
		return pagevec.Errorf(pagevec.EINTERNAL, "close output %s: %v", s.path, err)
	}
	return nil
}

// Close is a no-op; every Append opens and closes the file.
func (s *Store) Close() error {
	return nil
}

// Encode writes records as dataset rows, preceded by the column header
// when header is true.
func Encode(w io.Writer, records []*pagevec.Record, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(pagevec.Columns()); err != nil {
			return err
		}
	}
	row := make([]string, pagevec.FeatureCount+2)
	for _, rec := range records {
		for i, n := range rec.Vector {
			row[i] = strconv.Itoa(n)
		}
		row[pagevec.FeatureCount] = rec.URL
		row[pagevec.FeatureCount+1] = strconv.Itoa(int(rec.Label))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
