package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"

	"github.com/fwojciec/pagevec"
)

// Ensure Loader implements pagevec.SourceLoader at compile time.
var _ pagevec.SourceLoader = (*Loader)(nil)

// Loader reads addresses from a CSV file.
//
// The address column is chosen in strict priority: a column named "url"
// (any case), else the second column, else the first. Every cell goes
// through pagevec.Normalize and rejects are dropped.
type Loader struct {
	Logger *slog.Logger
}

// NewLoader returns a Loader that logs dropped cells to logger.
// A nil logger discards them.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load returns the normalized addresses of the file at path in file order.
func (l *Loader) Load(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, pagevec.Errorf(pagevec.EINVALID, "input path required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pagevec.Errorf(pagevec.ENOTFOUND, "input file not found: %s", path)
		}
		return nil, pagevec.Errorf(pagevec.EINVALID, "read input %s: %v", path, err)
	}
	data = bytes.TrimPrefix(data, []byte(bom))

	rows, header, err := parse(data)
	if err != nil {
		return nil, pagevec.Errorf(pagevec.EINVALID, "parse input %s: %v", path, err)
	}
	if len(rows) == 0 && header == nil {
		return []string{}, nil
	}

	col := column(header, rows)
	urls := make([]string, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if col >= len(row) {
			dropped++
			continue
		}
		u, ok := pagevec.Normalize(row[col])
		if !ok {
			dropped++
			continue
		}
		urls = append(urls, u)
	}

	if dropped > 0 && l.Logger != nil {
		l.Logger.Debug("dropped cells", "path", path, "column", col, "dropped", dropped)
	}
	return urls, nil
}

// parse reads data and splits off a header row. Files with ragged rows or
// stray quotes are re-read leniently; header detection applies to both.
func parse(data []byte) (rows [][]string, header []string, err error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		r = csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		if records, err = r.ReadAll(); err != nil {
			return nil, nil, err
		}
	}

	if len(records) > 0 && isHeader(records[0]) {
		return records[1:], records[0], nil
	}
	return records, nil, nil
}

// column picks the address column index.
func column(header []string, rows [][]string) int {
	width := len(header)
	if header != nil {
		if i := urlIndex(header); i >= 0 {
			return i
		}
	} else if len(rows) > 0 {
		width = len(rows[0])
	}
	if width > 1 {
		return 1
	}
	return 0
}
