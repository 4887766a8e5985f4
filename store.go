package pagevec

import "context"

// SourceLoader reads addresses from an input file.
type SourceLoader interface {
	// Load returns the normalized addresses of the file at path in file
	// order. Duplicates are kept; values that do not normalize are dropped.
	Load(ctx context.Context, path string) ([]string, error)
}

// SeenSet is the set of addresses already present in an output store.
type SeenSet interface {
	Has(url string) bool
	Len() int
}

// RecordStore persists dataset records append-only.
type RecordStore interface {
	// Seen reads the address column of everything persisted so far.
	Seen(ctx context.Context) (SeenSet, error)

	// Append persists records in order as one operation. Column headers
	// are written only when the store is new.
	Append(ctx context.Context, records []*Record) error

	// Close releases store resources.
	Close() error
}

// URLSet is an exact in-memory SeenSet.
type URLSet map[string]struct{}

// NewURLSet returns a set holding urls.
func NewURLSet(urls ...string) URLSet {
	s := make(URLSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

// Add adds url to the set.
func (s URLSet) Add(url string) {
	s[url] = struct{}{}
}

// Has reports whether url is in the set.
func (s URLSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// Len returns the number of distinct addresses in the set.
func (s URLSet) Len() int {
	return len(s)
}

// Limiter spaces requests to be polite to remote hosts.
type Limiter interface {
	// Wait blocks until a request for key may start.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, key string) error
}
