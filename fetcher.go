package pagevec

import "context"

// Fetcher retrieves HTML documents from web addresses.
type Fetcher interface {
	// Fetch issues a single request for url and returns the document body.
	// Any outcome other than HTTP 200 is returned as an EFETCH error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}
