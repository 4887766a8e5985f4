package mock

import "github.com/fwojciec/pagevec"

var _ pagevec.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagevec.Extractor.
type Extractor struct {
	ExtractFn func(html string) (pagevec.Vector, error)
}

func (e *Extractor) Extract(html string) (pagevec.Vector, error) {
	return e.ExtractFn(html)
}
