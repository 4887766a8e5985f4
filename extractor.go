package pagevec

// Extractor computes the structural feature vector of an HTML document.
type Extractor interface {
	// Extract parses html and returns a vector of exactly FeatureCount
	// non-negative values. It performs no I/O and is deterministic.
	// An error is returned only when the document cannot be parsed.
	Extract(html string) (Vector, error)
}
