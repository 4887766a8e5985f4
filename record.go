package pagevec

import "time"

// Dataset column names that follow the feature columns.
const (
	URLColumn   = "URL"
	LabelColumn = "label"
)

// Label classifies the source corpus an address was taken from.
type Label int

// Label values.
const (
	LabelLegitimate Label = 0
	LabelPhishing   Label = 1
)

// Validate returns an error if l is not a known label.
func (l Label) Validate() error {
	if l != LabelLegitimate && l != LabelPhishing {
		return Errorf(EINVALID, "label must be 0 or 1, got %d", int(l))
	}
	return nil
}

// Record is one dataset row: the vector of a fetched page, its address and
// the label of its source corpus. Records are never updated once written.
type Record struct {
	Vector Vector
	URL    string
	Label  Label

	// ContentHash identifies the fetched markup. Stores may persist it
	// alongside the row; it is not part of the dataset columns.
	ContentHash string
	FetchedAt   time.Time
}

// Validate returns an error if the record cannot be persisted as a row.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if err := r.Label.Validate(); err != nil {
		return err
	}
	return r.Vector.Validate()
}

// Columns returns the dataset header: the feature names in vector order,
// then URL and label.
func Columns() []string {
	cols := make([]string, 0, FeatureCount+2)
	cols = append(cols, FeatureNames[:]...)
	return append(cols, URLColumn, LabelColumn)
}
