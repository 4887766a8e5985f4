package pagevec_test

import (
	"testing"

	"github.com/fwojciec/pagevec"
	"github.com/stretchr/testify/assert"
)

func TestColumns(t *testing.T) {
	t.Parallel()

	cols := pagevec.Columns()

	assert.Len(t, cols, pagevec.FeatureCount+2)
	assert.Equal(t, "has_title", cols[0])
	assert.Equal(t, "URL", cols[len(cols)-2])
	assert.Equal(t, "label", cols[len(cols)-1])
}

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete record", func(t *testing.T) {
		t.Parallel()
		r := &pagevec.Record{Vector: pagevec.NewVector(), URL: "https://example.com/", Label: pagevec.LabelPhishing}
		assert.NoError(t, r.Validate())
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()
		r := &pagevec.Record{Vector: pagevec.NewVector()}
		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(r.Validate()))
	})

	t.Run("requires known label", func(t *testing.T) {
		t.Parallel()
		r := &pagevec.Record{Vector: pagevec.NewVector(), URL: "https://example.com/", Label: 2}
		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(r.Validate()))
	})

	t.Run("requires full vector", func(t *testing.T) {
		t.Parallel()
		r := &pagevec.Record{Vector: pagevec.Vector{1, 2}, URL: "https://example.com/"}
		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(r.Validate()))
	})
}

func TestURLSet(t *testing.T) {
	t.Parallel()

	s := pagevec.NewURLSet("https://a.com/", "https://a.com/")
	s.Add("https://b.com/")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("https://a.com/"))
	assert.False(t, s.Has("https://a.com/?q=1"))
}
