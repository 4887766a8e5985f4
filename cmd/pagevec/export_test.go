package main_test

import (
	"bytes"
	"context"
	encodingcsv "encoding/csv"
	"path/filepath"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/fwojciec/pagevec"
	main "github.com/fwojciec/pagevec/cmd/pagevec"
	"github.com/fwojciec/pagevec/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDataset stores one record per address, with number_of_div set to
// the record's position.
func writeDataset(t *testing.T, urls ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.db")
	store, err := sqlite.OpenStore(path)
	require.NoError(t, err)

	records := make([]*pagevec.Record, len(urls))
	for i, url := range urls {
		v := pagevec.NewVector()
		v.Set(pagevec.NumberOfDiv, i)
		records[i] = &pagevec.Record{
			Vector:      v,
			URL:         url,
			Label:       pagevec.LabelPhishing,
			ContentHash: strconv.Itoa(i),
			FetchedAt:   time.Date(2024, 5, 1, 12, 0, i, 0, time.UTC),
		}
	}
	require.NoError(t, store.Append(context.Background(), records))
	require.NoError(t, store.Close())
	return path
}

func readRows(t *testing.T, out string) [][]string {
	t.Helper()
	rows, err := encodingcsv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	urlCol := pagevec.FeatureCount
	labelCol := pagevec.FeatureCount + 1
	divCol := slices.Index(pagevec.Columns(), pagevec.NumberOfDiv.String())

	t.Run("prints header and stored rows", func(t *testing.T) {
		t.Parallel()

		path := writeDataset(t, "https://a.com/", "https://b.com/")
		var stdout, stderr bytes.Buffer

		err := (&main.ExportCmd{Dataset: path}).Run(newDeps(&stdout, &stderr, nil))

		require.NoError(t, err)
		rows := readRows(t, stdout.String())
		require.Len(t, rows, 3)
		assert.Equal(t, pagevec.Columns(), rows[0])
		assert.Equal(t, "https://a.com/", rows[1][urlCol])
		assert.Equal(t, "1", rows[1][labelCol])
		assert.Equal(t, "https://b.com/", rows[2][urlCol])
		assert.Equal(t, "1", rows[2][divCol])
	})

	t.Run("pages through rows", func(t *testing.T) {
		t.Parallel()

		path := writeDataset(t, "https://a.com/", "https://b.com/", "https://c.com/")
		var stdout, stderr bytes.Buffer

		cmd := &main.ExportCmd{Dataset: path, Limit: 1, Offset: 1, NoHeader: true}
		err := cmd.Run(newDeps(&stdout, &stderr, nil))

		require.NoError(t, err)
		rows := readRows(t, stdout.String())
		require.Len(t, rows, 1)
		assert.Equal(t, "https://b.com/", rows[0][urlCol])
	})

	t.Run("rejects csv datasets", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := (&main.ExportCmd{Dataset: filepath.Join(t.TempDir(), "out.csv")}).Run(newDeps(&stdout, &stderr, nil))

		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(err))
		assert.Contains(t, stderr.String(), "SQLite datasets only")
		assert.Empty(t, stdout.String())
	})

	t.Run("missing dataset", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := (&main.ExportCmd{Dataset: filepath.Join(t.TempDir(), "none.db")}).Run(newDeps(&stdout, &stderr, nil))

		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})
}
