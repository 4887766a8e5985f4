package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pagevec"
	main "github.com/fwojciec/pagevec/cmd/pagevec"
	"github.com/fwojciec/pagevec/collect"
	"github.com/fwojciec/pagevec/csv"
	"github.com/fwojciec/pagevec/goquery"
	"github.com/fwojciec/pagevec/mock"
	"github.com/fwojciec/pagevec/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pages serves fixed markup per address; unknown addresses fail.
func pages(markup map[string]string) func(collect.Job, string) pagevec.Fetcher {
	return func(collect.Job, string) pagevec.Fetcher {
		return &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				html, ok := markup[url]
				if !ok {
					return "", pagevec.Errorf(pagevec.EFETCH, "HTTP 404 for %s", url)
				}
				return html, nil
			},
			CloseFn: func() error { return nil },
		}
	}
}

func newDeps(stdout, stderr *bytes.Buffer, markup map[string]string) *main.Dependencies {
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		Loader:     csv.NewLoader(logger),
		Extractor:  goquery.NewExtractor(),
		OpenStore:  func(path string) (pagevec.RecordStore, error) { return csv.Open(path) },
		NewFetcher: pages(markup),
	}
}

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("appends rows for fetched pages", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "rank,domain\n1,a.com\n2,b.com\n3,c.com\n")
		output := filepath.Join(dir, "out.csv")
		var stdout, stderr bytes.Buffer
		deps := newDeps(&stdout, &stderr, map[string]string{
			"https://a.com/": "<form><input type=password><input type=email></form>",
			"https://c.com/": "<div></div><div></div>",
		})

		cmd := &main.CollectCmd{Input: input, Output: output, Label: 1, BatchSize: 2, Delay: 0}
		err := cmd.Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(output)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, strings.Join(pagevec.Columns(), ","), lines[0])
		assert.True(t, strings.HasSuffix(lines[1], ",https://a.com/,1"))
		assert.True(t, strings.HasSuffix(lines[2], ",https://c.com/,1"))
		assert.Contains(t, stdout.String(), "Saved 2 rows, 1 failed, 0 already present")
		assert.Contains(t, stderr.String(), "skip https://b.com/")
	})

	t.Run("rerun adds nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "url\na.com\n")
		output := filepath.Join(dir, "out.csv")
		markup := map[string]string{"https://a.com/": "<p>x</p>"}

		for range 2 {
			var stdout, stderr bytes.Buffer
			cmd := &main.CollectCmd{Input: input, Output: output, Label: 0, Delay: 0}
			require.NoError(t, cmd.Run(newDeps(&stdout, &stderr, markup)))
		}

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "\n"))
	})

	t.Run("rejects invalid label before opening output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var stdout, stderr bytes.Buffer
		deps := newDeps(&stdout, &stderr, nil)
		deps.OpenStore = func(string) (pagevec.RecordStore, error) {
			t.Fatal("unexpected open")
			return nil, nil
		}

		cmd := &main.CollectCmd{Input: writeInput(t, dir, "a.com\n"), Output: filepath.Join(dir, "out.csv"), Label: 5}
		err := cmd.Run(deps)

		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(err))
		assert.Contains(t, stderr.String(), "label must be 0 or 1")
	})

	t.Run("unwritable output directory is fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var stdout, stderr bytes.Buffer
		deps := newDeps(&stdout, &stderr, nil)

		cmd := &main.CollectCmd{Input: writeInput(t, dir, "a.com\n"), Output: filepath.Join(dir, "nope", "out.csv"), Label: 1}
		err := cmd.Run(deps)

		assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(err))
	})

	t.Run("writes sqlite output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "url\na.com\nb.com\n")
		output := filepath.Join(dir, "dataset.db")
		var stdout, stderr bytes.Buffer
		deps := newDeps(&stdout, &stderr, map[string]string{
			"https://a.com/": "<table><tr><th>x</th></tr></table>",
			"https://b.com/": "<nav></nav>",
		})
		deps.OpenStore = func(path string) (pagevec.RecordStore, error) { return sqlite.OpenStore(path) }

		cmd := &main.CollectCmd{Input: input, Output: output, Label: 0, Delay: 0}
		require.NoError(t, cmd.Run(deps))

		store, err := sqlite.OpenStore(output)
		require.NoError(t, err)
		defer store.Close()
		records, err := store.Records(context.Background(), 0, 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 1, records[0].Vector.Get(pagevec.NumberOfTable))
		assert.Equal(t, 1, records[1].Vector.Get(pagevec.HasNav))
		assert.NotEmpty(t, records[0].ContentHash)
	})
}
