package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/collect"
)

// Run executes the vector command.
func (c *VectorCmd) Run(deps *Dependencies) error {
	html, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagevec.ErrorMessage(err))
		return err
	}

	v, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagevec.ErrorMessage(err))
		return err
	}

	if c.CSV {
		cells := make([]string, len(v))
		for i, n := range v {
			cells[i] = strconv.Itoa(n)
		}
		fmt.Fprintln(deps.Stdout, strings.Join(pagevec.FeatureNames[:], ","))
		fmt.Fprintln(deps.Stdout, strings.Join(cells, ","))
		return nil
	}

	for i, n := range v {
		fmt.Fprintf(deps.Stdout, "%s=%d\n", pagevec.Feature(i), n)
	}
	return nil
}

// read returns the markup named by Source.
func (c *VectorCmd) read(deps *Dependencies) (string, error) {
	switch {
	case c.Source == "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", pagevec.Errorf(pagevec.EINVALID, "read stdin: %v", err)
		}
		return string(data), nil

	case strings.HasPrefix(c.Source, "http://"), strings.HasPrefix(c.Source, "https://"):
		url, ok := pagevec.Normalize(c.Source)
		if !ok {
			return "", pagevec.Errorf(pagevec.EINVALID, "invalid address: %s", c.Source)
		}
		fetcher := deps.NewFetcher(collect.Job{}.WithDefaults(), "")
		defer fetcher.Close()
		return fetcher.Fetch(deps.Ctx, url)

	default:
		data, err := os.ReadFile(c.Source)
		if err != nil {
			return "", pagevec.Errorf(pagevec.EINVALID, "read %s: %v", c.Source, err)
		}
		return string(data), nil
	}
}
