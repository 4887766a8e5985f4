package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/csv"
	"github.com/fwojciec/pagevec/sqlite"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if err := c.export(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagevec.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *ExportCmd) export(deps *Dependencies) error {
	if !isSQLite(c.Dataset) {
		return pagevec.Errorf(pagevec.EINVALID, "export reads SQLite datasets only: %s", c.Dataset)
	}
	if c.Limit < 0 || c.Offset < 0 {
		return pagevec.Errorf(pagevec.EINVALID, "limit and offset must not be negative")
	}
	// OpenStore would create a missing file.
	if _, err := os.Stat(c.Dataset); err != nil {
		return pagevec.Errorf(pagevec.EINVALID, "open dataset %s: %v", c.Dataset, err)
	}

	store, err := sqlite.OpenStore(c.Dataset)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Records(deps.Ctx, c.Limit, c.Offset)
	if err != nil {
		return pagevec.Errorf(pagevec.EINTERNAL, "read dataset %s: %v", c.Dataset, err)
	}
	deps.Logger.Debug("exported records", "path", c.Dataset, "count", len(records))

	if err := csv.Encode(deps.Stdout, records, !c.NoHeader); err != nil {
		return pagevec.Errorf(pagevec.EINTERNAL, "write rows: %v", err)
	}
	return nil
}
