package main

import (
	"fmt"

	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/collect"
)

// Run executes every job of the job file in order, stopping at the first
// job that fails to run.
func (c *RunCmd) Run(deps *Dependencies) error {
	jobs, err := collect.LoadJobs(c.JobFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagevec.ErrorMessage(err))
		return err
	}

	for i, job := range jobs {
		fmt.Fprintf(deps.Stdout, "[%d/%d] ", i+1, len(jobs))
		if err := runJob(deps, job, c.UserAgent); err != nil {
			return err
		}
	}

	return nil
}
