package main

import (
	"fmt"

	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/collect"
	pvslog "github.com/fwojciec/pagevec/slog"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	job := collect.Job{
		Input:       c.Input,
		Output:      c.Output,
		Label:       pagevec.Label(c.Label),
		Start:       c.Start,
		End:         c.End,
		BatchSize:   c.BatchSize,
		Timeout:     c.Timeout,
		Delay:       c.Delay,
		Concurrency: c.Concurrency,
		PerHost:     c.PerHost,
		Retries:     c.Retries,
		Strict:      c.Strict,
	}
	if c.Delay == 0 {
		job.Delay = -1
	}
	return runJob(deps, job, c.UserAgent)
}

// runJob opens the job's store and fetcher, runs the collector and prints
// a summary.
func runJob(deps *Dependencies, job collect.Job, userAgent string) error {
	job = job.WithDefaults()
	if err := job.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagevec.ErrorMessage(err))
		return err
	}

	store, err := deps.OpenStore(job.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagevec.ErrorMessage(err))
		return err
	}
	defer store.Close()

	fetcher := deps.NewFetcher(job, userAgent)
	defer fetcher.Close()

	loader := deps.Loader
	extractor := deps.Extractor
	if deps.Verbose {
		loader = pvslog.NewLoggingSourceLoader(loader, deps.Logger)
		store = pvslog.NewLoggingRecordStore(store, deps.Logger)
		fetcher = pvslog.NewLoggingFetcher(fetcher, deps.Logger)
		extractor = pvslog.NewLoggingExtractor(extractor, deps.Logger)
	}

	collector := &collect.Collector{
		Loader:    loader,
		Store:     store,
		Fetcher:   fetcher,
		Extractor: extractor,
		Logger:    deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "%s -> %s (label %d)\n", job.Input, job.Output, int(job.Label))

	progress := func(event collect.ProgressEvent) {
		switch event.Type {
		case collect.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  %d addresses to fetch\n", event.Total)
		case collect.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, pagevec.ErrorMessage(event.Error))
		case collect.ProgressBatchSaved:
			fmt.Fprintf(deps.Stdout, "  batch %d: %d rows\n", event.Batch, event.Saved)
		}
	}

	result, err := collector.Run(deps.Ctx, job, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "  Saved %d rows, %d failed, %d already present\n",
			result.Saved, result.Failed, result.Skipped)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error collecting: %v\n", err)
		return err
	}

	return nil
}
