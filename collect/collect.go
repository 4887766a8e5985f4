// Package collect drives resumable dataset collection: it loads an address
// list, skips addresses already in the output store, then fetches and
// vectorizes the rest in batches, appending each batch as it completes.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/pagevec"
	"golang.org/x/sync/errgroup"
)

// DefaultRetryBackoff is the delay before the first retry of a failed fetch.
const DefaultRetryBackoff = time.Second

// Collector turns an address list into dataset rows.
type Collector struct {
	Loader    pagevec.SourceLoader
	Store     pagevec.RecordStore
	Fetcher   pagevec.Fetcher
	Extractor pagevec.Extractor

	// Limiter spaces requests. When nil, Run builds one from the job's
	// Delay and PerHost settings.
	Limiter pagevec.Limiter

	Logger *slog.Logger

	// RetryBackoff is the first retry delay; later retries double it.
	RetryBackoff time.Duration

	// Now returns the fetch time stamped on records.
	Now func() time.Time
}

// Result holds the outcome of a job.
type Result struct {
	Loaded    int // addresses after normalization
	Skipped   int // addresses of the slice already in the output store
	Pending   int // addresses scheduled for fetching
	Saved     int
	Failed    int
	Corrected int // vectors padded or truncated to the dataset shape
	Batches   int // batches appended to the store
}

// ProgressEvent reports progress during a job.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
	Batch     int
	Saved     int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressBatchSaved
	ProgressFinished
)

// ProgressFunc is a callback for reporting job progress.
type ProgressFunc func(event ProgressEvent)

// outcome holds the result of processing a single address.
type outcome struct {
	position  int
	url       string
	record    *pagevec.Record
	corrected bool
	err       error
}

// Run executes job. Configuration problems are returned before any fetch.
// Per-address failures are counted and logged but never stop the job.
// When ctx is canceled the finished records of the current batch are
// appended before Run returns ctx.Err().
func (c *Collector) Run(ctx context.Context, job Job, progress ProgressFunc) (*Result, error) {
	job = job.WithDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	logger := c.logger().With("input", job.Input, "label", int(job.Label))

	urls, err := c.Loader.Load(ctx, job.Input)
	if err != nil {
		return nil, err
	}
	result := &Result{Loaded: len(urls)}
	urls = pagevec.Slice(urls, job.Start, job.End)

	seen, err := c.Store.Seen(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		logger.Warn("resume read failed, starting from an empty checkpoint", "output", job.Output, "err", err)
		seen = pagevec.NewURLSet()
	}

	pending := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen.Has(u) {
			pending = append(pending, u)
		}
	}
	result.Skipped = len(urls) - len(pending)
	result.Pending = len(pending)
	logger.Info("resume", "loaded", result.Loaded, "selected", len(urls), "skipped", result.Skipped, "pending", result.Pending)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(pending)})
	}

	limiter := c.Limiter
	if limiter == nil {
		limiter = NewLimiter(job.Delay, job.PerHost)
	}

	completed := 0
	for start := 0; start < len(pending); start += job.BatchSize {
		end := min(start+job.BatchSize, len(pending))
		batch := pending[start:end]

		records := c.processBatch(ctx, job, limiter, batch, func(o outcome) {
			completed++
			switch {
			case o.err == nil:
				if o.corrected {
					result.Corrected++
				}
				if progress != nil {
					progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: len(pending), URL: o.url})
				}
			case ctx.Err() != nil:
				// Interrupted, not failed.
			default:
				result.Failed++
				logger.Warn("skip", "url", o.url, "err", o.err)
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: len(pending), URL: o.url, Error: o.err})
				}
			}
		})

		if len(records) > 0 {
			// The batch is appended even when ctx is canceled so finished
			// work survives an interruption.
			if err := c.Store.Append(context.WithoutCancel(ctx), records); err != nil {
				return result, fmt.Errorf("append batch %d: %w", result.Batches+1, err)
			}
			result.Saved += len(records)
			result.Batches++
			logger.Info("batch saved", "batch", result.Batches, "rows", len(records), "saved", result.Saved)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressBatchSaved, Batch: result.Batches, Saved: len(records), Total: len(pending)})
			}
		}

		if err := ctx.Err(); err != nil {
			logger.Warn("interrupted", "saved", result.Saved, "remaining", len(pending)-end)
			return result, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: len(pending)})
	}
	logger.Info("done", "saved", result.Saved, "failed", result.Failed, "corrected", result.Corrected)

	return result, nil
}

// processBatch fetches and vectorizes batch with job.Concurrency workers.
// Outcomes are reported to done from the calling goroutine only. The
// returned records keep input order and omit failures.
func (c *Collector) processBatch(ctx context.Context, job Job, limiter pagevec.Limiter, batch []string, done func(outcome)) []*pagevec.Record {
	outcomes := make(chan outcome, len(batch))

	g := new(errgroup.Group)
	g.SetLimit(job.Concurrency)

	go func() {
		for i, url := range batch {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				outcomes <- c.process(ctx, job, limiter, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	slots := make([]*pagevec.Record, len(batch))
	for o := range outcomes {
		done(o)
		if o.err == nil {
			slots[o.position] = o.record
		}
	}

	records := make([]*pagevec.Record, 0, len(batch))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records
}

// process handles one address. Panics are recovered into EINTERNAL errors
// so one bad page cannot stop the batch.
func (c *Collector) process(ctx context.Context, job Job, limiter pagevec.Limiter, position int, url string) (o outcome) {
	o = outcome{position: position, url: url}
	defer func() {
		if r := recover(); r != nil {
			o.record, o.corrected = nil, false
			o.err = pagevec.Errorf(pagevec.EINTERNAL, "panic processing %s: %v", url, r)
		}
	}()

	// Every attempt, retries included, waits its turn on the limiter.
	fetch := func(ctx context.Context, url string) (string, error) {
		if err := limiter.Wait(ctx, hostKey(url)); err != nil {
			return "", err
		}
		ctx, cancel := context.WithTimeout(ctx, job.Timeout)
		defer cancel()
		return c.Fetcher.Fetch(ctx, url)
	}
	backoff := c.RetryBackoff
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	html, err := FetchWithRetry(ctx, url, fetch, c.Logger, RetryDelays(job.Retries, backoff))
	if err != nil {
		o.err = err
		return o
	}

	vec, err := c.Extractor.Extract(html)
	if err != nil {
		o.err = err
		return o
	}

	fitted, changed := vec.Fit()
	if changed {
		if job.Strict {
			o.err = pagevec.Errorf(pagevec.EINVALID, "vector for %s has %d values, want %d", url, len(vec), pagevec.FeatureCount)
			return o
		}
		c.logger().Warn("vector shape corrected", "url", url, "got", len(vec), "want", pagevec.FeatureCount)
		o.corrected = true
	}

	rec := &pagevec.Record{
		Vector:      fitted,
		URL:         url,
		Label:       job.Label,
		ContentHash: hashContent(html),
		FetchedAt:   c.now(),
	}
	if err := rec.Validate(); err != nil {
		o.corrected = false
		o.err = err
		return o
	}
	o.record = rec
	return o
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Collector) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}
