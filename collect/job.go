package collect

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"github.com/fwojciec/pagevec"
	"gopkg.in/yaml.v3"
)

// Job defaults.
const (
	DefaultBatchSize   = 100
	DefaultTimeout     = 6 * time.Second
	DefaultDelay       = 250 * time.Millisecond
	DefaultConcurrency = 1
)

// Job describes one collection run: which addresses to read, where to
// append the rows and how politely to fetch.
type Job struct {
	Input  string        `yaml:"input"`
	Output string        `yaml:"output"`
	Label  pagevec.Label `yaml:"label"`

	// Start and End select the half-open range [Start, End) of the
	// normalized address sequence. Nil means unbounded.
	Start *int `yaml:"start"`
	End   *int `yaml:"end"`

	BatchSize   int           `yaml:"batch_size"`
	Timeout     time.Duration `yaml:"timeout"`
	Delay       time.Duration `yaml:"delay"`
	Concurrency int           `yaml:"concurrency"`
	PerHost     bool          `yaml:"per_host"`
	Retries     int           `yaml:"retries"`

	// Strict skips addresses whose vector has the wrong length instead of
	// padding or truncating it.
	Strict bool `yaml:"strict"`
}

// WithDefaults returns a copy of j with zero values replaced by defaults.
// A negative Delay disables request spacing.
func (j Job) WithDefaults() Job {
	if j.BatchSize == 0 {
		j.BatchSize = DefaultBatchSize
	}
	if j.Timeout == 0 {
		j.Timeout = DefaultTimeout
	}
	if j.Delay == 0 {
		j.Delay = DefaultDelay
	} else if j.Delay < 0 {
		j.Delay = 0
	}
	if j.Concurrency == 0 {
		j.Concurrency = DefaultConcurrency
	}
	return j
}

// Validate returns an error if the job cannot start.
func (j *Job) Validate() error {
	if j.Input == "" {
		return pagevec.Errorf(pagevec.EINVALID, "input path required")
	}
	if j.Output == "" {
		return pagevec.Errorf(pagevec.EINVALID, "output path required")
	}
	if err := j.Label.Validate(); err != nil {
		return err
	}
	if j.BatchSize < 0 {
		return pagevec.Errorf(pagevec.EINVALID, "batch size must not be negative, got %d", j.BatchSize)
	}
	if j.Timeout < 0 {
		return pagevec.Errorf(pagevec.EINVALID, "timeout must not be negative, got %s", j.Timeout)
	}
	if j.Concurrency < 0 {
		return pagevec.Errorf(pagevec.EINVALID, "concurrency must not be negative, got %d", j.Concurrency)
	}
	if j.Retries < 0 {
		return pagevec.Errorf(pagevec.EINVALID, "retries must not be negative, got %d", j.Retries)
	}
	return nil
}

// jobFile is the YAML layout read by LoadJobs.
type jobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobs reads a YAML file holding a list of jobs under the "jobs" key.
// Every job is validated before any is returned.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pagevec.Errorf(pagevec.ENOTFOUND, "job file not found: %s", path)
	} else if err != nil {
		return nil, pagevec.Errorf(pagevec.EINVALID, "read job file %s: %v", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file jobFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, pagevec.Errorf(pagevec.EINVALID, "parse job file %s: %v", path, err)
	}
	if len(file.Jobs) == 0 {
		return nil, pagevec.Errorf(pagevec.EINVALID, "job file %s lists no jobs", path)
	}

	jobs := make([]Job, len(file.Jobs))
	for i, j := range file.Jobs {
		j = j.WithDefaults()
		if err := j.Validate(); err != nil {
			return nil, pagevec.Errorf(pagevec.EINVALID, "job %d: %s", i+1, pagevec.ErrorMessage(err))
		}
		jobs[i] = j
	}
	return jobs, nil
}
