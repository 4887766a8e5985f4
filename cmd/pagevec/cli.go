package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/collect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Verbose bool

	Loader    pagevec.SourceLoader
	Extractor pagevec.Extractor

	// OpenStore opens the output store of a job.
	OpenStore func(path string) (pagevec.RecordStore, error)

	// NewFetcher builds the fetcher of a job.
	NewFetcher func(job collect.Job, userAgent string) pagevec.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch, extraction and store operation"`

	Collect CollectCmd `cmd:"" help:"Collect feature vectors for an address list"`
	Run     RunCmd     `cmd:"" help:"Run the collection jobs listed in a YAML file"`
	Vector  VectorCmd  `cmd:"" help:"Print the feature vector of one page"`
	Export  ExportCmd  `cmd:"" help:"Print the rows of a SQLite dataset as CSV"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	Input       string        `arg:"" help:"CSV file of addresses"`
	Output      string        `arg:"" help:"Dataset file to append to (.csv, or .db/.sqlite for SQLite)"`
	Label       int           `short:"l" required:"" help:"Label of every row: 0 legitimate, 1 phishing"`
	Start       *int          `help:"First address position to process (inclusive)"`
	End         *int          `help:"Address position to stop before (exclusive)"`
	BatchSize   int           `short:"b" default:"100" help:"Rows appended per batch"`
	Timeout     time.Duration `short:"t" default:"6s" help:"Fetch timeout per page"`
	Delay       time.Duration `short:"d" default:"250ms" help:"Minimum spacing between request starts"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	PerHost     bool          `help:"Space requests per host instead of globally"`
	Retries     int           `default:"0" help:"Retries per failed fetch"`
	Strict      bool          `help:"Skip pages whose vector has the wrong length instead of fixing it"`
	UserAgent   string        `name:"user-agent" help:"User-Agent header sent with every request"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	JobFile   string `arg:"" help:"YAML file listing jobs"`
	UserAgent string `name:"user-agent" help:"User-Agent header sent with every request"`
}

// VectorCmd is the "vector" subcommand.
type VectorCmd struct {
	Source string `arg:"" help:"HTML file, '-' for stdin, or an http(s) address to fetch"`
	CSV    bool   `help:"Print a single CSV row instead of name=value lines"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dataset  string `arg:"" help:"SQLite dataset file (.db, .sqlite or .sqlite3)"`
	Limit    int    `short:"n" help:"Maximum rows to print (0 for all)"`
	Offset   int    `help:"Rows to skip before printing"`
	NoHeader bool   `name:"no-header" help:"Omit the column header"`
}
