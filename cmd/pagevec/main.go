package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagevec"
	"github.com/fwojciec/pagevec/collect"
	"github.com/fwojciec/pagevec/csv"
	"github.com/fwojciec/pagevec/goquery"
	pvhttp "github.com/fwojciec/pagevec/http"
	"github.com/fwojciec/pagevec/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagevec"),
		kong.Description("Build structural feature datasets from lists of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagevec --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Verbose = cli.Verbose
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Extractor = goquery.NewExtractor()
	deps.Loader = csv.NewLoader(deps.Logger)
	deps.OpenStore = openStore
	deps.NewFetcher = func(job collect.Job, userAgent string) pagevec.Fetcher {
		return pvhttp.NewFetcher(
			pvhttp.WithTimeout(job.Timeout),
			pvhttp.WithUserAgent(userAgent),
		)
	}

	return kongCtx.Run(deps)
}

// openStore picks the output store from the file extension: SQLite for
// .db, .sqlite and .sqlite3, CSV otherwise.
func openStore(path string) (pagevec.RecordStore, error) {
	if isSQLite(path) {
		return sqlite.OpenStore(path)
	}
	return csv.Open(path)
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
