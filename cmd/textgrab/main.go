package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/textgrab"
	"github.com/fwojciec/textgrab/fs"
	"github.com/fwojciec/textgrab/htmlquery"
	tghttp "github.com/fwojciec/textgrab/http"
	"github.com/fwojciec/textgrab/pipeline"
	tgslog "github.com/fwojciec/textgrab/slog"
	"github.com/fwojciec/textgrab/sqlite"
	"github.com/fwojciec/textgrab/yaml"
)

// ErrNoURLs is returned when the command line holds no URLs.
var ErrNoURLs = errors.New("at least one URL argument is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Settings file with per-site selectors. Missing file means defaults.
	SettingsPath string

	// Base directory for result files.
	OutputDir string

	// SQLite database path. When set, results are stored there instead of
	// in files.
	DBPath string

	// Debug enables debug-level logging.
	Debug bool

	// Requests per second allowed to each host.
	RateLimit float64

	// Fetcher overrides the HTTP fetcher. Used by tests.
	Fetcher textgrab.Fetcher

	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		SettingsPath: yaml.DefaultSettingsPath,
		OutputDir:    ".",
		DBPath:       os.Getenv("TEXTGRAB_DB"),
		Debug:        os.Getenv("TEXTGRAB_DEBUG") != "",
		RateLimit:    1.0,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("textgrab"),
		kong.Description("Save the article text of web pages as plain text files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return ErrNoURLs
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if len(cli.URLs) == 0 {
		return ErrNoURLs
	}

	selectors, err := yaml.LoadSelectorConfig(m.SettingsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check the settings file at %q\n", m.SettingsPath)
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level := slog.LevelInfo
	if m.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := m.openStore()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set TEXTGRAB_DB to use a different database path")
		return err
	}
	defer m.Close()

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = tghttp.NewFetcher()
	}
	defer fetcher.Close()

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Fetcher:   tgslog.NewLoggingFetcher(fetcher, logger),
		Parser:    htmlquery.NewParser(),
		Store:     tgslog.NewLoggingResultStore(store, logger),
		Selectors: selectors,
		Limiter:   pipeline.NewHostLimiter(m.RateLimit),
		Logger:    logger,
	}

	cmd := &GrabCmd{URLs: cli.URLs}
	return cmd.Run(deps)
}

func (m *Main) openStore() (textgrab.ResultStore, error) {
	if m.DBPath == "" {
		return fs.NewResultStore(m.OutputDir), nil
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return sqlite.NewResultStore(m.DB), nil
}
