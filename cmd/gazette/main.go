package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/catalog"
	"github.com/fwojciec/gazette/dateparser"
	"github.com/fwojciec/gazette/fs"
	"github.com/fwojciec/gazette/goquery"
	gazettehttp "github.com/fwojciec/gazette/http"
	"github.com/fwojciec/gazette/scrape"
	gazslog "github.com/fwojciec/gazette/slog"
	"github.com/fwojciec/gazette/sqlite"
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
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService gazette.ArticleService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gazette"),
		kong.Description("Scrape French news articles into a local store and query them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gazette --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	level, err := cfg.level()
	if err != nil {
		return err
	}
	timeout, err := cfg.timeout()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GAZETTE_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()

	m.ArticleService = gazslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB), logger)
	deps.Articles = m.ArticleService
	deps.Catalog = catalog.New(m.ArticleService, logger)

	switch kongCtx.Command() {
	case "scrape", "scrape <url>":
		fetcher := gazslog.NewLoggingFetcher(gazettehttp.NewFetcher(
			gazettehttp.WithTimeout(timeout),
			gazettehttp.WithUserAgent(cfg.UserAgent),
		), logger)
		defer fetcher.Close()

		deps.Sitemaps = gazslog.NewLoggingSitemapService(
			gazettehttp.NewSitemapService(&http.Client{Timeout: timeout}, cfg.UserAgent), logger)

		rateLimit := cfg.RateLimit
		if cli.Scrape.RateLimit > 0 {
			rateLimit = cli.Scrape.RateLimit
		}
		deps.Scraper = &scrape.Scraper{
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(dateparser.NewNormalizer()),
			Articles:    m.ArticleService,
			RateLimiter: scrape.NewDomainLimiter(rateLimit),
			Concurrency: cfg.Concurrency,
			Logf: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
	case "export <dir>":
		dir, err := filepath.Abs(cli.Export.Dir)
		if err != nil {
			return fmt.Errorf("invalid export directory %q: %w", cli.Export.Dir, err)
		}
		deps.Archive = fs.NewArchive(filepath.Dir(dir), filepath.Base(dir))
	}

	return kongCtx.Run(deps)
}
