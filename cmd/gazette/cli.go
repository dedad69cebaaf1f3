package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/catalog"
	"github.com/fwojciec/gazette/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Articles gazette.ArticleService
	Catalog  *catalog.Catalog
	Sitemaps gazette.SitemapService
	Scraper  *scrape.Scraper
	Archive  gazette.Archive
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `name:"config" env:"GAZETTE_CONFIG" help:"Config file path (default ~/.gazette/config.toml)"`
	DB       string `name:"db" env:"GAZETTE_DB" help:"Database path"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn, error"`

	Scrape   ScrapeCmd   `cmd:"" help:"Fetch, extract and store articles"`
	Show     ShowCmd     `cmd:"" help:"Print a stored article as JSON"`
	Category CategoryCmd `cmd:"" help:"List articles in a category"`
	Search   SearchCmd   `cmd:"" help:"Search stored articles"`
	Export   ExportCmd   `cmd:"" help:"Export stored articles as Markdown files"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Article URLs"`
	Sitemap     string   `short:"s" help:"Discover article URLs from the sitemaps of this site"`
	Filter      []string `short:"F" name:"filter" help:"Keep sitemap URLs matching regex (repeatable)"`
	Exclude     []string `short:"x" name:"exclude" help:"Drop sitemap URLs matching regex (repeatable)"`
	Concurrency int      `short:"c" help:"Concurrent fetch limit"`
	RateLimit   float64  `name:"rate-limit" help:"Requests per second per site"`
	DryRun      bool     `short:"n" name:"dry-run" help:"Extract without storing"`
	Verbose     bool     `short:"v" help:"Print a summary of each article"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL string `arg:"" help:"Article URL"`
}

// CategoryCmd is the "category" subcommand.
type CategoryCmd struct {
	Category    string `arg:"" help:"Category (exact match)"`
	Subcategory string `help:"Subcategory (exact match)"`
	Limit       int    `short:"l" default:"100" help:"Maximum number of articles"`
	JSON        bool   `name:"json" help:"Print articles as JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Title       string `short:"t" help:"Title contains"`
	Author      string `short:"a" help:"Author contains"`
	From        string `help:"Earliest date (YYYYMMDD)"`
	To          string `help:"Latest date (YYYYMMDD)"`
	Category    string `help:"Category contains"`
	Subcategory string `help:"Subcategory contains"`
	Limit       int    `short:"l" default:"100" help:"Maximum number of articles"`
	JSON        bool   `name:"json" help:"Print articles as JSON"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir      string `arg:"" help:"Output directory (replaced on success)"`
	Category string `help:"Only export articles whose subcategory contains this"`
}
