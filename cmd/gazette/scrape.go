package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls := c.URLs

	if c.Sitemap != "" {
		filter, err := c.urlFilter()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gazette.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemaps of %s\n", len(found), c.Sitemap)
		urls = append(urls, found...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("no URLs to scrape: pass article URLs or --sitemap")
	}

	scraper := deps.Scraper
	if c.Concurrency > 0 {
		scraper.Concurrency = c.Concurrency
	}
	if c.DryRun {
		scraper.Articles = nil
	}

	extracted := 0
	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			if event.Total > 1 {
				fmt.Fprintf(deps.Stdout, "Scraping %d URLs\n", event.Total)
			}
		case scrape.ProgressCompleted:
			extracted++
			if c.Verbose {
				fmt.Fprint(deps.Stdout, scrape.Summary(event.Outcome.Article))
			} else {
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, scrape.TruncateURL(event.URL, 70))
			}
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, gazette.ErrorMessage(event.Error))
		}
	}

	result, err := scraper.ScrapeAll(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Extracted %d articles (dry run, nothing stored)", extracted)
	} else {
		fmt.Fprintf(deps.Stdout, "Saved %d articles (%d new, %d updated, %d unchanged)",
			result.Saved(), result.Inserted, result.Updated, result.Unchanged)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", result.Failed)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, ", %d duplicates skipped", result.Skipped)
	}
	fmt.Fprintln(deps.Stdout)

	if extracted == 0 {
		return fmt.Errorf("all %d URLs failed", result.Failed)
	}
	return nil
}

// urlFilter compiles the sitemap filters, validating patterns early.
func (c *ScrapeCmd) urlFilter() (*gazette.URLFilter, error) {
	if len(c.Filter) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}
	filter := &gazette.URLFilter{}
	for _, pattern := range c.Filter {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
