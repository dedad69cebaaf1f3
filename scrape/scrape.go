// Package scrape runs the article pipeline: fetch a page, extract its
// fields, and store the record, one URL or a whole batch at a time.
package scrape

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/gazette"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed in parallel when
// Scraper.Concurrency is not set.
const DefaultConcurrency = 4

// Scraper orchestrates fetching, extraction and storage of articles.
type Scraper struct {
	Fetcher     gazette.Fetcher
	Extractor   gazette.ArticleExtractor
	Articles    gazette.ArticleService // nil skips storage
	RateLimiter gazette.DomainLimiter  // nil disables rate limiting
	Concurrency int
	RetryDelays []time.Duration
	Logf        LogFunc
}

// Outcome is the result of scraping one URL.
type Outcome struct {
	Article *gazette.Article

	// Upsert is nil when the scraper has no article store.
	Upsert *gazette.UpsertResult
}

// Result holds the outcome of a batch.
type Result struct {
	Inserted  int
	Updated   int
	Unchanged int
	Failed    int
	Skipped   int
}

// Saved returns the number of articles written to the store.
func (r *Result) Saved() int {
	return r.Inserted + r.Updated + r.Unchanged
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Outcome   *Outcome
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Scrape fetches rawURL, extracts the article from the final page URL and
// stores it. Fetch failures are returned as EUNAVAILABLE with no article.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Outcome, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, gazette.Errorf(gazette.EINVALID, "invalid article URL %q", rawURL)
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	page, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	base := page.URL
	if base == "" {
		base = rawURL
	}
	article, err := s.Extractor.ExtractArticle(page.HTML, base)
	if err != nil {
		return nil, err
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}

	outcome := &Outcome{Article: article}
	if s.Articles == nil {
		return outcome, nil
	}

	outcome.Upsert, err = s.Articles.UpsertArticle(ctx, article)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) (*gazette.FetchResult, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, s.Logf, delays)
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if code := gazette.ErrorCode(err); code != gazette.EINTERNAL {
		return nil, err
	}
	return nil, gazette.Errorf(gazette.EUNAVAILABLE, "fetching %s: %v", rawURL, err)
}

// ScrapeAll scrapes urls concurrently. Duplicate URLs are skipped and a
// failing URL does not stop the batch. The progress callback, if provided,
// is called from a single goroutine.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{}
	seen := make(seenSet, len(urls))
	var queue []string
	for _, u := range urls {
		if seen.add(u) {
			queue = append(queue, u)
		} else {
			result.Skipped++
		}
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type done struct {
		url     string
		outcome *Outcome
		err     error
	}
	doneCh := make(chan done, len(queue))
	total := len(queue)

	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for _, u := range queue {
			g.Go(func() error {
				outcome, err := s.Scrape(gctx, u)
				doneCh <- done{url: u, outcome: outcome, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(doneCh)
	}()

	n := 0
	for d := range doneCh {
		n++
		if d.err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: d.url, Error: d.err})
			continue
		}
		if up := d.outcome.Upsert; up != nil {
			switch {
			case up.Inserted:
				result.Inserted++
			case up.ContentChanged:
				result.Updated++
			default:
				result.Unchanged++
			}
		}
		progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: d.url, Outcome: d.outcome})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
