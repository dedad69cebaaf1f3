package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gazette"
)

// Ensure LoggingFetcher implements gazette.Fetcher.
var _ gazette.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   gazette.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next gazette.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
// A redirect target is logged as final.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *gazette.FetchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url}
		if res != nil {
			if res.URL != "" && res.URL != url {
				attrs = append(attrs, "final", res.URL)
			}
			attrs = append(attrs, "bytes", len(res.HTML))
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
