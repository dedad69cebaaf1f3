package mock

import (
	"context"

	"github.com/fwojciec/gazette"
)

var _ gazette.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gazette.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*gazette.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*gazette.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ gazette.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of gazette.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
