package mock

import (
	"context"

	"github.com/fwojciec/gazette"
)

var _ gazette.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of gazette.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *gazette.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *gazette.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
