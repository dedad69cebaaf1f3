package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/gazette"
)

// Ensure SitemapService implements gazette.SitemapService.
var _ gazette.SitemapService = (*SitemapService)(nil)

// fallbackSitemaps are probed in order when robots.txt declares none.
// WordPress SEO plugins publish an index at /sitemap_index.xml.
var fallbackSitemaps = []string{"/sitemap.xml", "/sitemap_index.xml"}

// SitemapService discovers article URLs from website sitemaps via HTTP.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used. An empty userAgent
// selects DefaultUserAgent.
func NewSitemapService(client *http.Client, userAgent string) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &SitemapService{client: client, userAgent: userAgent}
}

// DiscoverURLs finds the page URLs listed in a site's sitemaps, in
// sitemap order and without duplicates.
// Returns an empty slice (not nil) if no sitemaps are found.
//
// When baseURL has a non-root path (e.g., https://example.com/ia/),
// only URLs below that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *gazette.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, gazette.Errorf(gazette.EINVALID, "invalid base URL: %v", err)
	}

	pathPrefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemapURLs, err := s.findSitemapURLs(ctx, root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	return slices.DeleteFunc(urls, func(u string) bool {
		return !underPath(u, pathPrefix) || !filter.Match(u)
	}), nil
}

// underPath reports whether rawURL's path is prefix or below it.
// The prefix has no trailing slash; an empty prefix matches everything.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// findSitemapURLs reads Sitemap: directives from robots.txt, falling back
// to well-known sitemap locations.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	for _, path := range fallbackSitemaps {
		candidate := root.ResolveReference(&url.URL{Path: path}).String()
		exists, err := s.urlExists(ctx, candidate)
		if err != nil {
			// Context errors abort; anything else means "not there".
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if exists {
			return []string{candidate}, nil
		}
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if u := strings.TrimSpace(line[len(directive):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex documents.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r, err := decompress(body, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locs(root, "sitemap") {
			found, err := s.processSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locs(root, "url"), nil
}

// locs returns the non-empty <loc> values of root's entries named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, entry := range root.SelectElements(tag) {
		loc := entry.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// decompress unwraps gzip-compressed sitemaps (sitemap.xml.gz).
func decompress(body io.Reader, sitemapURL string) (io.Reader, error) {
	if !strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		return body, nil
	}
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", sitemapURL, err)
	}
	return zr, nil
}

func (s *SitemapService) newRequest(ctx context.Context, method, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return req, nil
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := s.newRequest(ctx, http.MethodGet, targetURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, gazette.Errorf(gazette.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := s.newRequest(ctx, http.MethodHead, targetURL)
	if err != nil {
		return false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
