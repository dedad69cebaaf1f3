// Package catalog answers the read-side article queries: listing by
// category and multi-criteria search.
package catalog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/gazette"
)

// DefaultLimit caps results when a query does not set a positive limit.
const DefaultLimit = 100

// CategoryQuery selects articles by exact category. Category and
// Subcategory both name the stored subcategory field; when both are set
// both must match.
type CategoryQuery struct {
	Category    string
	Subcategory string
	Limit       int
}

// SearchQuery selects articles by substring and date range. Empty fields
// are ignored; all set fields must match.
type SearchQuery struct {
	Title       string
	Author      string
	DateStart   string
	DateEnd     string
	Category    string
	Subcategory string
	Limit       int
}

// CategoryFilter builds the store filter for q. Matching is exact and
// case-insensitive, newest scrape first.
func CategoryFilter(q CategoryQuery) gazette.ArticleFilter {
	filter := gazette.ArticleFilter{
		SortBy: gazette.SortByScrapedAt,
		Limit:  limit(q.Limit),
	}
	for _, v := range []string{q.Category, q.Subcategory} {
		if v != "" {
			filter.SubcategoryIs = append(filter.SubcategoryIs, v)
		}
	}
	return filter
}

// SearchFilter builds the store filter for q. Text matching is by
// case-insensitive substring, the date range is inclusive, most recent
// date first.
func SearchFilter(q SearchQuery) gazette.ArticleFilter {
	filter := gazette.ArticleFilter{
		SortBy: gazette.SortByDate,
		Limit:  limit(q.Limit),
	}
	if q.Title != "" {
		filter.TitleContains = &q.Title
	}
	if q.Author != "" {
		filter.AuthorContains = &q.Author
	}
	if q.DateStart != "" {
		filter.DateFrom = &q.DateStart
	}
	if q.DateEnd != "" {
		filter.DateTo = &q.DateEnd
	}
	for _, v := range []string{q.Category, q.Subcategory} {
		if v != "" {
			filter.SubcategoryContains = append(filter.SubcategoryContains, v)
		}
	}
	return filter
}

func limit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return n
}

// Catalog runs queries against an article store. Store failures are
// logged and reported as an empty result.
type Catalog struct {
	articles gazette.ArticleService
	logger   *slog.Logger
}

// New creates a Catalog reading from articles.
func New(articles gazette.ArticleService, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{articles: articles, logger: logger}
}

// ByCategory returns articles whose subcategory equals the query values.
func (c *Catalog) ByCategory(ctx context.Context, q CategoryQuery) []*gazette.Article {
	return c.find(ctx, "by_category", CategoryFilter(q))
}

// Search returns articles matching every set field of the query.
func (c *Catalog) Search(ctx context.Context, q SearchQuery) []*gazette.Article {
	return c.find(ctx, "search", SearchFilter(q))
}

func (c *Catalog) find(ctx context.Context, op string, filter gazette.ArticleFilter) []*gazette.Article {
	articles, err := c.articles.FindArticles(ctx, filter)
	if err != nil {
		c.logger.Error("query failed", "query", op, "err", err)
		return []*gazette.Article{}
	}
	if articles == nil {
		return []*gazette.Article{}
	}
	return articles
}
