package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/catalog"
	"github.com/fwojciec/gazette/mock"
	"github.com/fwojciec/gazette/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFilter(t *testing.T) {
	t.Parallel()

	t.Run("subcategory only", func(t *testing.T) {
		t.Parallel()

		f := catalog.CategoryFilter(catalog.CategoryQuery{Subcategory: "IA"})
		assert.Equal(t, []string{"IA"}, f.SubcategoryIs)
		assert.Equal(t, gazette.SortByScrapedAt, f.SortBy)
		assert.Equal(t, catalog.DefaultLimit, f.Limit)
	})

	t.Run("category and subcategory are both required", func(t *testing.T) {
		t.Parallel()

		f := catalog.CategoryFilter(catalog.CategoryQuery{Category: "Tech", Subcategory: "IA", Limit: 5})
		assert.Equal(t, []string{"Tech", "IA"}, f.SubcategoryIs)
		assert.Equal(t, 5, f.Limit)
	})

	t.Run("no parameters matches everything", func(t *testing.T) {
		t.Parallel()

		f := catalog.CategoryFilter(catalog.CategoryQuery{Limit: -3})
		assert.Empty(t, f.SubcategoryIs)
		assert.Equal(t, catalog.DefaultLimit, f.Limit)
	})
}

func TestSearchFilter(t *testing.T) {
	t.Parallel()

	t.Run("sets only provided fields", func(t *testing.T) {
		t.Parallel()

		f := catalog.SearchFilter(catalog.SearchQuery{Title: "chatgpt", DateStart: "20250101"})

		require.NotNil(t, f.TitleContains)
		assert.Equal(t, "chatgpt", *f.TitleContains)
		require.NotNil(t, f.DateFrom)
		assert.Equal(t, "20250101", *f.DateFrom)
		assert.Nil(t, f.AuthorContains)
		assert.Nil(t, f.DateTo)
		assert.Empty(t, f.SubcategoryContains)
		assert.Equal(t, gazette.SortByDate, f.SortBy)
		assert.Equal(t, catalog.DefaultLimit, f.Limit)
	})

	t.Run("category and subcategory become substring conditions", func(t *testing.T) {
		t.Parallel()

		f := catalog.SearchFilter(catalog.SearchQuery{Category: "tech", Subcategory: "ia"})
		assert.Equal(t, []string{"tech", "ia"}, f.SubcategoryContains)
	})
}

func TestCatalog_ByCategory(t *testing.T) {
	t.Parallel()

	t.Run("passes filter to store", func(t *testing.T) {
		t.Parallel()

		var got gazette.ArticleFilter
		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter gazette.ArticleFilter) ([]*gazette.Article, error) {
				got = filter
				return []*gazette.Article{{URL: "https://example.com/a"}}, nil
			},
		}

		c := catalog.New(articles, slog.New(slog.DiscardHandler))
		res := c.ByCategory(context.Background(), catalog.CategoryQuery{Subcategory: "IA"})

		require.Len(t, res, 1)
		assert.Equal(t, []string{"IA"}, got.SubcategoryIs)
	})

	t.Run("store failure yields empty result and is logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		articles := &mock.ArticleService{
			FindArticlesFn: func(context.Context, gazette.ArticleFilter) ([]*gazette.Article, error) {
				return nil, errors.New("database is locked")
			},
		}

		c := catalog.New(articles, logger)
		res := c.ByCategory(context.Background(), catalog.CategoryQuery{Category: "IA"})

		assert.NotNil(t, res)
		assert.Empty(t, res)
		assert.Contains(t, buf.String(), "query=by_category")
		assert.Contains(t, buf.String(), `err="database is locked"`)
	})
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	t.Run("store failure yields empty result", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(context.Context, gazette.ArticleFilter) ([]*gazette.Article, error) {
				return nil, errors.New("boom")
			},
		}

		c := catalog.New(articles, slog.New(slog.DiscardHandler))
		res := c.Search(context.Background(), catalog.SearchQuery{Title: "x"})

		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestCatalog_Store(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewArticleService(db)
	ctx := context.Background()
	for _, a := range []*gazette.Article{
		{URL: "https://example.com/1", Title: "ChatGPT", Subcategory: "IA", Date: "20250815"},
		{URL: "https://example.com/2", Title: "Midjourney", Subcategory: "IA générative", Date: "20250901"},
		{URL: "https://example.com/3", Title: "Claude", Subcategory: "ia", Date: "20250720"},
	} {
		_, err := store.UpsertArticle(ctx, a)
		require.NoError(t, err)
	}

	c := catalog.New(store, slog.New(slog.DiscardHandler))

	t.Run("by category is exact not substring", func(t *testing.T) {
		t.Parallel()

		res := c.ByCategory(ctx, catalog.CategoryQuery{Subcategory: "IA"})

		var urls []string
		for _, a := range res {
			urls = append(urls, a.URL)
		}
		assert.ElementsMatch(t, []string{"https://example.com/1", "https://example.com/3"}, urls)
	})

	t.Run("search date range is inclusive", func(t *testing.T) {
		t.Parallel()

		res := c.Search(ctx, catalog.SearchQuery{DateStart: "20250101", DateEnd: "20250831"})

		require.Len(t, res, 2)
		assert.Equal(t, "20250815", res[0].Date)
		assert.Equal(t, "20250720", res[1].Date)
	})

	t.Run("search category is a substring", func(t *testing.T) {
		t.Parallel()

		res := c.Search(ctx, catalog.SearchQuery{Category: "génér"})

		require.Len(t, res, 1)
		assert.Equal(t, "Midjourney", res[0].Title)
	})
}
