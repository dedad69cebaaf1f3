package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/mock"
	gazslog "github.com/fwojciec/gazette/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingArticleService(t *testing.T) {
	t.Parallel()

	t.Run("logs upsert outcome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArticleService{
			UpsertArticleFn: func(context.Context, *gazette.Article) (*gazette.UpsertResult, error) {
				return &gazette.UpsertResult{ID: "abc", Inserted: true, ContentChanged: true}, nil
			},
		}

		svc := gazslog.NewLoggingArticleService(inner, debugLogger(&buf))
		res, err := svc.UpsertArticle(context.Background(), &gazette.Article{URL: "https://www.example.fr/a"})

		require.NoError(t, err)
		assert.True(t, res.Inserted)
		output := buf.String()
		assert.Contains(t, output, `msg="upsert article"`)
		assert.Contains(t, output, "url=https://www.example.fr/a")
		assert.Contains(t, output, "id=abc")
		assert.Contains(t, output, "inserted=true")
		assert.Contains(t, output, "changed=true")
	})

	t.Run("logs upsert error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArticleService{
			UpsertArticleFn: func(context.Context, *gazette.Article) (*gazette.UpsertResult, error) {
				return nil, gazette.Errorf(gazette.EINVALID, "article URL required")
			},
		}

		svc := gazslog.NewLoggingArticleService(inner, debugLogger(&buf))
		_, err := svc.UpsertArticle(context.Background(), &gazette.Article{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="article URL required"`)
	})

	t.Run("logs lookup by URL", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArticleService{
			FindArticleByURLFn: func(_ context.Context, url string) (*gazette.Article, error) {
				return &gazette.Article{URL: url}, nil
			},
		}

		svc := gazslog.NewLoggingArticleService(inner, debugLogger(&buf))
		a, err := svc.FindArticleByURL(context.Background(), "https://www.example.fr/a")

		require.NoError(t, err)
		assert.Equal(t, "https://www.example.fr/a", a.URL)
		assert.Contains(t, buf.String(), `msg="find article" url=https://www.example.fr/a`)
	})

	t.Run("logs query count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArticleService{
			FindArticlesFn: func(context.Context, gazette.ArticleFilter) ([]*gazette.Article, error) {
				return []*gazette.Article{{URL: "a"}, {URL: "b"}}, nil
			},
		}

		svc := gazslog.NewLoggingArticleService(inner, debugLogger(&buf))
		articles, err := svc.FindArticles(context.Background(), gazette.ArticleFilter{Limit: 10})

		require.NoError(t, err)
		assert.Len(t, articles, 2)
		output := buf.String()
		assert.Contains(t, output, `msg="find articles"`)
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "limit=10")
	})

	t.Run("stays quiet above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArticleService{
			FindArticlesFn: func(context.Context, gazette.ArticleFilter) ([]*gazette.Article, error) {
				return nil, nil
			},
		}

		svc := gazslog.NewLoggingArticleService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := svc.FindArticles(context.Background(), gazette.ArticleFilter{})

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
