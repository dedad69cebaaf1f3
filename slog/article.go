package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gazette"
)

// Ensure LoggingArticleService implements gazette.ArticleService.
var _ gazette.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with debug logging.
type LoggingArticleService struct {
	next   gazette.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next gazette.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// UpsertArticle delegates to the wrapped service and logs whether the
// article was inserted or updated.
func (s *LoggingArticleService) UpsertArticle(ctx context.Context, article *gazette.Article) (res *gazette.UpsertResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{}
		if article != nil {
			attrs = append(attrs, "url", article.URL)
		}
		if res != nil {
			attrs = append(attrs, "id", res.ID, "inserted", res.Inserted, "changed", res.ContentChanged)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Debug("upsert article", attrs...)
	}(time.Now())
	return s.next.UpsertArticle(ctx, article)
}

// FindArticleByURL delegates to the wrapped service and logs the lookup.
func (s *LoggingArticleService) FindArticleByURL(ctx context.Context, url string) (article *gazette.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find article",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByURL(ctx, url)
}

// FindArticles delegates to the wrapped service and logs the match count.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter gazette.ArticleFilter) (articles []*gazette.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find articles",
			"count", len(articles),
			"offset", filter.Offset,
			"limit", filter.Limit,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}
