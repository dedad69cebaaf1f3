package mock

import (
	"context"

	"github.com/fwojciec/gazette"
)

var _ gazette.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of gazette.ArticleService.
type ArticleService struct {
	UpsertArticleFn    func(ctx context.Context, article *gazette.Article) (*gazette.UpsertResult, error)
	FindArticleByURLFn func(ctx context.Context, url string) (*gazette.Article, error)
	FindArticlesFn     func(ctx context.Context, filter gazette.ArticleFilter) ([]*gazette.Article, error)
}

func (s *ArticleService) UpsertArticle(ctx context.Context, article *gazette.Article) (*gazette.UpsertResult, error) {
	return s.UpsertArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*gazette.Article, error) {
	return s.FindArticleByURLFn(ctx, url)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter gazette.ArticleFilter) ([]*gazette.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}
