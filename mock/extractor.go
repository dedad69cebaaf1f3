package mock

import "github.com/fwojciec/gazette"

var _ gazette.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of gazette.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html, baseURL string) (*gazette.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html, baseURL string) (*gazette.Article, error) {
	return e.ExtractArticleFn(html, baseURL)
}

var _ gazette.DateNormalizer = (*DateNormalizer)(nil)

// DateNormalizer is a mock implementation of gazette.DateNormalizer.
type DateNormalizer struct {
	NormalizeDateFn func(text string) string
}

func (n *DateNormalizer) NormalizeDate(text string) string {
	return n.NormalizeDateFn(text)
}
