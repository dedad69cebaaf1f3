package gazette

// ArticleExtractor builds an article record from a fetched page.
type ArticleExtractor interface {
	// ExtractArticle parses raw HTML and extracts every article field.
	// The baseURL is the final page URL; it becomes the article URL and is
	// used to resolve relative image references. Missing or malformed
	// markup never causes an error, it only leaves fields empty.
	ExtractArticle(html string, baseURL string) (*Article, error)
}

// DateNormalizer converts free-text date expressions into YYYYMMDD.
type DateNormalizer interface {
	// NormalizeDate returns the date as YYYYMMDD, or "" if the text
	// holds no recognizable date.
	NormalizeDate(text string) string
}
