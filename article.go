package gazette

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Article represents one extracted news article. The JSON field names are
// the persisted record layout other tools rely on.
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	Sommaire    []string  `json:"sommaire"`
	Subcategory string    `json:"subcategory"`
	Summary     string    `json:"summary"`
	Date        string    `json:"date"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Images      []Image   `json:"images"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Image is an in-body image with its caption.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

var dateRe = regexp.MustCompile(`^\d{8}$`)

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a == nil || strings.TrimSpace(a.URL) == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Date != "" && !dateRe.MatchString(a.Date) {
		return Errorf(EINVALID, "article date %q must be YYYYMMDD", a.Date)
	}
	return nil
}

// Normalize replaces nil sequences with empty ones so that the record
// never has absent fields.
func (a *Article) Normalize() {
	if a.Sommaire == nil {
		a.Sommaire = []string{}
	}
	if a.Images == nil {
		a.Images = []Image{}
	}
}

// UpsertResult acknowledges a stored article.
type UpsertResult struct {
	// ID is the store identifier, stable across updates of the same URL.
	ID string

	// Inserted is true when no article with the URL existed before.
	Inserted bool

	// ContentChanged is true when the body differs from the stored one.
	// Always true for inserts.
	ContentChanged bool
}

// ArticleService represents a service for storing and querying articles.
type ArticleService interface {
	// UpsertArticle inserts the article or replaces every field of the
	// stored article with the same URL.
	// Returns EINVALID without touching the store if the URL is empty.
	UpsertArticle(ctx context.Context, article *Article) (*UpsertResult, error)

	// FindArticleByURL retrieves an article by URL.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByURL(ctx context.Context, url string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)
}

// SortOrder represents the sort order for article queries.
type SortOrder string

// SortOrder constants for ArticleFilter. Both sort descending.
const (
	SortByScrapedAt SortOrder = "scraped_at"
	SortByDate      SortOrder = "date"
)

// ArticleFilter represents a filter for FindArticles. Text conditions are
// case-insensitive and all conditions are ANDed.
type ArticleFilter struct {
	URL *string `json:"url"`

	// SubcategoryIs lists values the whole subcategory must equal.
	SubcategoryIs []string `json:"subcategoryIs"`

	// SubcategoryContains lists substrings the subcategory must contain.
	SubcategoryContains []string `json:"subcategoryContains"`

	TitleContains  *string `json:"titleContains"`
	AuthorContains *string `json:"authorContains"`

	// DateFrom and DateTo bound the YYYYMMDD date inclusively.
	DateFrom *string `json:"dateFrom"`
	DateTo   *string `json:"dateTo"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
