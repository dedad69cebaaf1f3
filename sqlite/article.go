package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gazette"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ gazette.ArticleService = (*ArticleService)(nil)

// ArticleService implements gazette.ArticleService using SQLite.
type ArticleService struct {
	db  *DB
	now func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

const articleColumns = "id, url, title, thumbnail, sommaire, subcategory, summary, date, author, content, images, scraped_at"

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// UpsertArticle inserts the article, or replaces every field of the stored
// article with the same URL. The store id of an existing article is kept.
func (s *ArticleService) UpsertArticle(ctx context.Context, article *gazette.Article) (*gazette.UpsertResult, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}
	article.Normalize()
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = s.now()
	}

	sommaire, err := json.Marshal(article.Sommaire)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sommaire: %w", err)
	}
	images, err := json.Marshal(article.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res := &gazette.UpsertResult{}
	var storedHash string
	err = tx.QueryRowContext(ctx, "SELECT id, content_hash FROM articles WHERE url = ?", article.URL).
		Scan(&res.ID, &storedHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res.ID = uuid.New().String()
		res.Inserted = true
	case err != nil:
		return nil, fmt.Errorf("failed to look up article: %w", err)
	}

	hash := hashContent(article.Content)
	res.ContentChanged = res.Inserted || hash != storedHash

	_, err = tx.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, title_fold, thumbnail, sommaire, subcategory, subcategory_fold,
			summary, date, author, author_fold, content, content_hash, images, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			title_fold = excluded.title_fold,
			thumbnail = excluded.thumbnail,
			sommaire = excluded.sommaire,
			subcategory = excluded.subcategory,
			subcategory_fold = excluded.subcategory_fold,
			summary = excluded.summary,
			date = excluded.date,
			author = excluded.author,
			author_fold = excluded.author_fold,
			content = excluded.content,
			content_hash = excluded.content_hash,
			images = excluded.images,
			scraped_at = excluded.scraped_at
	`, res.ID, article.URL, article.Title, fold(article.Title), article.Thumbnail, string(sommaire),
		article.Subcategory, fold(article.Subcategory), article.Summary, article.Date,
		article.Author, fold(article.Author), article.Content, hash, string(images),
		formatTime(article.ScrapedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit article: %w", err)
	}

	return res, nil
}

// FindArticleByURL retrieves an article by URL.
func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*gazette.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE url = ?", url)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gazette.Errorf(gazette.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter.
func (s *ArticleService) FindArticles(ctx context.Context, filter gazette.ArticleFilter) ([]*gazette.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	for _, v := range filter.SubcategoryIs {
		query.WriteString(" AND subcategory_fold = ?")
		args = append(args, fold(v))
	}
	for _, v := range filter.SubcategoryContains {
		query.WriteString(" AND instr(subcategory_fold, ?) > 0")
		args = append(args, fold(v))
	}
	if filter.TitleContains != nil {
		query.WriteString(" AND instr(title_fold, ?) > 0")
		args = append(args, fold(*filter.TitleContains))
	}
	if filter.AuthorContains != nil {
		query.WriteString(" AND instr(author_fold, ?) > 0")
		args = append(args, fold(*filter.AuthorContains))
	}
	if filter.DateFrom != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, *filter.DateTo)
	}

	switch filter.SortBy {
	case gazette.SortByDate:
		query.WriteString(" ORDER BY date DESC, url ASC")
	default:
		query.WriteString(" ORDER BY scraped_at DESC, url ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*gazette.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*gazette.Article, error) {
	var a gazette.Article
	var id, sommaire, images, scrapedAt string

	if err := row.Scan(&id, &a.URL, &a.Title, &a.Thumbnail, &sommaire, &a.Subcategory,
		&a.Summary, &a.Date, &a.Author, &a.Content, &images, &scrapedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sommaire), &a.Sommaire); err != nil {
		return nil, fmt.Errorf("failed to decode sommaire: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &a.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	var err error
	if a.ScrapedAt, err = parseTime(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}

	a.Normalize()
	return &a, nil
}
