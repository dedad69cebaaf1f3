package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/gazette"
	"gopkg.in/yaml.v3"
)

// Ensure Archive implements gazette.Archive at compile time.
var _ gazette.Archive = (*Archive)(nil)

// Archive implements gazette.Archive with atomic update semantics.
// Articles are saved to a temporary directory, then moved on Commit.
type Archive struct {
	baseDir string
	name    string
}

// NewArchive creates a new Archive.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewArchive(baseDir, name string) *Archive {
	return &Archive{
		baseDir: baseDir,
		name:    name,
	}
}

func (a *Archive) tempDir() string {
	return filepath.Join(a.baseDir, a.name+".tmp")
}

func (a *Archive) finalDir() string {
	return filepath.Join(a.baseDir, a.name)
}

// Save writes the article as a Markdown file under the temporary directory.
func (a *Archive) Save(ctx context.Context, article *gazette.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := article.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(article.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(a.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	content, err := FormatArticle(article)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the saved articles.
func (a *Archive) Commit() error {
	if err := os.MkdirAll(a.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(a.finalDir()); err != nil {
		return err
	}
	return os.Rename(a.tempDir(), a.finalDir())
}

// Abort discards the saved articles.
func (a *Archive) Abort() error {
	return os.RemoveAll(a.tempDir())
}

type frontMatter struct {
	Source      string          `yaml:"source"`
	Title       string          `yaml:"title,omitempty"`
	Date        string          `yaml:"date,omitempty"`
	Author      string          `yaml:"author,omitempty"`
	Subcategory string          `yaml:"subcategory,omitempty"`
	Thumbnail   string          `yaml:"thumbnail,omitempty"`
	Sommaire    []string        `yaml:"sommaire,omitempty"`
	Images      []gazette.Image `yaml:"images,omitempty"`
	Scraped     string          `yaml:"scraped,omitempty"`
}

// FormatArticle formats an article as Markdown with YAML front matter.
// The summary, when present, opens the body as a quote.
func FormatArticle(article *gazette.Article) (string, error) {
	fm := frontMatter{
		Source:      article.URL,
		Title:       article.Title,
		Date:        article.Date,
		Author:      article.Author,
		Subcategory: article.Subcategory,
		Thumbnail:   article.Thumbnail,
		Sommaire:    article.Sommaire,
		Images:      article.Images,
	}
	if !article.ScrapedAt.IsZero() {
		fm.Scraped = article.ScrapedAt.UTC().Format(time.DateOnly)
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	if article.Title != "" {
		b.WriteString("# ")
		b.WriteString(article.Title)
		b.WriteString("\n\n")
	}
	if article.Summary != "" {
		b.WriteString("> ")
		b.WriteString(article.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString(article.Content)
	if article.Content != "" && !strings.HasSuffix(article.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}
