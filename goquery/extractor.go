// Package goquery extracts article records from news-site HTML using
// goquery selections and ordered fallback strategies per field.
package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gazette"
	"golang.org/x/net/html"
)

// Ensure Extractor implements gazette.ArticleExtractor at compile time.
var _ gazette.ArticleExtractor = (*Extractor)(nil)

// Extractor builds gazette.Article values from raw HTML. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	dates    gazette.DateNormalizer
	patterns Patterns
	now      func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPatterns replaces the default pattern tables.
func WithPatterns(p Patterns) Option {
	return func(e *Extractor) {
		e.patterns = p
	}
}

// WithClock sets the clock used for ScrapedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor normalizing dates with dates.
func NewExtractor(dates gazette.DateNormalizer, opts ...Option) *Extractor {
	e := &Extractor{
		dates:    dates,
		patterns: DefaultPatterns(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractArticle extracts an article from html served at baseURL.
// Missing or ambiguous markup yields empty fields, never an error.
// Returns EINVALID if baseURL cannot be parsed.
func (e *Extractor) ExtractArticle(rawHTML, baseURL string) (*gazette.Article, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, gazette.Errorf(gazette.EINVALID, "invalid base URL: %v", err)
	}

	article := &gazette.Article{URL: baseURL, ScrapedAt: e.now().UTC()}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		article.Normalize()
		return article, nil
	}
	doc.Find("script, style").Remove()

	p := newPage(doc, base, &e.patterns, e.dates)

	article.Title = firstOf(p, titleStrategies...)
	article.Thumbnail = firstOf(p, thumbnailStrategies...)
	p.thumbnail = article.Thumbnail
	article.Sommaire = firstOf(p, sommaireStrategies...)
	article.Subcategory = firstOf(p, subcategoryStrategies...)
	article.Summary = firstOf(p, summaryStrategies...)
	article.Date = firstOf(p, dateStrategies...)
	article.Author = firstOf(p, authorStrategies...)
	article.Content = extractContent(p)
	article.Images = extractImages(p)
	article.Normalize()

	return article, nil
}

// firstOf runs strategies in order and returns the first non-empty result.
func firstOf[T ~string | ~[]string](p *page, strategies ...func(*page) T) T {
	var zero T
	for _, strategy := range strategies {
		if v := strategy(p); len(v) > 0 {
			return v
		}
	}
	return zero
}

// page is the parsed document shared by the strategies of one extraction.
type page struct {
	doc       *goquery.Document
	base      *url.URL
	patterns  *Patterns
	dates     gazette.DateNormalizer
	container *goquery.Selection
	content   *goquery.Selection
	thumbnail string

	docText string
	order   map[*html.Node]int
}

func newPage(doc *goquery.Document, base *url.URL, patterns *Patterns, dates gazette.DateNormalizer) *page {
	p := &page{
		doc:      doc,
		base:     base,
		patterns: patterns,
		dates:    dates,
		docText:  doc.Text(),
	}
	p.container = p.findContainer()
	p.content = withClass(p.container.Find("div, section"), patterns.ContentClass).First()
	if p.content.Length() == 0 {
		p.content = p.container
	}
	return p
}

func (p *page) findContainer() *goquery.Selection {
	if s := p.doc.Find("article").First(); s.Length() > 0 {
		return s
	}
	if s := withClass(p.doc.Find("div"), p.patterns.ContainerClass).First(); s.Length() > 0 {
		return s
	}
	if s := p.doc.Find("main").First(); s.Length() > 0 {
		return s
	}
	if s := p.doc.Find("body").First(); s.Length() > 0 {
		return s
	}
	return p.doc.Selection
}

// normalizeDate returns the canonical form of text, or "" when no
// normalizer is configured.
func (p *page) normalizeDate(text string) string {
	if p.dates == nil {
		return ""
	}
	return p.dates.NormalizeDate(text)
}

// index returns the position of n in document order.
func (p *page) index(n *html.Node) int {
	if p.order == nil {
		p.order = make(map[*html.Node]int)
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			p.order[n] = len(p.order)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		for _, root := range p.doc.Nodes {
			walk(root)
		}
	}
	return p.order[n]
}

// firstAfter returns the first element of candidates that follows n in
// document order. Descendants of n follow n.
func (p *page) firstAfter(n *html.Node, candidates *goquery.Selection) *goquery.Selection {
	at := p.index(n)
	for i, c := range candidates.Nodes {
		if p.index(c) > at {
			return candidates.Eq(i)
		}
	}
	return candidates.Slice(0, 0)
}

// text returns the cleaned text of the first element of s.
func text(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return gazette.CleanText(s.First().Text())
}

// meta returns the cleaned content of the first meta element matching
// selector.
func meta(doc *goquery.Document, selector string) string {
	return gazette.CleanText(doc.Find(selector).First().AttrOr("content", ""))
}

// withClass keeps the elements of s having a class token matching re.
func withClass(s *goquery.Selection, re *regexp.Regexp) *goquery.Selection {
	return s.FilterFunction(func(_ int, el *goquery.Selection) bool {
		return hasClass(el.Get(0), re)
	})
}

func hasClass(n *html.Node, re *regexp.Regexp) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(a.Val) {
			if re.MatchString(token) {
				return true
			}
		}
	}
	return false
}
