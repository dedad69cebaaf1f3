package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gazette"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Field cascades, tried in order until one yields a non-empty value.
var (
	titleStrategies = []func(*page) string{
		titleFromHeading,
		titleFromOpenGraph,
		titleFromTitleTag,
	}
	thumbnailStrategies = []func(*page) string{
		thumbnailFromOpenGraph,
		thumbnailFromFeaturedImage,
		thumbnailFromFigure,
		thumbnailFromFirstImage,
	}
	sommaireStrategies = []func(*page) []string{
		sommaireFromHeading,
		sommaireFromTOCBlock,
	}
	subcategoryStrategies = []func(*page) string{
		subcategoryFromBreadcrumb,
		subcategoryFromSectionMeta,
		subcategoryFromCategoryLink,
	}
	summaryStrategies = []func(*page) string{
		summaryFromLede,
		summaryFromDescription,
		summaryFromOpenGraph,
		summaryFromFirstParagraph,
	}
	dateStrategies = []func(*page) string{
		dateFromTimeElement,
		dateFromPhrases,
	}
	authorStrategies = []func(*page) string{
		authorFromRelLink,
		authorFromClass,
		authorFromByline,
	}
)

const (
	minTOCEntryLen     = 3
	minSummaryLen      = 50
	maxSummaryLen      = 300
	minContentBlockLen = 11
	minImageSide       = 100
)

func titleFromHeading(p *page) string {
	return text(p.doc.Find("h1"))
}

func titleFromOpenGraph(p *page) string {
	return meta(p.doc, `meta[property="og:title"]`)
}

func titleFromTitleTag(p *page) string {
	return text(p.doc.Find("title"))
}

func thumbnailFromOpenGraph(p *page) string {
	return resolveURL(p.base, p.doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""))
}

func thumbnailFromFeaturedImage(p *page) string {
	return ImageURL(withClass(p.doc.Find("img"), p.patterns.FeaturedImageClass), p.base)
}

func thumbnailFromFigure(p *page) string {
	return ImageURL(p.container.Find("figure").First().Find("img"), p.base)
}

func thumbnailFromFirstImage(p *page) string {
	return ImageURL(p.container.Find("img"), p.base)
}

// sommaireFromHeading finds the innermost element announcing a table of
// contents and reads the first list that follows it.
func sommaireFromHeading(p *page) []string {
	const headings = "h2, h3, h4, div, p, span"
	announces := func(_ int, s *goquery.Selection) bool {
		return p.patterns.TOCHeading.MatchString(s.Text())
	}

	heading := p.doc.Find(headings).FilterFunction(announces).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find(headings).FilterFunction(announces).Length() == 0
	}).First()
	if heading.Length() == 0 {
		return nil
	}

	list := p.firstAfter(heading.Get(0), p.doc.Find("ol, ul"))
	var entries []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		if t := text(li); utf8.RuneCountInString(t) >= minTOCEntryLen {
			entries = append(entries, t)
		}
	})
	return entries
}

// sommaireFromTOCBlock reads a nav or div styled as a table of contents.
// Link texts are kept only when they are not part of a collected item.
func sommaireFromTOCBlock(p *page) []string {
	block := withClass(p.doc.Find("nav, div"), p.patterns.TOCClass).First()
	if block.Length() == 0 {
		return nil
	}

	var entries []string
	collected := make(map[*html.Node]bool)
	block.Find("li, a").Each(func(_ int, item *goquery.Selection) {
		n := item.Get(0)
		if n.DataAtom == atom.A && insideAny(n, collected) {
			return
		}
		t := text(item)
		if utf8.RuneCountInString(t) < minTOCEntryLen {
			return
		}
		if n.DataAtom == atom.Li {
			collected[n] = true
		}
		entries = append(entries, t)
	})
	return entries
}

func insideAny(n *html.Node, set map[*html.Node]bool) bool {
	for a := n.Parent; a != nil; a = a.Parent {
		if set[a] {
			return true
		}
	}
	return false
}

// subcategoryFromBreadcrumb takes the last crumb before the article
// itself.
func subcategoryFromBreadcrumb(p *page) string {
	crumb := withClass(p.doc.Find("nav, div, ol, ul"), p.patterns.BreadcrumbClass).First()
	links := crumb.Find("a")
	switch n := links.Length(); {
	case n >= 2:
		return text(links.Eq(n - 2))
	case n == 1:
		return text(links)
	}
	return ""
}

func subcategoryFromSectionMeta(p *page) string {
	if s := meta(p.doc, `meta[name="article:section"]`); s != "" {
		return s
	}
	return meta(p.doc, `meta[property="article:section"]`)
}

func subcategoryFromCategoryLink(p *page) string {
	link := p.doc.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return p.patterns.CategoryHref.MatchString(a.AttrOr("href", ""))
	})
	return text(link)
}

func summaryFromLede(p *page) string {
	return text(withClass(p.doc.Find("p, div"), p.patterns.SummaryClass))
}

func summaryFromDescription(p *page) string {
	return meta(p.doc, `meta[name="description"]`)
}

func summaryFromOpenGraph(p *page) string {
	return meta(p.doc, `meta[property="og:description"]`)
}

// summaryFromFirstParagraph uses the paragraph following the first h1
// when its length is plausible for a lede.
func summaryFromFirstParagraph(p *page) string {
	h1 := p.doc.Find("h1").First()
	if h1.Length() == 0 {
		return ""
	}
	t := text(p.firstAfter(h1.Get(0), p.doc.Find("p")))
	if n := utf8.RuneCountInString(t); n < minSummaryLen || n > maxSummaryLen {
		return ""
	}
	return t
}

// dateFromTimeElement reads the datetime attribute of the first <time>,
// or its text when the attribute is missing.
func dateFromTimeElement(p *page) string {
	el := p.doc.Find("time").First()
	if el.Length() == 0 {
		return ""
	}
	if dt := strings.TrimSpace(el.AttrOr("datetime", "")); dt != "" {
		return p.normalizeDate(dt)
	}
	return p.normalizeDate(text(el))
}

// dateFromPhrases searches the document text with each date phrase in
// turn and normalizes the first match of each.
func dateFromPhrases(p *page) string {
	for _, re := range p.patterns.DatePhrases {
		m := re.FindStringSubmatch(p.docText)
		if len(m) < 2 {
			continue
		}
		if d := p.normalizeDate(m[1]); d != "" {
			return d
		}
	}
	return ""
}

func authorFromRelLink(p *page) string {
	return text(p.doc.Find(`a[rel~="author"]`))
}

func authorFromClass(p *page) string {
	return text(withClass(p.doc.Find("span, div, p"), p.patterns.AuthorClass))
}

func authorFromByline(p *page) string {
	m := p.patterns.Byline.FindStringSubmatch(p.docText)
	if len(m) < 3 {
		return ""
	}
	return gazette.CleanText(m[2])
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// extractContent joins the paragraphs and headings of the body. Blocks
// inside navigation, asides or decorated regions are skipped, as are
// short fragments.
func extractContent(p *page) string {
	stop := p.content.Get(0)
	var blocks []string
	p.content.Find("p, h2, h3, h4, h5, h6").Each(func(_ int, el *goquery.Selection) {
		n := el.Get(0)
		if p.decorated(n, stop) {
			return
		}
		t := gazette.CleanText(el.Text())
		if utf8.RuneCountInString(t) < minContentBlockLen {
			return
		}
		if n.DataAtom != atom.P {
			t = "\n" + t + "\n"
		}
		blocks = append(blocks, t)
	})
	content := strings.TrimSpace(strings.Join(blocks, "\n\n"))
	return blankLines.ReplaceAllString(content, "\n\n")
}

// decorated reports whether an ancestor of n below stop is navigation,
// an aside, or carries a class marking non-body content.
func (p *page) decorated(n, stop *html.Node) bool {
	for a := n.Parent; a != nil && a != stop; a = a.Parent {
		if a.Type != html.ElementNode {
			continue
		}
		if a.DataAtom == atom.Nav || a.DataAtom == atom.Aside {
			return true
		}
		if hasClass(a, p.patterns.ContentSkipClass) {
			return true
		}
	}
	return false
}

// extractImages lists body images with their captions, leaving out
// icons and the thumbnail.
func extractImages(p *page) []gazette.Image {
	var images []gazette.Image
	p.content.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := ImageURL(img, p.base)
		if src == "" || src == p.thumbnail || tooSmall(img) {
			return
		}
		images = append(images, gazette.Image{URL: src, Caption: caption(img)})
	})
	return images
}

// tooSmall reports whether both declared dimensions are numeric and one
// of them is below the icon threshold.
func tooSmall(img *goquery.Selection) bool {
	w, errW := strconv.Atoi(strings.TrimSpace(img.AttrOr("width", "")))
	h, errH := strconv.Atoi(strings.TrimSpace(img.AttrOr("height", "")))
	if errW != nil || errH != nil {
		return false
	}
	return w < minImageSide || h < minImageSide
}

func caption(img *goquery.Selection) string {
	if fig := img.Closest("figure"); fig.Length() > 0 {
		if c := text(fig.Find("figcaption")); c != "" {
			return c
		}
	}
	if alt := gazette.CleanText(img.AttrOr("alt", "")); alt != "" {
		return alt
	}
	return gazette.CleanText(img.AttrOr("title", ""))
}
