package goquery

import "regexp"

// Patterns holds the declarative tables the field cascades match against.
// Class patterns are tested against each class token of an element
// separately.
type Patterns struct {
	// ContainerClass selects the article container among div elements
	// when the page has no article element.
	ContainerClass *regexp.Regexp

	// FeaturedImageClass marks the lead image of an article.
	FeaturedImageClass *regexp.Regexp

	// TOCHeading matches the text of the element introducing a table of
	// contents.
	TOCHeading *regexp.Regexp

	// TOCClass marks a nav or div holding a table of contents.
	TOCClass *regexp.Regexp

	// BreadcrumbClass marks a breadcrumb trail.
	BreadcrumbClass *regexp.Regexp

	// CategoryHref matches links to category, tag or theme listings.
	CategoryHref *regexp.Regexp

	// SummaryClass marks a lede paragraph.
	SummaryClass *regexp.Regexp

	// DatePhrases are searched in order in the document text. The first
	// capture group holds the date text.
	DatePhrases []*regexp.Regexp

	// AuthorClass marks an element holding the author name.
	AuthorClass *regexp.Regexp

	// Byline matches "par <name>" in the document text. The second
	// capture group holds the name.
	Byline *regexp.Regexp

	// ContentClass selects the body sub-container inside the article.
	ContentClass *regexp.Regexp

	// ContentSkipClass marks ancestors whose text is not body text.
	ContentSkipClass *regexp.Regexp
}

// DefaultPatterns returns the patterns tuned for French news sites.
func DefaultPatterns() Patterns {
	return Patterns{
		ContainerClass:     regexp.MustCompile(`(?i)(entry-content|post|article|article-wrapper|single-post)`),
		FeaturedImageClass: regexp.MustCompile(`(?i)(featured|hero|main|thumbnail)`),
		TOCHeading:         regexp.MustCompile(`(?i)sommaire|table.?des.?mati[eè]res|plan.?de.?l.?article`),
		TOCClass:           regexp.MustCompile(`(?i)(toc|table-of-contents|sommaire)`),
		BreadcrumbClass:    regexp.MustCompile(`(?i)(breadcrumbs?|fil.{0,3}ariane)`),
		CategoryHref:       regexp.MustCompile(`(?i)/(categor\p{L}*|tag|theme)/`),
		SummaryClass:       regexp.MustCompile(`(?i)(chapo|lead|intro|excerpt|summary|extrait)`),
		DatePhrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Publié[\s\p{Z}]+le?[\s\p{Z}]+([^|\n]+)`),
			regexp.MustCompile(`(?i)Published[\s\p{Z}]+on[\s\p{Z}]+([^|\n]+)`),
			regexp.MustCompile(`(?i)(\d{1,2}[\s\p{Z}]+[\p{L}\p{N}_]+[\s\p{Z}]+\d{4})`),
			regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
		},
		AuthorClass:      regexp.MustCompile(`(?i)(author|auteur|byline|writer)`),
		Byline:           regexp.MustCompile(`(?i)\b(par|by)[\s\p{Z}]+([^|,\n]+)`),
		ContentClass:     regexp.MustCompile(`(?i)(entry-content|post-content|article-content|content|post-body)`),
		ContentSkipClass: regexp.MustCompile(`(?i)nav|sidebar|meta|social|(^|[-_])ads?($|[-_])`),
	}
}
