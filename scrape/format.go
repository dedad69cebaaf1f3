package scrape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/gazette"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// truncateText keeps the first n characters of s.
func truncateText(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Summary describes an extracted article in a few lines for humans.
func Summary(a *gazette.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scraped: %s\n", truncateText(a.Title, 50))
	fmt.Fprintf(&b, "Date: %s, Author: %s\n", orNone(a.Date), orNone(a.Author))
	fmt.Fprintf(&b, "Images: %d, Sommaire items: %d\n", len(a.Images), len(a.Sommaire))
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
