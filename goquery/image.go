package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// imageAttrs lists the attributes holding an image source, lazy-loading
// attributes first.
var imageAttrs = []string{"data-src", "data-lazy-src", "data-original", "src", "data-srcset"}

// ImageURL returns the absolute source URL of the first element of img.
// Returns an empty string if the selection is empty, no source attribute
// has a value, or the value cannot be resolved against base.
func ImageURL(img *goquery.Selection, base *url.URL) string {
	if img == nil || img.Length() == 0 {
		return ""
	}
	img = img.First()
	for _, attr := range imageAttrs {
		val := strings.TrimSpace(img.AttrOr(attr, ""))
		if val == "" {
			continue
		}
		// Source sets list "url descriptor" candidates; keep the first URL.
		if attr == "data-srcset" || strings.Contains(val, ",") {
			first, _, _ := strings.Cut(val, ",")
			fields := strings.Fields(first)
			if len(fields) == 0 {
				return ""
			}
			val = fields[0]
		}
		return resolveURL(base, val)
	}
	return ""
}

// resolveURL resolves a possibly relative reference against base.
// Returns empty string if the reference cannot be parsed.
func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}
