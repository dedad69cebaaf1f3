package scrape

import "strings"

// seenSet remembers which article URLs a batch has already taken.
type seenSet map[string]struct{}

// add records url and reports whether it was new. URLs differing only by
// fragment are the same article.
func (s seenSet) add(url string) bool {
	url, _, _ = strings.Cut(url, "#")
	if _, ok := s[url]; ok {
		return false
	}
	s[url] = struct{}{}
	return true
}
