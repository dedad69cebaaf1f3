// Package fs exports articles as Markdown files on the local filesystem.
package fs

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/gazette"
)

// URLToPath converts an article URL to a relative file path rooted at the
// site host.
// Example: https://www.example.fr/actu/ia.html → www.example.fr/actu/ia.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", gazette.Errorf(gazette.EINVALID, "invalid article URL %q", rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if slices.Contains(strings.Split(path, "/"), "..") {
		return "", gazette.Errorf(gazette.EINVALID, "path traversal in %q", rawURL)
	}

	switch {
	case path == "":
		path = "index.md"
	case strings.HasSuffix(u.Path, "/"):
		path += "/index.md"
	default:
		path = strings.TrimSuffix(strings.TrimSuffix(path, ".html"), ".htm") + ".md"
	}

	return filepath.Join(u.Hostname(), filepath.FromSlash(path)), nil
}
