package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/catalog"
)

// Run executes the category command.
func (c *CategoryCmd) Run(deps *Dependencies) error {
	articles := deps.Catalog.ByCategory(deps.Ctx, catalog.CategoryQuery{
		Category:    c.Category,
		Subcategory: c.Subcategory,
		Limit:       c.Limit,
	})
	return printArticles(deps.Stdout, articles, c.JSON)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	articles := deps.Catalog.Search(deps.Ctx, catalog.SearchQuery{
		Title:       c.Title,
		Author:      c.Author,
		DateStart:   c.From,
		DateEnd:     c.To,
		Category:    c.Category,
		Subcategory: c.Subcategory,
		Limit:       c.Limit,
	})
	return printArticles(deps.Stdout, articles, c.JSON)
}

// printArticles writes one line per article, or the records as a JSON
// array.
func printArticles(w io.Writer, articles []*gazette.Article, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(articles)
	}

	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return nil
	}
	for _, a := range articles {
		date := a.Date
		if date == "" {
			date = "--------"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", date, a.Title, a.URL)
	}
	return nil
}
