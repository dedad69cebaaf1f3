package main

import (
	"fmt"

	"github.com/fwojciec/gazette"
)

// exportPageSize is the number of articles read from the store per query.
const exportPageSize = 500

// Run executes the export command. The output directory is only replaced
// once every article is written.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := gazette.ArticleFilter{
		SortBy: gazette.SortByDate,
		Limit:  exportPageSize,
	}
	if c.Category != "" {
		filter.SubcategoryContains = []string{c.Category}
	}

	n := 0
	for {
		articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
		if err != nil {
			_ = deps.Archive.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", gazette.ErrorMessage(err))
			return err
		}
		for _, a := range articles {
			if err := deps.Archive.Save(deps.Ctx, a); err != nil {
				_ = deps.Archive.Abort()
				fmt.Fprintf(deps.Stderr, "error: export %s: %s\n", a.URL, gazette.ErrorMessage(err))
				return err
			}
			n++
		}
		if len(articles) < filter.Limit {
			break
		}
		filter.Offset += len(articles)
	}

	if err := deps.Archive.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d articles to %s\n", n, c.Dir)
	return nil
}
