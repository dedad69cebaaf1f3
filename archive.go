package gazette

import "context"

// Archive writes articles to an export destination with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type Archive interface {
	Save(ctx context.Context, article *Article) error
	Commit() error
	Abort() error
}
