package mock

import (
	"context"

	"github.com/fwojciec/gazette"
)

var _ gazette.Archive = (*Archive)(nil)

// Archive is a mock implementation of gazette.Archive.
type Archive struct {
	SaveFn   func(ctx context.Context, article *gazette.Article) error
	CommitFn func() error
	AbortFn  func() error
}

func (a *Archive) Save(ctx context.Context, article *gazette.Article) error {
	return a.SaveFn(ctx, article)
}

func (a *Archive) Commit() error {
	return a.CommitFn()
}

func (a *Archive) Abort() error {
	return a.AbortFn()
}
