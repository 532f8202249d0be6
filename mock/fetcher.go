package mock

import (
	"context"

	"github.com/fwojciec/larder"
)

var _ larder.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of larder.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*larder.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*larder.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
