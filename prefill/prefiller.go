package prefill

import (
	"context"
	"errors"
	"sync"

	"github.com/fwojciec/larder"
	"golang.org/x/sync/singleflight"
)

// errAbandoned marks a shared lookup whose starting caller was canceled.
var errAbandoned = errors.New("lookup abandoned")

// Prefiller looks up recipe data for source URLs.
//
// Lookups are keyed by larder.NormalizeForLookup. Concurrent lookups of one
// key share a single fetch, and completed lookups, misses included, are
// memoised until Reset. Failed lookups are not memoised. A caller canceled
// mid-lookup does not fail the others waiting on the same key. Prefiller
// is safe for concurrent use.
type Prefiller struct {
	fetcher   larder.Fetcher
	extractor larder.RecipeExtractor

	group singleflight.Group

	mu      sync.Mutex
	gen     uint64
	results map[string]*larder.RecipeExtract
}

// NewPrefiller creates a Prefiller that fetches pages with fetcher and
// reads them with extractor, usually a Chain.
func NewPrefiller(fetcher larder.Fetcher, extractor larder.RecipeExtractor) *Prefiller {
	return &Prefiller{
		fetcher:   fetcher,
		extractor: extractor,
		results:   make(map[string]*larder.RecipeExtract),
	}
}

// Prefill returns the recipe data found at sourceURL, or nil when the page
// holds none. The returned extract is a copy owned by the caller.
func (p *Prefiller) Prefill(ctx context.Context, sourceURL string) (*larder.RecipeExtract, error) {
	if !larder.IsRemoteURL(sourceURL) {
		return nil, larder.Errorf(larder.EINVALID, "source URL must be an absolute http(s) URL: %q", sourceURL)
	}
	key := larder.NormalizeForLookup(sourceURL)

	for {
		if r, ok := p.Cached(sourceURL); ok {
			return r, nil
		}

		p.mu.Lock()
		gen := p.gen
		p.mu.Unlock()

		ch := p.group.DoChan(key, func() (any, error) {
			r, err := p.lookup(ctx, sourceURL)
			if err != nil {
				if ctx.Err() != nil {
					return nil, errAbandoned
				}
				return nil, err
			}
			p.mu.Lock()
			if p.gen == gen {
				p.results[key] = r
			}
			p.mu.Unlock()
			return r, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if errors.Is(res.Err, errAbandoned) {
				// The caller that started the shared lookup went away;
				// start it again under this caller's context.
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				continue
			}
			if res.Err != nil {
				return nil, res.Err
			}
			return clone(res.Val.(*larder.RecipeExtract)), nil
		}
	}
}

// Cached returns the memoised result for sourceURL, if any.
func (p *Prefiller) Cached(sourceURL string) (*larder.RecipeExtract, bool) {
	key := larder.NormalizeForLookup(sourceURL)
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.results[key]
	return clone(r), ok
}

// Reset forgets every memoised result. Lookups in flight when Reset is
// called are not memoised.
func (p *Prefiller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.results = make(map[string]*larder.RecipeExtract)
}

func (p *Prefiller) lookup(ctx context.Context, sourceURL string) (*larder.RecipeExtract, error) {
	page, err := p.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	if page.URL == "" {
		page.URL = sourceURL
	}
	return p.extractor.ExtractRecipe(ctx, page)
}

func clone(r *larder.RecipeExtract) *larder.RecipeExtract {
	if r == nil {
		return nil
	}
	return &larder.RecipeExtract{
		Title:       r.Title,
		Ingredients: append([]string(nil), r.Ingredients...),
		Steps:       append([]string(nil), r.Steps...),
	}
}
