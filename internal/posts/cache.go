package posts

import (
	"context"
	"iter"
	"sync"
)

// CachedSource memoizes the summaries of another Source until
// Invalidate is called. Failed reads are not cached.
type CachedSource struct {
	src Source

	mu    sync.Mutex
	items []Summary
	valid bool
}

func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{src: src}
}

func (c *CachedSource) Summaries(ctx context.Context) iter.Seq2[Summary, error] {
	return func(yield func(Summary, error) bool) {
		items, err := c.load(ctx)
		if err != nil {
			yield(Summary{}, err)
			return
		}
		for _, s := range items {
			if !yield(s, nil) {
				return
			}
		}
	}
}

// Invalidate drops the cached summaries; the next iteration re-reads the
// underlying source.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.items, c.valid = nil, false
	c.mu.Unlock()
}

func (c *CachedSource) load(ctx context.Context) ([]Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.items, nil
	}
	var items []Summary
	for s, err := range c.src.Summaries(ctx) {
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	c.items, c.valid = items, true
	return items, nil
}
