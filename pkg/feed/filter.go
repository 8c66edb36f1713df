package feed

import (
	"context"
	"strings"
	"sync"
)

// Filter is the single writer of the active tag. Both the explicit filter
// command and tag chips on image cards go through Set, producing the same
// query. Every call re-triggers a fetch, even for an unchanged value.
type Filter struct {
	mu      sync.Mutex
	tag     string
	fetcher *Fetcher
}

func NewFilter(fetcher *Fetcher) *Filter {
	return &Filter{fetcher: fetcher}
}

func (tf *Filter) Set(ctx context.Context, tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tf.Clear(ctx)
		return
	}

	tf.mu.Lock()
	tf.tag = tag
	tf.mu.Unlock()

	tf.fetcher.Refresh(ctx, Query{Tag: tag})
}

func (tf *Filter) Clear(ctx context.Context) {
	tf.mu.Lock()
	tf.tag = ""
	tf.mu.Unlock()

	tf.fetcher.Refresh(ctx, Query{})
}

// Refetch re-issues the current query, e.g. after a successful upload.
func (tf *Filter) Refetch(ctx context.Context) {
	tag, _ := tf.Active()
	tf.fetcher.Refresh(ctx, Query{Tag: tag})
}

func (tf *Filter) Active() (string, bool) {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	return tf.tag, tf.tag != ""
}
