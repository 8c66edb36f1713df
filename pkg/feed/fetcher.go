package feed

import (
	"context"
	"sync"

	"imagefeed/pkg/client"
	"imagefeed/pkg/images"

	"go.uber.org/zap"
)

// Query selects what the feed shows. An empty Tag means all images.
type Query struct {
	Tag string
}

type Lister interface {
	List(ctx context.Context, tag string) ([]images.Image, error)
}

// State is a snapshot of the feed for rendering. Err holds a human-readable
// message; Fetched reports whether any fetch has succeeded yet, so the view
// can tell "empty feed" apart from "nothing loaded".
type State struct {
	Loading bool
	Err     string
	Query   Query
	Images  []images.Image
	Fetched bool

	// Gen increments every time a response is applied; consumers use it to
	// notice that the collection was replaced.
	Gen uint64
}

// Fetcher owns the displayed image collection. Every Refresh gets a sequence
// number; when a response settles, it is applied only if its request is still
// the most recent one. Filter churn therefore always converges on the last
// selected query, whatever order the responses arrive in.
type Fetcher struct {
	mu      sync.Mutex
	api     Lister
	logger  *zap.SugaredLogger
	seq     uint64
	state   State
	updates chan struct{}
}

func NewFetcher(api Lister, logger *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		api:     api,
		logger:  logger,
		updates: make(chan struct{}, 1),
	}
}

// Refresh issues a fetch for the query and returns immediately. The result is
// applied asynchronously; observers learn about it through Updates.
func (f *Fetcher) Refresh(ctx context.Context, q Query) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.state.Loading = true
	f.state.Query = q
	f.mu.Unlock()
	f.notify()

	go func() {
		list, err := f.api.List(ctx, q.Tag)
		f.apply(seq, q, list, err)
	}()
}

func (f *Fetcher) apply(seq uint64, q Query, list []images.Image, err error) {
	f.mu.Lock()
	if seq != f.seq {
		f.mu.Unlock()
		f.logger.Debugf("discarding stale feed response for tag %q", q.Tag)
		return
	}

	f.state.Loading = false
	if err != nil {
		// keep the previously loaded collection on transient failure
		f.state.Err = client.UserMessage(err)
	} else {
		f.state.Err = ""
		f.state.Images = list
		f.state.Fetched = true
		f.state.Gen++
	}
	f.mu.Unlock()
	f.notify()
}

// Snapshot returns a copy of the current state; the Images slice is detached
// from the fetcher's own.
func (f *Fetcher) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.state
	st.Images = append([]images.Image(nil), f.state.Images...)
	return st
}

// Updates signals after every state change. Notifications coalesce; consumers
// should re-read Snapshot rather than count signals.
func (f *Fetcher) Updates() <-chan struct{} {
	return f.updates
}

func (f *Fetcher) notify() {
	select {
	case f.updates <- struct{}{}:
	default:
	}
}
