package vote

import (
	"context"
	"sync"
	"time"

	"imagefeed/pkg/images"

	"go.uber.org/zap"
)

// Board owns the controllers for the images currently on screen. Sync rebuilds
// the whole set on every feed application, so vote and lock state never
// survive a list refresh, even for images present in both lists.
type Board struct {
	mu       sync.Mutex
	api      Voter
	logger   *zap.SugaredLogger
	cooldown time.Duration

	controllers map[int64]*Controller
	updates     chan int64
}

func NewBoard(api Voter, logger *zap.SugaredLogger, cooldown time.Duration) *Board {
	return &Board{
		api:         api,
		logger:      logger,
		cooldown:    cooldown,
		controllers: map[int64]*Controller{},
		updates:     make(chan int64, 16),
	}
}

func (b *Board) Sync(list []images.Image) {
	fresh := make(map[int64]*Controller, len(list))
	for _, img := range list {
		id := img.ID
		fresh[id] = NewController(b.api, b.logger, id, img.VoteCount, b.cooldown, func() { b.notify(id) })
	}

	b.mu.Lock()
	b.controllers = fresh
	b.mu.Unlock()
}

// Submit votes on one image, running the network round trip on its own
// goroutine. Votes on different images are independent; votes on the same
// image are serialized by the controller lock.
func (b *Board) Submit(ctx context.Context, imageID int64, dir Direction) bool {
	c, ok := b.controller(imageID)
	if !ok {
		return false
	}

	go c.Submit(ctx, dir)
	return true
}

func (b *Board) Status(imageID int64) (Status, bool) {
	c, ok := b.controller(imageID)
	if !ok {
		return Status{}, false
	}

	return c.Status(), true
}

// Updates carries the id of the image whose controller settled or unlocked,
// so the consumer can redraw just that card. Signals are dropped when the
// buffer is full, same best-effort contract as the feed fetcher's channel.
func (b *Board) Updates() <-chan int64 {
	return b.updates
}

func (b *Board) controller(imageID int64) (*Controller, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.controllers[imageID]
	return c, ok
}

func (b *Board) notify(imageID int64) {
	select {
	case b.updates <- imageID:
	default:
	}
}
