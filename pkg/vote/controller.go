package vote

import (
	"context"
	"sync"
	"time"

	"imagefeed/pkg/client"

	"go.uber.org/zap"
)

type Direction int8

const (
	Down Direction = iota - 1
	None
	Up
)

// Unit is the signed score delta of a direction.
func (d Direction) Unit() int {
	return int(d)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

type Voter interface {
	Vote(ctx context.Context, imageID int64, value int) (string, error)
	VoteCount(ctx context.Context, imageID int64) (int, error)
}

// Status is a snapshot of one image's vote state for rendering.
type Status struct {
	ImageID      int64
	Current      Direction
	Locked       bool
	DisplayCount int
	Message      string
}

// Controller is the per-image vote state machine. The lock is a client-side
// throttle against rapid duplicate submissions; the server stays the final
// arbiter of one-vote-per-user.
type Controller struct {
	mu     sync.Mutex
	api    Voter
	logger *zap.SugaredLogger
	notify func()

	imageID      int64
	cooldown     time.Duration
	current      Direction
	locked       bool
	displayCount int
	message      string
}

func NewController(api Voter, logger *zap.SugaredLogger, imageID int64, startCount int, cooldown time.Duration, notify func()) *Controller {
	if notify == nil {
		notify = func() {}
	}

	return &Controller{
		api:          api,
		logger:       logger,
		notify:       notify,
		imageID:      imageID,
		cooldown:     cooldown,
		current:      None,
		displayCount: startCount,
	}
}

// Submit casts a vote. While locked it is a no-op: no network call, no state
// change, returns false. Otherwise the direction and count delta are applied
// optimistically before the request goes out, and the lock is released
// unconditionally once the cooldown elapses, success or not.
func (c *Controller) Submit(ctx context.Context, dir Direction) bool {
	if dir == None {
		return false
	}

	c.mu.Lock()
	if c.locked {
		c.mu.Unlock()
		return false
	}
	c.locked = true
	c.current = dir
	c.displayCount += dir.Unit()
	c.mu.Unlock()
	c.notify()

	time.AfterFunc(c.cooldown, c.unlock)

	msg, err := c.api.Vote(ctx, c.imageID, dir.Unit())
	if err != nil {
		c.mu.Lock()
		c.message = client.UserMessage(err)
		c.mu.Unlock()
		c.notify()

		// the optimistic delta may now disagree with the server; overwrite
		// the displayed count from the authoritative endpoint instead of
		// guessing a rollback
		c.reconcile(ctx)
		return true
	}

	c.mu.Lock()
	c.message = msg
	c.mu.Unlock()
	c.notify()
	return true
}

func (c *Controller) reconcile(ctx context.Context) {
	count, err := c.api.VoteCount(ctx, c.imageID)
	if err != nil {
		c.logger.Errorf("vote count reconcile for image %d: %v", c.imageID, err)
		return
	}

	c.mu.Lock()
	c.displayCount = count
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) unlock() {
	c.mu.Lock()
	c.locked = false
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Status{
		ImageID:      c.imageID,
		Current:      c.current,
		Locked:       c.locked,
		DisplayCount: c.displayCount,
		Message:      c.message,
	}
}
