package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentSearches caps the number of centroid searches running at
	// once across every engine sharing the controller.
	// If 0, no limit is enforced (only tracking).
	MaxConcurrentSearches int64

	// IOLimitBytesPerSec is the maximum throughput for point and result files.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages process-wide resources (search slots, IO bandwidth).
//
// A nil *Controller is valid and imposes no limits.
type Controller struct {
	cfg Config

	searchSem *semaphore.Weighted // nil if unlimited
	inFlight  atomic.Int64
	completed atomic.Int64

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentSearches > 0 {
		c.searchSem = semaphore.NewWeighted(cfg.MaxConcurrentSearches)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the limits the controller was created with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireSearch reserves a search slot.
// Blocks until a slot is free or ctx is canceled.
func (c *Controller) AcquireSearch(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}

	if c.searchSem != nil {
		if err := c.searchSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	c.inFlight.Add(1)
	return nil
}

// TryAcquireSearch reserves a search slot without blocking.
func (c *Controller) TryAcquireSearch() bool {
	if c == nil {
		return true
	}

	if c.searchSem != nil && !c.searchSem.TryAcquire(1) {
		return false
	}

	c.inFlight.Add(1)
	return true
}

// ReleaseSearch releases a search slot.
func (c *Controller) ReleaseSearch() {
	if c == nil {
		return
	}

	if c.searchSem != nil {
		c.searchSem.Release(1)
	}
	c.inFlight.Add(-1)
	c.completed.Add(1)
}

// InFlight returns the number of searches currently holding a slot.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// Completed returns the number of released search slots.
func (c *Controller) Completed() int64 {
	if c == nil {
		return 0
	}
	return c.completed.Load()
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil || bytes <= 0 {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}

// ioChunk returns the largest request AcquireIO can satisfy in one call.
func (c *Controller) ioChunk(n int) int {
	if c == nil || c.ioLimiter == nil {
		return n
	}
	if b := c.ioLimiter.Burst(); n > b {
		return b
	}
	return n
}
