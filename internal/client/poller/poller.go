// Package poller re-fetches a resource on a fixed interval until the
// latest observed value is terminal.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/notify"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

// ErrClosed is returned by Refresh after Close.
var ErrClosed = errors.New("poller closed")

// FetchFunc loads the polled resource.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type Config[T any] struct {
	Interval time.Duration
	// Terminal reports values for which polling stops. A nil Terminal never
	// stops polling.
	Terminal func(T) bool
	// ErrorTitle is the toast title used for fetch failures.
	ErrorTitle string
}

// Controller owns at most one live timer. Observe starts or stops it
// depending on the data; every tick fetches and observes the result.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	cfg      Config[T]
	notifier notify.Notifier
	logger   logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	latest   T
	observed bool
	timer    *time.Timer
	gen      uint64
	inFlight bool
	skipped  int
	fetches  int
	closed   bool
}

func New[T any](ctx context.Context, fetch FetchFunc[T], cfg Config[T], notifier notify.Notifier, logger logging.Logger) *Controller[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Controller[T]{
		fetch:    fetch,
		cfg:      cfg,
		notifier: notifier,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Observe records data and starts or stops the timer accordingly.
func (c *Controller[T]) Observe(data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observeLocked(data)
}

func (c *Controller[T]) observeLocked(data T) {
	if c.closed {
		return
	}
	c.latest = data
	c.observed = true

	if c.cfg.Terminal != nil && c.cfg.Terminal(data) {
		c.stopLocked()
		return
	}
	if c.timer == nil {
		c.scheduleLocked()
	}
}

func (c *Controller[T]) scheduleLocked() {
	c.gen++
	gen := c.gen
	c.wg.Add(1)
	c.timer = time.AfterFunc(c.cfg.Interval, func() { c.tick(gen) })
}

func (c *Controller[T]) stopLocked() {
	if c.timer == nil {
		return
	}
	if c.timer.Stop() {
		// the callback will never run
		c.wg.Done()
	}
	c.timer = nil
}

func (c *Controller[T]) tick(gen uint64) {
	defer c.wg.Done()

	c.mu.Lock()
	// a stale timer that lost the race with Stop
	if c.closed || c.timer == nil || gen != c.gen {
		c.mu.Unlock()
		return
	}
	// keep a steady cadence regardless of fetch latency
	c.scheduleLocked()
	if c.inFlight {
		c.skipped++
		c.mu.Unlock()
		c.logger.Debug(c.ctx, "poll tick skipped, fetch in flight")
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	c.logger.Debug(c.ctx, "poll tick")
	_, _ = c.run(c.ctx)
}

// Refresh performs a one-shot fetch outside the timer and observes the
// result. A fetch already in flight makes Refresh return the latest value
// without fetching again.
func (c *Controller[T]) Refresh(ctx context.Context) (T, error) {
	c.mu.Lock()
	if c.closed {
		var zero T
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if c.inFlight {
		latest := c.latest
		c.skipped++
		c.mu.Unlock()
		return latest, nil
	}
	c.inFlight = true
	c.wg.Add(1)
	c.mu.Unlock()

	defer c.wg.Done()
	return c.run(ctx)
}

// run expects inFlight to be set by the caller.
func (c *Controller[T]) run(ctx context.Context) (T, error) {
	data, err := c.fetch(ctx)

	c.mu.Lock()
	c.inFlight = false
	c.fetches++
	if c.closed {
		c.mu.Unlock()
		return data, err
	}
	if err == nil {
		c.observeLocked(data)
	}
	c.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		c.logger.Warn(ctx, "poll fetch failed", "error", err)
		if c.notifier != nil {
			c.notifier.Notify(notify.Notification{
				Title:       c.cfg.ErrorTitle,
				Description: client.Message(err, err.Error()),
			})
		}
	}
	return data, err
}

// Active reports whether a timer is live.
func (c *Controller[T]) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Latest returns the last observed value.
func (c *Controller[T]) Latest() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.observed
}

// Skipped counts ticks dropped because a fetch was still outstanding.
func (c *Controller[T]) Skipped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipped
}

// Fetches counts completed fetches.
func (c *Controller[T]) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// Close stops the timer, cancels outstanding fetches and waits for them.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
