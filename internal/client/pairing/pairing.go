// Package pairing runs the QR-code generation cooldown.
//
// Generating a pairing code starts a cooldown whose expiry is persisted, so
// restarting the console does not let the operator generate again early.
package pairing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

const (
	DefaultCooldown = 180 * time.Second
	DefaultTick     = time.Second
)

var (
	ErrCoolingDown = errors.New("pairing code cooldown still running")
	ErrInFlight    = errors.New("pairing code request already in flight")
)

// ExpiryStore persists the cooldown expiry in epoch milliseconds.
type ExpiryStore interface {
	EndTime(ctx context.Context) (int64, bool, error)
	SetEndTime(ctx context.Context, ms int64) error
}

// QRFetcher issues GET /whatsapp/generate-qr.
type QRFetcher interface {
	GenerateQRCode(ctx context.Context) (*models.QRCode, error)
}

type Option func(*Controller)

func WithCooldown(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.cooldown = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithTick(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

type Controller struct {
	store    ExpiryStore
	fetcher  QRFetcher
	cooldown time.Duration
	tick     time.Duration
	now      func() time.Time
	logger   logging.Logger

	mu        sync.Mutex
	expiry    int64
	hasExpiry bool
	inFlight  bool
}

// New loads any persisted expiry from store.
func New(ctx context.Context, store ExpiryStore, fetcher QRFetcher, opts ...Option) (*Controller, error) {
	c := &Controller{
		store:    store,
		fetcher:  fetcher,
		cooldown: DefaultCooldown,
		tick:     DefaultTick,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}

	ms, ok, err := store.EndTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pairing expiry: %w", err)
	}
	c.expiry, c.hasExpiry = ms, ok
	return c, nil
}

// Generate starts a new cooldown and fetches a fresh pairing code. The
// expiry is persisted before the request completes, whatever its outcome.
func (c *Controller) Generate(ctx context.Context) (*models.QRCode, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	now := c.now()
	if c.remainingLocked(now) > 0 {
		c.mu.Unlock()
		return nil, ErrCoolingDown
	}
	c.inFlight = true
	c.expiry = now.UnixMilli() + c.cooldown.Milliseconds()
	c.hasExpiry = true
	expiry := c.expiry
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if err := c.store.SetEndTime(ctx, expiry); err != nil {
		// the in-memory cooldown still applies for this process
		c.logger.Warn(ctx, "failed to persist pairing expiry", "error", err)
	}

	qr, err := c.fetcher.GenerateQRCode(ctx)
	if err != nil {
		return nil, err
	}
	return qr, nil
}

// Remaining returns whole seconds left at now, rounded up, never negative.
func (c *Controller) Remaining(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked(now)
}

func (c *Controller) remainingLocked(now time.Time) int {
	if !c.hasExpiry {
		return 0
	}
	return RemainingSeconds(c.expiry, now.UnixMilli())
}

// RemainingSeconds is max(ceil((expiry-now)/1000), 0) over epoch millis.
func RemainingSeconds(expiryMs, nowMs int64) int {
	diff := expiryMs - nowMs
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(float64(diff) / 1000))
}

// CanGenerate is false while a cooldown runs or a request is outstanding.
func (c *Controller) CanGenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.inFlight && c.remainingLocked(c.now()) == 0
}

func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Expiry returns the current expiry in epoch milliseconds.
func (c *Controller) Expiry() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiry, c.hasExpiry
}

// Display formats seconds as MM:SS.
func Display(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Watch calls fn with the remaining seconds right away and then on every
// tick, until the cooldown reaches zero or ctx is done. The stored expiry is
// left untouched.
func (c *Controller) Watch(ctx context.Context, fn func(remaining int)) {
	left := c.Remaining(c.now())
	fn(left)
	if left == 0 {
		return
	}

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			left = c.Remaining(c.now())
			fn(left)
			if left == 0 {
				return
			}
		}
	}
}
