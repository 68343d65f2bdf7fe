package gate

import "sync"

// DefaultIdleSeconds is the idle budget granted on every activation.
const DefaultIdleSeconds = 1800

// IdleCountdown counts seconds left before a forced logout. It never goes
// above its ceiling and never below zero. It lives in memory only, so a
// restart grants a fresh budget.
type IdleCountdown struct {
	mu        sync.Mutex
	ceiling   int
	remaining int
}

func NewIdleCountdown(ceiling int) *IdleCountdown {
	if ceiling <= 0 {
		ceiling = DefaultIdleSeconds
	}
	return &IdleCountdown{ceiling: ceiling, remaining: ceiling}
}

// Tick removes one second and returns what is left.
func (c *IdleCountdown) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}

// Reset restores the full budget. Called on every activity signal.
func (c *IdleCountdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = c.ceiling
}

func (c *IdleCountdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *IdleCountdown) Ceiling() int {
	return c.ceiling
}

func (c *IdleCountdown) Expired() bool {
	return c.Remaining() < 1
}
