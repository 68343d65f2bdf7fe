// Package health tracks whether the relay is reachable.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const DefaultCheckTimeout = 3 * time.Second

// Checker checks the relay once.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a function, typically client.Client.Ping, to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// Watcher checks on an interval and keeps the last known Mode.
type Watcher struct {
	checker  Checker
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger

	mu       sync.RWMutex
	mode     Mode
	onChange func(Mode)
}

func NewWatcher(checker Checker, interval time.Duration, logger logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{checker: checker, interval: interval, timeout: DefaultCheckTimeout, logger: logger}
}

// OnChange registers a callback invoked on every mode switch.
func (w *Watcher) OnChange(fn func(Mode)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

func (w *Watcher) Mode() Mode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mode
}

func (w *Watcher) setMode(ctx context.Context, mode Mode) {
	w.mu.Lock()
	if w.mode == mode {
		w.mu.Unlock()
		return
	}
	w.mode = mode
	fn := w.onChange
	w.mu.Unlock()

	w.logger.Info(ctx, "relay status changed", "mode", mode)
	if fn != nil {
		fn(mode)
	}
}

// Check checks once and updates the mode.
func (w *Watcher) Check(ctx context.Context) Mode {
	pctx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.checker.Check(pctx)
	cancel()

	if err != nil {
		w.logger.Debug(ctx, "relay check failed", "error", err)
		w.setMode(ctx, ModeOffline)
	} else {
		w.setMode(ctx, ModeOnline)
	}
	return w.Mode()
}

// Run checks immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
