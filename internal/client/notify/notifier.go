// Package notify surfaces transient, toast-like messages to the operator.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

const DefaultDuration = 3 * time.Second

type Notification struct {
	Title       string
	Description string
	Duration    time.Duration
}

// Notifier is fire-and-forget; callers never consume a result.
type Notifier interface {
	Notify(n Notification)
}

// Terminal prints notifications as single lines on w. A terminal has no
// auto-dismiss, so Duration is only logged.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	logger logging.Logger
}

func NewTerminal(w io.Writer, logger logging.Logger) *Terminal {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Terminal{w: w, logger: logger}
}

func (t *Terminal) Notify(n Notification) {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n.Description != "" {
		fmt.Fprintf(t.w, "[!] %s %s\n", n.Title, n.Description)
	} else {
		fmt.Fprintf(t.w, "[!] %s\n", n.Title)
	}
	t.logger.Debug(context.Background(), "notification", "title", n.Title, "duration", n.Duration)
}

// Recorder keeps notifications in memory. Useful wherever output must be
// inspected instead of shown.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
