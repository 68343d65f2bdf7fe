package navigation

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

// Navigator performs an imperative "replace current route".
type Navigator interface {
	Replace(route string)
}

// Router is the in-process Navigator. Listeners observe every change and
// are how the REPL learns about redirects issued from timer goroutines.
type Router struct {
	mu        sync.Mutex
	current   string
	listeners []func(from, to string)
	logger    logging.Logger
}

func NewRouter(start string, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{current: start, logger: logger}
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) Replace(route string) {
	r.mu.Lock()
	from := r.current
	r.current = route
	listeners := append([]func(from, to string){}, r.listeners...)
	r.mu.Unlock()

	r.logger.Debug(context.Background(), "route replaced", "from", from, "to", route)
	for _, l := range listeners {
		l(from, route)
	}
}

// OnChange registers a listener. Listeners run on the goroutine that called
// Replace.
func (r *Router) OnChange(fn func(from, to string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}
