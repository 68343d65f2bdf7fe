// Package activity fans operator input events out to whoever tracks idleness.
package activity

import "sync"

// Source delivers activity signals. Subscribe returns a function that removes
// the subscription; calling it more than once is harmless.
type Source interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Hub is a Source fed by Notify. The REPL notifies it on every line read, a
// pointer or key event in a richer front end would do the same.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func())}
}

func (h *Hub) Subscribe(fn func()) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Notify calls every current subscriber. Subscribers run outside the lock so
// they may unsubscribe from within the callback.
func (h *Hub) Notify() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
