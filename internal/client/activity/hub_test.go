package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_NotifyAndUnsubscribe(t *testing.T) {
	h := NewHub()
	var a, b int

	unsubA := h.Subscribe(func() { a++ })
	unsubB := h.Subscribe(func() { b++ })
	assert.Equal(t, 2, h.Len())

	h.Notify()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	unsubA()
	unsubA()
	h.Notify()
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, h.Len())

	unsubB()
	assert.Equal(t, 0, h.Len())
}

func TestHub_UnsubscribeInsideCallback(t *testing.T) {
	h := NewHub()
	calls := 0
	var unsub func()
	unsub = h.Subscribe(func() {
		calls++
		unsub()
	})

	h.Notify()
	h.Notify()
	assert.Equal(t, 1, calls)
}
