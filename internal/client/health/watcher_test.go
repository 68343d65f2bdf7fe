package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_CheckSwitchesMode(t *testing.T) {
	var fail atomic.Bool
	checker := CheckFunc(func(ctx context.Context) error {
		if fail.Load() {
			return errors.New("down")
		}
		return nil
	})

	var mu sync.Mutex
	var changes []Mode
	w := NewWatcher(checker, time.Hour, nil)
	w.OnChange(func(m Mode) {
		mu.Lock()
		changes = append(changes, m)
		mu.Unlock()
	})

	assert.Equal(t, ModeUnknown, w.Mode())
	assert.Equal(t, ModeOnline, w.Check(context.Background()))
	assert.Equal(t, ModeOnline, w.Check(context.Background()))

	fail.Store(true)
	assert.Equal(t, ModeOffline, w.Check(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Mode{ModeOnline, ModeOffline}, changes, "callbacks fire only on change")
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	checker := CheckFunc(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	w := NewWatcher(checker, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, ModeOnline, w.Mode())
}

func TestWatcher_CheckGetsDeadline(t *testing.T) {
	checker := CheckFunc(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		if !ok {
			return errors.New("no deadline")
		}
		return nil
	})
	w := NewWatcher(checker, time.Hour, nil)
	assert.Equal(t, ModeOnline, w.Check(context.Background()))
}
