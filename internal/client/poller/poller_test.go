package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/notify"
)

func absent(c *models.Connection) bool { return c == nil }

type scripted struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) (*models.Connection, error)
}

func (s *scripted) fetch(ctx context.Context) (*models.Connection, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	return s.fn(n)
}

func (s *scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestObserve_TerminalStopsAndPresentStarts(t *testing.T) {
	s := &scripted{fn: func(int) (*models.Connection, error) { return nil, nil }}
	c := New(context.Background(), s.fetch, Config[*models.Connection]{Interval: time.Hour, Terminal: absent}, nil, nil)
	defer c.Close()

	assert.False(t, c.Active())

	c.Observe(nil)
	assert.False(t, c.Active())

	c.Observe(&models.Connection{ID: "1"})
	assert.True(t, c.Active())

	// a second non-terminal observation keeps the same single timer
	c.Observe(&models.Connection{ID: "1"})
	assert.True(t, c.Active())

	c.Observe(nil)
	assert.False(t, c.Active())

	latest, ok := c.Latest()
	assert.True(t, ok)
	assert.Nil(t, latest)
}

func TestTick_RefetchesUntilTerminal(t *testing.T) {
	s := &scripted{fn: func(n int) (*models.Connection, error) {
		if n < 3 {
			return &models.Connection{ID: "c"}, nil
		}
		return nil, nil
	}}
	c := New(context.Background(), s.fetch, Config[*models.Connection]{Interval: 2 * time.Millisecond, Terminal: absent}, nil, nil)
	defer c.Close()

	c.Observe(&models.Connection{ID: "c"})

	require.Eventually(t, func() bool { return !c.Active() }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, s.Calls())
	assert.Equal(t, 3, c.Fetches())
}

func TestTick_ErrorNotifiesAndKeepsPolling(t *testing.T) {
	rec := &notify.Recorder{}
	s := &scripted{fn: func(n int) (*models.Connection, error) {
		if n == 1 {
			return nil, &client.APIError{StatusCode: 500, Code: "any", Message: "relay down"}
		}
		return nil, nil
	}}
	c := New(context.Background(), s.fetch, Config[*models.Connection]{
		Interval:   2 * time.Millisecond,
		Terminal:   absent,
		ErrorTitle: "Falha ao carregar conexão",
	}, rec, nil)
	defer c.Close()

	c.Observe(&models.Connection{ID: "c"})

	require.Eventually(t, func() bool { return s.Calls() >= 2 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return !c.Active() }, time.Second, time.Millisecond)

	all := rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Falha ao carregar conexão", all[0].Title)
	assert.Equal(t, "relay down", all[0].Description)
}

func TestTick_SkipsWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	var started atomic.Int32
	fetch := func(ctx context.Context) (*models.Connection, error) {
		started.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return &models.Connection{ID: "c"}, nil
	}
	c := New(context.Background(), fetch, Config[*models.Connection]{Interval: time.Millisecond, Terminal: absent}, nil, nil)

	c.Observe(&models.Connection{ID: "c"})

	require.Eventually(t, func() bool { return c.Skipped() >= 3 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), started.Load(), "overlapping ticks must not fetch")

	close(release)
	c.Close()
}

func TestRefresh_ObservesResult(t *testing.T) {
	s := &scripted{fn: func(int) (*models.Connection, error) { return &models.Connection{ID: "x"}, nil }}
	c := New(context.Background(), s.fetch, Config[*models.Connection]{Interval: time.Hour, Terminal: absent}, nil, nil)
	defer c.Close()

	got, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", got.ID)
	assert.True(t, c.Active())

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, "x", latest.ID)
}

func TestRefresh_ErrorLeavesStateAlone(t *testing.T) {
	boom := errors.New("boom")
	rec := &notify.Recorder{}
	s := &scripted{fn: func(int) (*models.Connection, error) { return nil, boom }}
	c := New(context.Background(), s.fetch, Config[*models.Connection]{Interval: time.Hour, Terminal: absent}, rec, nil)
	defer c.Close()

	_, err := c.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	_, ok := c.Latest()
	assert.False(t, ok)
	assert.Equal(t, 1, rec.Len())
}

func TestClose_NothingFiresAfterwards(t *testing.T) {
	s := &scripted{fn: func(int) (*models.Connection, error) { return &models.Connection{ID: "c"}, nil }}
	c := New(context.Background(), s.fetch, Config[*models.Connection]{Interval: time.Millisecond, Terminal: absent}, nil, nil)

	c.Observe(&models.Connection{ID: "c"})
	require.Eventually(t, func() bool { return s.Calls() >= 1 }, time.Second, time.Millisecond)

	c.Close()
	calls := s.Calls()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, calls, s.Calls())
	assert.False(t, c.Active())

	c.Observe(&models.Connection{ID: "late"})
	assert.False(t, c.Active())

	_, err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	// idempotent
	c.Close()
}
