package pairing

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gzapadmin/internal/client/timerstore"
)

type memStore struct {
	mu  sync.Mutex
	ms  int64
	ok  bool
	err error
}

func (m *memStore) EndTime(ctx context.Context) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ms, m.ok, nil
}

func (m *memStore) SetEndTime(ctx context.Context, ms int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.ms, m.ok = ms, true
	return nil
}

type fakeQR struct {
	code  string
	err   error
	block chan struct{}
	calls int
}

func (f *fakeQR) GenerateQRCode(ctx context.Context) (*models.QRCode, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.QRCode{QRCode: f.code}, nil
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var t0 = time.UnixMilli(1_700_000_000_000)

func TestRemainingSeconds(t *testing.T) {
	tests := []struct {
		name   string
		expiry int64
		now    int64
		want   int
	}{
		{"full", 180_000, 0, 180},
		{"rounds up", 180_000, 1, 180},
		{"last ms", 180_000, 179_999, 1},
		{"exact", 180_000, 180_000, 0},
		{"elapsed", 180_000, 181_000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemainingSeconds(tt.expiry, tt.now))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "03:00", Display(180))
	assert.Equal(t, "02:59", Display(179))
	assert.Equal(t, "00:05", Display(5))
	assert.Equal(t, "00:00", Display(0))
	assert.Equal(t, "00:00", Display(-3))
}

func TestGenerate_PersistsExpiryAndBlocksRegeneration(t *testing.T) {
	clk := &clock{t: t0}
	store := &memStore{}
	qr := &fakeQR{code: "data:image/png;base64,AAA"}
	c, err := New(context.Background(), store, qr, WithClock(clk.Now))
	require.NoError(t, err)
	assert.True(t, c.CanGenerate())

	got, err := c.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAA", got.QRCode)

	assert.Equal(t, t0.UnixMilli()+180_000, store.ms)
	assert.Equal(t, 180, c.Remaining(clk.Now()))
	assert.False(t, c.CanGenerate())

	_, err = c.Generate(context.Background())
	assert.ErrorIs(t, err, ErrCoolingDown)
	assert.Equal(t, 1, qr.calls)

	clk.Advance(180 * time.Second)
	assert.True(t, c.CanGenerate())
}

func TestGenerate_FailureStillStartsCooldown(t *testing.T) {
	clk := &clock{t: t0}
	store := &memStore{}
	boom := errors.New("boom")
	c, err := New(context.Background(), store, &fakeQR{err: boom}, WithClock(clk.Now))
	require.NoError(t, err)

	_, err = c.Generate(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, store.ok)
	assert.False(t, c.CanGenerate())
}

func TestGenerate_PersistFailureKeepsInMemoryCooldown(t *testing.T) {
	clk := &clock{t: t0}
	store := &memStore{err: errors.New("disk full")}
	c, err := New(context.Background(), store, &fakeQR{code: "x"}, WithClock(clk.Now))
	require.NoError(t, err)

	_, err = c.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 180, c.Remaining(clk.Now()))
}

func TestGenerate_InFlight(t *testing.T) {
	clk := &clock{t: t0}
	qr := &fakeQR{code: "x", block: make(chan struct{})}
	c, err := New(context.Background(), &memStore{}, qr, WithClock(clk.Now), WithCooldown(time.Millisecond))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Generate(context.Background())
	}()

	require.Eventually(t, c.InFlight, time.Second, time.Millisecond)
	clk.Advance(time.Second)
	assert.False(t, c.CanGenerate(), "in-flight request disables generation")

	_, err = c.Generate(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)

	close(qr.block)
	<-done
	assert.True(t, c.CanGenerate())
}

func TestNew_RestoresCooldownAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer db.Close()

	store := timerstore.New(metadata.NewSQLiteRepository(db))

	clk := &clock{t: t0}
	first, err := New(ctx, store, &fakeQR{code: "x"}, WithClock(clk.Now))
	require.NoError(t, err)
	_, err = first.Generate(ctx)
	require.NoError(t, err)

	// restart 60s later
	clk.Advance(60 * time.Second)
	second, err := New(ctx, store, &fakeQR{code: "y"}, WithClock(clk.Now))
	require.NoError(t, err)
	assert.Equal(t, 120, second.Remaining(clk.Now()))
	assert.False(t, second.CanGenerate())

	// restart after the expiry elapsed: the stale value stays but allows generation
	clk.Advance(121 * time.Second)
	third, err := New(ctx, store, &fakeQR{code: "z"}, WithClock(clk.Now))
	require.NoError(t, err)
	assert.Equal(t, 0, third.Remaining(clk.Now()))
	assert.True(t, third.CanGenerate())

	ms, ok, err := store.EndTime(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, t0.UnixMilli()+180_000, ms)
}

func TestWatch_CountsDownToZero(t *testing.T) {
	clk := &clock{t: t0}
	store := &memStore{ms: t0.UnixMilli() + 3000, ok: true}
	c, err := New(context.Background(), store, &fakeQR{}, WithClock(clk.Now), WithTick(time.Millisecond))
	require.NoError(t, err)

	var seen []int
	c.Watch(context.Background(), func(left int) {
		seen = append(seen, left)
		clk.Advance(time.Second)
	})

	assert.Equal(t, []int{3, 2, 1, 0}, seen)
	assert.True(t, store.ok, "expiry is never cleared")
}

func TestWatch_NothingToWatch(t *testing.T) {
	c, err := New(context.Background(), &memStore{}, &fakeQR{})
	require.NoError(t, err)

	calls := 0
	c.Watch(context.Background(), func(left int) {
		calls++
		assert.Equal(t, 0, left)
	})
	assert.Equal(t, 1, calls)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	clk := &clock{t: t0}
	store := &memStore{ms: t0.UnixMilli() + 60_000, ok: true}
	c, err := New(context.Background(), store, &fakeQR{}, WithClock(clk.Now), WithTick(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	c.Watch(ctx, func(int) {
		calls++
		cancel()
	})
	assert.Equal(t, 1, calls)
}
