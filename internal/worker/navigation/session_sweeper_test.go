package navigation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/usecase"
	"github.com/safety-navigator/internal/worker/navigation"
)

type recordingSweeper struct {
	mu    sync.Mutex
	calls []time.Duration
	n     int
}

func (r *recordingSweeper) SweepIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, maxIdle)
	return r.n
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewSessionSweeper_Validation(t *testing.T) {
	_, err := navigation.NewSessionSweeper(&recordingSweeper{}, "not a schedule", time.Hour, zap.NewNop())
	assert.Error(t, err)

	_, err = navigation.NewSessionSweeper(&recordingSweeper{}, "*/5 * * * *", 0, zap.NewNop())
	assert.Error(t, err)

	s, err := navigation.NewSessionSweeper(&recordingSweeper{}, "*/5 * * * *", time.Hour, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "navigation-sweeper", s.Name())
}

func TestSessionSweeper_Sweep(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracker := &recordingSweeper{n: 2}

	s, err := navigation.NewSessionSweeper(tracker, "@every 1m", 2*time.Hour, zap.New(core))
	require.NoError(t, err)

	s.Sweep()

	assert.Equal(t, []time.Duration{2 * time.Hour}, tracker.calls)
	entries := logs.FilterMessage("Idle navigations stopped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["count"])
}

func TestSessionSweeper_StopsIdleSessions(t *testing.T) {
	clock := &fixedClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	tracker := usecase.NewNavigationTracker(nil, clock, domain.NavigationThresholds{}, zap.NewNop())

	_, err := tracker.Start("idle", domain.Target{Name: "Pier", Coordinate: domain.Coordinate{Latitude: 1, Longitude: 1}},
		domain.Coordinate{Latitude: 1.01, Longitude: 1.01})
	require.NoError(t, err)

	s, err := navigation.NewSessionSweeper(tracker, "@every 1m", time.Hour, zap.NewNop())
	require.NoError(t, err)

	s.Sweep()
	_, ok := tracker.Get("idle")
	assert.True(t, ok)

	clock.Advance(61 * time.Minute)
	s.Sweep()
	_, ok = tracker.Get("idle")
	assert.False(t, ok)
}

func TestSessionSweeper_StartStop(t *testing.T) {
	s, err := navigation.NewSessionSweeper(&recordingSweeper{}, "@every 1h", time.Hour, zap.NewNop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionSweeper_StartContextCancel(t *testing.T) {
	s, err := navigation.NewSessionSweeper(&recordingSweeper{}, "@every 1h", time.Hour, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
