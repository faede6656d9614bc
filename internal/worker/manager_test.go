package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/worker"
)

// blockingWorker работает до Stop
type blockingWorker struct {
	*worker.BaseWorker
	started atomic.Bool
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{BaseWorker: worker.NewBaseWorker(name, zap.NewNop())}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stubbornWorker игнорирует Stop
type stubbornWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stubbornWorker) Start(context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	a, b := newBlockingWorker("a"), newBlockingWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return a.started.Load() && b.started.Load()
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	w := &stubbornWorker{BaseWorker: worker.NewBaseWorker("stubborn", zap.NewNop()), release: make(chan struct{})}
	defer close(w.release)

	m.Register(w)
	require.NoError(t, m.Start(context.Background()))

	assert.Error(t, m.Stop())
}

func TestBaseWorker_StopIdempotent(t *testing.T) {
	w := worker.NewBaseWorker("test", zap.NewNop())
	assert.False(t, w.IsStopped())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestBaseWorker_Pause(t *testing.T) {
	w := worker.NewBaseWorker("test", zap.NewNop())
	assert.True(t, w.Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Pause(ctx, time.Hour))

	require.NoError(t, w.Stop())
	assert.False(t, w.Pause(context.Background(), time.Hour))
}
