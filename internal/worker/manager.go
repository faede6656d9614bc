package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает воркеры и останавливает их с таймаутом
type WorkerManager struct {
	workers         []Worker
	logger          *zap.Logger
	shutdownTimeout time.Duration
	wg              sync.WaitGroup
	mu              sync.Mutex
}

// NewWorkerManager создает новый WorkerManager. shutdownTimeout <= 0 - 30 секунд.
func NewWorkerManager(logger *zap.Logger, shutdownTimeout time.Duration) *WorkerManager {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Register регистрирует воркер
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Start запускает все зарегистрированные воркеры и не блокирует
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()

			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
		}(w)
	}

	return nil
}

// Stop останавливает все воркеры и ждет их завершения не дольше shutdownTimeout
func (m *WorkerManager) Stop() error {
	workers := m.snapshot()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All workers stopped gracefully")
		return nil
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()

	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	return workers
}
