package navigation

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/worker"
)

// IdleSweeper - останавливает навигации без обновлений дольше maxIdle
type IdleSweeper interface {
	SweepIdle(maxIdle time.Duration) int
}

// SessionSweeper по расписанию cron завершает зависшие навигации
type SessionSweeper struct {
	*worker.BaseWorker
	tracker  IdleSweeper
	schedule string
	maxIdle  time.Duration
}

// NewSessionSweeper создает новый SessionSweeper. schedule - стандартный cron из пяти полей.
func NewSessionSweeper(tracker IdleSweeper, schedule string, maxIdle time.Duration, logger *zap.Logger) (*SessionSweeper, error) {
	if maxIdle <= 0 {
		return nil, fmt.Errorf("session idle timeout must be positive, got %v", maxIdle)
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return &SessionSweeper{
		BaseWorker: worker.NewBaseWorker("navigation-sweeper", logger),
		tracker:    tracker,
		schedule:   schedule,
		maxIdle:    maxIdle,
	}, nil
}

// Start запускает cron и блокирует до остановки
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.Logger().Info("Starting session sweeper",
		zap.String("schedule", s.schedule),
		zap.Duration("max_idle", s.maxIdle))
	c.Start()

	var err error
	select {
	case <-s.StopChan():
	case <-ctx.Done():
		err = ctx.Err()
	}

	// ждем текущий прогон
	<-c.Stop().Done()
	return err
}

// Sweep - один прогон очистки
func (s *SessionSweeper) Sweep() {
	stopped := s.tracker.SweepIdle(s.maxIdle)
	if stopped > 0 {
		s.Logger().Info("Idle navigations stopped",
			zap.Int("count", stopped),
			zap.Duration("max_idle", s.maxIdle))
		return
	}
	s.Logger().Debug("No idle navigations")
}
