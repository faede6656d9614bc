package safety

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
	"github.com/safety-navigator/internal/worker"
)

const (
	errorBackoff   = time.Second
	publishBackoff = 200 * time.Millisecond
)

// Analyzer - оценка риска точки и маршрута
type Analyzer interface {
	AnalyzeLocation(ctx context.Context, lat, lng float64) (*domain.LocationRiskResult, error)
	AnalyzeRoute(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*domain.RouteRiskResult, error)
}

// Config - параметры чтения stream:safety:check
type Config struct {
	ConsumerGroup string
	ConsumerName  string
	BatchSize     int
	MaxRetries    int
}

// SafetyCheckWorker обрабатывает задачи проверки безопасности из Redis Stream
type SafetyCheckWorker struct {
	*worker.BaseWorker
	streams  repository.StreamRepository
	analyzer Analyzer
	cfg      Config
}

// NewSafetyCheckWorker создает новый SafetyCheckWorker
func NewSafetyCheckWorker(
	streams repository.StreamRepository,
	analyzer Analyzer,
	cfg Config,
	logger *zap.Logger,
) *SafetyCheckWorker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	return &SafetyCheckWorker{
		BaseWorker: worker.NewBaseWorker("safety-check", logger),
		streams:    streams,
		analyzer:   analyzer,
		cfg:        cfg,
	}
}

// Start создает consumer group и читает стрим до остановки
func (w *SafetyCheckWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting safety check worker",
		zap.String("consumer_group", w.cfg.ConsumerGroup),
		zap.String("consumer_name", w.cfg.ConsumerName),
		zap.Int("batch_size", w.cfg.BatchSize))

	if err := w.streams.CreateConsumerGroup(ctx, domain.StreamSafetyCheck, w.cfg.ConsumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		if _, err := w.ProcessBatch(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorBackoff)
		}
	}
}

// ProcessBatch читает одну пачку сообщений. Возвращает число прочитанных сообщений.
// Чтение блокируется на время ожидания стрима, пустая пачка не ошибка.
func (w *SafetyCheckWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streams.ConsumeBatch(ctx, domain.StreamSafetyCheck,
		w.cfg.ConsumerGroup, w.cfg.ConsumerName, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	acked := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем, чтобы не висело в pending
			logger.Warn("Skipping malformed safety check",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			acked = append(acked, msg.ID)
			continue
		}

		done := w.handle(ctx, event)
		if err := w.publish(ctx, done); err != nil {
			logger.Error("Failed to publish safety result",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
		}
		acked = append(acked, msg.ID)
	}

	if err := w.streams.AckMessages(ctx, domain.StreamSafetyCheck, w.cfg.ConsumerGroup, acked...); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed", zap.Int("messages", len(messages)))
	return len(messages), nil
}

func (w *SafetyCheckWorker) handle(ctx context.Context, event *domain.SafetyCheckEvent) *domain.SafetyDoneEvent {
	done := &domain.SafetyDoneEvent{
		JobID: event.JobID,
		Kind:  event.Kind,
	}

	switch event.Kind {
	case domain.SafetyCheckLocation:
		result, err := w.analyzer.AnalyzeLocation(ctx, event.From.Latitude, event.From.Longitude)
		if err != nil {
			done.Error = err.Error()
			return done
		}
		done.Location = result
	case domain.SafetyCheckRoute:
		result, err := w.analyzer.AnalyzeRoute(ctx,
			event.From.Latitude, event.From.Longitude,
			event.To.Latitude, event.To.Longitude)
		if err != nil {
			done.Error = err.Error()
			return done
		}
		done.Route = result
	}

	return done
}

func (w *SafetyCheckWorker) publish(ctx context.Context, done *domain.SafetyDoneEvent) error {
	var err error
	for attempt := 1; attempt <= w.cfg.MaxRetries; attempt++ {
		if err = w.streams.PublishToStream(ctx, domain.StreamSafetyDone, done); err == nil {
			return nil
		}
		if attempt < w.cfg.MaxRetries && !w.Pause(ctx, publishBackoff) {
			break
		}
	}
	return err
}

// parseMessage разбирает JSON задачи и проверяет координаты
func parseMessage(msg domain.StreamMessage) (*domain.SafetyCheckEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.SafetyCheckEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	return &event, nil
}
