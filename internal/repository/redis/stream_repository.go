package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
)

const defaultBlockTimeout = time.Second

type streamRepository struct {
	client       *redis.Client
	blockTimeout time.Duration
	logger       *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// blockTimeout - сколько XREADGROUP ждет новых сообщений.
func NewStreamRepository(client *redis.Client, blockTimeout time.Duration, logger *zap.Logger) repository.StreamRepository {
	if blockTimeout <= 0 {
		blockTimeout = defaultBlockTimeout
	}
	return &streamRepository{
		client:       client,
		blockTimeout: blockTimeout,
		logger:       logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// Пытаемся создать consumer group, начиная с ID "$" (новые сообщения)
	// MKSTREAM автоматически создаст стрим, если он не существует
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		// Игнорируем ошибку BUSYGROUP - группа уже существует
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch читает до count новых сообщений группы.
// Пустой результат без ошибки - за blockTimeout ничего не пришло.
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	// Читаем только непрочитанные сообщения (">")
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    int64(count),
		Block:    r.blockTimeout,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.StreamMessage{}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	messages := make([]domain.StreamMessage, 0, count)
	for _, s := range result {
		for _, msg := range s.Messages {
			// JSON лежит в поле "data"
			data, ok := msg.Values["data"].(string)
			if !ok {
				r.logger.Warn("Message does not contain 'data' field",
					zap.String("message_id", msg.ID))
			}
			messages = append(messages, domain.StreamMessage{
				ID:   msg.ID,
				Data: data,
			})
		}
	}

	return messages, nil
}

// AckMessages подтверждает обработку сообщений
func (r *streamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs ...string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	err := r.client.XAck(ctx, stream, group, messageIDs...).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Strings("message_ids", messageIDs),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge messages: %w", err)
	}

	r.logger.Debug("Messages acknowledged",
		zap.String("stream", stream),
		zap.Int("count", len(messageIDs)))
	return nil
}

// PublishToStream публикует сообщение в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	// Сериализуем данные в JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Публикуем в стрим
	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()

	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", result))
	return nil
}
