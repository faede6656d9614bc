package repository

import (
	"context"

	"github.com/safety-navigator/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeBatch читает до count новых сообщений группы
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessages подтверждает обработку сообщений
	AckMessages(ctx context.Context, stream, group string, messageIDs ...string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
