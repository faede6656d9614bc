package repository

import (
	"context"
	"time"

	"github.com/safety-navigator/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetFeatures получает объекты карты по ключу запроса, nil при промахе
	GetFeatures(ctx context.Context, key string) ([]domain.MapFeature, error)

	// SetFeatures сохраняет объекты карты
	SetFeatures(ctx context.Context, key string, features []domain.MapFeature, ttl time.Duration) error
}
