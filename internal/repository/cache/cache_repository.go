package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetFeatures получает объекты карты из кеша
func (r *cacheRepository) GetFeatures(ctx context.Context, key string) ([]domain.MapFeature, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var features []domain.MapFeature
	if err := json.Unmarshal(data, &features); err != nil {
		r.logger.Error("Failed to unmarshal features from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal features: %w", err)
	}
	if features == nil {
		features = []domain.MapFeature{}
	}

	return features, nil
}

// SetFeatures сохраняет объекты карты в кеше
func (r *cacheRepository) SetFeatures(ctx context.Context, key string, features []domain.MapFeature, ttl time.Duration) error {
	data, err := json.Marshal(features)
	if err != nil {
		r.logger.Error("Failed to marshal features", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal features: %w", err)
	}

	return r.Set(ctx, key, data, ttl)
}
