package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
)

// cachedFeatureProvider - кеширующая обертка над источником объектов карты.
// Ошибки кеша не влияют на результат, ошибки источника не кешируются.
type cachedFeatureProvider struct {
	next   repository.MapFeatureProvider
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFeatureProvider создает кеширующий MapFeatureProvider
func NewCachedFeatureProvider(next repository.MapFeatureProvider, cache repository.CacheRepository, ttl time.Duration, logger *zap.Logger) repository.MapFeatureProvider {
	return &cachedFeatureProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (p *cachedFeatureProvider) Query(ctx context.Context, center domain.Coordinate, radiusMeters float64, taxonomy []domain.TagRule) ([]domain.MapFeature, error) {
	key := FeatureKey(center, radiusMeters, taxonomy)

	cached, err := p.cache.GetFeatures(ctx, key)
	if err != nil {
		p.logger.Warn("Feature cache unavailable", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	features, err := p.next.Query(ctx, center, radiusMeters, taxonomy)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SetFeatures(ctx, key, features, p.ttl); err != nil {
		p.logger.Warn("Failed to cache features", zap.String("key", key), zap.Error(err))
	}

	return features, nil
}

// FeatureKey - ключ кеша: хеш таксономии, центр с точностью ~11 м и радиус
func FeatureKey(center domain.Coordinate, radiusMeters float64, taxonomy []domain.TagRule) string {
	return fmt.Sprintf("features:%x:%.4f:%.4f:%d",
		taxonomyHash(taxonomy), center.Latitude, center.Longitude, int(radiusMeters))
}

func taxonomyHash(taxonomy []domain.TagRule) uint64 {
	h := fnv.New64a()
	for _, rule := range taxonomy {
		_, _ = h.Write([]byte(rule.Key))
		_, _ = h.Write([]byte{'='})
		_, _ = h.Write([]byte(strings.Join(rule.Values, "|")))
		_, _ = h.Write([]byte{';'})
	}
	return h.Sum64()
}
