package repository

import (
	"context"

	"github.com/safety-navigator/internal/domain"
)

// MapFeatureProvider - источник объектов карты с тегами вокруг точки.
// Ошибки сети, таймауты и ошибки разбора оборачивают domain.ErrProviderUnavailable.
type MapFeatureProvider interface {
	Query(ctx context.Context, center domain.Coordinate, radiusMeters float64, taxonomy []domain.TagRule) ([]domain.MapFeature, error)
}
