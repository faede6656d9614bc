package repository

import (
	"context"
	"time"

	"github.com/safety-navigator/internal/domain"
)

// GPSRepository - журнал позиций устройств
type GPSRepository interface {
	// Save сохраняет позицию
	Save(ctx context.Context, fix *domain.GPSFix) error

	// Latest возвращает последнюю позицию устройства, nil если позиций нет
	Latest(ctx context.Context, deviceID string) (*domain.GPSFix, error)

	// History возвращает позиции от новых к старым, sources пустой - любой источник
	History(ctx context.Context, deviceID string, sources []domain.GPSSource, limit int) ([]*domain.GPSFix, error)

	// DeleteOlderThan удаляет позиции источника старше before
	DeleteOlderThan(ctx context.Context, deviceID string, source domain.GPSSource, before time.Time) (int64, error)
}
