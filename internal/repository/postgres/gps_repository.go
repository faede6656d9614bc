package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
)

const gpsColumns = "id, device_id, latitude, longitude, altitude, accuracy, source, recorded_at"

type gpsRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewGPSRepository(db *DB) repository.GPSRepository {
	return &gpsRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *gpsRepository) Save(ctx context.Context, fix *domain.GPSFix) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (:id, :device_id, :latitude, :longitude, :altitude, :accuracy, :source, :recorded_at)
	`, gpsFixesTable, gpsColumns)

	if _, err := r.db.NamedExecContext(ctx, query, fix); err != nil {
		r.logger.Error("failed to save gps fix",
			zap.String("device_id", fix.DeviceID),
			zap.Error(err))
		return fmt.Errorf("save gps fix: %w", err)
	}
	return nil
}

func (r *gpsRepository) Latest(ctx context.Context, deviceID string) (*domain.GPSFix, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE device_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, gpsColumns, gpsFixesTable)

	var fix domain.GPSFix
	err := r.db.GetContext(ctx, &fix, query, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get latest gps fix",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return nil, fmt.Errorf("latest gps fix: %w", err)
	}

	fix.RecordedAt = fix.RecordedAt.UTC()
	return &fix, nil
}

func (r *gpsRepository) History(ctx context.Context, deviceID string, sources []domain.GPSSource, limit int) ([]*domain.GPSFix, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE device_id = $1`, gpsColumns, gpsFixesTable)
	args := []interface{}{deviceID}
	argIdx := 2

	if len(sources) > 0 {
		values := make([]string, 0, len(sources))
		for _, s := range sources {
			values = append(values, string(s))
		}
		query += fmt.Sprintf(" AND source = ANY($%d)", argIdx)
		args = append(args, pq.Array(values))
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY recorded_at DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	fixes := []*domain.GPSFix{}
	if err := r.db.SelectContext(ctx, &fixes, query, args...); err != nil {
		r.logger.Error("failed to load gps history",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return nil, fmt.Errorf("gps history: %w", err)
	}

	for _, f := range fixes {
		f.RecordedAt = f.RecordedAt.UTC()
	}
	return fixes, nil
}

func (r *gpsRepository) DeleteOlderThan(ctx context.Context, deviceID string, source domain.GPSSource, before time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE device_id = $1 AND source = $2 AND recorded_at < $3
	`, gpsFixesTable)

	res, err := r.db.ExecContext(ctx, query, deviceID, string(source), before)
	if err != nil {
		r.logger.Error("failed to delete old gps fixes",
			zap.String("device_id", deviceID),
			zap.String("source", string(source)),
			zap.Error(err))
		return 0, fmt.Errorf("delete gps fixes: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete gps fixes: %w", err)
	}
	return deleted, nil
}
