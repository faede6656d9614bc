package postgres

import (
	"context"
	"fmt"
)

const gpsFixesTable = "gps_fixes"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS gps_fixes (
		id          UUID PRIMARY KEY,
		device_id   TEXT NOT NULL,
		latitude    DOUBLE PRECISION NOT NULL,
		longitude   DOUBLE PRECISION NOT NULL,
		altitude    DOUBLE PRECISION,
		accuracy    DOUBLE PRECISION,
		source      TEXT NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_gps_fixes_device_recorded
		ON gps_fixes (device_id, recorded_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_gps_fixes_device_source
		ON gps_fixes (device_id, source, recorded_at)`,
}

// EnsureSchema создает таблицу журнала позиций, если ее нет
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
