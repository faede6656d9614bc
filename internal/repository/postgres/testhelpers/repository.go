package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain/repository"
	"github.com/safety-navigator/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewGPSRepositoryForTest creates a GPS fix repository with test database and logger
func NewGPSRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.GPSRepository {
	return postgres.NewGPSRepository(NewDBForTest(db, logger))
}
