package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/repository/postgres"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой базе и создает схему.
// Тест пропускается, если база недоступна.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "navigator_test"),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)

	// Retry connection with backoff to wait for DB startup
	var db *sqlx.DB
	var err error
	maxRetries := 3
	retryDelay := 200 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("pgx", connStr)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := postgres.NewDBForTest(db, nil).EnsureSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup удаляет позиции тестового устройства
func (tdb *TestDB) Cleanup(ctx context.Context, deviceIDs ...string) error {
	for _, id := range deviceIDs {
		if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM gps_fixes WHERE device_id = $1", id); err != nil {
			return fmt.Errorf("cleanup %s: %w", id, err)
		}
	}
	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
