package database

import (
	"fmt"
	"strings"
	"time"

	"lms-portal/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by dsn and runs migrations.
// Postgres URLs and keyword DSNs go to the postgres driver; anything else is
// treated as a SQLite file path (glebarez/sqlite, pure Go, no CGO required).
func Open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger:         NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("database connected and migrated")
	return db, nil
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// NewGormLogger routes gorm's logging through zerolog at warn level.
func NewGormLogger(log zerolog.Logger) logger.Interface {
	l := log.With().Str("component", "gorm").Logger()
	return logger.New(&l, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func isPostgresDSN(dsn string) bool {
	d := strings.TrimSpace(dsn)
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		strings.Contains(d, "host=")
}
