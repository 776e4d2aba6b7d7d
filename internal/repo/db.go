// Package repo persists profiles, notes and idempotency keys. SQL backends
// go through GORM (SQLite via the pure-Go driver, or Postgres); MongoDB uses
// the official driver.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/newmum-companion/internal/config"
	"github.com/tbourn/newmum-companion/internal/domain"
)

// slowQuery is the threshold above which GORM statements are logged.
const slowQuery = 250 * time.Millisecond

// sqlitePragmas tune SQLite for one writer and many readers.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// OpenSQL opens the database named by cfg.DBDriver. SQLite files are
// created on demand, but their directory must already exist.
func OpenSQL(cfg config.StoreConfig) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case config.DBSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, fmt.Errorf("sqlite directory: %w", err)
			}
		}
		dial = sqlite.Open(cfg.DBPath)
	case config.DBPostgres:
		dial = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dial, &gorm.Config{Logger: queryLogger()})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == config.DBSQLite {
		for _, p := range sqlitePragmas {
			if err := db.Exec(p).Error; err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// queryLogger sends slow statements and SQL errors to the zerolog global
// logger. Statements are logged with placeholders, never bound values, so
// emails do not reach the log.
func queryLogger() logger.Interface {
	return logger.New(zerologPrinter{}, logger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

type zerologPrinter struct{}

func (zerologPrinter) Printf(format string, args ...any) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// EnableTracing makes every query a child span of the request trace.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the documents and idempotency tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Document{}, &domain.Idempotency{})
}
