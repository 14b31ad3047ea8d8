// ABOUTME: GORM/SQLite implementation of the Store interface
// ABOUTME: Opens the database, runs auto-migrations, and holds shared helpers

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore implements the Store interface using GORM over SQLite.
type GormStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Ensure GormStore implements Store.
var _ Store = (*GormStore)(nil)

// Open creates a new store at the given path. The schema is migrated
// automatically and parent directories are created if needed.
func Open(path string) (*GormStore, error) {
	log := slog.Default().With("component", "store")

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL for concurrent readers during replace transactions
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if err := db.Exec("PRAGMA foreign_keys=ON").Error; err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Tag{},
		&Task{},
		&TaskTag{},
		&TaskAssignee{},
		&Subtask{},
		&Comment{},
		&Attachment{},
	); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info("store initialized", "path", path)
	return &GormStore{db: db, logger: log}, nil
}

// Close releases the underlying database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withCtx returns the db handle bound to the request context.
func (s *GormStore) withCtx(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translateErr maps GORM errors to store sentinels.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isUniqueConstraintError reports whether the error came from a UNIQUE
// constraint violation in SQLite.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
