package datastore

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
)

// SQLiteStore implements the datastore Interface for SQLite. Used for tests
// and small single-host deployments.
type SQLiteStore struct {
	DataStore
	Settings *conf.Settings
}

// Open sets up the SQLite database connection and migrates the schema.
func (store *SQLiteStore) Open() error {
	path := strings.TrimPrefix(store.Settings.Database.URL, "sqlite://")
	if path == "" {
		return fmt.Errorf("sqlite database path must not be empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: createGormLogger()})
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store.DB = db
	return performAutoMigration(db, "SQLite", path)
}
