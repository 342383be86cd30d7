// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
)

// ErrNotFound is returned when a row does not exist or is owned by another
// account. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// Interface abstracts the underlying database implementation and defines the
// operations the API layer depends on.
type Interface interface {
	Open() error
	Close() error
	Ping() error

	// users
	CreateUser(user *User) error
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id uint) (*User, error)

	// genres
	CreateGenre(genre *Genre) error
	GenreNameExists(userID uint, name string) (bool, error)
	GetGenres(userID uint) ([]Genre, error)
	UpdateGenre(genre *Genre) error
	DeleteGenre(userID, id uint) error

	// levels
	CreateLevel(level *Level) error
	LevelNameExists(userID uint, name string) (bool, error)
	GetLevels(userID uint) ([]Level, error)
	UpdateLevel(level *Level) error
	DeleteLevel(userID, id uint) error

	// sources
	CreateSource(source *Source) error
	SourceTitleExists(userID uint, title string) (bool, error)
	GetSources(userID uint, limit, offset int) ([]Source, int64, error)
	GetSourceLookup(userID uint) ([]SourceOption, error)
	UpdateSource(source *Source) error
	DeleteSource(userID, id uint) error

	// sheets
	CreateSheet(sheet *Sheet) error
	SearchSheets(filter *SheetFilter) ([]SheetSummary, int64, error)
	UpdateSheet(sheet *Sheet) error
	DeleteSheet(userID, id uint) error

	// statistics
	CountSheetsByLevel(userID uint) ([]LevelCount, error)
	CountSheetsByGenre(userID uint) ([]GenreCount, error)
	CountUncategorizedSheets(userID uint) (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New creates a store for the configured DATABASE_URL. postgres:// and
// postgresql:// URLs select the Postgres store, sqlite:// (or a bare file
// path) selects SQLite.
func New(settings *conf.Settings) Interface {
	url := settings.Database.URL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return &PostgresStore{Settings: settings}
	default:
		return &SQLiteStore{Settings: settings}
	}
}

// performAutoMigration creates or updates the schema for all entities.
func performAutoMigration(db *gorm.DB, dialect, connInfo string) error {
	if err := db.AutoMigrate(&User{}, &Genre{}, &Level{}, &Source{}, &Sheet{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dialect, err)
	}
	getLogger().Info("Database schema ready", "dialect", dialect, "database", connInfo)
	return nil
}

// Ping verifies database connectivity for health checks.
func (ds *DataStore) Ping() error {
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// Close releases the pooled connections.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB handle: %w", err)
	}
	return sqlDB.Close()
}

// notFound converts gorm's sentinel into the package-level one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
