package datastore

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
)

// PostgresStore implements the datastore Interface for PostgreSQL.
type PostgresStore struct {
	DataStore
	Settings *conf.Settings
}

// Open sets up the PostgreSQL connection pool and migrates the schema.
func (store *PostgresStore) Open() error {
	dbConf := store.Settings.Database

	db, err := gorm.Open(postgres.Open(withConnectTimeout(dbConf.URL, dbConf.ConnectTimeout)), &gorm.Config{Logger: createGormLogger()})
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	// Concurrency is bounded by the pool; requests queue on acquire.
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(dbConf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(dbConf.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(dbConf.ConnMaxIdleTime)

	store.DB = db
	return performAutoMigration(db, "PostgreSQL", redactedURL(dbConf.URL))
}

// withConnectTimeout applies the configured acquire timeout unless the URL
// already carries one.
func withConnectTimeout(url string, timeout time.Duration) string {
	if timeout <= 0 || strings.Contains(url, "connect_timeout=") {
		return url
	}
	sep := "?"
	if strings.ContainsRune(url, '?') {
		sep = "&"
	}
	return fmt.Sprintf("%s%sconnect_timeout=%d", url, sep, int(timeout.Seconds()))
}

// redactedURL strips credentials before the URL reaches a log line.
func redactedURL(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndexByte(url, '@')
	if scheme >= 0 && at > scheme {
		return url[:scheme+3] + "***" + url[at:]
	}
	return url
}
