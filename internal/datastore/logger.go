// Package datastore provides logging infrastructure for database operations
package datastore

import (
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
)

var (
	datastoreLogger *slog.Logger
	loggerOnce      sync.Once
)

// getLogger returns the package logger, initializing it lazily so tests that
// never call logging.Init still get a usable logger.
func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		datastoreLogger = logging.ForService("datastore")
	})
	return datastoreLogger
}

// createGormLogger configures gorm's logger: quiet by default, warnings for
// slow queries. Full SQL tracing belongs behind LOG_LEVEL=debug, not here.
func createGormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
