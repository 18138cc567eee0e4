// Package repo persists campaign links, contacts, message templates, the
// export audit log and idempotency records in SQLite through GORM.
// Functions take the *gorm.DB to run on, so services can pass a transaction.
package repo

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// Pragmas go in the DSN so every pooled connection gets them, not just the
// first one.
var pragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(ON)",
	"busy_timeout(5000)",
}

const maxOpenConns = 10

// Options tunes OpenSQLite.
type Options struct {
	// Tracing adds a span per statement under the request trace.
	Tracing bool
	// LogLevel is the GORM logger level. Zero keeps GORM's default.
	LogLevel logger.LogLevel
}

// OpenSQLite opens or creates the database file at path. The parent
// directory must exist.
func OpenSQLite(path string, opts ...Options) (*gorm.DB, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	// sqlite reports a missing directory as "out of memory (14)".
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, err
	}

	conf := &gorm.Config{}
	if opt.LogLevel != 0 {
		conf.Logger = logger.Default.LogMode(opt.LogLevel)
	}
	db, err := gorm.Open(sqlite.Open(dsn(path)), conf)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if opt.Tracing {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return db, nil
}

func dsn(path string) string {
	q := url.Values{"_pragma": pragmas}
	return path + "?" + q.Encode()
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return errors.New("repo: close of nil db")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
