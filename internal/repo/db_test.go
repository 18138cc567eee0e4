package repo

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated SQLite file in a per-test temp directory.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openRaw(t)
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// openRaw opens an empty SQLite file without running migrations.
func openRaw(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "leads.db"), Options{LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpenSQLite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "leads.db")
	db, err := OpenSQLite(path)
	if err == nil || db != nil {
		t.Fatalf("OpenSQLite(%q) = %v, %v; want error", path, db, err)
	}
}

func TestOpenSQLite_PragmasOnEveryConnection(t *testing.T) {
	db := openRaw(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != maxOpenConns {
		t.Fatalf("MaxOpenConnections = %d", got)
	}

	// Pin two distinct connections and check both.
	ctx := context.Background()
	for i := range 2 {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		defer conn.Close()

		var (
			journal           string
			syncMode, fk, bus int
		)
		for _, q := range []struct {
			sql string
			dst any
		}{
			{"PRAGMA journal_mode", &journal},
			{"PRAGMA synchronous", &syncMode},
			{"PRAGMA foreign_keys", &fk},
			{"PRAGMA busy_timeout", &bus},
		} {
			if err := conn.QueryRowContext(ctx, q.sql).Scan(q.dst); err != nil {
				t.Fatalf("conn %d %s: %v", i, q.sql, err)
			}
		}
		if strings.ToLower(journal) != "wal" || syncMode != 1 || fk != 1 || bus != 5000 {
			t.Fatalf("conn %d: journal=%s synchronous=%d foreign_keys=%d busy_timeout=%d", i, journal, syncMode, fk, bus)
		}
	}
}

func TestOpenSQLite_Tracing(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "traced.db"), Options{Tracing: true, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
}

func TestDSN(t *testing.T) {
	got := dsn("data/consignment.db")
	if !strings.HasPrefix(got, "data/consignment.db?_pragma=") || strings.Count(got, "_pragma=") != len(pragmas) {
		t.Fatalf("dsn = %q", got)
	}
}

func TestClose_Nil(t *testing.T) {
	if err := Close(nil); err == nil {
		t.Fatal("expected error closing nil db")
	}
}
