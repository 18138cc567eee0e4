package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// migration is one forward-only schema step. Steps run in version order,
// each inside its own transaction together with its schema_versions row.
type migration struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

var migrations = []migration{
	{1, "base_tables", createBaseTables},
	{2, "listing_url_unique", rebuildContactsUnique},
	{3, "export_batches", addExportBatches},
}

// LatestSchemaVersion is the version Migrate brings a store to.
func LatestSchemaVersion() int { return migrations[len(migrations)-1].version }

// Migrate brings the schema to LatestSchemaVersion. Stores that predate the
// schema_versions marker are treated as version 0; the steps themselves are
// written so that replaying them against such a store is harmless. Calling
// Migrate on an up-to-date store is a no-op.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_versions (
		version    INTEGER  PRIMARY KEY,
		name       TEXT     NOT NULL,
		applied_at DATETIME NOT NULL
	)`).Error; err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	current, err := CurrentSchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.apply(tx); err != nil {
				return err
			}
			return tx.Create(&domain.SchemaVersion{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		log.Info().Int("version", m.version).Str("name", m.name).Msg("schema migrated")
	}
	return nil
}

// CurrentSchemaVersion returns the highest applied migration, 0 when none.
func CurrentSchemaVersion(ctx context.Context, db *gorm.DB) (int, error) {
	var v int
	err := db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(version), 0) FROM schema_versions").
		Scan(&v).Error
	return v, err
}

// createBaseTables lays down the first released schema. contacts carries the
// historical UNIQUE(phone) shape; step 2 relaxes it.
func createBaseTables(tx *gorm.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS campaign_links (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			general_url TEXT    NOT NULL,
			created_on  TEXT    NOT NULL,
			brand       TEXT    NOT NULL,
			description TEXT    NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			listing_url      TEXT    NOT NULL,
			phone            TEXT    NOT NULL UNIQUE,
			name             TEXT    NOT NULL,
			vehicle          TEXT    NOT NULL,
			price            REAL    NOT NULL,
			description      TEXT    NOT NULL,
			campaign_link_id INTEGER REFERENCES campaign_links(id)
		)`,
		`CREATE TABLE IF NOT EXISTS message_templates (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			body TEXT    NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS export_logs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			contact_id  INTEGER NOT NULL,
			template_id INTEGER NOT NULL,
			link        TEXT    NOT NULL,
			export_date TEXT    NOT NULL
		)`,
	}
	return execAll(tx, stmts)
}

// rebuildContactsUnique moves uniqueness from phone to listing_url. SQLite
// cannot drop a column constraint in place, so the table is rebuilt and rows
// are copied in id order; the first row per listing URL wins and ids are kept.
func rebuildContactsUnique(tx *gorm.DB) error {
	phoneUnique, err := hasSingleColumnUnique(tx, "contacts", "phone")
	if err != nil {
		return err
	}
	listingUnique, err := hasSingleColumnUnique(tx, "contacts", "listing_url")
	if err != nil {
		return err
	}
	if !phoneUnique && listingUnique {
		return nil
	}

	return execAll(tx, []string{
		`DROP TABLE IF EXISTS contacts_new`,
		`CREATE TABLE contacts_new (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			listing_url      TEXT    NOT NULL UNIQUE,
			phone            TEXT    NOT NULL,
			name             TEXT    NOT NULL,
			vehicle          TEXT    NOT NULL,
			price            REAL    NOT NULL,
			description      TEXT    NOT NULL,
			campaign_link_id INTEGER REFERENCES campaign_links(id)
		)`,
		`INSERT OR IGNORE INTO contacts_new
			(id, listing_url, phone, name, vehicle, price, description, campaign_link_id)
		SELECT id, listing_url, phone, name, vehicle, price, description, campaign_link_id
		FROM contacts ORDER BY id`,
		`DROP TABLE contacts`,
		`ALTER TABLE contacts_new RENAME TO contacts`,
	})
}

// addExportBatches groups audit rows per export and adds the idempotency
// table used to replay retried exports.
func addExportBatches(tx *gorm.DB) error {
	if ok, err := hasColumn(tx, "export_logs", "batch_id"); err != nil {
		return err
	} else if !ok {
		if err := tx.Exec(`ALTER TABLE export_logs ADD COLUMN batch_id TEXT NOT NULL DEFAULT ''`).Error; err != nil {
			return err
		}
	}
	if ok, err := hasColumn(tx, "export_logs", "created_at"); err != nil {
		return err
	} else if !ok {
		if err := tx.Exec(`ALTER TABLE export_logs ADD COLUMN created_at DATETIME`).Error; err != nil {
			return err
		}
	}
	if err := execAll(tx, []string{
		`CREATE INDEX IF NOT EXISTS idx_export_logs_batch ON export_logs (batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_export_logs_contact ON export_logs (contact_id)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_campaign ON contacts (campaign_link_id)`,
	}); err != nil {
		return err
	}
	return tx.Migrator().AutoMigrate(&domain.Idempotency{})
}

// execAll runs statements one by one; the driver does not reliably execute
// multi-statement strings.
func execAll(tx *gorm.DB, stmts []string) error {
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

type indexListRow struct {
	Seq     int
	Name    string
	Unique  int
	Origin  string
	Partial int
}

type indexInfoRow struct {
	Seqno int
	Cid   int
	Name  string
}

// hasSingleColumnUnique reports whether table has a non-partial unique index
// covering exactly column.
func hasSingleColumnUnique(tx *gorm.DB, table, column string) (bool, error) {
	var idx []indexListRow
	if err := tx.Raw(fmt.Sprintf("PRAGMA index_list(%q)", table)).Scan(&idx).Error; err != nil {
		return false, err
	}
	for _, ix := range idx {
		if ix.Unique != 1 || ix.Partial == 1 {
			continue
		}
		var cols []indexInfoRow
		if err := tx.Raw(fmt.Sprintf("PRAGMA index_info(%q)", ix.Name)).Scan(&cols).Error; err != nil {
			return false, err
		}
		if len(cols) == 1 && cols[0].Name == column {
			return true, nil
		}
	}
	return false, nil
}

type tableInfoRow struct {
	Cid  int
	Name string
	Type string
}

func hasColumn(tx *gorm.DB, table, column string) (bool, error) {
	var cols []tableInfoRow
	if err := tx.Raw(fmt.Sprintf("PRAGMA table_info(%q)", table)).Scan(&cols).Error; err != nil {
		return false, err
	}
	for _, c := range cols {
		if c.Name == column {
			return true, nil
		}
	}
	return false, nil
}
