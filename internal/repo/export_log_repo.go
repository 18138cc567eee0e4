package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// exportInsertBatch bounds the rows per INSERT statement so large exports stay
// under SQLite's bound-parameter limit.
const exportInsertBatch = 200

// AppendExportLogs inserts audit rows. The export log is append-only: this
// package exposes no update or delete for it.
func AppendExportLogs(ctx context.Context, db *gorm.DB, rows []domain.ExportLog) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&rows, exportInsertBatch).Error
}

// ListExportLogsByBatch returns the rows of one export in insertion order.
func ListExportLogsByBatch(ctx context.Context, db *gorm.DB, batchID string) ([]domain.ExportLog, error) {
	var out []domain.ExportLog
	err := db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// ListExportLogsByContact returns the export history of a contact, oldest first.
func ListExportLogsByContact(ctx context.Context, db *gorm.DB, contactID uint) ([]domain.ExportLog, error) {
	var out []domain.ExportLog
	err := db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CountExportLogs counts all audit rows.
func CountExportLogs(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ExportLog{}).Count(&n).Error
	return n, err
}
