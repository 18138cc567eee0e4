package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// CreateTemplate stores a message template body and returns the new row.
func CreateTemplate(ctx context.Context, db *gorm.DB, body string) (*domain.MessageTemplate, error) {
	t := &domain.MessageTemplate{Body: body}
	return t, db.WithContext(ctx).Create(t).Error
}

// ListTemplates returns all templates in creation order, which is the order
// rotation walks them in.
func ListTemplates(ctx context.Context, db *gorm.DB) ([]domain.MessageTemplate, error) {
	var out []domain.MessageTemplate
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// UpdateTemplate replaces a template body. The boolean reports whether a row
// with that id existed.
func UpdateTemplate(ctx context.Context, db *gorm.DB, id uint, body string) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.MessageTemplate{}).
		Where("id = ?", id).
		Update("body", body)
	return res.RowsAffected > 0, res.Error
}

// DeleteTemplate removes a template. Audit rows keep its id. The boolean
// reports whether a row with that id existed.
func DeleteTemplate(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	res := db.WithContext(ctx).Delete(&domain.MessageTemplate{}, id)
	return res.RowsAffected > 0, res.Error
}
