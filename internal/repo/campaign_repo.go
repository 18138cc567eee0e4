package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// CreateCampaign inserts a campaign link and returns it with its new id.
func CreateCampaign(ctx context.Context, db *gorm.DB, c *domain.CampaignLink) error {
	return db.WithContext(ctx).Create(c).Error
}

// GetCampaign returns a campaign link by id or ErrNotFound.
func GetCampaign(ctx context.Context, db *gorm.DB, id uint) (*domain.CampaignLink, error) {
	var c domain.CampaignLink
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns all campaign links in creation order.
func ListCampaigns(ctx context.Context, db *gorm.DB) ([]domain.CampaignLink, error) {
	var out []domain.CampaignLink
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// UpdateCampaign overwrites the editable columns of a campaign link.
// Returns ErrNotFound when no row has the given id.
func UpdateCampaign(ctx context.Context, db *gorm.DB, c *domain.CampaignLink) error {
	res := db.WithContext(ctx).
		Model(&domain.CampaignLink{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"general_url": c.GeneralURL,
			"created_on":  c.CreatedOn,
			"brand":       c.Brand,
			"description": c.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCampaign removes a campaign link and detaches its contacts, which
// stay in the store with a NULL campaign_link_id. It must run inside a
// transaction; the caller owns it. Returns the number of detached contacts.
func DeleteCampaign(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	detach := tx.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("campaign_link_id = ?", id).
		Update("campaign_link_id", nil)
	if detach.Error != nil {
		return 0, detach.Error
	}
	res := tx.WithContext(ctx).Delete(&domain.CampaignLink{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return detach.RowsAffected, nil
}
