package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// CampaignStats summarises a campaign for dashboards and for ETag generation
// on contact listings.
type CampaignStats struct {
	Contacts         int64  `json:"contacts"`
	ExportedContacts int64  `json:"exported_contacts"`
	Exports          int64  `json:"exports"`
	MaxContactID     uint   `json:"-"`
	LastExportDate   string `json:"last_export_date,omitempty"`
}

// GetCampaignStats counts the campaign's contacts, how many of them have been
// exported at least once, and the number of export batches that touched them.
func GetCampaignStats(ctx context.Context, db *gorm.DB, campaignID uint) (*CampaignStats, error) {
	var st CampaignStats
	q := db.WithContext(ctx).Model(&domain.Contact{}).Where("campaign_link_id = ?", campaignID)
	if err := q.Count(&st.Contacts).Error; err != nil {
		return nil, err
	}
	if st.Contacts == 0 {
		return &st, nil
	}

	var top struct{ ID uint }
	if err := db.WithContext(ctx).Model(&domain.Contact{}).
		Where("campaign_link_id = ?", campaignID).
		Select("id").Order("id DESC").Limit(1).
		Scan(&top).Error; err != nil {
		return nil, err
	}
	st.MaxContactID = top.ID

	var agg struct {
		Exported int64
		Batches  int64
		Last     *string
	}
	err := db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT l.contact_id) AS exported,
		       COUNT(DISTINCT l.batch_id)   AS batches,
		       MAX(l.export_date)           AS last
		FROM export_logs l
		JOIN contacts c ON c.id = l.contact_id
		WHERE c.campaign_link_id = ?`, campaignID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	st.ExportedContacts = agg.Exported
	st.Exports = agg.Batches
	if agg.Last != nil {
		st.LastExportDate = *agg.Last
	}
	return &st, nil
}
