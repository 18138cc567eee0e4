package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// ContactQuery selects contacts for listing and export. Empty string filters
// are ignored; non-empty ones are case-insensitive substring matches.
type ContactQuery struct {
	CampaignID *uint
	Name       string
	Vehicle    string
	Phone      string
}

// CreateContact inserts a contact. A second contact with the same listing URL
// fails with the driver's unique-constraint error.
func CreateContact(ctx context.Context, db *gorm.DB, c *domain.Contact) error {
	return db.WithContext(ctx).Create(c).Error
}

// GetContact returns a contact by id or ErrNotFound.
func GetContact(ctx context.Context, db *gorm.DB, id uint) (*domain.Contact, error) {
	var c domain.Contact
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetContactsByIDs returns the contacts with the given ids, keyed by id.
// Missing ids are simply absent from the map.
func GetContactsByIDs(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]domain.Contact, error) {
	out := make(map[uint]domain.Contact, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Contact
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

// ListingURLExists reports whether a contact already uses listingURL.
func ListingURLExists(ctx context.Context, db *gorm.DB, listingURL string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("listing_url = ?", listingURL).
		Count(&n).Error
	return n > 0, err
}

// UpdateContact overwrites every editable column of c (addressed by c.ID).
// Returns ErrNotFound when the row does not exist.
func UpdateContact(ctx context.Context, db *gorm.DB, c *domain.Contact) error {
	res := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"listing_url":      c.ListingURL,
			"phone":            c.Phone,
			"name":             c.Name,
			"vehicle":          c.Vehicle,
			"price":            c.Price,
			"description":      c.Description,
			"campaign_link_id": c.CampaignLinkID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact. Export audit rows that reference it are
// kept. Returns ErrNotFound when the row does not exist.
func DeleteContact(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// QueryContacts returns the contacts matching q ordered by id.
func QueryContacts(ctx context.Context, db *gorm.DB, q ContactQuery) ([]domain.Contact, error) {
	var out []domain.Contact
	err := applyContactQuery(db.WithContext(ctx).Model(&domain.Contact{}), q).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CountContacts counts the contacts matching q.
func CountContacts(ctx context.Context, db *gorm.DB, q ContactQuery) (int64, error) {
	var n int64
	err := applyContactQuery(db.WithContext(ctx).Model(&domain.Contact{}), q).Count(&n).Error
	return n, err
}

// QueryContactsPage returns a page of the contacts matching q ordered by id.
func QueryContactsPage(ctx context.Context, db *gorm.DB, q ContactQuery, offset, limit int) ([]domain.Contact, error) {
	var out []domain.Contact
	err := applyContactQuery(db.WithContext(ctx).Model(&domain.Contact{}), q).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

func applyContactQuery(tx *gorm.DB, q ContactQuery) *gorm.DB {
	if q.CampaignID != nil {
		tx = tx.Where("campaign_link_id = ?", *q.CampaignID)
	}
	if s := strings.TrimSpace(q.Name); s != "" {
		tx = tx.Where(`name LIKE ? ESCAPE '\'`, containsPattern(s))
	}
	if s := strings.TrimSpace(q.Vehicle); s != "" {
		tx = tx.Where(`vehicle LIKE ? ESCAPE '\'`, containsPattern(s))
	}
	if s := strings.TrimSpace(q.Phone); s != "" {
		tx = tx.Where(`phone LIKE ? ESCAPE '\'`, containsPattern(s))
	}
	return tx
}

// containsPattern builds a LIKE pattern matching s anywhere, with the LIKE
// wildcards in s matched literally.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
