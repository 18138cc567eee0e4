// Package domain defines the persistence models for campaign links, contacts,
// message templates and the export audit log. These types are mapped with GORM
// and form the core data layer of the consignment leads service.
package domain

import (
	"strconv"
	"time"
)

// DateLayout is the storage format of calendar dates (campaign creation date,
// export date).
const DateLayout = "2006-01-02"

// CampaignLink is a marketing campaign grouping: a general URL with a creation
// date, a vehicle brand and a free-text description. Contacts reference it
// through CampaignLinkID.
type CampaignLink struct {
	ID          uint   `json:"id"          gorm:"primaryKey;autoIncrement"`
	GeneralURL  string `json:"general_url" gorm:"column:general_url;type:TEXT;not null"`
	CreatedOn   string `json:"created_on"  gorm:"column:created_on;type:TEXT;not null"`
	Brand       string `json:"brand"       gorm:"type:TEXT;not null"`
	Description string `json:"description" gorm:"type:TEXT;not null"`
}

// TableName returns the database table name for CampaignLink.
func (CampaignLink) TableName() string { return "campaign_links" }

// Contact is a vehicle seller lead scraped from a listing page.
//
// Fields:
//   - ListingURL: the vehicle listing page; unique across the store.
//   - Phone: digits only; several listings may share a seller phone.
//   - Name: seller name (may be empty).
//   - Vehicle: "<year> <model>" as extracted from the listing.
//   - Price: non-negative amount in pesos.
//   - CampaignLinkID: owning campaign; nil once the campaign is deleted.
type Contact struct {
	ID             uint    `json:"id"               gorm:"primaryKey;autoIncrement"`
	ListingURL     string  `json:"listing_url"      gorm:"column:listing_url;type:TEXT;not null;uniqueIndex"`
	Phone          string  `json:"phone"            gorm:"type:TEXT;not null"`
	Name           string  `json:"name"             gorm:"type:TEXT;not null"`
	Vehicle        string  `json:"vehicle"          gorm:"type:TEXT;not null"`
	Price          float64 `json:"price"            gorm:"type:REAL;not null"`
	Description    string  `json:"description"      gorm:"type:TEXT;not null"`
	CampaignLinkID *uint   `json:"campaign_link_id" gorm:"column:campaign_link_id"`
}

// TableName returns the database table name for Contact.
func (Contact) TableName() string { return "contacts" }

// Fields exposes the contact attributes by placeholder name for message
// rendering. Operators of the previous tool wrote templates against the
// Spanish column names, so those keys are kept as aliases.
func (c Contact) Fields() map[string]string {
	id := strconv.FormatUint(uint64(c.ID), 10)
	price := strconv.FormatFloat(c.Price, 'f', -1, 64)
	campaign := ""
	if c.CampaignLinkID != nil {
		campaign = strconv.FormatUint(uint64(*c.CampaignLinkID), 10)
	}
	return map[string]string{
		"id":               id,
		"listing_url":      c.ListingURL,
		"phone":            c.Phone,
		"name":             c.Name,
		"vehicle":          c.Vehicle,
		"price":            price,
		"description":      c.Description,
		"campaign_link_id": campaign,

		"link_auto":   c.ListingURL,
		"telefono":    c.Phone,
		"nombre":      c.Name,
		"auto":        c.Vehicle,
		"precio":      price,
		"descripcion": c.Description,
		"id_link":     campaign,
	}
}

// Label is the human-readable line shown next to a contact link: the vehicle
// when known, otherwise the seller name.
func (c Contact) Label() string {
	if c.Vehicle != "" {
		return c.Vehicle
	}
	return c.Name
}

// MessageTemplate is an operator-authored message body with {field}
// placeholders. Creation order (ascending ID) is the rotation order.
type MessageTemplate struct {
	ID   uint   `json:"id"   gorm:"primaryKey;autoIncrement"`
	Body string `json:"body" gorm:"type:TEXT;not null"`
}

// TableName returns the database table name for MessageTemplate.
func (MessageTemplate) TableName() string { return "message_templates" }

// ExportLog is one append-only audit row: which template was used to build
// which link for which contact, on which day. Rows written by the same export
// share a BatchID.
//
// ContactID and TemplateID are plain integers without foreign keys so the
// audit trail survives deletion of the contact or template it references.
type ExportLog struct {
	ID         uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	ContactID  uint      `json:"contact_id"  gorm:"not null"`
	TemplateID uint      `json:"template_id" gorm:"not null"`
	Link       string    `json:"link"        gorm:"type:TEXT;not null"`
	ExportDate string    `json:"export_date" gorm:"type:TEXT;not null"`
	BatchID    string    `json:"batch_id"    gorm:"type:TEXT;not null;default:'';index:idx_export_logs_batch"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for ExportLog.
func (ExportLog) TableName() string { return "export_logs" }

// SchemaVersion records one applied migration step.
type SchemaVersion struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:TEXT;not null"`
	AppliedAt time.Time `gorm:"type:DATETIME;not null"`
}

// TableName returns the database table name for SchemaVersion.
func (SchemaVersion) TableName() string { return "schema_versions" }
