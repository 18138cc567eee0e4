package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// Sheet names.
const (
	ContactsSheet  = "Contactos"
	CampaignsSheet = "Links"
)

// ContactHeader is the first row of the contacts sheet.
var ContactHeader = []string{
	"id", "listing_url", "phone", "name", "vehicle", "price",
	"description", "campaign_link_id", "whatsapp_link",
}

// CampaignHeader is the first row of the campaigns sheet.
var CampaignHeader = []string{"id", "general_url", "created_on", "brand", "description"}

// WorkbookName is the download name of the contacts workbook generated at t.
func WorkbookName(t time.Time) string { return "CONTACTOS_" + Timestamp(t) + ".xlsx" }

// CampaignsWorkbookName is the download name of the campaign list workbook.
func CampaignsWorkbookName(t time.Time) string { return "LINKS_" + Timestamp(t) + ".xlsx" }

// ContactsWorkbook writes one row per entry: the contact columns followed by
// its WhatsApp link. Prices are numeric cells with a thousands format.
func ContactsWorkbook(entries []Entry) ([]byte, error) {
	xl, err := newSheet(ContactsSheet, ContactHeader)
	if err != nil {
		return nil, err
	}
	defer func() { _ = xl.Close() }()

	priceStyle, err := xl.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		c := e.Contact
		var campaign any
		if c.CampaignLinkID != nil {
			campaign = *c.CampaignLinkID
		}
		record := []any{
			c.ID, c.ListingURL, c.Phone, c.Name, c.Vehicle, c.Price,
			c.Description, campaign, e.Link,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(ContactsSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		priceCell, _ := excelize.CoordinatesToCellName(6, i+2)
		if err := xl.SetCellStyle(ContactsSheet, priceCell, priceCell, priceStyle); err != nil {
			return nil, err
		}
	}
	return finish(xl)
}

// CampaignsWorkbook writes the campaign link list.
func CampaignsWorkbook(campaigns []domain.CampaignLink) ([]byte, error) {
	xl, err := newSheet(CampaignsSheet, CampaignHeader)
	if err != nil {
		return nil, err
	}
	defer func() { _ = xl.Close() }()

	for i, cl := range campaigns {
		record := []any{cl.ID, cl.GeneralURL, cl.CreatedOn, cl.Brand, cl.Description}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(CampaignsSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return finish(xl)
}

func newSheet(name string, header []string) (*excelize.File, error) {
	xl := excelize.NewFile()
	if err := xl.SetSheetName(xl.GetSheetName(0), name); err != nil {
		_ = xl.Close()
		return nil, err
	}
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := xl.SetSheetRow(name, "A1", &row); err != nil {
		_ = xl.Close()
		return nil, err
	}
	if err := xl.SetPanes(name, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		_ = xl.Close()
		return nil, err
	}
	return xl, nil
}

func finish(xl *excelize.File) ([]byte, error) {
	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
