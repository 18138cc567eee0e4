package domain

import (
	"testing"
)

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(CampaignLink{}).TableName():    "campaign_links",
		(Contact{}).TableName():         "contacts",
		(MessageTemplate{}).TableName(): "message_templates",
		(ExportLog{}).TableName():       "export_logs",
		(SchemaVersion{}).TableName():   "schema_versions",
		(Idempotency{}).TableName():     "idempotency_keys",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestContact_Fields_EnglishAndAliases(t *testing.T) {
	campaign := uint(7)
	c := Contact{
		ID:             3,
		ListingURL:     "https://example.cl/auto/1",
		Phone:          "911122233",
		Name:           "Ana",
		Vehicle:        "2021 TestCar",
		Price:          10500000,
		Description:    "Great car",
		CampaignLinkID: &campaign,
	}
	f := c.Fields()

	pairs := [][2]string{
		{"id", "3"},
		{"listing_url", c.ListingURL},
		{"phone", "911122233"},
		{"name", "Ana"},
		{"vehicle", "2021 TestCar"},
		{"price", "10500000"},
		{"description", "Great car"},
		{"campaign_link_id", "7"},
		{"link_auto", c.ListingURL},
		{"telefono", "911122233"},
		{"nombre", "Ana"},
		{"auto", "2021 TestCar"},
		{"precio", "10500000"},
		{"descripcion", "Great car"},
		{"id_link", "7"},
	}
	for _, p := range pairs {
		if got := f[p[0]]; got != p[1] {
			t.Fatalf("Fields()[%q] = %q; want %q", p[0], got, p[1])
		}
	}
}

func TestContact_Fields_NoCampaign(t *testing.T) {
	f := Contact{ID: 1, Price: 1.5}.Fields()
	if f["campaign_link_id"] != "" || f["id_link"] != "" {
		t.Fatalf("expected empty campaign id, got %q/%q", f["campaign_link_id"], f["id_link"])
	}
	if f["price"] != "1.5" {
		t.Fatalf("price = %q; want 1.5", f["price"])
	}
}

func TestContact_Label(t *testing.T) {
	if got := (Contact{Vehicle: "2019 Corolla", Name: "Ana"}).Label(); got != "2019 Corolla" {
		t.Fatalf("Label() with vehicle = %q", got)
	}
	if got := (Contact{Name: "Ana"}).Label(); got != "Ana" {
		t.Fatalf("Label() fallback = %q", got)
	}
}
