package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

func TestCampaignCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := &domain.CampaignLink{GeneralURL: "https://example.cl/a", CreatedOn: "2024-01-02", Brand: "Toyota", Description: "enero"}
	b := &domain.CampaignLink{GeneralURL: "https://example.cl/b", CreatedOn: "2024-02-02", Brand: "Kia", Description: "febrero"}
	for _, c := range []*domain.CampaignLink{a, b} {
		if err := CreateCampaign(ctx, db, c); err != nil {
			t.Fatalf("CreateCampaign: %v", err)
		}
	}
	if a.ID == 0 || b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d, %d", a.ID, b.ID)
	}

	list, err := ListCampaigns(ctx, db)
	if err != nil || len(list) != 2 || list[0].ID != a.ID {
		t.Fatalf("ListCampaigns = %+v, %v", list, err)
	}

	a.Brand = "Nissan"
	if err := UpdateCampaign(ctx, db, a); err != nil {
		t.Fatalf("UpdateCampaign: %v", err)
	}
	got, err := GetCampaign(ctx, db, a.ID)
	if err != nil || got.Brand != "Nissan" {
		t.Fatalf("GetCampaign = %+v, %v", got, err)
	}

	if err := UpdateCampaign(ctx, db, &domain.CampaignLink{ID: 999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateCampaign missing: %v", err)
	}
	if _, err := GetCampaign(ctx, db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetCampaign missing: %v", err)
	}
}

func TestDeleteCampaign_OrphansContacts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	camp := &domain.CampaignLink{GeneralURL: "https://example.cl/a", CreatedOn: "2024-01-02", Brand: "Toyota", Description: "x"}
	if err := CreateCampaign(ctx, db, camp); err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	for i, u := range []string{"https://example.cl/1", "https://example.cl/2"} {
		c := &domain.Contact{ListingURL: u, Phone: "900000000", Vehicle: "2020 X", Price: float64(i), Description: "d", CampaignLinkID: &camp.ID}
		if err := CreateContact(ctx, db, c); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}

	var detached int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		detached, err = DeleteCampaign(ctx, tx, camp.ID)
		return err
	})
	if err != nil {
		t.Fatalf("DeleteCampaign: %v", err)
	}
	if detached != 2 {
		t.Fatalf("expected 2 detached contacts, got %d", detached)
	}

	rest, _ := QueryContacts(ctx, db, ContactQuery{})
	if len(rest) != 2 {
		t.Fatalf("contacts must survive campaign deletion, got %d", len(rest))
	}
	for _, c := range rest {
		if c.CampaignLinkID != nil {
			t.Fatalf("expected NULL campaign_link_id, got %v", *c.CampaignLinkID)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := DeleteCampaign(ctx, tx, camp.ID)
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}
