package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/repo"
)

func validContact(url string, campaign uint) ContactInput {
	return ContactInput{
		ListingURL:  url,
		Phone:       "9 1112 2233",
		Name:        "Ana",
		Vehicle:     "2021 TestCar",
		Price:       "10,500,000",
		Description: "Great car",
		CampaignID:  &campaign,
	}
}

func TestContact_Create_ParsesAndNormalizes(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	campaign := seedCampaign(t, db)

	c, err := svc.Create(context.Background(), validContact("https://l/1", campaign))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Price != 10500000 {
		t.Fatalf("price = %v", c.Price)
	}
	if c.Phone != "911122233" {
		t.Fatalf("phone = %q", c.Phone)
	}
	if c.CampaignLinkID == nil || *c.CampaignLinkID != campaign {
		t.Fatalf("campaign not set: %+v", c)
	}
}

func TestContact_Create_InvalidPriceDoesNotWrite(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	campaign := seedCampaign(t, db)

	in := validContact("https://l/1", campaign)
	in.Price = "abc"
	_, err := svc.Create(context.Background(), in)
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if n := countRows(t, db, &domain.Contact{}); n != 0 {
		t.Fatalf("rows = %d, want 0", n)
	}
}

func TestContact_Create_RequiredFields(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	campaign := seedCampaign(t, db)

	mutators := map[string]func(*ContactInput){
		"listing_url": func(in *ContactInput) { in.ListingURL = " " },
		"phone":       func(in *ContactInput) { in.Phone = "  " },
		"vehicle":     func(in *ContactInput) { in.Vehicle = "" },
		"price":       func(in *ContactInput) { in.Price = "" },
		"description": func(in *ContactInput) { in.Description = "\n" },
	}
	for field, mutate := range mutators {
		in := validContact("https://l/1", campaign)
		mutate(&in)
		_, err := svc.Create(context.Background(), in)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != field {
			t.Fatalf("%s: expected ValidationError on field, got %v", field, err)
		}
	}

	in := validContact("https://l/1", campaign)
	in.Phone = "+56 9 1112"
	if _, err := svc.Create(context.Background(), in); !IsValidation(err) {
		t.Fatalf("non-digit phone: expected ValidationError, got %v", err)
	}

	in = validContact("https://l/1", campaign)
	in.Name = ""
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("name is optional: %v", err)
	}
}

func TestContact_Create_UniqueListingNotPhone(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	campaign := seedCampaign(t, db)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validContact("https://l/1", campaign)); err != nil {
		t.Fatalf("first: %v", err)
	}

	dup := validContact("https://l/1", campaign)
	dup.Phone = "922233344"
	if _, err := svc.Create(ctx, dup); !errors.Is(err, ErrDuplicateListing) {
		t.Fatalf("same listing: expected ErrDuplicateListing, got %v", err)
	}

	if _, err := svc.Create(ctx, validContact("https://l/2", campaign)); err != nil {
		t.Fatalf("same phone, other listing should succeed: %v", err)
	}
	if n := countRows(t, db, &domain.Contact{}); n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}

	ok, err := svc.ListingRegistered(ctx, " https://l/2 ")
	if err != nil || !ok {
		t.Fatalf("ListingRegistered = %v, %v", ok, err)
	}
}

func TestContact_Create_UnknownCampaign(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}

	_, err := svc.Create(context.Background(), validContact("https://l/1", 42))
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}

	in := validContact("https://l/1", 0)
	in.CampaignID = nil
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("contact without campaign: %v", err)
	}
}

func TestContact_UpdateDelete(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	campaign := seedCampaign(t, db)
	ctx := context.Background()

	if _, err := svc.Update(ctx, 77, validContact("https://l/x", campaign)); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 77); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}

	a, _ := svc.Create(ctx, validContact("https://l/1", campaign))
	b, _ := svc.Create(ctx, validContact("https://l/2", campaign))

	in := validContact("https://l/1b", campaign)
	in.Price = "$ 9,990,000"
	up, err := svc.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := svc.Get(ctx, a.ID)
	if got.ListingURL != "https://l/1b" || got.Price != 9990000 || up.ID != a.ID {
		t.Fatalf("update not applied: %+v", got)
	}

	if _, err := svc.Update(ctx, a.ID, validContact("https://l/2", campaign)); !errors.Is(err, ErrDuplicateListing) {
		t.Fatalf("update onto taken listing: expected ErrDuplicateListing, got %v", err)
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound after delete, got %v", err)
	}
}

func TestContact_Update_KeepsCampaignWhenOmitted(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	ctx := context.Background()
	c1 := seedCampaign(t, db)
	c2 := seedCampaign(t, db)

	a, err := svc.Create(ctx, validContact("https://l/1", c1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validContact("https://l/1", c1)
	in.Price = "8,000,000"
	in.CampaignID = nil
	up, err := svc.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.CampaignLinkID == nil || *up.CampaignLinkID != c1 {
		t.Fatalf("returned contact lost its campaign: %+v", up)
	}
	inCampaign, _ := svc.Query(ctx, repo.ContactQuery{CampaignID: &c1})
	if len(inCampaign) != 1 || inCampaign[0].Price != 8000000 {
		t.Fatalf("contacts in campaign %d after price edit = %+v", c1, inCampaign)
	}

	in.CampaignID = &c2
	if _, err := svc.Update(ctx, a.ID, in); err != nil {
		t.Fatalf("Update move: %v", err)
	}
	got, _ := svc.Get(ctx, a.ID)
	if got.CampaignLinkID == nil || *got.CampaignLinkID != c2 {
		t.Fatalf("contact not moved to campaign %d: %+v", c2, got)
	}

	missing := uint(999)
	in.CampaignID = &missing
	if _, err := svc.Update(ctx, a.ID, in); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestContact_QueryAndPage(t *testing.T) {
	db := newTestDB(t)
	svc := &ContactService{DB: db}
	ctx := context.Background()
	c1 := seedCampaign(t, db)
	c2 := seedCampaign(t, db)

	seed := []struct {
		url, name, vehicle, phone string
		campaign                  uint
	}{
		{"https://l/1", "Ana", "2021 Toyota Yaris", "911111111", c1},
		{"https://l/2", "Luis", "2019 Suzuki Swift", "922222222", c1},
		{"https://l/3", "ana maria", "2018 Toyota Corolla", "933333333", c1},
		{"https://l/4", "Ana", "2020 Kia Rio", "944444444", c2},
	}
	for _, s := range seed {
		in := validContact(s.url, s.campaign)
		in.Name, in.Vehicle, in.Phone = s.name, s.vehicle, s.phone
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seed %s: %v", s.url, err)
		}
	}

	got, err := svc.Query(ctx, repo.ContactQuery{CampaignID: &c1, Name: "ANA"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 || got[0].ListingURL != "https://l/1" || got[1].ListingURL != "https://l/3" {
		t.Fatalf("name filter = %+v", got)
	}

	got, _ = svc.Query(ctx, repo.ContactQuery{CampaignID: &c1, Vehicle: "toyota", Phone: "333"})
	if len(got) != 1 || got[0].ListingURL != "https://l/3" {
		t.Fatalf("vehicle+phone filter = %+v", got)
	}

	got, _ = svc.Query(ctx, repo.ContactQuery{CampaignID: &c2, Vehicle: "toyota"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}

	page, total, err := svc.QueryPage(ctx, repo.ContactQuery{CampaignID: &c1}, 2, 2)
	if err != nil || total != 3 || len(page) != 1 || page[0].ListingURL != "https://l/3" {
		t.Fatalf("page = %+v total=%d err=%v", page, total, err)
	}
	page, total, _ = svc.QueryPage(ctx, repo.ContactQuery{Phone: "000"}, 0, 0)
	if total != 0 || len(page) != 0 {
		t.Fatalf("empty page = %+v total=%d", page, total)
	}
}
