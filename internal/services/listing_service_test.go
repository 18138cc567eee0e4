package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/repo"
	"github.com/tbourn/go-consignment-leads/internal/scrape"
)

type fakeFetcher struct {
	listing *scrape.Listing
	err     error
	calls   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*scrape.Listing, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

type fakeImages struct {
	data []byte
	err  error
}

func (f fakeImages) Read() ([]byte, error) { return f.data, f.err }

func present(v string) scrape.Field { return scrape.Field{Status: scrape.Present, Value: v} }

func TestListing_Fetch_Strict(t *testing.T) {
	want := &scrape.Listing{FullName: present("2021 TestCar")}
	svc := &ListingService{Fetcher: &fakeFetcher{listing: want}}
	got, err := svc.Fetch(context.Background(), "https://l/1")
	if err != nil || got != want {
		t.Fatalf("Fetch = %+v, %v", got, err)
	}

	fe := &scrape.FetchError{URL: "https://l/1", StatusCode: http.StatusForbidden}
	svc = &ListingService{Fetcher: &fakeFetcher{err: fe}}
	_, err = svc.Fetch(context.Background(), "https://l/1")
	var gotFE *scrape.FetchError
	if !errors.As(err, &gotFE) || gotFE.StatusCode != http.StatusForbidden {
		t.Fatalf("expected FetchError, got %v", err)
	}

	svc = &ListingService{Fetcher: &fakeFetcher{err: scrape.ErrInvalidURL}}
	if _, err := svc.Fetch(context.Background(), "nope"); !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestListing_Prefill_MapsFields(t *testing.T) {
	f := &fakeFetcher{listing: &scrape.Listing{
		FullName:     present("2021 TestCar"),
		Year:         present("2021"),
		Price:        present("10,000"),
		Description:  present("Great car"),
		ContactImage: present("/tmp/img.png"),
		WhatsApp:     present("911122233"),
	}}
	svc := &ListingService{Fetcher: f}

	d, err := svc.Prefill(context.Background(), "  https://l/1  ")
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if d.ListingURL != "https://l/1" || f.calls[0] != "https://l/1" {
		t.Fatalf("url not trimmed: %q / %v", d.ListingURL, f.calls)
	}
	if d.Phone != "911122233" || d.Vehicle != "2021 TestCar" || d.Year != "2021" ||
		d.Price != "10,000" || d.Description != "Great car" || !d.HasImage {
		t.Fatalf("draft = %+v", d)
	}
	if d.Warning != "" || d.AlreadyRegistered {
		t.Fatalf("unexpected flags: %+v", d)
	}
}

func TestListing_Prefill_DegradesOnFetchError(t *testing.T) {
	db := newTestDB(t)
	if err := repo.CreateContact(context.Background(), db, &domain.Contact{
		ListingURL: "https://l/1", Phone: "9", Vehicle: "v", Description: "d",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	f := &fakeFetcher{err: &scrape.FetchError{URL: "https://l/1", StatusCode: 503}}
	svc := &ListingService{DB: db, Fetcher: f}

	d, err := svc.Prefill(context.Background(), "https://l/1")
	if err != nil {
		t.Fatalf("Prefill must not fail on fetch errors: %v", err)
	}
	for name, v := range map[string]string{
		"phone": d.Phone, "vehicle": d.Vehicle, "year": d.Year,
		"price": d.Price, "description": d.Description,
	} {
		if v != scrape.NotAvailable {
			t.Fatalf("%s = %q, want %q", name, v, scrape.NotAvailable)
		}
	}
	if !strings.Contains(d.Warning, "503") {
		t.Fatalf("warning = %q", d.Warning)
	}
	if !d.AlreadyRegistered {
		t.Fatalf("expected already_registered")
	}
	if d.Listing != nil || d.HasImage {
		t.Fatalf("degraded draft carries listing: %+v", d)
	}
}

func TestListing_Prefill_PartialFields(t *testing.T) {
	f := &fakeFetcher{listing: &scrape.Listing{
		FullName:     present("2021 TestCar"),
		ContactImage: scrape.Field{Status: scrape.Failed, Reason: "decode"},
	}}
	d, err := (&ListingService{Fetcher: f}).Prefill(context.Background(), "https://l/1")
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if d.Vehicle != "2021 TestCar" || d.Price != scrape.NotAvailable || d.HasImage {
		t.Fatalf("draft = %+v", d)
	}
}

func TestListing_Prefill_InvalidURL(t *testing.T) {
	f := &fakeFetcher{}
	_, err := (&ListingService{Fetcher: f}).Prefill(context.Background(), "ftp://x")
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("fetcher must not be called")
	}
}

func TestListing_Image(t *testing.T) {
	if _, err := (&ListingService{}).Image(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("no reader: got %v", err)
	}
	svc := &ListingService{Images: fakeImages{err: os.ErrNotExist}}
	if _, err := svc.Image(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("missing file: got %v", err)
	}
	svc = &ListingService{Images: fakeImages{data: []byte("png")}}
	data, err := svc.Image()
	if err != nil || string(data) != "png" {
		t.Fatalf("Image = %q, %v", data, err)
	}
}

func TestFetchOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":              nil,
		"invalid_url":     scrape.ErrInvalidURL,
		"http_error":      &scrape.FetchError{StatusCode: 404},
		"transport_error": &scrape.FetchError{Err: errors.New("refused")},
		"timeout":         &scrape.FetchError{Err: context.DeadlineExceeded},
		"extract_error":   scrape.ErrNotText,
	}
	for want, err := range cases {
		if got := fetchOutcome(err); got != want {
			t.Fatalf("fetchOutcome(%v) = %q, want %q", err, got, want)
		}
	}
}
