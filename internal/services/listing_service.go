package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/repo"
	"github.com/tbourn/go-consignment-leads/internal/scrape"
)

// ListingFetcher downloads and extracts one listing page.
type ListingFetcher interface {
	Fetch(ctx context.Context, url string) (*scrape.Listing, error)
}

// ImageReader returns the most recently scraped contact image.
type ImageReader interface {
	Read() ([]byte, error)
}

// Draft is a contact form prefilled from a listing page. Fields the page did
// not yield hold scrape.NotAvailable.
type Draft struct {
	ListingURL        string          `json:"listing_url"`
	Phone             string          `json:"phone"`
	Vehicle           string          `json:"vehicle"`
	Year              string          `json:"year"`
	Price             string          `json:"price"`
	Description       string          `json:"description"`
	HasImage          bool            `json:"has_image"`
	AlreadyRegistered bool            `json:"already_registered"`
	Warning           string          `json:"warning,omitempty"`
	Listing           *scrape.Listing `json:"listing,omitempty"`
}

// ListingService scrapes listing pages for contact prefill.
type ListingService struct {
	DB      *gorm.DB
	Fetcher ListingFetcher
	Images  ImageReader
}

// Fetch scrapes url strictly: fetch failures are returned as
// *scrape.FetchError and a malformed url as a *ValidationError.
func (s *ListingService) Fetch(ctx context.Context, url string) (*scrape.Listing, error) {
	tr := otel.Tracer("services/ListingService")
	ctx, span := tr.Start(ctx, "Fetch",
		trace.WithAttributes(attribute.String("listing.url", url)),
	)
	defer span.End()

	start := time.Now()
	l, err := s.Fetcher.Fetch(ctx, url)
	listingFetchSeconds.Observe(time.Since(start).Seconds())
	listingFetches.WithLabelValues(fetchOutcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		if errors.Is(err, scrape.ErrInvalidURL) {
			return nil, invalid("url", "must be an absolute http(s) URL")
		}
		return nil, err
	}
	return l, nil
}

// Prefill scrapes url and turns the result into a contact draft. Unlike
// Fetch it degrades instead of failing: when the page cannot be fetched
// every field is scrape.NotAvailable and Warning explains why.
func (s *ListingService) Prefill(ctx context.Context, url string) (*Draft, error) {
	u, err := scrape.ParseListingURL(url)
	if err != nil {
		return nil, invalid("url", "must be an absolute http(s) URL")
	}
	d := &Draft{ListingURL: u.String()}

	if s.DB != nil {
		registered, err := repo.ListingURLExists(ctx, s.DB, d.ListingURL)
		if err != nil {
			return nil, storageErr("listing lookup", err)
		}
		d.AlreadyRegistered = registered
	}

	l, err := s.Fetch(ctx, d.ListingURL)
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		log.Warn().Err(err).Str("url", d.ListingURL).Msg("listing prefill degraded")
		d.Warning = err.Error()
		l = &scrape.Listing{}
	} else {
		d.Listing = l
	}

	d.Phone = l.WhatsApp.Or(scrape.NotAvailable)
	d.Vehicle = l.FullName.Or(scrape.NotAvailable)
	d.Year = l.Year.Or(scrape.NotAvailable)
	d.Price = l.Price.Or(scrape.NotAvailable)
	d.Description = l.Description.Or(scrape.NotAvailable)
	d.HasImage = l.ContactImage.OK()
	return d, nil
}

// Image returns the last decoded contact image, or ErrNoImage when nothing
// has been scraped yet.
func (s *ListingService) Image() ([]byte, error) {
	if s.Images == nil {
		return nil, ErrNoImage
	}
	data, err := s.Images.Read()
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoImage
	}
	return data, err
}

func fetchOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, scrape.ErrInvalidURL) {
		return "invalid_url"
	}
	var fe *scrape.FetchError
	if errors.As(err, &fe) {
		switch {
		case fe.StatusCode != 0:
			return "http_error"
		case fe.Timeout():
			return "timeout"
		default:
			return "transport_error"
		}
	}
	return "extract_error"
}
