package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/links"
	"github.com/tbourn/go-consignment-leads/internal/repo"
	"github.com/tbourn/go-consignment-leads/internal/utils"
)

// ContactInput is a contact as typed by the operator. Price is kept as text
// so locale-formatted amounts such as "10,500,000" can be parsed here.
type ContactInput struct {
	ListingURL  string `json:"listing_url"      validate:"required,http_url,max=2048"`
	Phone       string `json:"phone"            validate:"required,max=20"`
	Name        string `json:"name"             validate:"max=200"`
	Vehicle     string `json:"vehicle"          validate:"required,max=200"`
	Price       string `json:"price"            validate:"required"`
	Description string `json:"description"      validate:"required,max=8000"`
	CampaignID  *uint  `json:"campaign_link_id"`
}

// ContactService manages contacts. Listing URLs are unique; phones are not.
type ContactService struct {
	DB *gorm.DB
}

// build normalizes and validates in. Nothing is written when it fails.
func (s *ContactService) build(in ContactInput) (*domain.Contact, error) {
	in.ListingURL = cleanLine(in.ListingURL)
	in.Phone = normalizePhone(in.Phone)
	in.Name = cleanLine(in.Name)
	in.Vehicle = cleanLine(in.Vehicle)
	in.Description = cleanText(in.Description)
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	if links.Digits(in.Phone) != in.Phone {
		return nil, invalid("phone", "must contain digits only")
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Contact{
		ListingURL:     in.ListingURL,
		Phone:          in.Phone,
		Name:           in.Name,
		Vehicle:        in.Vehicle,
		Price:          price,
		Description:    in.Description,
		CampaignLinkID: in.CampaignID,
	}, nil
}

// Create validates and stores a contact. A listing URL that is already
// registered yields ErrDuplicateListing; an unknown campaign yields
// ErrCampaignNotFound.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	c, err := s.build(in)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkCampaign(ctx, tx, c.CampaignLinkID); err != nil {
			return err
		}
		if err := repo.CreateContact(ctx, tx, c); err != nil {
			if repo.IsUniqueViolation(err) {
				return ErrDuplicateListing
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateListing) {
			contactsRejected.WithLabelValues("duplicate_listing").Inc()
		}
		return nil, storageErr("create contact", err)
	}
	span.SetAttributes(attribute.Int64("contact.id", int64(c.ID)))
	contactsCreated.Inc()
	return c, nil
}

// Get returns one contact.
func (s *ContactService) Get(ctx context.Context, id uint) (*domain.Contact, error) {
	c, err := repo.GetContact(ctx, s.DB, id)
	if err != nil {
		return nil, notFound("get contact", err, ErrContactNotFound)
	}
	return c, nil
}

// Update replaces the editable fields of contact id. A nil CampaignID keeps
// the contact in its current campaign.
func (s *ContactService) Update(ctx context.Context, id uint, in ContactInput) (*domain.Contact, error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("contact.id", int64(id))),
	)
	defer span.End()

	c, err := s.build(in)
	if err != nil {
		return nil, err
	}
	c.ID = id

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetContact(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrContactNotFound
			}
			return err
		}
		if c.CampaignLinkID == nil {
			c.CampaignLinkID = cur.CampaignLinkID
		} else if err := s.checkCampaign(ctx, tx, c.CampaignLinkID); err != nil {
			return err
		}
		if err := repo.UpdateContact(ctx, tx, c); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrContactNotFound
			}
			if repo.IsUniqueViolation(err) {
				return ErrDuplicateListing
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("update contact", err)
	}
	return c, nil
}

// Delete removes contact id. Its export history is kept.
func (s *ContactService) Delete(ctx context.Context, id uint) error {
	if err := repo.DeleteContact(ctx, s.DB, id); err != nil {
		return notFound("delete contact", err, ErrContactNotFound)
	}
	return nil
}

// Query returns the contacts matching q ordered by id.
func (s *ContactService) Query(ctx context.Context, q repo.ContactQuery) ([]domain.Contact, error) {
	out, err := repo.QueryContacts(ctx, s.DB, q)
	if err != nil {
		return nil, storageErr("query contacts", err)
	}
	if out == nil {
		out = []domain.Contact{}
	}
	return out, nil
}

// QueryPage returns one page of the contacts matching q and the total count.
// Invalid page or pageSize values fall back to the first page of 20.
func (s *ContactService) QueryPage(ctx context.Context, q repo.ContactQuery, page, pageSize int) ([]domain.Contact, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total, err := repo.CountContacts(ctx, s.DB, q)
	if err != nil {
		return nil, 0, storageErr("count contacts", err)
	}
	if total == 0 {
		return []domain.Contact{}, 0, nil
	}
	items, err := repo.QueryContactsPage(ctx, s.DB, q, utils.Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, 0, storageErr("query contacts", err)
	}
	return items, total, nil
}

// ListingRegistered reports whether a contact already uses listingURL.
func (s *ContactService) ListingRegistered(ctx context.Context, listingURL string) (bool, error) {
	ok, err := repo.ListingURLExists(ctx, s.DB, cleanLine(listingURL))
	return ok, storageErr("listing lookup", err)
}

func (s *ContactService) checkCampaign(ctx context.Context, tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := repo.GetCampaign(ctx, tx, *id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	return nil
}
