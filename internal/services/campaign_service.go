package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/report"
	"github.com/tbourn/go-consignment-leads/internal/repo"
)

// CampaignInput carries the editable fields of a campaign link.
type CampaignInput struct {
	GeneralURL  string `json:"general_url" validate:"required,http_url"`
	CreatedOn   string `json:"created_on"  validate:"omitempty,datetime=2006-01-02"`
	Brand       string `json:"brand"       validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=4000"`
}

// CampaignService manages campaign links.
type CampaignService struct {
	DB *gorm.DB

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (s *CampaignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CampaignService) build(in CampaignInput) (*domain.CampaignLink, error) {
	in.GeneralURL = cleanLine(in.GeneralURL)
	in.CreatedOn = cleanLine(in.CreatedOn)
	in.Brand = cleanLine(in.Brand)
	in.Description = cleanText(in.Description)
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	return &domain.CampaignLink{
		GeneralURL:  in.GeneralURL,
		CreatedOn:   in.CreatedOn,
		Brand:       in.Brand,
		Description: in.Description,
	}, nil
}

// Create validates in and stores a new campaign link. A blank creation date
// defaults to today.
func (s *CampaignService) Create(ctx context.Context, in CampaignInput) (*domain.CampaignLink, error) {
	c, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if c.CreatedOn == "" {
		c.CreatedOn = s.now().Format(domain.DateLayout)
	}
	if err := repo.CreateCampaign(ctx, s.DB, c); err != nil {
		return nil, storageErr("create campaign", err)
	}
	return c, nil
}

// Get returns one campaign link.
func (s *CampaignService) Get(ctx context.Context, id uint) (*domain.CampaignLink, error) {
	c, err := repo.GetCampaign(ctx, s.DB, id)
	if err != nil {
		return nil, notFound("get campaign", err, ErrCampaignNotFound)
	}
	return c, nil
}

// List returns every campaign link in creation order.
func (s *CampaignService) List(ctx context.Context) ([]domain.CampaignLink, error) {
	out, err := repo.ListCampaigns(ctx, s.DB)
	return out, storageErr("list campaigns", err)
}

// Update replaces the editable fields of campaign id. A blank creation date
// keeps the stored one.
func (s *CampaignService) Update(ctx context.Context, id uint, in CampaignInput) (*domain.CampaignLink, error) {
	c, err := s.build(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.CreatedOn == "" {
			cur, err := repo.GetCampaign(ctx, tx, id)
			if err != nil {
				return err
			}
			c.CreatedOn = cur.CreatedOn
		}
		return repo.UpdateCampaign(ctx, tx, c)
	})
	if err != nil {
		return nil, notFound("update campaign", err, ErrCampaignNotFound)
	}
	return c, nil
}

// Delete removes campaign id. Its contacts are kept and detached in the same
// transaction.
func (s *CampaignService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/CampaignService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("campaign.id", int64(id))),
	)
	defer span.End()

	var detached int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := repo.DeleteCampaign(ctx, tx, id)
		detached = n
		return err
	})
	if err != nil {
		return notFound("delete campaign", err, ErrCampaignNotFound)
	}
	span.SetAttributes(attribute.Int64("contacts.detached", detached))
	log.Info().Uint("campaign_id", id).Int64("detached_contacts", detached).Msg("campaign deleted")
	return nil
}

// Stats summarises the campaign's contacts and exports.
func (s *CampaignService) Stats(ctx context.Context, id uint) (*repo.CampaignStats, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	st, err := repo.GetCampaignStats(ctx, s.DB, id)
	return st, storageErr("campaign stats", err)
}

// Workbook exports every campaign link as an xlsx file and returns it with
// its download name.
func (s *CampaignService) Workbook(ctx context.Context) ([]byte, string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := report.CampaignsWorkbook(list)
	if err != nil {
		return nil, "", err
	}
	return data, report.CampaignsWorkbookName(s.now()), nil
}
