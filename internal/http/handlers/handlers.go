// Package handlers exposes the consignment services over HTTP. Handlers
// bind input, call a service and translate the result, including 304s and
// file downloads; they hold no business rules.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/repo"
	"github.com/tbourn/go-consignment-leads/internal/scrape"
	"github.com/tbourn/go-consignment-leads/internal/services"
	"github.com/tbourn/go-consignment-leads/internal/utils"
)

//
// Service contracts (context-aware)
//

// CampaignService manages campaign links.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type CampaignService interface {
	Create(ctx context.Context, in services.CampaignInput) (*domain.CampaignLink, error)
	Get(ctx context.Context, id uint) (*domain.CampaignLink, error)
	List(ctx context.Context) ([]domain.CampaignLink, error)
	Update(ctx context.Context, id uint, in services.CampaignInput) (*domain.CampaignLink, error)
	// Delete removes the campaign and detaches its contacts.
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, id uint) (*repo.CampaignStats, error)
	// Workbook renders every campaign link as an xlsx file and returns the
	// bytes with a suggested file name.
	Workbook(ctx context.Context) ([]byte, string, error)
}

// ContactService manages seller contacts.
type ContactService interface {
	Create(ctx context.Context, in services.ContactInput) (*domain.Contact, error)
	Get(ctx context.Context, id uint) (*domain.Contact, error)
	Update(ctx context.Context, id uint, in services.ContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id uint) error
	Query(ctx context.Context, q repo.ContactQuery) ([]domain.Contact, error)
	QueryPage(ctx context.Context, q repo.ContactQuery, page, pageSize int) ([]domain.Contact, int64, error)
}

// TemplateService manages message templates. Update and Delete report
// whether a row was affected.
type TemplateService interface {
	Add(ctx context.Context, text string) (uint, error)
	Update(ctx context.Context, id uint, text string) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]domain.MessageTemplate, error)
}

// ListingService scrapes listing pages.
type ListingService interface {
	// Fetch fails with *scrape.FetchError when the page cannot be retrieved.
	Fetch(ctx context.Context, url string) (*scrape.Listing, error)
	// Prefill never fails on fetch errors; unavailable fields degrade.
	Prefill(ctx context.Context, url string) (*services.Draft, error)
	Image() ([]byte, error)
}

// ExportService builds WhatsApp link exports and serves recorded batches.
type ExportService interface {
	ExportCampaign(ctx context.Context, campaignID uint, filter repo.ContactQuery, opts services.ExportOptions) (*services.Export, error)
	Rebuild(ctx context.Context, batchID string) (*services.Export, error)
	Logs(ctx context.Context, contactID uint) ([]domain.ExportLog, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the consignment API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	campaignSvc CampaignService
	contactSvc  ContactService
	templateSvc TemplateService
	listingSvc  ListingService
	exportSvc   ExportService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(campaigns CampaignService, contacts ContactService, templates TemplateService, listings ListingService, exports ExportService) *Handlers {
	return &Handlers{
		campaignSvc: campaigns,
		contactSvc:  contacts,
		templateSvc: templates,
		listingSvc:  listings,
		exportSvc:   exports,
	}
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// pathID parses the numeric path parameter name. On failure it writes a 400
// and returns ok=false.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
