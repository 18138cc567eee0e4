// Campaign HTTP handlers.
//
// This file exposes REST endpoints for campaign links:
//   - POST   /campaigns             (create)
//   - GET    /campaigns             (list)
//   - GET    /campaigns.xlsx        (download all campaign links)
//   - GET    /campaigns/{id}        (read)
//   - PUT    /campaigns/{id}        (replace)
//   - DELETE /campaigns/{id}        (delete, contacts are detached)
//   - GET    /campaigns/{id}/stats  (contact and export counters)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/services"
)

// ListCampaignsResponse wraps every campaign link.
type ListCampaignsResponse struct {
	Campaigns []domain.CampaignLink `json:"campaigns"`
}

// CreateCampaign godoc
// @ID          createCampaign
// @Summary     Create a campaign link
// @Description Registers a campaign link. created_on defaults to today.
// @Tags        Campaigns
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.CampaignInput  true  "Campaign payload"
//
// @Success     201  {object}  domain.CampaignLink
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /campaigns [post]
func (h *Handlers) CreateCampaign(c *gin.Context) {
	var req services.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cl, err := h.campaignSvc.Create(c.Request.Context(), req)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, cl)
}

// ListCampaigns godoc
// @ID          listCampaigns
// @Summary     List campaign links
// @Tags        Campaigns
// @Produce     json
//
// @Success     200  {object}  handlers.ListCampaignsResponse
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /campaigns [get]
func (h *Handlers) ListCampaigns(c *gin.Context) {
	items, err := h.campaignSvc.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListCampaignsResponse{Campaigns: items})
}

// GetCampaign godoc
// @ID          getCampaign
// @Summary     Get a campaign link
// @Tags        Campaigns
// @Produce     json
//
// @Param       id  path  int  true  "Campaign ID"  minimum(1)
//
// @Success     200  {object}  domain.CampaignLink
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Campaign not found"
// @Router      /campaigns/{id} [get]
func (h *Handlers) GetCampaign(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	cl, err := h.campaignSvc.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cl)
}

// UpdateCampaign godoc
// @ID          updateCampaign
// @Summary     Replace a campaign link
// @Tags        Campaigns
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                     true  "Campaign ID"  minimum(1)
// @Param       body  body  services.CampaignInput  true  "Campaign payload"
//
// @Success     200  {object}  domain.CampaignLink
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Campaign not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /campaigns/{id} [put]
func (h *Handlers) UpdateCampaign(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req services.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cl, err := h.campaignSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cl)
}

// DeleteCampaign godoc
// @ID          deleteCampaign
// @Summary     Delete a campaign link
// @Description Deletes the campaign. Its contacts are kept and detached.
// @Tags        Campaigns
//
// @Param       id  path  int  true  "Campaign ID"  minimum(1)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Campaign not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /campaigns/{id} [delete]
func (h *Handlers) DeleteCampaign(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.campaignSvc.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// CampaignStats godoc
// @ID          campaignStats
// @Summary     Campaign counters
// @Description Number of contacts, how many were exported, export batches and the last export date.
// @Tags        Campaigns
// @Produce     json
//
// @Param       id  path  int  true  "Campaign ID"  minimum(1)
//
// @Success     200  {object}  repo.CampaignStats
// @Failure     404  {object}  handlers.ErrorResponse "Campaign not found"
// @Router      /campaigns/{id}/stats [get]
func (h *Handlers) CampaignStats(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	st, err := h.campaignSvc.Stats(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}

// CampaignsWorkbook godoc
// @ID          campaignsWorkbook
// @Summary     Download campaign links as xlsx
// @Tags        Campaigns
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
// @Success     200  {file}    file
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /campaigns.xlsx [get]
func (h *Handlers) CampaignsWorkbook(c *gin.Context) {
	data, name, err := h.campaignSvc.Workbook(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	attachment(c, xlsxContentType, name, data)
}
