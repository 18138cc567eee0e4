// Contact HTTP handlers.
//
// This file exposes REST endpoints for seller contacts:
//   - POST   /campaigns/{id}/contacts   (register a contact in a campaign)
//   - GET    /campaigns/{id}/contacts   (filter + paginate, ETag support)
//   - GET    /contacts                  (search across campaigns)
//   - GET    /contacts/{id}             (read)
//   - PUT    /contacts/{id}             (replace)
//   - DELETE /contacts/{id}             (delete)
//   - GET    /contacts/{id}/exports     (export history)
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/repo"
	"github.com/tbourn/go-consignment-leads/internal/services"
)

// ContactRequest is the JSON payload for creating or replacing a contact.
// Price is text so amounts such as "10,500,000" or "$ 9.990" are accepted.
type ContactRequest struct {
	ListingURL  string `json:"listing_url" example:"https://www.chileautos.cl/vehiculos/detalles/2021-toyota-yaris/CL-AD-123"`
	Phone       string `json:"phone" example:"911122233"`
	Name        string `json:"name" example:"Ana"`
	Vehicle     string `json:"vehicle" example:"2021 Toyota Yaris"`
	Price       string `json:"price" example:"10,500,000"`
	Description string `json:"description" example:"Único dueño, mantenciones al día"`
	// CampaignLinkID is ignored on POST /campaigns/{id}/contacts.
	CampaignLinkID *uint `json:"campaign_link_id,omitempty" example:"3"`
}

func (r ContactRequest) input() services.ContactInput {
	return services.ContactInput{
		ListingURL:  r.ListingURL,
		Phone:       r.Phone,
		Name:        r.Name,
		Vehicle:     r.Vehicle,
		Price:       r.Price,
		Description: r.Description,
		CampaignID:  r.CampaignLinkID,
	}
}

// ListContactsResponse wraps a page of contacts and pagination information.
type ListContactsResponse struct {
	Contacts   []domain.Contact `json:"contacts"`
	Pagination Pagination       `json:"pagination"`
}

// SearchContactsResponse wraps an unpaginated contact search.
type SearchContactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

// ContactExportsResponse wraps the export history of one contact.
type ContactExportsResponse struct {
	Exports []domain.ExportLog `json:"exports"`
}

// contactFilter reads the shared name/vehicle/phone query parameters.
func contactFilter(c *gin.Context) repo.ContactQuery {
	return repo.ContactQuery{
		Name:    strings.TrimSpace(c.Query("name")),
		Vehicle: strings.TrimSpace(c.Query("vehicle")),
		Phone:   strings.TrimSpace(c.Query("phone")),
	}
}

// CreateContact godoc
// @ID          createContact
// @Summary     Register a contact in a campaign
// @Description Stores a seller contact. The listing URL must not be registered yet; phones may repeat.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                      true  "Campaign ID"  minimum(1)
// @Param       body  body  handlers.ContactRequest  true  "Contact payload"
//
// @Success     201  {object}  domain.Contact
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed (e.g. invalid price)"
// @Failure     404  {object}  handlers.ErrorResponse  "Campaign not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Listing already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /campaigns/{id}/contacts [post]
func (h *Handlers) CreateContact(c *gin.Context) {
	campaignID, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in := req.input()
	in.CampaignID = &campaignID

	ct, err := h.contactSvc.Create(c.Request.Context(), in)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, ct)
}

// ListCampaignContacts godoc
// @ID          listCampaignContacts
// @Summary     List the contacts of a campaign
// @Description Case-insensitive substring filters on name, vehicle and phone. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Contacts
// @Produce     json
//
// @Param       id             path    int     true  "Campaign ID"                 minimum(1)
// @Param       name           query   string  false "Seller name contains"
// @Param       vehicle        query   string  false "Vehicle contains"
// @Param       phone          query   string  false "Phone contains"
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(200) default(50)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"contacts:3:1f2e\")
//
// @Success     200  {object} handlers.ListContactsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Campaign not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /campaigns/{id}/contacts [get]
func (h *Handlers) ListCampaignContacts(c *gin.Context) {
	ctx := c.Request.Context()
	campaignID, okID := pathID(c, "id")
	if !okID {
		return
	}
	if _, err := h.campaignSvc.Get(ctx, campaignID); err != nil {
		failService(c, err)
		return
	}

	q := contactFilter(c)
	q.CampaignID = &campaignID
	page, pageSize := clampPagination(c)

	items, total, err := h.contactSvc.QueryPage(ctx, q, page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}

	resp := ListContactsResponse{
		Contacts:   items,
		Pagination: newPagination(page, pageSize, total),
	}
	if notModified(c, weakETag("contacts:"+strconv.FormatUint(uint64(campaignID), 10), resp)) {
		return
	}
	ok(c, http.StatusOK, resp)
}

// SearchContacts godoc
// @ID          searchContacts
// @Summary     Search contacts across campaigns
// @Description Used to find a seller again by phone before editing. At least one filter is required.
// @Tags        Contacts
// @Produce     json
//
// @Param       phone    query  string  false "Phone contains"
// @Param       name     query  string  false "Seller name contains"
// @Param       vehicle  query  string  false "Vehicle contains"
//
// @Success     200  {object} handlers.SearchContactsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts [get]
func (h *Handlers) SearchContacts(c *gin.Context) {
	q := contactFilter(c)
	if q.Phone == "" && q.Name == "" && q.Vehicle == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "phone, name or vehicle required")
		return
	}
	items, err := h.contactSvc.Query(c.Request.Context(), q)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, SearchContactsResponse{Contacts: items})
}

// GetContact godoc
// @ID          getContact
// @Summary     Get a contact
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  int  true  "Contact ID"  minimum(1)
//
// @Success     200  {object}  domain.Contact
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Contact not found"
// @Router      /contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	ct, err := h.contactSvc.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ct)
}

// UpdateContact godoc
// @ID          updateContact
// @Summary     Replace a contact
// @Description campaign_link_id moves the contact to another campaign; when omitted the contact stays in its current one.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                      true  "Contact ID"  minimum(1)
// @Param       body  body  handlers.ContactRequest  true  "Contact payload"
//
// @Success     200  {object}  domain.Contact
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Contact or campaign not found"
// @Failure     409  {object}  handlers.ErrorResponse "Listing already registered"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [put]
func (h *Handlers) UpdateContact(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ct, err := h.contactSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ct)
}

// DeleteContact godoc
// @ID          deleteContact
// @Summary     Delete a contact
// @Description Export audit rows referencing the contact are kept.
// @Tags        Contacts
//
// @Param       id  path  int  true  "Contact ID"  minimum(1)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Router      /contacts/{id} [delete]
func (h *Handlers) DeleteContact(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.contactSvc.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ContactExports godoc
// @ID          contactExports
// @Summary     Export history of a contact
// @Description Audit rows (template used, link, date, batch) oldest first.
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  int  true  "Contact ID"  minimum(1)
//
// @Success     200  {object}  handlers.ContactExportsResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id}/exports [get]
func (h *Handlers) ContactExports(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	logs, err := h.exportSvc.Logs(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ContactExportsResponse{Exports: logs})
}
