// Listing HTTP handlers.
//
// This file exposes the scraping endpoints:
//   - POST /listings/fetch    (strict: fetch failures are errors)
//   - POST /listings/prefill  (degrading: a contact draft is always returned)
//   - GET  /listings/image    (last decoded contact image)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ListingRequest names the listing page to scrape.
type ListingRequest struct {
	URL string `json:"url" binding:"required" example:"https://www.chileautos.cl/vehiculos/detalles/2021-toyota-yaris/CL-AD-123"`
}

func bindListing(c *gin.Context) (string, bool) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "url required")
		return "", false
	}
	return req.URL, true
}

// FetchListing godoc
// @ID          fetchListing
// @Summary     Scrape a listing page
// @Description Downloads the page and extracts vehicle, price, description, WhatsApp number and contact image. Each field carries a status (present, absent, failed).
// @Tags        Listings
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ListingRequest  true  "Listing URL"
//
// @Success     200  {object}  scrape.Listing
// @Failure     400  {object}  handlers.ErrorResponse "Invalid URL"
// @Failure     502  {object}  handlers.ErrorResponse "Listing site error"
// @Failure     504  {object}  handlers.ErrorResponse "Listing site timed out"
// @Router      /listings/fetch [post]
func (h *Handlers) FetchListing(c *gin.Context) {
	url, okURL := bindListing(c)
	if !okURL {
		return
	}
	l, err := h.listingSvc.Fetch(c.Request.Context(), url)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// PrefillListing godoc
// @ID          prefillListing
// @Summary     Prefill a contact form from a listing
// @Description Like fetch, but never fails on site errors: missing fields read "No disponible" and warning explains why. already_registered flags a listing URL that is already stored.
// @Tags        Listings
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ListingRequest  true  "Listing URL"
//
// @Success     200  {object}  services.Draft
// @Failure     400  {object}  handlers.ErrorResponse "Invalid URL"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /listings/prefill [post]
func (h *Handlers) PrefillListing(c *gin.Context) {
	url, okURL := bindListing(c)
	if !okURL {
		return
	}
	d, err := h.listingSvc.Prefill(c.Request.Context(), url)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// ListingImage godoc
// @ID          listingImage
// @Summary     Last scraped contact image
// @Description The image decoded from the most recent fetch. Each fetch overwrites it.
// @Tags        Listings
// @Produce     image/png
//
// @Success     200  {file}    file
// @Failure     404  {object}  handlers.ErrorResponse "No image scraped yet"
// @Router      /listings/image [get]
func (h *Handlers) ListingImage(c *gin.Context) {
	data, err := h.listingSvc.Image()
	if err != nil {
		failService(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
