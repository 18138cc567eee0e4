package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-consignment-leads/internal/http/middleware"
	"github.com/tbourn/go-consignment-leads/internal/scrape"
	"github.com/tbourn/go-consignment-leads/internal/services"
)

// Error codes returned in ErrorResponse.Code. Clients branch on these, not
// on the message.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	ErrCodeValidation       = "validation_failed"
	ErrCodeDuplicateListing = "duplicate_listing"
	ErrCodeNoTemplates      = "no_templates"
	ErrCodeFetchFailed      = "fetch_failed"
	ErrCodeFetchTimeout     = "fetch_timeout"
	ErrCodeNotAListing      = "not_a_listing"
	ErrCodeStorage          = "storage_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"duplicate_listing"`
	Message   string `json:"message" example:"listing already registered"`
}

// fail writes an ErrorResponse and stops the chain. Server-side failures are
// logged; client errors are left to the access log.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router answer NoRoute and NoMethod in the same shape.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failService maps a service error onto the HTTP error envelope.
//
//	*services.ValidationError      400 validation_failed
//	not-found sentinels            404 not_found
//	services.ErrDuplicateListing   409 duplicate_listing
//	services.ErrNoTemplates        422 no_templates
//	*scrape.FetchError             502 fetch_failed, 504 fetch_timeout
//	scrape.ErrNotText              502 not_a_listing
//	*services.StorageError         500 storage_error
//	anything else                  500 internal_error
func failService(c *gin.Context, err error) {
	var (
		ve *services.ValidationError
		fe *scrape.FetchError
		se *services.StorageError
	)
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeValidation, ve.Error())
	case errors.Is(err, services.ErrCampaignNotFound),
		errors.Is(err, services.ErrContactNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrExportNotFound),
		errors.Is(err, services.ErrNoImage):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateListing):
		fail(c, http.StatusConflict, ErrCodeDuplicateListing, err.Error())
	case errors.Is(err, services.ErrNoTemplates):
		fail(c, http.StatusUnprocessableEntity, ErrCodeNoTemplates, "create at least one message template before exporting")
	case errors.As(err, &fe):
		if fe.Timeout() {
			fail(c, http.StatusGatewayTimeout, ErrCodeFetchTimeout, fe.Error())
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeFetchFailed, fe.Error())
	case errors.Is(err, scrape.ErrNotText):
		fail(c, http.StatusBadGateway, ErrCodeNotAListing, "listing url did not return a web page")
	case errors.As(err, &se):
		fail(c, http.StatusInternalServerError, ErrCodeStorage, se.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
