// Export HTTP handlers.
//
// This file exposes the WhatsApp export endpoints:
//   - POST /campaigns/{id}/exports           (build links, record audit rows)
//   - GET  /exports/{batch}/report.html      (HTML report of a batch)
//   - GET  /exports/{batch}/contacts.xlsx    (workbook of a batch)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and an export with the
// same key was already recorded for the campaign, the handler returns that
// batch instead of writing a new one and sets `Idempotency-Replayed: true`.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-consignment-leads/internal/http/middleware"
	"github.com/tbourn/go-consignment-leads/internal/services"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	htmlContentType = "text/html; charset=utf-8"

	// reportCSP locks the downloaded report down to plain links.
	reportCSP = "default-src 'none'; style-src 'unsafe-inline'"
)

// ExportEntry is one generated link of an export.
type ExportEntry struct {
	ContactID  uint   `json:"contact_id"`
	TemplateID uint   `json:"template_id"`
	Label      string `json:"label"`
	Link       string `json:"link"`
}

// ExportResponse describes a recorded export batch and where to download its
// artifacts.
type ExportResponse struct {
	BatchID      string        `json:"batch_id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Contacts     int           `json:"contacts"`
	Replayed     bool          `json:"replayed"`
	HTMLName     string        `json:"html_name"`
	HTMLURL      string        `json:"html_url"`
	WorkbookName string        `json:"workbook_name"`
	WorkbookURL  string        `json:"workbook_url"`
	Entries      []ExportEntry `json:"entries"`
}

func exportResponse(base string, out *services.Export) ExportResponse {
	entries := make([]ExportEntry, len(out.Entries))
	for i, e := range out.Entries {
		entries[i] = ExportEntry{
			ContactID:  e.Contact.ID,
			TemplateID: e.TemplateID,
			Label:      e.Contact.Label(),
			Link:       e.Link,
		}
	}
	prefix := base + "/exports/" + out.BatchID
	return ExportResponse{
		BatchID:      out.BatchID,
		GeneratedAt:  out.GeneratedAt,
		Contacts:     len(entries),
		Replayed:     out.Replayed,
		HTMLName:     out.HTMLName,
		HTMLURL:      prefix + "/report.html",
		WorkbookName: out.WorkbookName,
		WorkbookURL:  prefix + "/contacts.xlsx",
		Entries:      entries,
	}
}

// CreateExport godoc
// @ID          createExport
// @Summary     Export a campaign as WhatsApp links
// @Description Assigns message templates round-robin to the campaign's contacts (optionally filtered), builds one wa.me link per contact and records one audit row each.
// @Description Supports idempotency via the Idempotency-Key header (same key → same batch).
// @Tags        Exports
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       id               path    int     true  "Campaign ID"  minimum(1)
// @Param       name             query   string  false "Seller name contains"
// @Param       vehicle          query   string  false "Vehicle contains"
// @Param       phone            query   string  false "Phone contains"
//
// @Success     201  {object}  handlers.ExportResponse  "New batch"
// @Success     200  {object}  handlers.ExportResponse  "Replayed batch"
// @Header      200  {string}  Idempotency-Replayed     "true when the batch was replayed"
// @Failure     400  {object}  handlers.ErrorResponse   "No contacts to export"
// @Failure     404  {object}  handlers.ErrorResponse   "Campaign not found"
// @Failure     422  {object}  handlers.ErrorResponse   "No message templates"
// @Failure     500  {object}  handlers.ErrorResponse   "Internal error"
// @Router      /campaigns/{id}/exports [post]
func (h *Handlers) CreateExport(c *gin.Context) {
	campaignID, okID := pathID(c, "id")
	if !okID {
		return
	}

	opts := services.ExportOptions{Scope: services.CampaignScope(campaignID)}
	if key, found := middleware.GetIdempotencyKey(c); found {
		opts.IdempotencyKey = key
	}

	out, err := h.exportSvc.ExportCampaign(c.Request.Context(), campaignID, contactFilter(c), opts)
	if err != nil {
		failService(c, err)
		return
	}

	base := strings.TrimSuffix(c.Request.URL.Path, "/campaigns/"+c.Param("id")+"/exports")
	status := http.StatusCreated
	if out.Replayed {
		c.Header("Idempotency-Replayed", "true")
		status = http.StatusOK
	}
	middleware.LoggerFrom(c).Info().
		Str("batch_id", out.BatchID).
		Uint("campaign_id", campaignID).
		Bool("replayed", out.Replayed).
		Msg("export served")
	ok(c, status, exportResponse(base, out))
}

// rebuild loads the batch named by the :batch path parameter.
func (h *Handlers) rebuild(c *gin.Context) (*services.Export, bool) {
	batch := c.Param("batch")
	if _, err := uuid.Parse(batch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "batch must be a UUID")
		return nil, false
	}
	out, err := h.exportSvc.Rebuild(c.Request.Context(), batch)
	if err != nil {
		failService(c, err)
		return nil, false
	}
	return out, true
}

// ExportReport godoc
// @ID          exportReport
// @Summary     Download the HTML report of an export
// @Description One "CONTACT n" link per exported contact, rebuilt from the audit rows.
// @Tags        Exports
// @Produce     html
//
// @Param       batch  path  string  true  "Batch ID"  format(uuid)
//
// @Success     200  {file}    file
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Batch not found"
// @Router      /exports/{batch}/report.html [get]
func (h *Handlers) ExportReport(c *gin.Context) {
	out, found := h.rebuild(c)
	if !found {
		return
	}
	c.Header("Content-Security-Policy", reportCSP)
	attachment(c, htmlContentType, out.HTMLName, out.HTML)
}

// ExportWorkbook godoc
// @ID          exportWorkbook
// @Summary     Download the contacts workbook of an export
// @Tags        Exports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
// @Param       batch  path  string  true  "Batch ID"  format(uuid)
//
// @Success     200  {file}    file
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Batch not found"
// @Router      /exports/{batch}/contacts.xlsx [get]
func (h *Handlers) ExportWorkbook(c *gin.Context) {
	out, found := h.rebuild(c)
	if !found {
		return
	}
	attachment(c, xlsxContentType, out.WorkbookName, out.Workbook)
}
