// Message template HTTP handlers.
//
// This file exposes REST endpoints for message templates:
//   - POST   /templates       (add)
//   - GET    /templates       (list in rotation order)
//   - PUT    /templates/{id}  (replace body)
//   - DELETE /templates/{id}  (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/links"
	"github.com/tbourn/go-consignment-leads/internal/services"
)

// TemplateRequest is the JSON payload for adding or replacing a template.
type TemplateRequest struct {
	// Body may reference contact fields as {name}, {vehicle}, {price}... and
	// the operator aliases {nombre}, {auto}, {precio}... Unknown placeholders
	// are sent verbatim.
	Body string `json:"body" example:"Hola {nombre}, ¿sigue disponible el {auto}?"`
}

// TemplateResponse is a stored template together with the placeholders it
// references.
type TemplateResponse struct {
	ID           uint     `json:"id"`
	Body         string   `json:"body"`
	Placeholders []string `json:"placeholders"`
}

func templateResponse(t domain.MessageTemplate) TemplateResponse {
	return TemplateResponse{ID: t.ID, Body: t.Body, Placeholders: links.Placeholders(t.Body)}
}

// ListTemplatesResponse lists templates in rotation order.
type ListTemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// CreateTemplate godoc
// @ID          createTemplate
// @Summary     Add a message template
// @Description Templates rotate in creation order during exports.
// @Tags        Templates
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
//
// @Success     201  {object}  handlers.TemplateResponse
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /templates [post]
func (h *Handlers) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	id, err := h.templateSvc.Add(c.Request.Context(), req.Body)
	if err != nil {
		failService(c, err)
		return
	}
	// The service stores the cleaned body; read it back for the response.
	list, err := h.templateSvc.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	for _, t := range list {
		if t.ID == id {
			ok(c, http.StatusCreated, templateResponse(t))
			return
		}
	}
	ok(c, http.StatusCreated, templateResponse(domain.MessageTemplate{ID: id, Body: req.Body}))
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List message templates
// @Tags        Templates
// @Produce     json
//
// @Success     200  {object}  handlers.ListTemplatesResponse
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	list, err := h.templateSvc.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	out := make([]TemplateResponse, len(list))
	for i, t := range list {
		out[i] = templateResponse(t)
	}
	ok(c, http.StatusOK, ListTemplatesResponse{Templates: out})
}

// UpdateTemplate godoc
// @ID          updateTemplate
// @Summary     Replace a template body
// @Tags        Templates
// @Accept      json
//
// @Param       id    path  int                       true  "Template ID"  minimum(1)
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     404  {object} handlers.ErrorResponse "Template not found"
// @Router      /templates/{id} [put]
func (h *Handlers) UpdateTemplate(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	found, err := h.templateSvc.Update(c.Request.Context(), id, req.Body)
	if err != nil {
		failService(c, err)
		return
	}
	if !found {
		failService(c, services.ErrTemplateNotFound)
		return
	}
	noContent(c)
}

// DeleteTemplate godoc
// @ID          deleteTemplate
// @Summary     Delete a template
// @Description Audit rows keep the id of the deleted template.
// @Tags        Templates
//
// @Param       id  path  int  true  "Template ID"  minimum(1)
//
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Template not found"
// @Router      /templates/{id} [delete]
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	found, err := h.templateSvc.Delete(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	if !found {
		failService(c, services.ErrTemplateNotFound)
		return
	}
	noContent(c)
}
