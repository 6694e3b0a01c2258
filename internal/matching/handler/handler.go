// Package handler exposes the property suggestion engine over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"pipeline_crm_backend/internal/matching/service"
	"pipeline_crm_backend/internal/matching/transport"
	"pipeline_crm_backend/platform/httpkit"
	"pipeline_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the suggestion endpoints on the protected group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/leads/:id/suggestions", h.Suggestions)
	protected.POST("/leads/:id/properties", h.AttachProperty)
}

func (h *Handler) Suggestions(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	limit := queryInt(c, "limit", 0)
	minScore := queryInt(c, "minScore", -1)

	result, err := h.svc.SuggestForLead(c.Request.Context(), leadID, limit, minScore)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.FromSuggestionResult(result))
}

func (h *Handler) AttachProperty(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	var req transport.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.AttachProperty(c.Request.Context(), leadID, req.PropertyID, req.MatchType); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.AttachResponse{
		LeadID:     leadID,
		PropertyID: req.PropertyID,
		MatchType:  req.MatchType,
	})
}

// queryInt parses an optional integer query parameter, returning fallback
// when absent or malformed.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
