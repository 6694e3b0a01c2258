// Package handler exposes the lead read surface over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/internal/leads/service"
	"pipeline_crm_backend/internal/leads/transport"
	"pipeline_crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the lead endpoints on the protected group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/leads", h.List)
	protected.GET("/leads/:id", h.Get)
}

func (h *Handler) List(c *gin.Context) {
	filter := repository.ListFilter{
		ScoreMin: queryIntPtr(c, "scoreMin"),
		ScoreMax: queryIntPtr(c, "scoreMax"),
		Unscored: c.Query("unscored") == "true",
	}
	if v := queryIntPtr(c, "limit"); v != nil {
		filter.Limit = *v
	}
	if v := queryIntPtr(c, "offset"); v != nil {
		filter.Offset = *v
	}

	leads, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.FromLeads(leads))
}

func (h *Handler) Get(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), leadID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.FromLead(lead))
}

// queryIntPtr parses an optional integer query parameter, nil when absent
// or malformed.
func queryIntPtr(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
