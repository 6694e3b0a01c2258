// Package handler exposes the scoring engine over HTTP.
package handler

import (
	"context"
	"net/http"

	"pipeline_crm_backend/internal/scoring/service"
	"pipeline_crm_backend/internal/scoring/transport"
	"pipeline_crm_backend/platform/httpkit"
	"pipeline_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// RecomputeEnqueuer schedules a background bulk recompute. Nil when the
// deployment runs without Redis; the synchronous endpoint still works.
type RecomputeEnqueuer interface {
	EnqueueScoreRecompute(ctx context.Context, generation int64) error
}

type Handler struct {
	svc      *service.Service
	enqueuer RecomputeEnqueuer
	val      *validator.Validator
}

func New(svc *service.Service, enqueuer RecomputeEnqueuer, val *validator.Validator) *Handler {
	return &Handler{svc: svc, enqueuer: enqueuer, val: val}
}

// RegisterRoutes mounts read endpoints on the protected group and
// configuration writes plus recompute on the admin group.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/scoring/criteria", h.GetCriteria)
	protected.POST("/scoring/preview", h.Preview)

	admin.PUT("/scoring/criteria", h.SaveCriteria)
	admin.POST("/scoring/recompute", h.Recompute)
	admin.POST("/scoring/recompute/enqueue", h.EnqueueRecompute)
}

func (h *Handler) GetCriteria(c *gin.Context) {
	cfg, err := h.svc.Criteria(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromDomainConfig(cfg))
}

func (h *Handler) SaveCriteria(c *gin.Context) {
	var req transport.SaveCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	cfg, err := h.svc.SaveCriteria(c.Request.Context(), transport.ToDomainCriteria(req.Criteria))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.FromDomainConfig(cfg))
}

func (h *Handler) Preview(c *gin.Context) {
	var req transport.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Preview(c.Request.Context(), req.LeadID, transport.ToDomainCriteria(req.Criteria))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.FromScoreResult(result))
}

func (h *Handler) Recompute(c *gin.Context) {
	result, err := h.svc.RecomputeAll(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.RecomputeResponse{
		Generation: result.Generation,
		Total:      result.Total,
		Updated:    result.Updated,
		Unchanged:  result.Unchanged,
		Failed:     result.Failed,
	})
}

func (h *Handler) EnqueueRecompute(c *gin.Context) {
	if h.enqueuer == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "background jobs not configured", nil)
		return
	}

	cfg, err := h.svc.Criteria(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	if err := h.enqueuer.EnqueueScoreRecompute(c.Request.Context(), cfg.Generation); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusAccepted, transport.EnqueueResponse{Enqueued: true})
}
