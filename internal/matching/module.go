// Package matching provides the property suggestion bounded context module.
package matching

import (
	"pipeline_crm_backend/internal/events"
	apphttp "pipeline_crm_backend/internal/http"
	leadsrepo "pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/internal/matching/handler"
	"pipeline_crm_backend/internal/matching/service"
	propsrepo "pipeline_crm_backend/internal/properties/repository"
	"pipeline_crm_backend/platform/config"
	"pipeline_crm_backend/platform/logger"
	"pipeline_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the matching bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the matching module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, cfg *config.Config, log *logger.Logger) *Module {
	leads := leadsrepo.New(pool)
	properties := propsrepo.New(pool)
	svc := service.New(leads, properties, leads, bus, cfg, log)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "matching"
}

// RegisterRoutes mounts suggestion routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
