// Package scoring provides the lead quality scoring bounded context module.
// This file defines the module that encapsulates all scoring setup and route
// registration.
package scoring

import (
	"context"

	"pipeline_crm_backend/internal/events"
	apphttp "pipeline_crm_backend/internal/http"
	leadsrepo "pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/internal/scoring/handler"
	"pipeline_crm_backend/internal/scoring/repository"
	"pipeline_crm_backend/internal/scoring/service"
	"pipeline_crm_backend/platform/config"
	"pipeline_crm_backend/platform/logger"
	"pipeline_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the scoring bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the scoring module. enqueuer may be nil
// when background jobs are not configured; saves then fall back to an
// in-process recompute.
func NewModule(ctx context.Context, pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, cfg *config.Config, log *logger.Logger, enqueuer handler.RecomputeEnqueuer) (*Module, error) {
	repo := repository.New(pool)
	leads := leadsrepo.New(pool)
	svc := service.New(repo, leads, bus, log, cfg.RecomputeWorkers)

	if err := svc.EnsureDefaultCriteria(ctx, cfg.ScoringCriteriaFile); err != nil {
		return nil, err
	}

	// Saving criteria triggers a full recompute so stored scores converge
	// on the new rule set.
	bus.Subscribe(events.ScoringCriteriaSaved{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.ScoringCriteriaSaved)
		if !ok {
			return nil
		}

		if enqueuer != nil {
			return enqueuer.EnqueueScoreRecompute(ctx, e.Generation)
		}

		go func() {
			if _, err := svc.RecomputeAll(context.Background()); err != nil {
				log.Error("recompute after criteria save failed", "error", err, "generation", e.Generation)
			}
		}()
		return nil
	}))

	// Individual lead edits re-evaluate just that lead.
	bus.Subscribe(events.LeadUpdated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadUpdated)
		if !ok {
			return nil
		}
		if _, err := svc.RescoreLead(ctx, e.LeadID); err != nil {
			log.Error("single lead rescore failed", "error", err, "leadId", e.LeadID)
		}
		return nil
	}))

	return &Module{
		handler: handler.New(svc, enqueuer, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scoring"
}

// Service returns the scoring service for the background worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts scoring routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected, ctx.Admin)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
