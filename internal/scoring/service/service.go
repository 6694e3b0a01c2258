// Package service orchestrates the lead scoring engine: configuration
// lifecycle, live preview, single-lead rescoring, and the bulk recompute.
package service

import (
	"context"
	"errors"
	"time"

	"pipeline_crm_backend/internal/events"
	leadsrepo "pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/internal/scoring/domain"
	"pipeline_crm_backend/platform/apperr"
	"pipeline_crm_backend/platform/logger"

	"github.com/google/uuid"
)

// ConfigStore persists the scoring configuration singleton.
type ConfigStore interface {
	GetConfig(ctx context.Context) (domain.Config, error)
	ReplaceConfig(ctx context.Context, criteria []domain.Criterion) (domain.Config, error)
	EnsureDefault(ctx context.Context, criteria []domain.Criterion) (bool, error)
}

// LeadStore reads lead scoring snapshots and writes computed scores.
type LeadStore interface {
	GetSnapshot(ctx context.Context, leadID uuid.UUID) (domain.LeadSnapshot, error)
	ListSnapshots(ctx context.Context) ([]domain.LeadSnapshot, error)
	UpdateScore(ctx context.Context, leadID uuid.UUID, score int, scoredAt time.Time) error
}

// Service is the scoring engine facade used by handlers and the worker.
type Service struct {
	configs ConfigStore
	leads   LeadStore
	bus     events.Bus
	log     *logger.Logger
	workers int
}

// New creates the scoring service. workers bounds the parallelism of a bulk
// recompute run.
func New(configs ConfigStore, leads LeadStore, bus events.Bus, log *logger.Logger, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		configs: configs,
		leads:   leads,
		bus:     bus,
		log:     log,
		workers: workers,
	}
}

// Criteria returns the currently active scoring configuration.
func (s *Service) Criteria(ctx context.Context) (domain.Config, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return domain.Config{}, apperr.Wrap(apperr.KindInternal, "load scoring configuration", err)
	}
	return cfg, nil
}

// SaveCriteria validates and installs a whole new criterion set. The new set
// is authoritative; there are no partial merges. On success the saved
// generation is announced on the event bus so a recompute can be scheduled.
func (s *Service) SaveCriteria(ctx context.Context, criteria []domain.Criterion) (domain.Config, error) {
	if err := domain.ValidateCriteria(criteria); err != nil {
		return domain.Config{}, err
	}

	cfg, err := s.configs.ReplaceConfig(ctx, criteria)
	if err != nil {
		return domain.Config{}, apperr.Wrap(apperr.KindInternal, "save scoring configuration", err)
	}

	s.log.Info("scoring criteria saved", "generation", cfg.Generation, "criteria", len(cfg.Criteria))

	if s.bus != nil {
		s.bus.Publish(ctx, events.ScoringCriteriaSaved{
			BaseEvent:  events.NewBaseEvent(),
			Generation: cfg.Generation,
		})
	}

	return cfg, nil
}

// Preview evaluates one persisted lead against an unsaved draft
// configuration. Nothing is written and nothing is cached: draft edits
// change on every keystroke and a stale preview would mislead the admin.
func (s *Service) Preview(ctx context.Context, leadID uuid.UUID, draft []domain.Criterion) (domain.ScoreResult, error) {
	if err := domain.ValidateCriteria(draft); err != nil {
		return domain.ScoreResult{}, err
	}

	snapshot, err := s.leads.GetSnapshot(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadsrepo.ErrNotFound) {
			return domain.ScoreResult{}, apperr.NotFound("lead not found")
		}
		return domain.ScoreResult{}, apperr.Wrap(apperr.KindInternal, "load lead snapshot", err)
	}

	return domain.Evaluate(snapshot, domain.Config{Criteria: draft}), nil
}

// RescoreLead re-evaluates a single lead against the active configuration
// and persists the result when it changed. Used by the LeadUpdated
// subscription so individual edits keep scores fresh between bulk runs.
func (s *Service) RescoreLead(ctx context.Context, leadID uuid.UUID) (bool, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "load scoring configuration", err)
	}

	snapshot, err := s.leads.GetSnapshot(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadsrepo.ErrNotFound) {
			return false, apperr.NotFound("lead not found")
		}
		return false, apperr.Wrap(apperr.KindInternal, "load lead snapshot", err)
	}

	result := domain.Evaluate(snapshot, cfg)
	if snapshot.Score != nil && *snapshot.Score == result.Total {
		return false, nil
	}

	if err := s.leads.UpdateScore(ctx, leadID, result.Total, time.Now().UTC()); err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "persist lead score", err)
	}
	return true, nil
}

// EnsureDefaultCriteria installs the default criterion set when none has
// been saved yet (first boot). The optional criteriaFile overrides the
// built-in defaults.
func (s *Service) EnsureDefaultCriteria(ctx context.Context, criteriaFile string) error {
	criteria := DefaultCriteria()

	if criteriaFile != "" {
		loaded, err := LoadCriteriaFile(criteriaFile)
		if err != nil {
			return err
		}
		criteria = loaded
	}

	if err := domain.ValidateCriteria(criteria); err != nil {
		return err
	}

	installed, err := s.configs.EnsureDefault(ctx, criteria)
	if err != nil {
		return err
	}
	if installed {
		s.log.Info("default scoring criteria installed", "criteria", len(criteria), "fromFile", criteriaFile != "")
	}
	return nil
}
