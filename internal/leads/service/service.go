// Package service provides the lead read surface consumed by the pipeline
// UI: the score-filtered list and individual lead lookups.
package service

import (
	"context"
	"errors"

	"pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/platform/apperr"

	"github.com/google/uuid"
)

// LeadStore is the repository surface the service consumes.
type LeadStore interface {
	List(ctx context.Context, filter repository.ListFilter) ([]repository.Lead, error)
	GetByID(ctx context.Context, leadID uuid.UUID) (repository.Lead, error)
}

type Service struct {
	leads LeadStore
}

func New(leads LeadStore) *Service {
	return &Service{leads: leads}
}

// List returns leads matching the filter, best scores first.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Lead, error) {
	leads, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list leads", err)
	}
	return leads, nil
}

// Get returns one lead.
func (s *Service) Get(ctx context.Context, leadID uuid.UUID) (repository.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Lead{}, apperr.NotFound("lead not found")
		}
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "get lead", err)
	}
	return lead, nil
}
