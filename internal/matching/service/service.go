// Package service orchestrates property suggestions for leads: loading the
// lead's stated preferences, ranking candidate properties, and recording
// attachments chosen from the suggestion surface.
package service

import (
	"context"
	"errors"

	"pipeline_crm_backend/internal/events"
	leadsrepo "pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/internal/matching/domain"
	propsrepo "pipeline_crm_backend/internal/properties/repository"
	"pipeline_crm_backend/platform/apperr"
	"pipeline_crm_backend/platform/config"
	"pipeline_crm_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadReader loads the matching input for a lead.
type LeadReader interface {
	GetPreferences(ctx context.Context, leadID uuid.UUID) (domain.LeadPreferences, error)
}

// PropertyLister loads the candidate property set.
type PropertyLister interface {
	ListCandidates(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, propertyID uuid.UUID) (domain.Property, error)
}

// LinkWriter records a lead-property attachment.
type LinkWriter interface {
	AttachProperty(ctx context.Context, leadID, propertyID uuid.UUID, matchType string) error
}

// Service is the matching engine facade.
type Service struct {
	leads      LeadReader
	properties PropertyLister
	links      LinkWriter
	bus        events.Bus
	log        *logger.Logger

	defaultLimit    int
	defaultMinScore int
}

// New creates the matching service.
func New(leads LeadReader, properties PropertyLister, links LinkWriter, bus events.Bus, cfg config.MatchingConfig, log *logger.Logger) *Service {
	return &Service{
		leads:           leads,
		properties:      properties,
		links:           links,
		bus:             bus,
		log:             log,
		defaultLimit:    cfg.GetSuggestionDefaultLimit(),
		defaultMinScore: cfg.GetSuggestionMinScore(),
	}
}

// SuggestForLead ranks the candidate property set against the lead's stated
// preferences. limit <= 0 and minScore < 0 fall back to configured defaults.
// An empty or fully filtered candidate set is a valid empty result.
func (s *Service) SuggestForLead(ctx context.Context, leadID uuid.UUID, limit, minScore int) (domain.SuggestionResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if minScore < 0 {
		minScore = s.defaultMinScore
	}

	prefs, err := s.leads.GetPreferences(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadsrepo.ErrNotFound) {
			return domain.SuggestionResult{}, apperr.NotFound("lead not found")
		}
		return domain.SuggestionResult{}, apperr.Wrap(apperr.KindInternal, "load lead preferences", err)
	}

	candidates, err := s.properties.ListCandidates(ctx)
	if err != nil {
		return domain.SuggestionResult{}, apperr.Wrap(apperr.KindInternal, "list candidate properties", err)
	}

	return domain.Suggest(prefs, candidates, limit, minScore), nil
}

// AttachProperty links a property to a lead. The engine only records the
// choice; it does not re-rank or validate the match quality.
func (s *Service) AttachProperty(ctx context.Context, leadID, propertyID uuid.UUID, matchType string) error {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, propsrepo.ErrNotFound) {
			return apperr.NotFound("property not found")
		}
		return apperr.Wrap(apperr.KindInternal, "load property", err)
	}

	if err := s.links.AttachProperty(ctx, leadID, propertyID, matchType); err != nil {
		return apperr.Wrap(apperr.KindInternal, "attach property", err)
	}

	s.log.Info("property attached to lead", "leadId", leadID, "propertyId", propertyID, "matchType", matchType)

	if s.bus != nil {
		s.bus.Publish(ctx, events.PropertyAttached{
			BaseEvent:  events.NewBaseEvent(),
			LeadID:     leadID,
			PropertyID: propertyID,
			MatchType:  matchType,
		})
	}

	return nil
}
