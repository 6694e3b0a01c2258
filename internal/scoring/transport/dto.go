// Package transport defines the request/response shapes of the scoring API.
package transport

import (
	"pipeline_crm_backend/internal/scoring/domain"

	"github.com/google/uuid"
)

// CriterionDTO is the wire form of one scoring rule.
type CriterionDTO struct {
	Key       string   `json:"key" validate:"required,min=1,max=100"`
	Label     string   `json:"label" validate:"max=200"`
	Kind      string   `json:"kind" validate:"required,oneof=boolean threshold"`
	Weight    int      `json:"weight" validate:"gte=0"`
	Enabled   bool     `json:"enabled"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// SaveCriteriaRequest replaces the whole criterion set.
type SaveCriteriaRequest struct {
	Criteria []CriterionDTO `json:"criteria" validate:"required,min=1,dive"`
}

// PreviewRequest evaluates one lead against an unsaved draft.
type PreviewRequest struct {
	LeadID   uuid.UUID      `json:"leadId" validate:"required"`
	Criteria []CriterionDTO `json:"criteria" validate:"required,min=1,dive"`
}

// CriteriaResponse returns the active configuration.
type CriteriaResponse struct {
	Generation       int64          `json:"generation"`
	MaxPossibleScore int            `json:"maxPossibleScore"`
	Criteria         []CriterionDTO `json:"criteria"`
}

// BreakdownEntryDTO is one line of a score explanation.
type BreakdownEntryDTO struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Points int    `json:"points"`
	Met    bool   `json:"met"`
}

// ScoreResultResponse is an evaluation outcome.
type ScoreResultResponse struct {
	TotalScore       int                 `json:"totalScore"`
	MaxPossibleScore int                 `json:"maxPossibleScore"`
	Breakdown        []BreakdownEntryDTO `json:"breakdown"`
}

// RecomputeResponse reports a bulk recompute run.
type RecomputeResponse struct {
	Generation int64 `json:"generation"`
	Total      int   `json:"total"`
	Updated    int   `json:"updated"`
	Unchanged  int   `json:"unchanged"`
	Failed     int   `json:"failed"`
}

// EnqueueResponse acknowledges a background recompute request.
type EnqueueResponse struct {
	Enqueued bool `json:"enqueued"`
}

// Mappers

// ToDomainCriteria converts wire criteria to domain criteria.
func ToDomainCriteria(dtos []CriterionDTO) []domain.Criterion {
	criteria := make([]domain.Criterion, 0, len(dtos))
	for _, dto := range dtos {
		criteria = append(criteria, domain.Criterion{
			Key:       dto.Key,
			Label:     dto.Label,
			Kind:      domain.Kind(dto.Kind),
			Weight:    dto.Weight,
			Enabled:   dto.Enabled,
			Threshold: dto.Threshold,
		})
	}
	return criteria
}

// FromDomainConfig converts a configuration snapshot to its wire form.
func FromDomainConfig(cfg domain.Config) CriteriaResponse {
	dtos := make([]CriterionDTO, 0, len(cfg.Criteria))
	for _, criterion := range cfg.Criteria {
		dtos = append(dtos, CriterionDTO{
			Key:       criterion.Key,
			Label:     criterion.Label,
			Kind:      string(criterion.Kind),
			Weight:    criterion.Weight,
			Enabled:   criterion.Enabled,
			Threshold: criterion.Threshold,
		})
	}
	return CriteriaResponse{
		Generation:       cfg.Generation,
		MaxPossibleScore: cfg.MaxPossibleScore(),
		Criteria:         dtos,
	}
}

// FromScoreResult converts an evaluation outcome to its wire form.
func FromScoreResult(result domain.ScoreResult) ScoreResultResponse {
	breakdown := make([]BreakdownEntryDTO, 0, len(result.Breakdown))
	for _, entry := range result.Breakdown {
		breakdown = append(breakdown, BreakdownEntryDTO{
			Key:    entry.Key,
			Label:  entry.Label,
			Points: entry.Points,
			Met:    entry.Met,
		})
	}
	return ScoreResultResponse{
		TotalScore:       result.Total,
		MaxPossibleScore: result.MaxPossible,
		Breakdown:        breakdown,
	}
}
