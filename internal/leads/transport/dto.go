// Package transport contains the HTTP DTOs for the leads read surface.
package transport

import (
	"time"

	"pipeline_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// LeadDTO is the lead record as returned to the pipeline UI.
type LeadDTO struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	AssignedAgent  *uuid.UUID `json:"assignedAgentId,omitempty"`
	InterestType   *string    `json:"interestType,omitempty"`
	BudgetMin      *float64   `json:"budgetMin,omitempty"`
	BudgetMax      *float64   `json:"budgetMax,omitempty"`
	PreferredAreas []string   `json:"preferredAreas"`
	LastContactAt  *time.Time `json:"lastContactAt,omitempty"`
	Score          *int       `json:"score"`
	LastScoredAt   *time.Time `json:"lastScoredAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ListResponse wraps the filtered lead list.
type ListResponse struct {
	Leads []LeadDTO `json:"leads"`
	Count int       `json:"count"`
}

// FromLead maps a repository record to the response shape.
func FromLead(lead repository.Lead) LeadDTO {
	areas := lead.PreferredAreas
	if areas == nil {
		areas = []string{}
	}
	return LeadDTO{
		ID:             lead.ID,
		FirstName:      lead.FirstName,
		LastName:       lead.LastName,
		Phone:          lead.Phone,
		Email:          lead.Email,
		AssignedAgent:  lead.AssignedAgent,
		InterestType:   lead.InterestType,
		BudgetMin:      lead.BudgetMin,
		BudgetMax:      lead.BudgetMax,
		PreferredAreas: areas,
		LastContactAt:  lead.LastContactAt,
		Score:          lead.Score,
		LastScoredAt:   lead.LastScoredAt,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
}

// FromLeads maps a list of records, always returning a JSON array.
func FromLeads(leads []repository.Lead) ListResponse {
	out := make([]LeadDTO, 0, len(leads))
	for _, lead := range leads {
		out = append(out, FromLead(lead))
	}
	return ListResponse{Leads: out, Count: len(out)}
}
