// Package transport contains the HTTP DTOs for the matching module.
package transport

import (
	"time"

	"pipeline_crm_backend/internal/matching/domain"

	"github.com/google/uuid"
)

// PropertyDTO is the property projection returned with each suggestion.
type PropertyDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Location    string    `json:"location"`
	ListingType string    `json:"listingType"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Area        *float64  `json:"areaSqm,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MatchDTO exposes the per-facet breakdown alongside the total.
type MatchDTO struct {
	InterestTypeScore int      `json:"interestTypeScore"`
	BudgetScore       int      `json:"budgetScore"`
	LocationScore     int      `json:"locationScore"`
	AvailabilityScore int      `json:"availabilityScore"`
	TotalScore        int      `json:"totalScore"`
	MatchReasons      []string `json:"matchReasons"`
	Warnings          []string `json:"warnings"`
}

// SuggestionDTO is one ranked suggestion.
type SuggestionDTO struct {
	Property PropertyDTO `json:"property"`
	Match    MatchDTO    `json:"match"`
}

// SuggestionsResponse is the full suggestion listing for a lead.
type SuggestionsResponse struct {
	Suggestions              []SuggestionDTO `json:"suggestions"`
	MatchedCount             int             `json:"matchedCount"`
	TotalAvailableProperties int             `json:"totalAvailableProperties"`
}

// AttachRequest links a property to a lead.
type AttachRequest struct {
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	MatchType  string    `json:"matchType" validate:"required,oneof=suggested manual"`
}

// AttachResponse confirms a recorded link.
type AttachResponse struct {
	LeadID     uuid.UUID `json:"leadId"`
	PropertyID uuid.UUID `json:"propertyId"`
	MatchType  string    `json:"matchType"`
}

// FromSuggestionResult maps the domain result to the response shape.
// Suggestions is always a JSON array, never null.
func FromSuggestionResult(res domain.SuggestionResult) SuggestionsResponse {
	out := SuggestionsResponse{
		Suggestions:              make([]SuggestionDTO, 0, len(res.Suggestions)),
		MatchedCount:             res.MatchedCount,
		TotalAvailableProperties: res.TotalAvailableProperties,
	}
	for _, s := range res.Suggestions {
		out.Suggestions = append(out.Suggestions, SuggestionDTO{
			Property: fromProperty(s.Property),
			Match:    fromMatch(s.Match),
		})
	}
	return out
}

func fromProperty(p domain.Property) PropertyDTO {
	return PropertyDTO{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Currency:    p.Currency,
		Location:    p.Location,
		ListingType: p.ListingType,
		Type:        p.Type,
		Status:      p.Status,
		Bedrooms:    p.Bedrooms,
		Area:        p.Area,
		CreatedAt:   p.CreatedAt,
	}
}

func fromMatch(m domain.MatchResult) MatchDTO {
	reasons := m.MatchReasons
	if reasons == nil {
		reasons = []string{}
	}
	warnings := m.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return MatchDTO{
		InterestTypeScore: m.InterestTypeScore,
		BudgetScore:       m.BudgetScore,
		LocationScore:     m.LocationScore,
		AvailabilityScore: m.AvailabilityScore,
		TotalScore:        m.TotalScore,
		MatchReasons:      reasons,
		Warnings:          warnings,
	}
}
