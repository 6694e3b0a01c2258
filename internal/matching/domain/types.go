// Package domain provides the property matching rules for the suggestion
// engine: the facet matcher and the ranker. Everything here is pure and
// safe to call concurrently.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Listing types and statuses as stored on properties.
const (
	ListingTypeRent = "rent"
	ListingTypeSale = "sale"

	StatusAvailable  = "available"
	StatusUnderOffer = "under_offer"
	StatusReserved   = "reserved"
	StatusSold       = "sold"
	StatusRented     = "rented"
	StatusWithdrawn  = "withdrawn"
)

// Lead interest types. "buy" aligns with "sale" listings.
const (
	InterestBuy  = "buy"
	InterestRent = "rent"
)

// Property is the matching-relevant projection of a property record.
type Property struct {
	ID          uuid.UUID
	Title       string
	Price       float64
	Currency    string
	Location    string
	ListingType string
	Type        string
	Status      string
	Bedrooms    *int
	Area        *float64
	CreatedAt   time.Time
}

// LeadPreferences is the matching input stated by the lead. All fields are
// optional; an absent preference is a missing constraint, never a mismatch.
type LeadPreferences struct {
	InterestType   string
	BudgetMin      *float64
	BudgetMax      *float64
	PreferredAreas []string
}

// MatchResult is the auditable outcome of matching one lead against one
// property: four bounded facet scores plus human-readable justifications.
// Reasons and warnings are appended in facet order (interest, budget,
// location, availability) so identical inputs produce identical output.
type MatchResult struct {
	InterestTypeScore int
	BudgetScore       int
	LocationScore     int
	AvailabilityScore int
	TotalScore        int
	MatchReasons      []string
	Warnings          []string
}

// RankedSuggestion pairs a property with its match result.
type RankedSuggestion struct {
	Property Property
	Match    MatchResult
}

// SuggestionResult is the ranker output. TotalAvailableProperties is the
// candidate set size before the minimum-score filter, MatchedCount the size
// after filtering but before truncation, so callers can distinguish
// "nothing matched" from "showing top N of many".
type SuggestionResult struct {
	Suggestions              []RankedSuggestion
	MatchedCount             int
	TotalAvailableProperties int
}
