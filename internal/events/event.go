// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"pipeline_crm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Scoring Domain Events
// =============================================================================

// ScoringCriteriaSaved is published when the admin replaces the scoring
// criterion set. The generation identifies the new configuration snapshot.
type ScoringCriteriaSaved struct {
	BaseEvent
	Generation int64 `json:"generation"`
}

func (e ScoringCriteriaSaved) EventName() string { return "scoring.criteria.saved" }

// LeadUpdated is published when scoring-relevant lead data changes, so the
// lead's quality score can be re-evaluated individually.
type LeadUpdated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// PropertyAttached is published when a property is linked to a lead from the
// suggestion surface.
type PropertyAttached struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	PropertyID uuid.UUID `json:"propertyId"`
	MatchType  string    `json:"matchType"`
}

func (e PropertyAttached) EventName() string { return "matching.property.attached" }
