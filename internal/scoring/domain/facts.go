package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// LeadSnapshot is the scoring-relevant projection of a lead. Time-derived
// facts (days since contact, lead age) are computed when the snapshot is
// read so the evaluator itself stays clock-free and deterministic.
type LeadSnapshot struct {
	ID               uuid.UUID
	HasBudget        bool
	BudgetMax        *float64
	HasPreferredArea bool
	HasPhone         bool
	HasEmail         bool
	HasAssignedAgent bool
	InterestDeclared bool
	DaysSinceContact *float64 // nil when the lead was never contacted
	DaysSinceCreated float64
	NoteCount        int

	// Score is the last persisted total; nil means unscored, which is a
	// distinct state from a score of zero.
	Score        *int
	LastScoredAt *time.Time
}

// FactResolver reads one fact off a lead snapshot. Exactly one of Bool or
// Numeric is set, matching the criterion kind the key is meant for. The
// second return reports whether the fact is present on this lead; an absent
// fact never satisfies a criterion.
type FactResolver struct {
	Bool    func(LeadSnapshot) (value bool, present bool)
	Numeric func(LeadSnapshot) (value float64, present bool)
}

// factRegistry maps criterion keys to lead accessors. Adding a new scorable
// fact means adding a row here and exposing the field on LeadSnapshot; the
// evaluator's control flow never changes.
var factRegistry = map[string]FactResolver{
	"hasBudget": {Bool: func(l LeadSnapshot) (bool, bool) {
		return l.HasBudget, true
	}},
	"hasPreferredArea": {Bool: func(l LeadSnapshot) (bool, bool) {
		return l.HasPreferredArea, true
	}},
	"hasPhone": {Bool: func(l LeadSnapshot) (bool, bool) {
		return l.HasPhone, true
	}},
	"hasEmail": {Bool: func(l LeadSnapshot) (bool, bool) {
		return l.HasEmail, true
	}},
	"hasAssignedAgent": {Bool: func(l LeadSnapshot) (bool, bool) {
		return l.HasAssignedAgent, true
	}},
	"interestDeclared": {Bool: func(l LeadSnapshot) (bool, bool) {
		return l.InterestDeclared, true
	}},
	"daysSinceContact": {Numeric: func(l LeadSnapshot) (float64, bool) {
		if l.DaysSinceContact == nil {
			return 0, false
		}
		return *l.DaysSinceContact, true
	}},
	"daysSinceCreated": {Numeric: func(l LeadSnapshot) (float64, bool) {
		return l.DaysSinceCreated, true
	}},
	"budgetMax": {Numeric: func(l LeadSnapshot) (float64, bool) {
		if l.BudgetMax == nil {
			return 0, false
		}
		return *l.BudgetMax, true
	}},
	"noteCount": {Numeric: func(l LeadSnapshot) (float64, bool) {
		return float64(l.NoteCount), true
	}},
}

// KnownFactKeys returns the registered criterion keys, sorted for stable
// display. Configurations may reference unknown keys; those criteria simply
// never match until the fact ships.
func KnownFactKeys() []string {
	keys := make([]string, 0, len(factRegistry))
	for key := range factRegistry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func resolveBool(key string, lead LeadSnapshot) (bool, bool) {
	resolver, ok := factRegistry[key]
	if !ok || resolver.Bool == nil {
		return false, false
	}
	return resolver.Bool(lead)
}

func resolveNumeric(key string, lead LeadSnapshot) (float64, bool) {
	resolver, ok := factRegistry[key]
	if !ok || resolver.Numeric == nil {
		return 0, false
	}
	return resolver.Numeric(lead)
}
