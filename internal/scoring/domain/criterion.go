// Package domain provides the core scoring rules for the lead quality engine:
// the criterion model, the fact registry, and the pure score evaluator.
package domain

import (
	"fmt"

	"pipeline_crm_backend/platform/apperr"
)

// Kind is the evaluation mode of a criterion.
type Kind string

const (
	// KindBoolean awards the weight when the referenced lead fact is true.
	KindBoolean Kind = "boolean"
	// KindThreshold awards the weight when the referenced numeric lead fact
	// meets or exceeds the criterion threshold.
	KindThreshold Kind = "threshold"
)

// Criterion is one user-editable scoring rule. The key correlates historical
// breakdowns and must never be reused for a different meaning once persisted.
type Criterion struct {
	Key       string
	Label     string
	Kind      Kind
	Weight    int
	Enabled   bool
	Threshold *float64
}

// Config is an immutable snapshot of the scoring configuration. Generation
// increases on every save and marks which rule set produced a score.
type Config struct {
	Generation int64
	Criteria   []Criterion
}

// MaxPossibleScore is the denominator the UI renders: the sum of weights of
// enabled criteria only.
func (c Config) MaxPossibleScore() int {
	total := 0
	for _, criterion := range c.Criteria {
		if criterion.Enabled {
			total += criterion.Weight
		}
	}
	return total
}

// ValidateCriteria enforces the save-time invariants: non-empty unique keys,
// non-negative weights, a known kind, and a threshold value on every
// threshold-kind criterion. An invalid set is rejected wholesale so the
// previously saved configuration stays in effect.
func ValidateCriteria(criteria []Criterion) error {
	if len(criteria) == 0 {
		return apperr.Validation("at least one criterion is required")
	}

	seen := make(map[string]bool, len(criteria))
	for i, criterion := range criteria {
		if criterion.Key == "" {
			return apperr.Validation(fmt.Sprintf("criterion %d: key is required", i))
		}
		if seen[criterion.Key] {
			return apperr.Validation(fmt.Sprintf("duplicate criterion key %q", criterion.Key))
		}
		seen[criterion.Key] = true

		if criterion.Weight < 0 {
			return apperr.Validation(fmt.Sprintf("criterion %q: weight must not be negative", criterion.Key))
		}

		switch criterion.Kind {
		case KindBoolean:
			// A stray threshold on a boolean criterion is ignored, not rejected.
		case KindThreshold:
			if criterion.Threshold == nil {
				return apperr.Validation(fmt.Sprintf("criterion %q: threshold is required for threshold kind", criterion.Key))
			}
		default:
			return apperr.Validation(fmt.Sprintf("criterion %q: unknown kind %q", criterion.Key, criterion.Kind))
		}
	}

	return nil
}
