package domain

// BreakdownEntry explains one enabled criterion's contribution. Entries with
// Met=false are kept so the UI can render what would have helped.
type BreakdownEntry struct {
	Key    string
	Label  string
	Points int
	Met    bool
}

// ScoreResult is the outcome of evaluating one lead against one
// configuration snapshot. Total always equals the sum of breakdown points.
type ScoreResult struct {
	Total       int
	MaxPossible int
	Breakdown   []BreakdownEntry
}

// Evaluate scores a lead against a configuration snapshot. It is a pure
// function: no clock, no randomness, no persistence. Disabled criteria are
// omitted from the breakdown entirely so the rendered maximum matches what
// is shown. A missing or unresolvable fact fails the criterion rather than
// the evaluation; scoring is total over any lead shape.
func Evaluate(lead LeadSnapshot, cfg Config) ScoreResult {
	result := ScoreResult{
		Breakdown: make([]BreakdownEntry, 0, len(cfg.Criteria)),
	}

	for _, criterion := range cfg.Criteria {
		if !criterion.Enabled {
			continue
		}

		met := criterionMet(criterion, lead)
		points := 0
		if met {
			points = criterion.Weight
		}

		result.Total += points
		result.MaxPossible += criterion.Weight
		result.Breakdown = append(result.Breakdown, BreakdownEntry{
			Key:    criterion.Key,
			Label:  criterion.Label,
			Points: points,
			Met:    met,
		})
	}

	return result
}

func criterionMet(criterion Criterion, lead LeadSnapshot) bool {
	switch criterion.Kind {
	case KindBoolean:
		value, present := resolveBool(criterion.Key, lead)
		return present && value
	case KindThreshold:
		if criterion.Threshold == nil {
			return false
		}
		value, present := resolveNumeric(criterion.Key, lead)
		return present && value >= *criterion.Threshold
	default:
		return false
	}
}
