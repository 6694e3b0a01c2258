package domain

import "sort"

// Suggest matches every candidate, drops results under minScore, sorts by
// total score descending with the property ID as a stable tie-break, and
// truncates to limit only after sorting so later candidates are never
// silently dropped. A limit of zero or less means no truncation.
func Suggest(prefs LeadPreferences, candidates []Property, limit, minScore int) SuggestionResult {
	result := SuggestionResult{
		Suggestions:              make([]RankedSuggestion, 0, len(candidates)),
		TotalAvailableProperties: len(candidates),
	}

	for _, property := range candidates {
		match := Match(prefs, property)
		if match.TotalScore < minScore {
			continue
		}
		result.Suggestions = append(result.Suggestions, RankedSuggestion{
			Property: property,
			Match:    match,
		})
	}

	result.MatchedCount = len(result.Suggestions)

	sort.Slice(result.Suggestions, func(i, j int) bool {
		left, right := result.Suggestions[i], result.Suggestions[j]
		if left.Match.TotalScore != right.Match.TotalScore {
			return left.Match.TotalScore > right.Match.TotalScore
		}
		return left.Property.ID.String() < right.Property.ID.String()
	})

	if limit > 0 && len(result.Suggestions) > limit {
		result.Suggestions = result.Suggestions[:limit]
	}

	return result
}
