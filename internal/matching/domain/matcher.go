package domain

import (
	"fmt"
	"math"
	"strings"
)

// Facet maxima. The four facets are independent and sum to at most 100.
const (
	maxInterestScore     = 30
	maxBudgetScore       = 35
	maxLocationScore     = 25
	maxAvailabilityScore = 10

	// budgetOverageLimit is the relative distance outside the budget range
	// beyond which the budget facet bottoms out at zero.
	budgetOverageLimit = 0.5

	// comfortableBudgetRatio marks the share of budgetMax under which a
	// property counts as comfortably within budget.
	comfortableBudgetRatio = 0.9

	partialLocationScore = 15
	softAvailableScore   = 4
)

// Match scores one property against a lead's stated preferences. Pure and
// deterministic: identical inputs yield byte-identical results, including
// reason and warning ordering.
func Match(prefs LeadPreferences, property Property) MatchResult {
	var result MatchResult

	result.InterestTypeScore = matchInterest(prefs, property, &result)
	result.BudgetScore = matchBudget(prefs, property, &result)
	result.LocationScore = matchLocation(prefs, property, &result)
	result.AvailabilityScore = matchAvailability(prefs, property, &result)

	result.TotalScore = result.InterestTypeScore + result.BudgetScore +
		result.LocationScore + result.AvailabilityScore

	return result
}

// matchInterest aligns the lead's interest with the listing type: buy wants
// sale, rent wants rent. A mismatch zeroes the facet but does not exclude
// the property, so the ranker can still surface the closest candidates when
// nothing aligns. A lead without a declared interest has no constraint.
func matchInterest(prefs LeadPreferences, property Property, result *MatchResult) int {
	interest := strings.ToLower(strings.TrimSpace(prefs.InterestType))
	if interest == "" {
		return maxInterestScore
	}

	wanted := ListingTypeRent
	if interest == InterestBuy {
		wanted = ListingTypeSale
	}

	if property.ListingType == wanted {
		result.MatchReasons = append(result.MatchReasons,
			fmt.Sprintf("listing type matches interest to %s", interest))
		return maxInterestScore
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("listed for %s but lead wants to %s", property.ListingType, interest))
	return 0
}

// matchBudget scores proximity of the price to the stated budget range.
// Inside the range scores full points, degrading linearly with relative
// distance outside it and reaching zero at 50% beyond a bound. No stated
// budget means no constraint and full points.
func matchBudget(prefs LeadPreferences, property Property, result *MatchResult) int {
	min := prefs.BudgetMin
	max := prefs.BudgetMax
	if min == nil && max == nil {
		return maxBudgetScore
	}

	price := property.Price

	if max != nil && price > *max {
		overage := (price - *max) / *max
		if overage >= budgetOverageLimit {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("price %.0f far exceeds budget of %.0f", price, *max))
			return 0
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("price %.0f is %.0f%% over budget", price, overage*100))
		return scaleScore(maxBudgetScore, 1-overage/budgetOverageLimit)
	}

	if min != nil && price < *min {
		shortfall := (*min - price) / *min
		if shortfall >= budgetOverageLimit {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("price %.0f is far below the stated minimum of %.0f", price, *min))
			return 0
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("price %.0f is below the stated minimum of %.0f", price, *min))
		return scaleScore(maxBudgetScore, 1-shortfall/budgetOverageLimit)
	}

	if max != nil && price <= *max*comfortableBudgetRatio {
		result.MatchReasons = append(result.MatchReasons, "comfortably within budget")
	} else if max == nil {
		result.MatchReasons = append(result.MatchReasons, "meets the stated minimum budget")
	}
	return maxBudgetScore
}

// matchLocation gives full credit when the property location contains one of
// the preferred area keywords, partial credit for a word-level overlap, and
// zero otherwise. An empty preference list is no constraint: zero without
// penalty language.
func matchLocation(prefs LeadPreferences, property Property, result *MatchResult) int {
	areas := make([]string, 0, len(prefs.PreferredAreas))
	for _, area := range prefs.PreferredAreas {
		trimmed := strings.ToLower(strings.TrimSpace(area))
		if trimmed != "" {
			areas = append(areas, trimmed)
		}
	}
	if len(areas) == 0 {
		return 0
	}

	location := strings.ToLower(property.Location)

	for _, area := range areas {
		if strings.Contains(location, area) {
			result.MatchReasons = append(result.MatchReasons,
				fmt.Sprintf("located in preferred area %q", area))
			return maxLocationScore
		}
	}

	for _, area := range areas {
		for _, word := range strings.Fields(area) {
			if len(word) >= 4 && strings.Contains(location, word) {
				result.MatchReasons = append(result.MatchReasons,
					fmt.Sprintf("close to preferred area %q", area))
				return partialLocationScore
			}
		}
	}

	result.Warnings = append(result.Warnings, "outside the preferred areas")
	return 0
}

// matchAvailability scores the property status: full for available, partial
// for soft-available states still worth showing, zero for terminal states.
func matchAvailability(_ LeadPreferences, property Property, result *MatchResult) int {
	switch strings.ToLower(strings.TrimSpace(property.Status)) {
	case StatusAvailable:
		result.MatchReasons = append(result.MatchReasons, "available now")
		return maxAvailabilityScore
	case StatusUnderOffer, StatusReserved:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("currently %s", strings.ReplaceAll(property.Status, "_", " ")))
		return softAvailableScore
	default:
		result.Warnings = append(result.Warnings, "no longer available")
		return 0
	}
}

func scaleScore(max int, factor float64) int {
	if factor <= 0 {
		return 0
	}
	if factor >= 1 {
		return max
	}
	return int(math.Round(float64(max) * factor))
}
