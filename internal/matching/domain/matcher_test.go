package domain

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }

func availableRental(price float64, location string) Property {
	return Property{
		ID:          uuid.New(),
		Title:       "test listing",
		Price:       price,
		Currency:    "EUR",
		Location:    location,
		ListingType: ListingTypeRent,
		Status:      StatusAvailable,
	}
}

func TestMatch_PerfectMatchScoresFullHundred(t *testing.T) {
	prefs := LeadPreferences{
		InterestType:   InterestRent,
		BudgetMax:      floatPtr(2000),
		PreferredAreas: []string{"Amsterdam"},
	}
	property := availableRental(1500, "Amsterdam Zuid")

	result := Match(prefs, property)

	if result.InterestTypeScore != 30 {
		t.Fatalf("expected interest 30, got %d", result.InterestTypeScore)
	}
	if result.BudgetScore != 35 {
		t.Fatalf("expected budget 35, got %d", result.BudgetScore)
	}
	if result.LocationScore != 25 {
		t.Fatalf("expected location 25, got %d", result.LocationScore)
	}
	if result.AvailabilityScore != 10 {
		t.Fatalf("expected availability 10, got %d", result.AvailabilityScore)
	}
	if result.TotalScore != 100 {
		t.Fatalf("expected total 100, got %d", result.TotalScore)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestMatch_TotalIsSumOfFacets(t *testing.T) {
	prefs := LeadPreferences{
		InterestType:   InterestBuy,
		BudgetMax:      floatPtr(300000),
		PreferredAreas: []string{"Utrecht"},
	}
	property := Property{
		ID:          uuid.New(),
		Price:       320000,
		Location:    "Rotterdam",
		ListingType: ListingTypeSale,
		Status:      StatusUnderOffer,
	}

	result := Match(prefs, property)

	sum := result.InterestTypeScore + result.BudgetScore + result.LocationScore + result.AvailabilityScore
	if result.TotalScore != sum {
		t.Fatalf("expected total %d to equal facet sum %d", result.TotalScore, sum)
	}
}

func TestMatch_DeterministicIncludingReasonOrder(t *testing.T) {
	prefs := LeadPreferences{
		InterestType:   InterestRent,
		BudgetMin:      floatPtr(800),
		BudgetMax:      floatPtr(1600),
		PreferredAreas: []string{"Den Haag", "Leiden"},
	}
	property := availableRental(1200, "Leiden Centrum")

	first := Match(prefs, property)
	second := Match(prefs, property)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if len(first.MatchReasons) == 0 {
		t.Fatalf("expected reasons for a good match")
	}
}

func TestMatch_InterestMismatchZeroesFacetWithWarning(t *testing.T) {
	prefs := LeadPreferences{InterestType: InterestBuy}
	property := availableRental(1500, "Amsterdam")

	result := Match(prefs, property)

	if result.InterestTypeScore != 0 {
		t.Fatalf("expected interest 0 on mismatch, got %d", result.InterestTypeScore)
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected a mismatch warning")
	}
}

func TestMatch_UndeclaredInterestIsNoConstraint(t *testing.T) {
	prefs := LeadPreferences{}
	property := availableRental(1500, "Amsterdam")

	result := Match(prefs, property)

	if result.InterestTypeScore != 30 {
		t.Fatalf("expected full interest facet without declared interest, got %d", result.InterestTypeScore)
	}
}

func TestMatch_NoBudgetIsNoConstraint(t *testing.T) {
	prefs := LeadPreferences{InterestType: InterestRent}
	property := availableRental(99999, "Amsterdam")

	result := Match(prefs, property)

	if result.BudgetScore != 35 {
		t.Fatalf("expected full budget facet without stated budget, got %d", result.BudgetScore)
	}
}

func TestMatch_BudgetFiftyPercentOverBottomsOut(t *testing.T) {
	prefs := LeadPreferences{BudgetMax: floatPtr(1000)}
	property := availableRental(1500, "")

	result := Match(prefs, property)

	if result.BudgetScore != 0 {
		t.Fatalf("expected budget 0 at 50%% overage, got %d", result.BudgetScore)
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected a far-over-budget warning")
	}
}

func TestMatch_BudgetOverageDegradesLinearly(t *testing.T) {
	prefs := LeadPreferences{BudgetMax: floatPtr(1000)}
	// 25% over budget is halfway to the cutoff, so half the facet.
	property := availableRental(1250, "")

	result := Match(prefs, property)

	if result.BudgetScore != 18 {
		t.Fatalf("expected budget 18 at 25%% overage, got %d", result.BudgetScore)
	}
}

func TestMatch_PriceAtBudgetMaxScoresFull(t *testing.T) {
	prefs := LeadPreferences{BudgetMax: floatPtr(1000)}
	property := availableRental(1000, "")

	result := Match(prefs, property)

	if result.BudgetScore != 35 {
		t.Fatalf("expected full budget facet at exactly the maximum, got %d", result.BudgetScore)
	}
}

func TestMatch_NoPreferredAreasMeansNeutralLocation(t *testing.T) {
	prefs := LeadPreferences{InterestType: InterestRent}
	property := availableRental(1500, "Groningen")

	result := Match(prefs, property)

	if result.LocationScore != 0 {
		t.Fatalf("expected location 0 without preferences, got %d", result.LocationScore)
	}
	for _, w := range result.Warnings {
		if w == "outside the preferred areas" {
			t.Fatalf("expected no location warning without preferences")
		}
	}
}

func TestMatch_PartialLocationOverlap(t *testing.T) {
	prefs := LeadPreferences{PreferredAreas: []string{"Amsterdam Noord"}}
	property := availableRental(1500, "Noord Holland")

	result := Match(prefs, property)

	if result.LocationScore != 15 {
		t.Fatalf("expected partial location credit 15, got %d", result.LocationScore)
	}
}

func TestMatch_AvailabilityStates(t *testing.T) {
	cases := []struct {
		status   string
		expected int
	}{
		{StatusAvailable, 10},
		{StatusUnderOffer, 4},
		{StatusReserved, 4},
		{StatusSold, 0},
		{StatusRented, 0},
		{StatusWithdrawn, 0},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			property := availableRental(1500, "")
			property.Status = tc.status

			result := Match(LeadPreferences{}, property)

			if result.AvailabilityScore != tc.expected {
				t.Fatalf("expected availability %d for %s, got %d", tc.expected, tc.status, result.AvailabilityScore)
			}
		})
	}
}

func TestMatch_FacetScoresStayWithinBounds(t *testing.T) {
	prefs := LeadPreferences{
		InterestType:   InterestRent,
		BudgetMin:      floatPtr(500),
		BudgetMax:      floatPtr(1500),
		PreferredAreas: []string{"Amsterdam"},
	}
	prices := []float64{0, 100, 500, 1000, 1500, 1750, 2250, 10000}

	for _, price := range prices {
		result := Match(prefs, availableRental(price, "Amsterdam"))
		if result.BudgetScore < 0 || result.BudgetScore > 35 {
			t.Fatalf("budget facet out of bounds at price %.0f: %d", price, result.BudgetScore)
		}
		if result.TotalScore < 0 || result.TotalScore > 100 {
			t.Fatalf("total out of bounds at price %.0f: %d", price, result.TotalScore)
		}
	}
}
