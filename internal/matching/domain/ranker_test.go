package domain

import (
	"testing"

	"github.com/google/uuid"
)

func rankingPrefs() LeadPreferences {
	return LeadPreferences{
		InterestType:   InterestRent,
		BudgetMax:      floatPtr(1000),
		PreferredAreas: []string{"amsterdam"},
	}
}

func TestSuggest_FiltersSortsAndTruncates(t *testing.T) {
	prefs := rankingPrefs()

	low := Property{ID: uuid.New(), Price: 1500, Location: "rotterdam", ListingType: ListingTypeSale, Status: StatusUnderOffer}
	high := Property{ID: uuid.New(), Price: 800, Location: "amsterdam", ListingType: ListingTypeRent, Status: StatusAvailable}
	mid := Property{ID: uuid.New(), Price: 1250, Location: "rotterdam", ListingType: ListingTypeRent, Status: StatusAvailable}

	result := Suggest(prefs, []Property{low, high, mid}, 2, 20)

	if result.TotalAvailableProperties != 3 {
		t.Fatalf("expected 3 total candidates, got %d", result.TotalAvailableProperties)
	}
	if result.MatchedCount != 2 {
		t.Fatalf("expected 2 matches above threshold, got %d", result.MatchedCount)
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions after truncation, got %d", len(result.Suggestions))
	}
	if result.Suggestions[0].Property.ID != high.ID {
		t.Fatalf("expected highest score first")
	}
	if result.Suggestions[1].Property.ID != mid.ID {
		t.Fatalf("expected mid score second")
	}
	if result.Suggestions[0].Match.TotalScore < result.Suggestions[1].Match.TotalScore {
		t.Fatalf("suggestions not sorted by score descending")
	}
}

func TestSuggest_TruncationHappensAfterSorting(t *testing.T) {
	prefs := rankingPrefs()

	// The best candidate appears last in the input; a limit of 1 must
	// still surface it.
	weak := Property{ID: uuid.New(), Price: 1250, Location: "rotterdam", ListingType: ListingTypeRent, Status: StatusAvailable}
	best := Property{ID: uuid.New(), Price: 800, Location: "amsterdam", ListingType: ListingTypeRent, Status: StatusAvailable}

	result := Suggest(prefs, []Property{weak, best}, 1, 0)

	if len(result.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
	}
	if result.Suggestions[0].Property.ID != best.ID {
		t.Fatalf("expected the best candidate to survive truncation")
	}
	if result.MatchedCount != 2 {
		t.Fatalf("expected matched count before truncation, got %d", result.MatchedCount)
	}
}

func TestSuggest_EqualScoresTieBreakOnPropertyID(t *testing.T) {
	prefs := rankingPrefs()

	a := Property{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Price: 800, Location: "amsterdam", ListingType: ListingTypeRent, Status: StatusAvailable}
	b := Property{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Price: 800, Location: "amsterdam", ListingType: ListingTypeRent, Status: StatusAvailable}

	forward := Suggest(prefs, []Property{a, b}, 0, 0)
	reversed := Suggest(prefs, []Property{b, a}, 0, 0)

	if forward.Suggestions[0].Property.ID != a.ID || reversed.Suggestions[0].Property.ID != a.ID {
		t.Fatalf("expected input order not to affect tie-break ordering")
	}
}

func TestSuggest_EmptyCandidateSetIsValidEmptyResult(t *testing.T) {
	result := Suggest(rankingPrefs(), nil, 10, 30)

	if result.Suggestions == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(result.Suggestions) != 0 || result.MatchedCount != 0 || result.TotalAvailableProperties != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestSuggest_ZeroLimitMeansNoTruncation(t *testing.T) {
	prefs := rankingPrefs()
	candidates := make([]Property, 0, 5)
	for i := 0; i < 5; i++ {
		candidates = append(candidates, Property{ID: uuid.New(), Price: 800, Location: "amsterdam", ListingType: ListingTypeRent, Status: StatusAvailable})
	}

	result := Suggest(prefs, candidates, 0, 0)

	if len(result.Suggestions) != 5 {
		t.Fatalf("expected all candidates without a limit, got %d", len(result.Suggestions))
	}
}
