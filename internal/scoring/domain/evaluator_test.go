package domain

import "testing"

func floatPtr(v float64) *float64 { return &v }

func budgetAndRecencyCriteria() []Criterion {
	return []Criterion{
		{Key: "hasBudget", Label: "Budget provided", Kind: KindBoolean, Weight: 20, Enabled: true},
		{Key: "daysSinceContact", Label: "Contacted recently", Kind: KindThreshold, Weight: 15, Enabled: true, Threshold: floatPtr(30)},
	}
}

func TestEvaluate_TotalIsSumOfBreakdownPoints(t *testing.T) {
	lead := LeadSnapshot{
		HasBudget:        true,
		HasPhone:         true,
		InterestDeclared: true,
		DaysSinceContact: floatPtr(45),
		NoteCount:        3,
	}
	cfg := Config{Criteria: []Criterion{
		{Key: "hasBudget", Label: "Budget provided", Kind: KindBoolean, Weight: 20, Enabled: true},
		{Key: "hasPhone", Label: "Phone on file", Kind: KindBoolean, Weight: 10, Enabled: true},
		{Key: "hasEmail", Label: "Email on file", Kind: KindBoolean, Weight: 5, Enabled: true},
		{Key: "noteCount", Label: "Engaged lead", Kind: KindThreshold, Weight: 10, Enabled: true, Threshold: floatPtr(2)},
	}}

	result := Evaluate(lead, cfg)

	sum := 0
	for _, entry := range result.Breakdown {
		sum += entry.Points
	}
	if result.Total != sum {
		t.Fatalf("expected total %d to equal breakdown sum %d", result.Total, sum)
	}
	if result.Total != 40 {
		t.Fatalf("expected total 40, got %d", result.Total)
	}
	if result.MaxPossible != 45 {
		t.Fatalf("expected max possible 45, got %d", result.MaxPossible)
	}
}

func TestEvaluate_BudgetAndRecencyExample(t *testing.T) {
	lead := LeadSnapshot{
		HasBudget:        true,
		DaysSinceContact: floatPtr(45),
	}
	cfg := Config{Criteria: budgetAndRecencyCriteria()}

	result := Evaluate(lead, cfg)

	if result.Total != 35 {
		t.Fatalf("expected total 35, got %d", result.Total)
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(result.Breakdown))
	}
	if !result.Breakdown[0].Met || result.Breakdown[0].Points != 20 {
		t.Fatalf("expected hasBudget met with 20 points, got met=%v points=%d", result.Breakdown[0].Met, result.Breakdown[0].Points)
	}
	if !result.Breakdown[1].Met || result.Breakdown[1].Points != 15 {
		t.Fatalf("expected daysSinceContact met with 15 points, got met=%v points=%d", result.Breakdown[1].Met, result.Breakdown[1].Points)
	}
}

func TestEvaluate_DisabledCriterionOmittedFromBreakdownAndMax(t *testing.T) {
	lead := LeadSnapshot{HasBudget: true, HasPhone: true}
	cfg := Config{Criteria: []Criterion{
		{Key: "hasBudget", Label: "Budget provided", Kind: KindBoolean, Weight: 20, Enabled: true},
		{Key: "hasPhone", Label: "Phone on file", Kind: KindBoolean, Weight: 10, Enabled: false},
	}}

	result := Evaluate(lead, cfg)

	if result.Total != 20 {
		t.Fatalf("expected total 20, got %d", result.Total)
	}
	if result.MaxPossible != 20 {
		t.Fatalf("expected max possible 20, got %d", result.MaxPossible)
	}
	if len(result.Breakdown) != 1 {
		t.Fatalf("expected disabled criterion omitted, got %d entries", len(result.Breakdown))
	}
	if result.Breakdown[0].Key != "hasBudget" {
		t.Fatalf("expected only hasBudget in breakdown, got %q", result.Breakdown[0].Key)
	}
}

func TestEvaluate_MissingFactFailsCriterionNotEvaluation(t *testing.T) {
	lead := LeadSnapshot{} // never contacted, DaysSinceContact nil
	cfg := Config{Criteria: budgetAndRecencyCriteria()}

	result := Evaluate(lead, cfg)

	if result.Total != 0 {
		t.Fatalf("expected total 0, got %d", result.Total)
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(result.Breakdown))
	}
	for _, entry := range result.Breakdown {
		if entry.Met {
			t.Fatalf("expected criterion %q unmet, got met", entry.Key)
		}
		if entry.Points != 0 {
			t.Fatalf("expected criterion %q to award 0 points, got %d", entry.Key, entry.Points)
		}
	}
}

func TestEvaluate_UnknownKeyNeverMatches(t *testing.T) {
	lead := LeadSnapshot{HasBudget: true}
	cfg := Config{Criteria: []Criterion{
		{Key: "hasSolarPanels", Label: "Future fact", Kind: KindBoolean, Weight: 10, Enabled: true},
	}}

	result := Evaluate(lead, cfg)

	if result.Total != 0 {
		t.Fatalf("expected total 0 for unknown fact key, got %d", result.Total)
	}
	if result.MaxPossible != 10 {
		t.Fatalf("expected unknown key still counted in max possible, got %d", result.MaxPossible)
	}
}

func TestEvaluate_ThresholdBoundaryIsInclusive(t *testing.T) {
	lead := LeadSnapshot{DaysSinceContact: floatPtr(30)}
	cfg := Config{Criteria: []Criterion{
		{Key: "daysSinceContact", Label: "Contacted recently", Kind: KindThreshold, Weight: 15, Enabled: true, Threshold: floatPtr(30)},
	}}

	result := Evaluate(lead, cfg)

	if result.Total != 15 {
		t.Fatalf("expected value equal to threshold to match, got total %d", result.Total)
	}
}

func TestEvaluate_DeterministicForSameInputs(t *testing.T) {
	lead := LeadSnapshot{HasBudget: true, NoteCount: 5, DaysSinceContact: floatPtr(12)}
	cfg := Config{Criteria: []Criterion{
		{Key: "hasBudget", Label: "Budget provided", Kind: KindBoolean, Weight: 20, Enabled: true},
		{Key: "noteCount", Label: "Engaged lead", Kind: KindThreshold, Weight: 10, Enabled: true, Threshold: floatPtr(2)},
	}}

	first := Evaluate(lead, cfg)
	second := Evaluate(lead, cfg)

	if first.Total != second.Total || len(first.Breakdown) != len(second.Breakdown) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	for i := range first.Breakdown {
		if first.Breakdown[i] != second.Breakdown[i] {
			t.Fatalf("breakdown entry %d differs: %+v vs %+v", i, first.Breakdown[i], second.Breakdown[i])
		}
	}
}

func TestValidateCriteria_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		criteria []Criterion
	}{
		{"empty set", nil},
		{"missing key", []Criterion{
			{Label: "No key", Kind: KindBoolean, Weight: 10, Enabled: true},
		}},
		{"duplicate key", []Criterion{
			{Key: "hasBudget", Label: "A", Kind: KindBoolean, Weight: 10, Enabled: true},
			{Key: "hasBudget", Label: "B", Kind: KindBoolean, Weight: 5, Enabled: true},
		}},
		{"negative weight", []Criterion{
			{Key: "hasBudget", Label: "A", Kind: KindBoolean, Weight: -1, Enabled: true},
		}},
		{"threshold kind without threshold", []Criterion{
			{Key: "noteCount", Label: "A", Kind: KindThreshold, Weight: 10, Enabled: true},
		}},
		{"unknown kind", []Criterion{
			{Key: "hasBudget", Label: "A", Kind: "ratio", Weight: 10, Enabled: true},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateCriteria(tc.criteria); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateCriteria_StrayThresholdOnBooleanAllowed(t *testing.T) {
	criteria := []Criterion{
		{Key: "hasBudget", Label: "A", Kind: KindBoolean, Weight: 10, Enabled: true, Threshold: floatPtr(5)},
	}
	if err := ValidateCriteria(criteria); err != nil {
		t.Fatalf("expected stray threshold to be ignored, got %v", err)
	}
}

func TestMaxPossibleScore_EnabledOnly(t *testing.T) {
	cfg := Config{Criteria: []Criterion{
		{Key: "hasBudget", Weight: 20, Kind: KindBoolean, Enabled: true},
		{Key: "hasPhone", Weight: 10, Kind: KindBoolean, Enabled: false},
		{Key: "hasEmail", Weight: 5, Kind: KindBoolean, Enabled: true},
	}}

	if got := cfg.MaxPossibleScore(); got != 25 {
		t.Fatalf("expected max possible 25, got %d", got)
	}
}
