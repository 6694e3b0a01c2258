package service

import (
	"fmt"
	"os"

	"pipeline_crm_backend/internal/scoring/domain"

	"gopkg.in/yaml.v3"
)

// DefaultCriteria is the criterion set installed on first boot. Admins
// replace it wholesale through the configuration endpoint.
func DefaultCriteria() []domain.Criterion {
	return []domain.Criterion{
		{Key: "hasBudget", Label: "Budget stated", Kind: domain.KindBoolean, Weight: 20, Enabled: true},
		{Key: "hasPreferredArea", Label: "Preferred areas stated", Kind: domain.KindBoolean, Weight: 15, Enabled: true},
		{Key: "interestDeclared", Label: "Buy/rent interest declared", Kind: domain.KindBoolean, Weight: 10, Enabled: true},
		{Key: "hasPhone", Label: "Phone number on file", Kind: domain.KindBoolean, Weight: 10, Enabled: true},
		{Key: "hasEmail", Label: "Email address on file", Kind: domain.KindBoolean, Weight: 5, Enabled: true},
		{Key: "hasAssignedAgent", Label: "Agent assigned", Kind: domain.KindBoolean, Weight: 5, Enabled: true},
		{Key: "daysSinceContact", Label: "Needs follow-up (30+ days)", Kind: domain.KindThreshold, Weight: 15, Threshold: floatPtr(30), Enabled: true},
		{Key: "noteCount", Label: "Engagement notes (2+)", Kind: domain.KindThreshold, Weight: 10, Threshold: floatPtr(2), Enabled: true},
	}
}

// criteriaFile is the YAML shape of an external criteria override.
type criteriaFile struct {
	Criteria []struct {
		Key       string   `yaml:"key"`
		Label     string   `yaml:"label"`
		Kind      string   `yaml:"kind"`
		Weight    int      `yaml:"weight"`
		Enabled   bool     `yaml:"enabled"`
		Threshold *float64 `yaml:"threshold"`
	} `yaml:"criteria"`
}

// LoadCriteriaFile reads a criterion set from a YAML file. The result still
// goes through ValidateCriteria before use.
func LoadCriteriaFile(path string) ([]domain.Criterion, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read criteria file: %w", err)
	}

	var parsed criteriaFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse criteria file: %w", err)
	}

	criteria := make([]domain.Criterion, 0, len(parsed.Criteria))
	for _, entry := range parsed.Criteria {
		criteria = append(criteria, domain.Criterion{
			Key:       entry.Key,
			Label:     entry.Label,
			Kind:      domain.Kind(entry.Kind),
			Weight:    entry.Weight,
			Enabled:   entry.Enabled,
			Threshold: entry.Threshold,
		})
	}
	return criteria, nil
}

func floatPtr(v float64) *float64 { return &v }
