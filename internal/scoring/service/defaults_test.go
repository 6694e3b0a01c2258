package service

import (
	"os"
	"path/filepath"
	"testing"

	"pipeline_crm_backend/internal/scoring/domain"
)

func TestDefaultCriteria_PassValidation(t *testing.T) {
	if err := domain.ValidateCriteria(DefaultCriteria()); err != nil {
		t.Fatalf("default criteria must validate, got %v", err)
	}
}

func TestLoadCriteriaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	content := []byte(`criteria:
  - key: hasBudget
    label: Budget stated
    kind: boolean
    weight: 40
    enabled: true
  - key: daysSinceContact
    label: Needs follow-up
    kind: threshold
    weight: 20
    threshold: 14
    enabled: true
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	criteria, err := LoadCriteriaFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(criteria))
	}
	if criteria[0].Key != "hasBudget" || criteria[0].Weight != 40 || criteria[0].Kind != domain.KindBoolean {
		t.Fatalf("unexpected first criterion: %+v", criteria[0])
	}
	if criteria[1].Threshold == nil || *criteria[1].Threshold != 14 {
		t.Fatalf("expected threshold 14, got %v", criteria[1].Threshold)
	}
	if err := domain.ValidateCriteria(criteria); err != nil {
		t.Fatalf("loaded criteria must validate, got %v", err)
	}
}

func TestLoadCriteriaFile_MissingFile(t *testing.T) {
	if _, err := LoadCriteriaFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
