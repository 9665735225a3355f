package yamltable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	domainerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
)

func TestDefaultTableCompilesInScanOrder(t *testing.T) {
	table, err := LoadDefault()
	if err != nil {
		t.Fatalf("default table failed to compile: %v", err)
	}
	if table.Version() == "" || table.Placeholder() != "[REDACTED]" {
		t.Fatalf("unexpected table metadata: version=%q placeholder=%q", table.Version(), table.Placeholder())
	}
	categories := table.Categories()
	if len(categories) != len(entities.ScanOrder) {
		t.Fatalf("expected %d categories, got %d", len(entities.ScanOrder), len(categories))
	}
	weights := map[entities.Category]int{
		entities.CategoryEmail:        3,
		entities.CategoryPhone:        3,
		entities.CategorySocial:       2,
		entities.CategoryMessaging:    3,
		entities.CategoryWebsite:      2,
		entities.CategoryBypassPhrase: 4,
	}
	for idx, category := range categories {
		if category.Category != entities.ScanOrder[idx] {
			t.Fatalf("category %d: expected %s, got %s", idx, entities.ScanOrder[idx], category.Category)
		}
		if category.Weight != weights[category.Category] {
			t.Fatalf("category %s: expected weight %d, got %d", category.Category, weights[category.Category], category.Weight)
		}
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("version: v1\ncategorys: []\n"))
	if err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := []byte(`version: test-1
categories:
  - category: email
    weight: 5
    rules:
      - name: plain
        pattern: '[a-z]+@[a-z]+\.com'
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write override failed: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load override failed: %v", err)
	}
	if table.Version() != "test-1" || len(table.Categories()) != 1 {
		t.Fatalf("unexpected override table: %s %+v", table.Version(), table.Categories())
	}
}

func TestLoadOverrideWithBadPatternFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := []byte(`version: test-2
categories:
  - category: phone
    weight: 3
    rules:
      - name: broken
        pattern: '(\d+'
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write override failed: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, domainerrors.ErrInvalidPatternTable) {
		t.Fatalf("expected invalid pattern table, got %v", err)
	}
}
