package patterns

import (
	"errors"
	"testing"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	domainerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
)

func validDefinition() Definition {
	return Definition{
		Version: "test",
		Categories: []CategoryDefinition{
			{Category: entities.CategoryWebsite, Weight: 2, Rules: []RuleDefinition{{Name: "dotcom", Expression: `\b[a-z]+\.com\b`}}},
			{Category: entities.CategoryEmail, Weight: 3, Rules: []RuleDefinition{{Name: "plain", Expression: `[a-z]+@[a-z]+\.com`}}},
		},
	}
}

func TestCompileOrdersCategoriesAndDefaults(t *testing.T) {
	table, err := Compile(validDefinition())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	categories := table.Categories()
	if categories[0].Category != entities.CategoryEmail || categories[1].Category != entities.CategoryWebsite {
		t.Fatalf("expected email before website, got %s then %s", categories[0].Category, categories[1].Category)
	}
	if table.Placeholder() != DefaultPlaceholder {
		t.Fatalf("expected default placeholder, got %q", table.Placeholder())
	}
	if table.Thresholds() != DefaultThresholds() {
		t.Fatalf("expected default thresholds, got %+v", table.Thresholds())
	}
}

func TestCompileFailsFast(t *testing.T) {
	cases := map[string]func(*Definition){
		"missing version": func(def *Definition) { def.Version = " " },
		"malformed regex": func(def *Definition) { def.Categories[0].Rules[0].Expression = `([a-z]+` },
		"unknown category": func(def *Definition) {
			def.Categories[0].Category = "fax"
		},
		"non positive weight": func(def *Definition) { def.Categories[1].Weight = 0 },
		"duplicate rule": func(def *Definition) {
			def.Categories[1].Rules = append(def.Categories[1].Rules, RuleDefinition{Name: "plain", Expression: `x@y\.com`})
		},
		"duplicate category": func(def *Definition) {
			def.Categories = append(def.Categories, def.Categories[0])
		},
		"placeholder matches rule": func(def *Definition) { def.Placeholder = "see site.com" },
		"thresholds not ascending": func(def *Definition) {
			def.Thresholds = Thresholds{Low: 1, Medium: 3, High: 2, Critical: 4}
		},
	}
	for name, mutate := range cases {
		def := validDefinition()
		mutate(&def)
		if _, err := Compile(def); !errors.Is(err, domainerrors.ErrInvalidPatternTable) {
			t.Fatalf("%s: expected invalid pattern table, got %v", name, err)
		}
	}
}

func TestCompileUnknownCategoryIsDistinguishable(t *testing.T) {
	def := validDefinition()
	def.Categories[0].Category = "carrier_pigeon"
	if _, err := Compile(def); !errors.Is(err, domainerrors.ErrUnknownCategory) {
		t.Fatalf("expected unknown category error, got %v", err)
	}
}

func TestThresholdLevels(t *testing.T) {
	thresholds := DefaultThresholds()
	cases := map[int]entities.RiskLevel{
		0: entities.RiskNone,
		1: entities.RiskLow,
		2: entities.RiskMedium,
		3: entities.RiskHigh,
		4: entities.RiskCritical,
		9: entities.RiskCritical,
	}
	for score, want := range cases {
		if got := thresholds.Level(score); got != want {
			t.Fatalf("score %d: expected %s, got %s", score, want, got)
		}
	}
}

func TestRuleSpansPreferFirstGroup(t *testing.T) {
	def := Definition{
		Version: "test",
		Categories: []CategoryDefinition{{
			Category: entities.CategorySocial,
			Weight:   2,
			Rules:    []RuleDefinition{{Name: "handle", Expression: `(?:^|\s)(@[a-z]{3,})`}},
		}},
	}
	table, err := Compile(def)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	spans := table.Categories()[0].Rules[0].Spans("ping @creator now")
	if len(spans) != 1 || spans[0] != [2]int{5, 13} {
		t.Fatalf("expected group span [5 13], got %v", spans)
	}
}
