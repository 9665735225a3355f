package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	domainerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
)

const (
	DefaultPlaceholder = "[REDACTED]"
	HiddenPlaceholder  = "[Contact info hidden]"
)

// Definition is the data form of a pattern table. It carries no behaviour
// and is compiled exactly once into a Table.
type Definition struct {
	Version     string               `yaml:"version"`
	Placeholder string               `yaml:"placeholder"`
	Thresholds  Thresholds           `yaml:"thresholds"`
	Categories  []CategoryDefinition `yaml:"categories"`
}

type CategoryDefinition struct {
	Category entities.Category `yaml:"category"`
	Weight   int               `yaml:"weight"`
	Rules    []RuleDefinition  `yaml:"rules"`
}

type RuleDefinition struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"pattern"`
}

// Thresholds map a cumulative score onto a risk level. A score reaches a
// level when it is greater than or equal to that level's threshold.
type Thresholds struct {
	Low      int `yaml:"low"`
	Medium   int `yaml:"medium"`
	High     int `yaml:"high"`
	Critical int `yaml:"critical"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Low: 1, Medium: 2, High: 3, Critical: 4}
}

func (t Thresholds) isZero() bool {
	return t == Thresholds{}
}

func (t Thresholds) Level(score int) entities.RiskLevel {
	switch {
	case score >= t.Critical:
		return entities.RiskCritical
	case score >= t.High:
		return entities.RiskHigh
	case score >= t.Medium:
		return entities.RiskMedium
	case score >= t.Low:
		return entities.RiskLow
	default:
		return entities.RiskNone
	}
}

type Rule struct {
	Name    string
	pattern *regexp.Regexp
}

// Spans returns the byte ranges matched by the rule in text. When the
// expression has a capture group the first group is the reported span, so
// rules can require context without redacting it.
func (r Rule) Spans(text string) [][2]int {
	matches := r.pattern.FindAllStringSubmatchIndex(text, -1)
	out := make([][2]int, 0, len(matches))
	for _, match := range matches {
		start, end := match[0], match[1]
		if len(match) >= 4 && match[2] >= 0 {
			start, end = match[2], match[3]
		}
		if end <= start {
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

type CompiledCategory struct {
	Category entities.Category
	Weight   int
	Rules    []Rule
}

// Table is an immutable, compiled pattern table. It is safe for concurrent
// use.
type Table struct {
	version     string
	placeholder string
	thresholds  Thresholds
	categories  []CompiledCategory
}

func (t *Table) Version() string { return t.version }

func (t *Table) Placeholder() string { return t.placeholder }

func (t *Table) Thresholds() Thresholds { return t.thresholds }

func (t *Table) Level(score int) entities.RiskLevel {
	return t.thresholds.Level(score)
}

// Categories returns the compiled categories in scan order.
func (t *Table) Categories() []CompiledCategory {
	out := make([]CompiledCategory, len(t.categories))
	copy(out, t.categories)
	return out
}

// Matches reports whether any rule matches text.
func (t *Table) Matches(text string) bool {
	for _, category := range t.categories {
		for _, rule := range category.Rules {
			if len(rule.Spans(text)) > 0 {
				return true
			}
		}
	}
	return false
}

// Compile validates def and compiles every expression. Categories are
// reordered into scan order regardless of their order in the source.
func Compile(def Definition) (*Table, error) {
	version := strings.TrimSpace(def.Version)
	if version == "" {
		return nil, &domainerrors.PatternError{Reason: "version is required"}
	}
	placeholder := def.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	thresholds := def.Thresholds
	if thresholds.isZero() {
		thresholds = DefaultThresholds()
	}
	if thresholds.Low <= 0 || thresholds.Medium <= thresholds.Low ||
		thresholds.High <= thresholds.Medium || thresholds.Critical <= thresholds.High {
		return nil, &domainerrors.PatternError{Reason: "thresholds must be positive and strictly ascending"}
	}

	seenCategories := make(map[entities.Category]struct{}, len(def.Categories))
	categories := make([]CompiledCategory, 0, len(def.Categories))
	for _, item := range def.Categories {
		category := entities.Category(strings.ToLower(strings.TrimSpace(string(item.Category))))
		if !category.Known() {
			return nil, &domainerrors.PatternError{
				Category: string(item.Category),
				Reason:   "unknown category",
				Err:      domainerrors.ErrUnknownCategory,
			}
		}
		if _, ok := seenCategories[category]; ok {
			return nil, &domainerrors.PatternError{Category: string(category), Reason: "category declared twice"}
		}
		seenCategories[category] = struct{}{}
		if item.Weight <= 0 {
			return nil, &domainerrors.PatternError{Category: string(category), Reason: "weight must be positive"}
		}

		seenRules := make(map[string]struct{}, len(item.Rules))
		rules := make([]Rule, 0, len(item.Rules))
		for _, ruleDef := range item.Rules {
			name := strings.TrimSpace(ruleDef.Name)
			if name == "" {
				return nil, &domainerrors.PatternError{Category: string(category), Reason: "rule name is required"}
			}
			if _, ok := seenRules[name]; ok {
				return nil, &domainerrors.PatternError{Category: string(category), Rule: name, Reason: "duplicate rule name"}
			}
			seenRules[name] = struct{}{}
			if strings.TrimSpace(ruleDef.Expression) == "" {
				return nil, &domainerrors.PatternError{Category: string(category), Rule: name, Reason: "pattern is required"}
			}
			compiled, err := regexp.Compile(ruleDef.Expression)
			if err != nil {
				return nil, &domainerrors.PatternError{
					Category: string(category),
					Rule:     name,
					Reason:   fmt.Sprintf("malformed pattern: %v", err),
					Err:      err,
				}
			}
			rule := Rule{Name: name, pattern: compiled}
			for _, sentinel := range []string{placeholder, HiddenPlaceholder} {
				if len(rule.Spans(sentinel)) > 0 {
					return nil, &domainerrors.PatternError{
						Category: string(category),
						Rule:     name,
						Reason:   fmt.Sprintf("pattern matches placeholder %q", sentinel),
					}
				}
			}
			rules = append(rules, rule)
		}
		categories = append(categories, CompiledCategory{
			Category: category,
			Weight:   item.Weight,
			Rules:    rules,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return scanIndex(categories[i].Category) < scanIndex(categories[j].Category)
	})

	return &Table{
		version:     version,
		placeholder: placeholder,
		thresholds:  thresholds,
		categories:  categories,
	}, nil
}

func scanIndex(category entities.Category) int {
	for idx, item := range entities.ScanOrder {
		if item == category {
			return idx
		}
	}
	return len(entities.ScanOrder)
}
