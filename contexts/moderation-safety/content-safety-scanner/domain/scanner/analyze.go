package scanner

import (
	"sort"
	"strings"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/patterns"
)

// Scanner evaluates text and sharing requests against a compiled pattern
// table. The zero value is not usable; build one with New.
type Scanner struct {
	Table *patterns.Table
	Files FilePolicy
	Links LinkPolicy
}

func New(table *patterns.Table) Scanner {
	return Scanner{
		Table: table,
		Files: DefaultFilePolicy(),
		Links: DefaultLinkPolicy(),
	}
}

type span struct {
	start int
	end   int
}

func (s span) overlaps(other span) bool {
	return s.start < other.end && other.start < s.end
}

// AnalyzeContent scores text and returns its redacted form. The result is a
// pure function of the text and the table.
func (s Scanner) AnalyzeContent(text string) entities.ContentAnalysisResult {
	result := entities.ContentAnalysisResult{
		IsClean:         true,
		RiskLevel:       entities.RiskNone,
		Violations:      []entities.Violation{},
		RedactedContent: text,
		PatternVersion:  s.Table.Version(),
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	matched := make([]span, 0)
	score := 0
	for _, category := range s.Table.Categories() {
		// Overlapping rules of one category count once; other categories
		// still score the same text.
		attributed := make([]span, 0)
		for _, rule := range category.Rules {
			for _, bounds := range rule.Spans(text) {
				current := span{start: bounds[0], end: bounds[1]}
				matched = append(matched, current)
				if overlapsAny(attributed, current) {
					continue
				}
				attributed = append(attributed, current)
				score += category.Weight
				result.Violations = append(result.Violations, entities.Violation{
					Category:    category.Category,
					Rule:        rule.Name,
					MatchedText: text[current.start:current.end],
					Position:    current.start,
					Length:      current.end - current.start,
				})
			}
		}
	}
	if len(result.Violations) == 0 {
		return result
	}

	thresholds := s.Table.Thresholds()
	result.IsClean = false
	result.RiskScore = score
	result.RiskLevel = thresholds.Level(score)
	result.RequiresModeration = score >= thresholds.Medium
	result.ShouldBlock = score >= thresholds.Critical
	result.RedactedContent = s.redactUntilClean(redact(text, matched, s.Table.Placeholder()))
	return result
}

// Redact returns text with every match replaced by the placeholder.
func (s Scanner) Redact(text string) string {
	return s.AnalyzeContent(text).RedactedContent
}

// redactUntilClean rescans after each redaction. Text joined around a
// placeholder can form a new match. Input that never settles is replaced
// whole; Compile guarantees the bare placeholder scans clean.
func (s Scanner) redactUntilClean(text string) string {
	placeholder := s.Table.Placeholder()
	limit := len(text) + 1
	for pass := 0; pass < limit; pass++ {
		spans := s.allSpans(text)
		if len(spans) == 0 {
			return text
		}
		next := redact(text, spans, placeholder)
		if next == text {
			break
		}
		text = next
	}
	return placeholder
}

func (s Scanner) allSpans(text string) []span {
	out := make([]span, 0)
	for _, category := range s.Table.Categories() {
		for _, rule := range category.Rules {
			for _, bounds := range rule.Spans(text) {
				out = append(out, span{start: bounds[0], end: bounds[1]})
			}
		}
	}
	return out
}

func overlapsAny(existing []span, candidate span) bool {
	for _, item := range existing {
		if item.overlaps(candidate) {
			return true
		}
	}
	return false
}

// redact replaces the union of spans with one placeholder per merged region.
func redact(text string, spans []span, placeholder string) string {
	if len(spans) == 0 {
		return text
	}
	ordered := make([]span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].start == ordered[j].start {
			return ordered[i].end > ordered[j].end
		}
		return ordered[i].start < ordered[j].start
	})

	merged := []span{ordered[0]}
	for _, item := range ordered[1:] {
		last := &merged[len(merged)-1]
		if item.start <= last.end {
			if item.end > last.end {
				last.end = item.end
			}
			continue
		}
		merged = append(merged, item)
	}

	var builder strings.Builder
	cursor := 0
	for _, item := range merged {
		builder.WriteString(text[cursor:item.start])
		builder.WriteString(placeholder)
		cursor = item.end
	}
	builder.WriteString(text[cursor:])
	return builder.String()
}
