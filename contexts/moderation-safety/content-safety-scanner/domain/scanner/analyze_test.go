package scanner

import (
	"strings"
	"testing"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/yamltable"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
)

func newTestScanner() Scanner {
	return New(yamltable.MustLoadDefault())
}

func TestAnalyzeEmptyInputIsClean(t *testing.T) {
	s := newTestScanner()
	for _, input := range []string{"", "   ", "\n\t"} {
		result := s.AnalyzeContent(input)
		if !result.IsClean || result.RiskScore != 0 || result.RiskLevel != entities.RiskNone {
			t.Fatalf("expected %q to be clean, got %+v", input, result)
		}
		if result.RedactedContent != input {
			t.Fatalf("expected clean input to pass through, got %q", result.RedactedContent)
		}
	}
}

func TestAnalyzePlainBusinessTextIsClean(t *testing.T) {
	s := newTestScanner()
	result := s.AnalyzeContent("Happy to deliver two short videos by Friday, thanks for the brief!")
	if !result.IsClean || len(result.Violations) != 0 {
		t.Fatalf("expected clean result, got %+v", result.Violations)
	}
}

func TestAnalyzeDetectsAndRedactsEmail(t *testing.T) {
	s := newTestScanner()
	result := s.AnalyzeContent("reach me at bob@x.com please")
	if result.IsClean {
		t.Fatalf("expected email to be detected")
	}
	if result.Violations[0].Category != entities.CategoryEmail || result.Violations[0].MatchedText != "bob@x.com" {
		t.Fatalf("unexpected first violation: %+v", result.Violations[0])
	}
	if result.Violations[0].Position != 12 || result.Violations[0].Length != 9 {
		t.Fatalf("unexpected violation bounds: %+v", result.Violations[0])
	}
	if result.RedactedContent != "reach me at [REDACTED] please" {
		t.Fatalf("unexpected redaction: %q", result.RedactedContent)
	}
	if result.RiskScore != 3 || result.RiskLevel != entities.RiskHigh {
		t.Fatalf("expected the email domain not to count as a website, got score %d level %s", result.RiskScore, result.RiskLevel)
	}
	if !result.RequiresModeration || result.ShouldBlock {
		t.Fatalf("unexpected moderation flags: %+v", result)
	}
}

func TestAnalyzeNeverLeaksWellFormedEmails(t *testing.T) {
	s := newTestScanner()
	emails := []string{"bob@x.com", "jane.doe+collab@studio.co.uk", "A_B@mail-host.io"}
	for _, email := range emails {
		for _, template := range []string{"%s", "contact %s now", "(%s)", "mail:%s."} {
			input := strings.Replace(template, "%s", email, 1)
			result := s.AnalyzeContent(input)
			if result.IsClean {
				t.Fatalf("expected %q to be flagged", input)
			}
			if strings.Contains(result.RedactedContent, email) {
				t.Fatalf("expected %q to be redacted from %q", email, result.RedactedContent)
			}
		}
	}
}

func TestAnalyzeDetectsObfuscatedEmail(t *testing.T) {
	s := newTestScanner()
	for _, input := range []string{
		"write to bob [at] gmail [dot] com",
		"bob at gmail dot com",
		"bob(at)gmail(dot)com",
	} {
		result := s.AnalyzeContent(input)
		if result.IsClean || result.Violations[0].Category != entities.CategoryEmail {
			t.Fatalf("expected obfuscated email in %q, got %+v", input, result.Violations)
		}
		if strings.Contains(result.RedactedContent, "gmail") {
			t.Fatalf("expected obfuscated address to be redacted, got %q", result.RedactedContent)
		}
	}
}

func TestAnalyzeDetectsPhoneNumbers(t *testing.T) {
	s := newTestScanner()
	for _, input := range []string{
		"call 555-123-4567",
		"my number is +60 12-345 6789",
		"ping 012-345 6789 anytime",
		"sg line 9123 4567",
		"(65) 9123 4567",
	} {
		result := s.AnalyzeContent(input)
		if result.IsClean {
			t.Fatalf("expected phone number in %q", input)
		}
		if result.Violations[0].Category != entities.CategoryPhone {
			t.Fatalf("expected phone category for %q, got %+v", input, result.Violations[0])
		}
	}
}

func TestAnalyzeIgnoresPricesAndProse(t *testing.T) {
	s := newTestScanner()
	for _, input := range []string{
		"My rate is 8000 2500 for the bundle",
		"Budget is 6000-1500 per post",
		"price 90001234",
		"meet at noon dot com",
		"Let's sync at lunch dot com style, no rush",
	} {
		result := s.AnalyzeContent(input)
		if !result.IsClean {
			t.Fatalf("expected %q to be clean, got %+v", input, result.Violations)
		}
		if result.RedactedContent != input {
			t.Fatalf("expected %q to pass through, got %q", input, result.RedactedContent)
		}
	}
}

func TestAnalyzeScoresEachCategoryIndependently(t *testing.T) {
	s := newTestScanner()
	result := s.AnalyzeContent("see https://instagram.com/bob.creates")
	if result.IsClean || result.Violations[0].Category != entities.CategorySocial {
		t.Fatalf("expected social attribution first, got %+v", result.Violations)
	}
	if len(result.Violations) != 2 || result.Violations[1].Category != entities.CategoryWebsite {
		t.Fatalf("expected social and website violations, got %+v", result.Violations)
	}
	if result.RiskScore != 4 || result.RiskLevel != entities.RiskCritical || !result.ShouldBlock {
		t.Fatalf("expected social plus website to block, got score %d level %s", result.RiskScore, result.RiskLevel)
	}

	result = s.AnalyzeContent("join t.me/dealroom")
	if result.IsClean || result.Violations[0].Category != entities.CategoryMessaging {
		t.Fatalf("expected messaging attribution, got %+v", result.Violations)
	}
	if result.RiskScore != 5 {
		t.Fatalf("expected messaging plus website score, got %d", result.RiskScore)
	}
}

func TestAnalyzeCountsOverlappingRulesOfOneCategoryOnce(t *testing.T) {
	s := newTestScanner()
	result := s.AnalyzeContent("portfolio: www.bob.dev")
	if len(result.Violations) != 1 || result.Violations[0].Rule != "www_host" {
		t.Fatalf("expected one website violation, got %+v", result.Violations)
	}
	if result.RiskScore != 2 || result.RiskLevel != entities.RiskMedium || result.ShouldBlock {
		t.Fatalf("expected medium risk, got score %d level %s", result.RiskScore, result.RiskLevel)
	}
}

func TestAnalyzeBypassPhraseIsCritical(t *testing.T) {
	s := newTestScanner()
	result := s.AnalyzeContent("let's take this off platform to avoid the fees")
	if result.RiskScore < 8 || result.RiskLevel != entities.RiskCritical || !result.ShouldBlock {
		t.Fatalf("expected critical block, got %+v", result)
	}
	for _, item := range result.Violations {
		if item.Category != entities.CategoryBypassPhrase {
			t.Fatalf("unexpected category %s", item.Category)
		}
	}
}

func TestAnalyzeIsDeterministicAndIdempotent(t *testing.T) {
	s := newTestScanner()
	inputs := []string{
		"reach me at bob@x.com or +1 415 555 0100",
		"ig: @bob.creates, discord bob#1234, www.bob.dev",
		"send me your whatsapp, pay me directly via paypal",
		"bob at gmail dot com and call 555.123.4567",
		"a@b.co@cdef@ghij@klmn@opqr@stuv",
		"bob@x.com@creator",
		"bob@x.com @bob.creates",
		"bob@x.com555 123 4567",
		"write to bob [at] gmail [dot] com, ig: @bob.creates",
	}
	for _, input := range inputs {
		first := s.AnalyzeContent(input)
		second := s.AnalyzeContent(input)
		if first.RedactedContent != second.RedactedContent || first.RiskScore != second.RiskScore || len(first.Violations) != len(second.Violations) {
			t.Fatalf("expected identical results for %q", input)
		}
		rescanned := s.AnalyzeContent(first.RedactedContent)
		if !rescanned.IsClean {
			t.Fatalf("expected redacted %q to be clean, got %+v", first.RedactedContent, rescanned.Violations)
		}
	}
}

func TestAnalyzeRedactsMatchesFormedAroundPlaceholders(t *testing.T) {
	s := newTestScanner()
	result := s.AnalyzeContent("bob@x.com555 123 4567")
	if len(result.Violations) != 1 || result.Violations[0].Category != entities.CategoryEmail {
		t.Fatalf("expected only the email in the original text, got %+v", result.Violations)
	}
	if strings.Contains(result.RedactedContent, "4567") {
		t.Fatalf("expected digits joined to the placeholder to be redacted, got %q", result.RedactedContent)
	}

	result = s.AnalyzeContent("a@b.co@cdef@ghij@klmn@opqr@stuv")
	if result.RedactedContent != "[REDACTED]@cdef@ghij@klmn@opqr@stuv" {
		t.Fatalf("unexpected redaction: %q", result.RedactedContent)
	}
	if !s.AnalyzeContent(result.RedactedContent).IsClean {
		t.Fatalf("expected %q to rescan clean", result.RedactedContent)
	}
}

func TestAnalyzeReportsPatternVersion(t *testing.T) {
	s := newTestScanner()
	if got := s.AnalyzeContent("hello").PatternVersion; got != s.Table.Version() {
		t.Fatalf("expected pattern version %q, got %q", s.Table.Version(), got)
	}
}
