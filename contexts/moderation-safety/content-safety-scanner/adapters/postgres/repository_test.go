package postgresadapter

import (
	"testing"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
)

func TestViolationModelRoundTrip(t *testing.T) {
	log := entities.ViolationLog{
		LogID:          "log-1",
		SenderID:       "creator-1",
		ConversationID: "conv-1",
		RiskScore:      5,
		RiskLevel:      entities.RiskCritical,
		Categories:     []entities.Category{entities.CategoryEmail, entities.CategoryWebsite},
		Violations: []entities.Violation{{
			Category:    entities.CategoryEmail,
			Rule:        "email_address",
			MatchedText: "bob@x.com",
			Position:    12,
			Length:      9,
		}},
		PatternVersion: "2024.06.1",
		Blocked:        true,
		CreatedAt:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	row, err := violationModelFromEntity(log)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(row.Categories) != `["email","website"]` {
		t.Fatalf("unexpected categories column: %s", row.Categories)
	}
	decoded, err := row.toEntity()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Violations[0] != log.Violations[0] || len(decoded.Categories) != 2 || !decoded.Blocked {
		t.Fatalf("unexpected decoded log: %+v", decoded)
	}
}
