package entities

import "time"

// ViolationLog is the moderation record written for every message that
// matched at least one rule.
type ViolationLog struct {
	LogID          string
	SenderID       string
	ConversationID string
	RiskScore      int
	RiskLevel      RiskLevel
	Categories     []Category
	Violations     []Violation
	PatternVersion string
	Blocked        bool
	CreatedAt      time.Time
}

type HighRiskAlert struct {
	AlertID        string
	LogID          string
	SenderID       string
	ConversationID string
	RiskScore      int
	RiskLevel      RiskLevel
	Categories     []Category
	RaisedAt       time.Time
}

type SanitizedMessage struct {
	Content        string
	ShouldBlock    bool
	RequiresReview bool
	Analysis       ContentAnalysisResult
}
