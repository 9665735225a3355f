package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	domainerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/scanner"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"
)

const (
	moduleName               = "moderation-safety/content-safety-scanner"
	defaultSideEffectTimeout = 5 * time.Second
)

type Service struct {
	Scanner               scanner.Scanner
	Violations            ports.ViolationLogger
	Alerts                ports.AlertPublisher
	Repo                  ports.ViolationRepository
	Clock                 ports.Clock
	IDGen                 ports.IDGenerator
	Dispatch              func(func())
	SideEffectTimeout     time.Duration
	DisableHighRiskAlerts bool
	Logger                *slog.Logger
}

func (s Service) AnalyzeContent(_ context.Context, text string) entities.ContentAnalysisResult {
	return s.Scanner.AnalyzeContent(text)
}

// SanitizeMessage returns the redacted message and moderation flags. Logging
// the violation and raising alerts happen off the caller's path; their
// failures are logged and never reach the sender.
func (s Service) SanitizeMessage(ctx context.Context, content string, senderID string, conversationID string) entities.SanitizedMessage {
	analysis := s.Scanner.AnalyzeContent(content)
	thresholds := s.Scanner.Table.Thresholds()
	message := entities.SanitizedMessage{
		Content:        analysis.RedactedContent,
		ShouldBlock:    analysis.RiskScore >= thresholds.Critical,
		RequiresReview: analysis.RiskScore >= thresholds.Medium,
		Analysis:       analysis,
	}
	if analysis.IsClean {
		return message
	}

	senderID = strings.TrimSpace(senderID)
	conversationID = strings.TrimSpace(conversationID)
	raiseAlert := !s.DisableHighRiskAlerts && analysis.RiskScore >= thresholds.High
	detached := context.WithoutCancel(ctx)
	s.dispatch(func() {
		sideCtx, cancel := context.WithTimeout(detached, s.sideEffectTimeout())
		defer cancel()
		s.recordViolation(sideCtx, analysis, senderID, conversationID, raiseAlert)
	})
	return message
}

func (s Service) recordViolation(
	ctx context.Context,
	analysis entities.ContentAnalysisResult,
	senderID string,
	conversationID string,
	raiseAlert bool,
) {
	logger := ResolveLogger(s.Logger)
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("violation side effect panicked",
				"event", "content_safety_side_effect_panic",
				"module", moduleName,
				"layer", "application",
				"sender_id", senderID,
				"conversation_id", conversationID,
				"panic", fmt.Sprint(recovered),
			)
		}
	}()

	now := s.now()
	record := entities.ViolationLog{
		LogID:          s.newID(ctx),
		SenderID:       senderID,
		ConversationID: conversationID,
		RiskScore:      analysis.RiskScore,
		RiskLevel:      analysis.RiskLevel,
		Categories:     analysis.Categories(),
		Violations:     analysis.Violations,
		PatternVersion: analysis.PatternVersion,
		Blocked:        analysis.ShouldBlock,
		CreatedAt:      now,
	}
	if s.Violations != nil {
		if err := s.Violations.LogViolation(ctx, record); err != nil {
			logger.Error("violation log write failed",
				"event", "content_safety_violation_log_failed",
				"module", moduleName,
				"layer", "application",
				"sender_id", senderID,
				"conversation_id", conversationID,
				"risk_score", analysis.RiskScore,
				"error", err.Error(),
			)
		} else {
			logger.Info("content violation recorded",
				"event", "content_safety_violation_logged",
				"module", moduleName,
				"layer", "application",
				"log_id", record.LogID,
				"sender_id", senderID,
				"conversation_id", conversationID,
				"risk_score", analysis.RiskScore,
				"risk_level", string(analysis.RiskLevel),
			)
		}
	}

	if !raiseAlert || s.Alerts == nil {
		return
	}
	alert := entities.HighRiskAlert{
		AlertID:        s.newID(ctx),
		LogID:          record.LogID,
		SenderID:       senderID,
		ConversationID: conversationID,
		RiskScore:      analysis.RiskScore,
		RiskLevel:      analysis.RiskLevel,
		Categories:     record.Categories,
		RaisedAt:       now,
	}
	if err := s.Alerts.PublishHighRiskAlert(ctx, alert); err != nil {
		logger.Error("high risk alert publish failed",
			"event", "content_safety_alert_failed",
			"module", moduleName,
			"layer", "application",
			"sender_id", senderID,
			"conversation_id", conversationID,
			"risk_score", analysis.RiskScore,
			"error", err.Error(),
		)
		return
	}
	logger.Warn("high risk content alert raised",
		"event", "content_safety_alert_raised",
		"module", moduleName,
		"layer", "application",
		"alert_id", alert.AlertID,
		"sender_id", senderID,
		"conversation_id", conversationID,
		"risk_level", string(analysis.RiskLevel),
	)
}

func (s Service) MaskProfile(_ context.Context, profile entities.Profile, viewerID string) entities.Profile {
	return s.Scanner.MaskProfileContacts(profile, strings.TrimSpace(viewerID))
}

func (s Service) SanitizeField(_ context.Context, fieldName string, value string) (string, error) {
	field, err := scanner.ParseProfileField(fieldName)
	if err != nil {
		return "", err
	}
	return s.Scanner.SanitizeField(field, value)
}

func (s Service) GateFileSharing(_ context.Context, fileName string, fileType string, offerStatus string) (entities.FileGatingDecision, error) {
	if strings.TrimSpace(fileName) == "" {
		return entities.FileGatingDecision{}, domainerrors.ErrInvalidInput
	}
	return s.Scanner.ShouldGateFileSharing(fileName, fileType, entities.FileContext{
		OfferStatus: entities.ParseOfferStatus(offerStatus),
	}), nil
}

func (s Service) ValidateLink(_ context.Context, rawURL string, offerStatus string) (entities.LinkValidation, error) {
	if strings.TrimSpace(rawURL) == "" {
		return entities.LinkValidation{}, domainerrors.ErrInvalidInput
	}
	return s.Scanner.ValidateExternalLink(rawURL, entities.LinkContext{
		OfferStatus: entities.ParseOfferStatus(offerStatus),
	}), nil
}

func (s Service) ListViolations(ctx context.Context, filter ports.ViolationFilter) ([]entities.ViolationLog, error) {
	if s.Repo == nil {
		return []entities.ViolationLog{}, nil
	}
	filter.ConversationID = strings.TrimSpace(filter.ConversationID)
	filter.SenderID = strings.TrimSpace(filter.SenderID)
	if filter.Offset < 0 || filter.MinRiskScore < 0 {
		return nil, domainerrors.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.Repo.ListViolations(ctx, filter)
}

// PurgeViolationsBefore deletes violation logs older than cutoff and returns
// how many were removed.
func (s Service) PurgeViolationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, domainerrors.ErrInvalidInput
	}
	if s.Repo == nil {
		return 0, nil
	}
	logger := ResolveLogger(s.Logger)
	removed, err := s.Repo.PurgeViolationsBefore(ctx, cutoff.UTC())
	if err != nil {
		logger.Error("violation purge failed",
			"event", "content_safety_violation_purge_failed",
			"module", moduleName,
			"layer", "application",
			"cutoff", cutoff.UTC(),
			"error", err.Error(),
		)
		return 0, err
	}
	logger.Info("violation logs purged",
		"event", "content_safety_violation_purged",
		"module", moduleName,
		"layer", "application",
		"cutoff", cutoff.UTC(),
		"removed", removed,
	)
	return removed, nil
}

func (s Service) dispatch(task func()) {
	if s.Dispatch != nil {
		s.Dispatch(task)
		return
	}
	go task()
}

func (s Service) sideEffectTimeout() time.Duration {
	if s.SideEffectTimeout <= 0 {
		return defaultSideEffectTimeout
	}
	return s.SideEffectTimeout
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) newID(ctx context.Context) string {
	if s.IDGen == nil {
		return fmt.Sprintf("csv-%d", s.now().UnixNano())
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		ResolveLogger(s.Logger).Warn("violation id generation failed",
			"event", "content_safety_id_generation_failed",
			"module", moduleName,
			"layer", "application",
			"error", err.Error(),
		)
		return fmt.Sprintf("csv-%d", s.now().UnixNano())
	}
	return id
}
