package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository persists violation logs in content_violation_logs.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// LogViolation inserts the log. Replaying a log id that already exists is a
// no-op.
func (r *Repository) LogViolation(ctx context.Context, log entities.ViolationLog) error {
	row, err := violationModelFromEntity(log)
	if err != nil {
		return r.logError("content_safety_repo_encode_failed", err, "log_id", log.LogID)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return r.logError("content_safety_repo_insert_failed", err,
			"log_id", row.LogID,
			"conversation_id", row.ConversationID,
		)
	}
	return nil
}

func (r *Repository) ListViolations(ctx context.Context, filter ports.ViolationFilter) ([]entities.ViolationLog, error) {
	query := r.db.WithContext(ctx).Model(&violationModel{})
	if filter.ConversationID != "" {
		query = query.Where("conversation_id = ?", filter.ConversationID)
	}
	if filter.SenderID != "" {
		query = query.Where("sender_id = ?", filter.SenderID)
	}
	if filter.MinRiskScore > 0 {
		query = query.Where("risk_score >= ?", filter.MinRiskScore)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []violationModel
	if err := query.Order("created_at DESC").Order("log_id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("content_safety_repo_list_failed", err,
			"conversation_id", filter.ConversationID,
			"sender_id", filter.SenderID,
		)
	}
	items := make([]entities.ViolationLog, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, r.logError("content_safety_repo_decode_failed", err, "log_id", row.LogID)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) PurgeViolationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&violationModel{})
	if result.Error != nil {
		return 0, r.logError("content_safety_repo_purge_failed", result.Error, "cutoff", cutoff.UTC())
	}
	return result.RowsAffected, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "moderation-safety/content-safety-scanner",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("content safety repository operation failed", fields...)
	return err
}

type violationModel struct {
	LogID          string    `gorm:"column:log_id;primaryKey"`
	SenderID       string    `gorm:"column:sender_id;index"`
	ConversationID string    `gorm:"column:conversation_id;index"`
	RiskScore      int       `gorm:"column:risk_score"`
	RiskLevel      string    `gorm:"column:risk_level"`
	Categories     []byte    `gorm:"column:categories"`
	Violations     []byte    `gorm:"column:violations"`
	PatternVersion string    `gorm:"column:pattern_version"`
	Blocked        bool      `gorm:"column:blocked"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
}

func (violationModel) TableName() string {
	return "content_violation_logs"
}

type violationJSON struct {
	Category    string `json:"category"`
	Rule        string `json:"rule"`
	MatchedText string `json:"matched_text"`
	Position    int    `json:"position"`
	Length      int    `json:"length"`
}

func violationModelFromEntity(log entities.ViolationLog) (violationModel, error) {
	categories := make([]string, 0, len(log.Categories))
	for _, item := range log.Categories {
		categories = append(categories, string(item))
	}
	encodedCategories, err := json.Marshal(categories)
	if err != nil {
		return violationModel{}, err
	}
	violations := make([]violationJSON, 0, len(log.Violations))
	for _, item := range log.Violations {
		violations = append(violations, violationJSON{
			Category:    string(item.Category),
			Rule:        item.Rule,
			MatchedText: item.MatchedText,
			Position:    item.Position,
			Length:      item.Length,
		})
	}
	encodedViolations, err := json.Marshal(violations)
	if err != nil {
		return violationModel{}, err
	}
	return violationModel{
		LogID:          log.LogID,
		SenderID:       log.SenderID,
		ConversationID: log.ConversationID,
		RiskScore:      log.RiskScore,
		RiskLevel:      string(log.RiskLevel),
		Categories:     encodedCategories,
		Violations:     encodedViolations,
		PatternVersion: log.PatternVersion,
		Blocked:        log.Blocked,
		CreatedAt:      log.CreatedAt.UTC(),
	}, nil
}

func (m violationModel) toEntity() (entities.ViolationLog, error) {
	var categories []string
	if len(m.Categories) > 0 {
		if err := json.Unmarshal(m.Categories, &categories); err != nil {
			return entities.ViolationLog{}, err
		}
	}
	var violations []violationJSON
	if len(m.Violations) > 0 {
		if err := json.Unmarshal(m.Violations, &violations); err != nil {
			return entities.ViolationLog{}, err
		}
	}
	item := entities.ViolationLog{
		LogID:          m.LogID,
		SenderID:       m.SenderID,
		ConversationID: m.ConversationID,
		RiskScore:      m.RiskScore,
		RiskLevel:      entities.RiskLevel(m.RiskLevel),
		Categories:     make([]entities.Category, 0, len(categories)),
		Violations:     make([]entities.Violation, 0, len(violations)),
		PatternVersion: m.PatternVersion,
		Blocked:        m.Blocked,
		CreatedAt:      m.CreatedAt.UTC(),
	}
	for _, category := range categories {
		item.Categories = append(item.Categories, entities.Category(category))
	}
	for _, violation := range violations {
		item.Violations = append(item.Violations, entities.Violation{
			Category:    entities.Category(violation.Category),
			Rule:        violation.Rule,
			MatchedText: violation.MatchedText,
			Position:    violation.Position,
			Length:      violation.Length,
		})
	}
	return item, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
