package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	"creatorhub/contexts/finance-core/offer-pricing-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

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

func (r *Repository) CreateQuote(ctx context.Context, quote entities.OfferQuote) error {
	row, err := quoteModelFromEntity(quote)
	if err != nil {
		return r.logError("pricing_repo_quote_marshal_failed", err, "quote_id", quote.QuoteID)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdempotencyConflict
		}
		return r.logError("pricing_repo_create_quote_failed", err,
			"quote_id", row.QuoteID,
			"offer_id", row.OfferID,
		)
	}
	return nil
}

func (r *Repository) GetQuote(ctx context.Context, quoteID string) (entities.OfferQuote, error) {
	var row quoteModel
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", strings.TrimSpace(quoteID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OfferQuote{}, domainerrors.ErrNotFound
		}
		return entities.OfferQuote{}, r.logError("pricing_repo_get_quote_failed", err, "quote_id", strings.TrimSpace(quoteID))
	}
	quote, err := row.toEntity()
	if err != nil {
		return entities.OfferQuote{}, r.logError("pricing_repo_quote_decode_failed", err, "quote_id", row.QuoteID)
	}
	return quote, nil
}

func (r *Repository) BuildMonthlyReport(ctx context.Context, month string) (ports.QuoteReport, error) {
	start, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return ports.QuoteReport{}, domainerrors.ErrInvalidInput
	}
	end := start.AddDate(0, 1, 0)

	type aggregateRow struct {
		Currency      string
		Count         int
		TotalSubtotal int64
		TotalFee      int64
		TotalCharged  int64
	}
	var rows []aggregateRow
	err = r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Select(`currency,
			COUNT(*) AS count,
			COALESCE(SUM(subtotal_cents), 0) AS total_subtotal,
			COALESCE(SUM(platform_fee_cents), 0) AS total_fee,
			COALESCE(SUM(total_cents), 0) AS total_charged`).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("currency").
		Order("currency ASC").
		Scan(&rows).
		Error
	if err != nil {
		return ports.QuoteReport{}, r.logError("pricing_repo_monthly_report_failed", err, "month", month)
	}

	report := ports.QuoteReport{
		Month:      start.Format("2006-01"),
		Currencies: make([]ports.CurrencyReport, 0, len(rows)),
	}
	for _, row := range rows {
		report.Currencies = append(report.Currencies, ports.CurrencyReport{
			Currency:      money.Currency(row.Currency),
			Count:         row.Count,
			TotalSubtotal: row.TotalSubtotal,
			TotalFee:      row.TotalFee,
			TotalCharged:  row.TotalCharged,
		})
	}
	return report, nil
}

func (r *Repository) UpsertRateCard(ctx context.Context, card entities.RateCard) (entities.RateCard, error) {
	row := rateCardModelFromEntity(card)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if row.Active {
			if err := tx.Model(&rateCardModel{}).
				Where("creator_id = ? AND deliverable_type = ? AND currency = ? AND active = ? AND rate_card_id <> ?",
					row.CreatorID, row.DeliverableType, row.Currency, true, row.RateCardID).
				Updates(map[string]any{
					"active":     false,
					"updated_at": row.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "rate_card_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"base_price_cents": row.BasePriceCents,
				"rush_percent":     row.RushPercent,
				"active":           row.Active,
				"updated_at":       row.UpdatedAt,
			}),
		}).Create(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return entities.RateCard{}, domainerrors.ErrDuplicateRateCard
		}
		return entities.RateCard{}, r.logError("pricing_repo_upsert_rate_card_failed", err,
			"rate_card_id", row.RateCardID,
			"creator_id", row.CreatorID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRateCards(ctx context.Context, creatorID string) ([]entities.RateCard, error) {
	var rows []rateCardModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		Order("deliverable_type ASC, currency ASC, updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("pricing_repo_list_rate_cards_failed", err, "creator_id", strings.TrimSpace(creatorID))
	}
	items := make([]entities.RateCard, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, r.logError("pricing_repo_idempotency_get_failed", err,
			"idempotency_key", strings.TrimSpace(key),
		)
	}
	if !row.ExpiresAt.IsZero() && now.UTC().After(row.ExpiresAt.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("key = ?", strings.TrimSpace(key)).
			Delete(&idempotencyModel{}).Error; err != nil {
			return ports.IdempotencyRecord{}, false, r.logError("pricing_repo_idempotency_expire_delete_failed", err,
				"idempotency_key", strings.TrimSpace(key),
			)
		}
		return ports.IdempotencyRecord{}, false, nil
	}
	return ports.IdempotencyRecord{
		Key:             row.Key,
		RequestHash:     row.RequestHash,
		ResponsePayload: append([]byte(nil), row.ResponsePayload...),
		ExpiresAt:       row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             strings.TrimSpace(record.Key),
		RequestHash:     strings.TrimSpace(record.RequestHash),
		ResponsePayload: record.ResponsePayload,
		ExpiresAt:       record.ExpiresAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("pricing_repo_idempotency_put_failed", create.Error, "idempotency_key", row.Key)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing idempotencyModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", row.Key).
		First(&existing).Error; err != nil {
		return r.logError("pricing_repo_idempotency_load_existing_failed", err, "idempotency_key", row.Key)
	}
	if existing.RequestHash != row.RequestHash {
		return domainerrors.ErrIdempotencyConflict
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("pricing_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("pricing_repo_append_outbox_insert_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).Error; err != nil {
		return r.logError("pricing_repo_append_outbox_load_existing_failed", err,
			"outbox_id", row.OutboxID,
		)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrIdempotencyConflict
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("pricing_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("pricing_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "finance-core/offer-pricing-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("offer pricing repository operation failed", fields...)
	return err
}

type quoteModel struct {
	QuoteID          string    `gorm:"column:quote_id;primaryKey"`
	OfferID          string    `gorm:"column:offer_id"`
	BrandID          string    `gorm:"column:brand_id"`
	CreatorID        string    `gorm:"column:creator_id"`
	Status           string    `gorm:"column:status"`
	Currency         string    `gorm:"column:currency"`
	SubtotalCents    int64     `gorm:"column:subtotal_cents"`
	PlatformFeeCents int64     `gorm:"column:platform_fee_cents"`
	TotalCents       int64     `gorm:"column:total_cents"`
	Items            []byte    `gorm:"column:items"`
	Breakdown        []byte    `gorm:"column:breakdown"`
	DisplayCurrency  *string   `gorm:"column:display_currency"`
	DisplayCents     *int64    `gorm:"column:display_total_cents"`
	IdempotencyKey   string    `gorm:"column:idempotency_key"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (quoteModel) TableName() string {
	return "offer_quotes"
}

func quoteModelFromEntity(quote entities.OfferQuote) (quoteModel, error) {
	items, err := json.Marshal(quote.Items)
	if err != nil {
		return quoteModel{}, err
	}
	breakdown, err := json.Marshal(quote.Breakdown)
	if err != nil {
		return quoteModel{}, err
	}
	row := quoteModel{
		QuoteID:          strings.TrimSpace(quote.QuoteID),
		OfferID:          strings.TrimSpace(quote.OfferID),
		BrandID:          strings.TrimSpace(quote.BrandID),
		CreatorID:        strings.TrimSpace(quote.CreatorID),
		Status:           string(quote.Status),
		Currency:         string(quote.Breakdown.Currency),
		SubtotalCents:    quote.Breakdown.SubtotalMinorUnits,
		PlatformFeeCents: quote.Breakdown.PlatformFeeMinorUnits,
		TotalCents:       quote.Breakdown.TotalMinorUnits,
		Items:            items,
		Breakdown:        breakdown,
		IdempotencyKey:   strings.TrimSpace(quote.IdempotencyKey),
		CreatedAt:        quote.CreatedAt.UTC(),
	}
	if quote.DisplayTotal != nil {
		currency := string(quote.DisplayTotal.Currency)
		amount := quote.DisplayTotal.AmountMinor
		row.DisplayCurrency = &currency
		row.DisplayCents = &amount
	}
	return row, nil
}

func (m quoteModel) toEntity() (entities.OfferQuote, error) {
	quote := entities.OfferQuote{
		QuoteID:        m.QuoteID,
		OfferID:        m.OfferID,
		BrandID:        m.BrandID,
		CreatorID:      m.CreatorID,
		Status:         entities.OfferStatus(m.Status),
		IdempotencyKey: m.IdempotencyKey,
		CreatedAt:      m.CreatedAt.UTC(),
	}
	if err := json.Unmarshal(m.Items, &quote.Items); err != nil {
		return entities.OfferQuote{}, err
	}
	if err := json.Unmarshal(m.Breakdown, &quote.Breakdown); err != nil {
		return entities.OfferQuote{}, err
	}
	if m.DisplayCurrency != nil && m.DisplayCents != nil {
		quote.DisplayTotal = &entities.ConvertedAmount{
			Currency:    money.Currency(*m.DisplayCurrency),
			AmountMinor: *m.DisplayCents,
		}
	}
	return quote, nil
}

type rateCardModel struct {
	RateCardID      string    `gorm:"column:rate_card_id;primaryKey"`
	CreatorID       string    `gorm:"column:creator_id"`
	DeliverableType string    `gorm:"column:deliverable_type"`
	BasePriceCents  int64     `gorm:"column:base_price_cents"`
	Currency        string    `gorm:"column:currency"`
	RushPercent     float64   `gorm:"column:rush_percent"`
	Active          bool      `gorm:"column:active"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (rateCardModel) TableName() string {
	return "creator_rate_cards"
}

func rateCardModelFromEntity(card entities.RateCard) rateCardModel {
	return rateCardModel{
		RateCardID:      strings.TrimSpace(card.RateCardID),
		CreatorID:       strings.TrimSpace(card.CreatorID),
		DeliverableType: string(card.DeliverableType),
		BasePriceCents:  card.BasePriceMinorUnits,
		Currency:        string(card.Currency),
		RushPercent:     card.RushPercent,
		Active:          card.Active,
		UpdatedAt:       card.UpdatedAt.UTC(),
	}
}

func (m rateCardModel) toEntity() entities.RateCard {
	return entities.RateCard{
		RateCardID:          m.RateCardID,
		CreatorID:           m.CreatorID,
		DeliverableType:     entities.DeliverableType(m.DeliverableType),
		BasePriceMinorUnits: m.BasePriceCents,
		Currency:            money.Currency(m.Currency),
		RushPercent:         m.RushPercent,
		Active:              m.Active,
		UpdatedAt:           m.UpdatedAt.UTC(),
	}
}

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "offer_pricing_idempotency"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "offer_pricing_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
