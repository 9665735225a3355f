package ports

import (
	"context"
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	contractsv1 "creatorhub/contracts/gen/events/v1"
)

type QuoteOfferInput struct {
	OfferID            string
	BrandID            string
	CreatorID          string
	Selections         []entities.Selection
	PlatformFeePercent *float64
	Currency           string
	DisplayCurrency    string
}

type CurrencyReport struct {
	Currency      money.Currency
	Count         int
	TotalSubtotal int64
	TotalFee      int64
	TotalCharged  int64
}

type QuoteReport struct {
	Month      string
	Currencies []CurrencyReport
}

type Repository interface {
	CreateQuote(ctx context.Context, quote entities.OfferQuote) error
	GetQuote(ctx context.Context, quoteID string) (entities.OfferQuote, error)
	BuildMonthlyReport(ctx context.Context, month string) (QuoteReport, error)
}

type RateCardRepository interface {
	// UpsertRateCard stores card as the only active card in its slot.
	UpsertRateCard(ctx context.Context, card entities.RateCard) (entities.RateCard, error)
	ListRateCards(ctx context.Context, creatorID string) ([]entities.RateCard, error)
}

type IdempotencyRecord struct {
	Key             string
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	PutRecord(ctx context.Context, record IdempotencyRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope EventEnvelope) error
}
