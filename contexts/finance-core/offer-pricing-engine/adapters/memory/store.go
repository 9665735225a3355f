package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	"creatorhub/contexts/finance-core/offer-pricing-engine/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	quotes      map[string]entities.OfferQuote
	rateCards   map[string]entities.RateCard
	idempotency map[string]ports.IdempotencyRecord
	outbox      map[string]outboxRecord
}

type outboxRecord struct {
	Message     ports.OutboxMessage
	Status      string
	PublishedAt *time.Time
}

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

func NewStore() *Store {
	return &Store{
		quotes:      make(map[string]entities.OfferQuote),
		rateCards:   make(map[string]entities.RateCard),
		idempotency: make(map[string]ports.IdempotencyRecord),
		outbox:      make(map[string]outboxRecord),
	}
}

func (s *Store) CreateQuote(_ context.Context, quote entities.OfferQuote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(quote.QuoteID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.quotes[id]; exists {
		return domainerrors.ErrIdempotencyConflict
	}
	s.quotes[id] = quote
	return nil
}

func (s *Store) GetQuote(_ context.Context, quoteID string) (entities.OfferQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quote, ok := s.quotes[strings.TrimSpace(quoteID)]
	if !ok {
		return entities.OfferQuote{}, domainerrors.ErrNotFound
	}
	return quote, nil
}

func (s *Store) BuildMonthlyReport(_ context.Context, month string) (ports.QuoteReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := ports.QuoteReport{Month: strings.TrimSpace(month)}
	byCurrency := make(map[money.Currency]*ports.CurrencyReport)
	for _, quote := range s.quotes {
		if quote.CreatedAt.UTC().Format("2006-01") != report.Month {
			continue
		}
		currency := quote.Breakdown.Currency
		row, ok := byCurrency[currency]
		if !ok {
			row = &ports.CurrencyReport{Currency: currency}
			byCurrency[currency] = row
		}
		row.Count++
		row.TotalSubtotal += quote.Breakdown.SubtotalMinorUnits
		row.TotalFee += quote.Breakdown.PlatformFeeMinorUnits
		row.TotalCharged += quote.Breakdown.TotalMinorUnits
	}
	report.Currencies = make([]ports.CurrencyReport, 0, len(byCurrency))
	for _, row := range byCurrency {
		report.Currencies = append(report.Currencies, *row)
	}
	sort.Slice(report.Currencies, func(i, j int) bool {
		return report.Currencies[i].Currency < report.Currencies[j].Currency
	})
	return report, nil
}

// UpsertRateCard deactivates any other active card in the same slot before
// storing card.
func (s *Store) UpsertRateCard(_ context.Context, card entities.RateCard) (entities.RateCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(card.RateCardID)
	if id == "" {
		return entities.RateCard{}, domainerrors.ErrInvalidInput
	}
	if card.Active {
		for existingID, existing := range s.rateCards {
			if existingID != id && existing.Active && existing.Key() == card.Key() {
				existing.Active = false
				existing.UpdatedAt = card.UpdatedAt
				s.rateCards[existingID] = existing
			}
		}
	}
	s.rateCards[id] = card
	return card, nil
}

func (s *Store) ListRateCards(_ context.Context, creatorID string) ([]entities.RateCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.RateCard, 0)
	for _, card := range s.rateCards {
		if card.CreatorID == strings.TrimSpace(creatorID) {
			items = append(items, card)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DeliverableType != items[j].DeliverableType {
			return items[i].DeliverableType < items[j].DeliverableType
		}
		if items[i].Currency != items[j].Currency {
			return items[i].Currency < items[j].Currency
		}
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.idempotency[strings.TrimSpace(key)]
	if !ok {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now.UTC()) {
		delete(s.idempotency, strings.TrimSpace(key))
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) PutRecord(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(record.Key)
	if key == "" {
		return domainerrors.ErrInvalidInput
	}
	if existing, ok := s.idempotency[key]; ok {
		if existing.RequestHash != record.RequestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		if !bytes.Equal(existing.ResponsePayload, record.ResponsePayload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.idempotency[key] = record
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		return domainerrors.ErrInvalidInput
	}

	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.Message.Payload, payload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}

	s.outbox[outboxID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
		Status: outboxStatusPending,
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.Status == outboxStatusPending {
			items = append(items, row.Message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrNotFound
	}
	ts := publishedAt.UTC()
	row.Status = outboxStatusPublished
	row.PublishedAt = &ts
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
