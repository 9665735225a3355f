package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/services"
	"creatorhub/contexts/finance-core/offer-pricing-engine/ports"
	contractsv1 "creatorhub/contracts/gen/events/v1"
)

const moduleName = "finance-core/offer-pricing-engine"

type Service struct {
	Repo                       ports.Repository
	RateCards                  ports.RateCardRepository
	Idempotency                ports.IdempotencyStore
	Outbox                     ports.OutboxWriter
	Clock                      ports.Clock
	IDGen                      ports.IDGenerator
	Engine                     services.Engine
	IdempotencyTTL             time.Duration
	DisablePricedEventEmission bool
	Logger                     *slog.Logger
}

func (s Service) Calculate(
	ctx context.Context,
	items []entities.LineItem,
	platformFeePercent *float64,
) (entities.PricingBreakdown, error) {
	engine := s.engine()
	feePercent, err := s.resolveFeePercent(platformFeePercent)
	if err != nil {
		return entities.PricingBreakdown{}, err
	}
	for _, item := range items {
		if item.UnitPriceMinorUnits < 0 || item.Quantity < 0 {
			return entities.PricingBreakdown{}, domainerrors.ErrInvalidInput
		}
	}

	breakdown, err := engine.CalculatePricing(normalizeItems(items), feePercent)
	if err != nil {
		ResolveLogger(s.Logger).Warn("offer pricing calculation rejected",
			"event", "offer_pricing_calculation_rejected",
			"module", moduleName,
			"layer", "application",
			"item_count", len(items),
			"error", err.Error(),
		)
		return entities.PricingBreakdown{}, err
	}
	return breakdown, nil
}

func (s Service) Validate(_ context.Context, offer entities.OfferData) entities.ValidationResult {
	offer.Items = normalizeItems(offer.Items)
	result := s.engine().ValidateOfferPricing(offer)
	if !result.IsValid {
		ResolveLogger(s.Logger).Info("offer pricing validation failed",
			"event", "offer_pricing_validation_failed",
			"module", moduleName,
			"layer", "application",
			"error_count", len(result.Errors),
		)
	}
	return result
}

func (s Service) Convert(_ context.Context, amountMinorUnits int64, from string, to string) (entities.ConvertedAmount, error) {
	fromCurrency, err := money.Parse(from)
	if err != nil {
		return entities.ConvertedAmount{}, err
	}
	toCurrency, err := money.Parse(to)
	if err != nil {
		return entities.ConvertedAmount{}, err
	}
	return entities.ConvertedAmount{
		Currency:    toCurrency,
		AmountMinor: s.engine().ConvertCurrency(amountMinorUnits, fromCurrency, toCurrency),
	}, nil
}

func (s Service) UpsertRateCard(ctx context.Context, card entities.RateCard) (entities.RateCard, error) {
	engine := s.engine()
	card.CreatorID = strings.TrimSpace(card.CreatorID)
	card.DeliverableType = entities.NormalizeDeliverableType(string(card.DeliverableType))
	currency, err := money.Parse(string(card.Currency))
	if err != nil {
		return entities.RateCard{}, err
	}
	card.Currency = currency
	if card.CreatorID == "" ||
		!card.DeliverableType.IsSupported() ||
		card.BasePriceMinorUnits <= 0 ||
		card.RushPercent < 0 ||
		card.RushPercent > engine.Policy.MaxRushPercent {
		return entities.RateCard{}, domainerrors.ErrInvalidInput
	}

	if strings.TrimSpace(card.RateCardID) == "" {
		id, err := s.IDGen.NewID(ctx)
		if err != nil {
			return entities.RateCard{}, err
		}
		card.RateCardID = strings.TrimSpace(id)
	}
	card.Active = true
	card.UpdatedAt = s.now()

	saved, err := s.RateCards.UpsertRateCard(ctx, card)
	if err != nil {
		return entities.RateCard{}, err
	}
	ResolveLogger(s.Logger).Info("rate card upserted",
		"event", "rate_card_upserted",
		"module", moduleName,
		"layer", "application",
		"rate_card_id", saved.RateCardID,
		"creator_id", saved.CreatorID,
		"deliverable_type", string(saved.DeliverableType),
		"currency", string(saved.Currency),
	)
	return saved, nil
}

func (s Service) ListRateCards(ctx context.Context, creatorID string) ([]entities.RateCard, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	cards, err := s.RateCards.ListRateCards(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if err := services.EnsureSingleActiveRateCards(cards); err != nil {
		ResolveLogger(s.Logger).Error("rate card invariant broken",
			"event", "rate_card_invariant_broken",
			"module", moduleName,
			"layer", "application",
			"creator_id", creatorID,
			"error", err.Error(),
		)
		return nil, err
	}
	return cards, nil
}

// QuoteOffer prices a brand's selections from the creator's active rate cards
// and persists the result as a draft quote. Replays with the same key return
// the stored quote.
func (s Service) QuoteOffer(
	ctx context.Context,
	idempotencyKey string,
	input ports.QuoteOfferInput,
) (entities.OfferQuote, bool, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return entities.OfferQuote{}, false, domainerrors.ErrIdempotencyKeyMissing
	}
	input, err := s.normalizeQuoteInput(input)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}
	feePercent, err := s.resolveFeePercent(input.PlatformFeePercent)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}

	now := s.now()
	requestHash := hashPayload(map[string]any{
		"offer_id":             input.OfferID,
		"brand_id":             input.BrandID,
		"creator_id":           input.CreatorID,
		"selections":           input.Selections,
		"platform_fee_percent": feePercent,
		"currency":             input.Currency,
		"display_currency":     input.DisplayCurrency,
	})

	record, found, err := s.Idempotency.GetRecord(ctx, idempotencyKey, now)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}
	if found {
		if record.RequestHash != requestHash {
			return entities.OfferQuote{}, false, domainerrors.ErrIdempotencyConflict
		}
		var replayed entities.OfferQuote
		if err := json.Unmarshal(record.ResponsePayload, &replayed); err != nil {
			return entities.OfferQuote{}, false, err
		}
		return replayed, true, nil
	}

	engine := s.engine()
	cards, err := s.RateCards.ListRateCards(ctx, input.CreatorID)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}
	if input.Currency != "" {
		cards = filterCardsByCurrency(cards, money.Currency(input.Currency))
	}
	items, err := engine.GenerateOfferItems(input.Selections, cards)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}
	breakdown, err := engine.CalculatePricing(items, feePercent)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}

	quoteID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}
	quote := entities.OfferQuote{
		QuoteID:        strings.TrimSpace(quoteID),
		OfferID:        input.OfferID,
		BrandID:        input.BrandID,
		CreatorID:      input.CreatorID,
		Status:         entities.OfferStatusDraft,
		Items:          items,
		Breakdown:      breakdown,
		CreatedAt:      now,
		IdempotencyKey: idempotencyKey,
	}
	if input.DisplayCurrency != "" {
		display := money.Currency(input.DisplayCurrency)
		quote.DisplayTotal = &entities.ConvertedAmount{
			Currency:    display,
			AmountMinor: engine.ConvertCurrency(breakdown.TotalMinorUnits, breakdown.Currency, display),
		}
	}

	if err := s.Repo.CreateQuote(ctx, quote); err != nil {
		return entities.OfferQuote{}, false, err
	}
	if err := s.appendOfferPricedOutbox(ctx, quote); err != nil {
		return entities.OfferQuote{}, false, err
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return entities.OfferQuote{}, false, err
	}
	if err := s.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
		Key:             idempotencyKey,
		RequestHash:     requestHash,
		ResponsePayload: payload,
		ExpiresAt:       now.Add(s.idempotencyTTL()),
	}); err != nil {
		return entities.OfferQuote{}, false, err
	}

	ResolveLogger(s.Logger).Info("offer quote created",
		"event", "offer_quote_created",
		"module", moduleName,
		"layer", "application",
		"quote_id", quote.QuoteID,
		"offer_id", quote.OfferID,
		"creator_id", quote.CreatorID,
		"total_cents", breakdown.TotalMinorUnits,
		"currency", string(breakdown.Currency),
	)
	return quote, false, nil
}

func (s Service) GetQuote(ctx context.Context, quoteID string) (entities.OfferQuote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.OfferQuote{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetQuote(ctx, quoteID)
}

func (s Service) MonthlyReport(ctx context.Context, month string) (ports.QuoteReport, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse("2006-01", month); err != nil {
		return ports.QuoteReport{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.BuildMonthlyReport(ctx, month)
}

func (s Service) appendOfferPricedOutbox(ctx context.Context, quote entities.OfferQuote) error {
	if s.Outbox == nil || s.DisablePricedEventEmission {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(map[string]any{
		"quote_id":               quote.QuoteID,
		"offer_id":               quote.OfferID,
		"brand_id":               quote.BrandID,
		"creator_id":             quote.CreatorID,
		"currency":               string(quote.Breakdown.Currency),
		"subtotal_cents":         quote.Breakdown.SubtotalMinorUnits,
		"platform_fee_percent":   quote.Breakdown.PlatformFeePercent,
		"platform_fee_cents":     quote.Breakdown.PlatformFeeMinorUnits,
		"total_cents":            quote.Breakdown.TotalMinorUnits,
		"creator_earnings_cents": quote.Breakdown.CreatorEarningsMinorUnits,
		"priced_at":              quote.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          strings.TrimSpace(eventID),
		EventType:        contractsv1.EventTypeOfferPriced,
		OccurredAt:       quote.CreatedAt.UTC(),
		SourceService:    "offer-pricing-engine",
		TraceID:          strings.TrimSpace(eventID),
		SchemaVersion:    1,
		PartitionKeyPath: "offer_id",
		PartitionKey:     quote.OfferID,
		Data:             data,
	})
}

func (s Service) normalizeQuoteInput(input ports.QuoteOfferInput) (ports.QuoteOfferInput, error) {
	input.OfferID = strings.TrimSpace(input.OfferID)
	input.BrandID = strings.TrimSpace(input.BrandID)
	input.CreatorID = strings.TrimSpace(input.CreatorID)
	if input.OfferID == "" || input.BrandID == "" || input.CreatorID == "" || len(input.Selections) == 0 {
		return ports.QuoteOfferInput{}, domainerrors.ErrInvalidInput
	}
	if strings.TrimSpace(input.Currency) != "" {
		currency, err := money.Parse(input.Currency)
		if err != nil {
			return ports.QuoteOfferInput{}, err
		}
		input.Currency = string(currency)
	}
	if strings.TrimSpace(input.DisplayCurrency) != "" {
		display, err := money.Parse(input.DisplayCurrency)
		if err != nil {
			return ports.QuoteOfferInput{}, err
		}
		input.DisplayCurrency = string(display)
	}

	maxRush := s.engine().Policy.MaxRushPercent
	selections := make([]entities.Selection, 0, len(input.Selections))
	for _, selection := range input.Selections {
		selection.CreatorID = strings.TrimSpace(selection.CreatorID)
		if selection.CreatorID == "" {
			selection.CreatorID = input.CreatorID
		}
		if selection.CreatorID != input.CreatorID {
			return ports.QuoteOfferInput{}, domainerrors.ErrInvalidInput
		}
		selection.DeliverableType = entities.NormalizeDeliverableType(string(selection.DeliverableType))
		if !selection.DeliverableType.IsSupported() || selection.Quantity < 0 {
			return ports.QuoteOfferInput{}, domainerrors.ErrInvalidInput
		}
		if selection.RushPercent != nil && *selection.RushPercent > maxRush {
			return ports.QuoteOfferInput{}, domainerrors.ErrInvalidInput
		}
		selections = append(selections, selection)
	}
	input.Selections = selections
	return input, nil
}

func (s Service) resolveFeePercent(requested *float64) (float64, error) {
	policy := s.engine().Policy
	if requested == nil {
		return policy.DefaultFeePercent, nil
	}
	if !policy.FeeInRange(*requested) {
		return 0, domainerrors.ErrInvalidInput
	}
	return *requested, nil
}

func (s Service) engine() services.Engine {
	if s.Engine.Converter.Rates == nil {
		return services.NewEngine(entities.DefaultPolicy(), money.NewConverter(nil, s.Logger))
	}
	return s.Engine
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.IdempotencyTTL
}

func normalizeItems(items []entities.LineItem) []entities.LineItem {
	normalized := make([]entities.LineItem, 0, len(items))
	for _, item := range items {
		item.DeliverableType = entities.NormalizeDeliverableType(string(item.DeliverableType))
		item.Currency = money.Currency(strings.ToUpper(strings.TrimSpace(string(item.Currency))))
		normalized = append(normalized, item)
	}
	return normalized
}

func filterCardsByCurrency(cards []entities.RateCard, currency money.Currency) []entities.RateCard {
	filtered := make([]entities.RateCard, 0, len(cards))
	for _, card := range cards {
		if card.Currency == currency {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

func hashPayload(payload map[string]any) string {
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
