package application

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"creatorhub/contexts/finance-core/offer-pricing-engine/adapters/memory"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	"creatorhub/contexts/finance-core/offer-pricing-engine/ports"
)

func newTestService(store *memory.Store) Service {
	return Service{
		Repo:        store,
		RateCards:   store,
		Idempotency: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
	}
}

func seedRateCard(t *testing.T, svc Service, card entities.RateCard) entities.RateCard {
	t.Helper()
	saved, err := svc.UpsertRateCard(context.Background(), card)
	if err != nil {
		t.Fatalf("seed rate card failed: %v", err)
	}
	return saved
}

func TestQuoteOfferPricesFromRateCardAndReplays(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	seedRateCard(t, svc, entities.RateCard{
		CreatorID:           "creator-1",
		DeliverableType:     "short_video_post",
		BasePriceMinorUnits: 5000,
		Currency:            "usd",
	})

	rush := 25.0
	input := ports.QuoteOfferInput{
		OfferID:   "offer-1",
		BrandID:   "brand-1",
		CreatorID: "creator-1",
		Selections: []entities.Selection{{
			DeliverableType: entities.DeliverableShortVideoPost,
			Quantity:        2,
			RushPercent:     &rush,
		}},
	}
	first, replayed, err := svc.QuoteOffer(context.Background(), "quote-key-1", input)
	if err != nil {
		t.Fatalf("quote offer failed: %v", err)
	}
	if replayed {
		t.Fatalf("expected first quote not to be a replay")
	}
	if first.Status != entities.OfferStatusDraft {
		t.Fatalf("expected draft quote, got %s", first.Status)
	}
	if first.Breakdown.SubtotalMinorUnits != 12500 || first.Breakdown.PlatformFeeMinorUnits != 2500 ||
		first.Breakdown.TotalMinorUnits != 15000 || first.Breakdown.CreatorEarningsMinorUnits != 12500 {
		t.Fatalf("unexpected breakdown: %+v", first.Breakdown)
	}

	second, replayed, err := svc.QuoteOffer(context.Background(), "quote-key-1", input)
	if err != nil {
		t.Fatalf("replayed quote failed: %v", err)
	}
	if !replayed || second.QuoteID != first.QuoteID {
		t.Fatalf("expected replay of quote %s, got %s (replayed=%v)", first.QuoteID, second.QuoteID, replayed)
	}

	stored, err := svc.GetQuote(context.Background(), first.QuoteID)
	if err != nil {
		t.Fatalf("get quote failed: %v", err)
	}
	if stored.Breakdown.TotalMinorUnits != 15000 {
		t.Fatalf("unexpected stored total %d", stored.Breakdown.TotalMinorUnits)
	}
}

func TestQuoteOfferConflictOnDifferentPayload(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	seedRateCard(t, svc, entities.RateCard{
		CreatorID:           "creator-2",
		DeliverableType:     entities.DeliverableStoryPost,
		BasePriceMinorUnits: 2000,
		Currency:            money.MYR,
	})

	input := ports.QuoteOfferInput{
		OfferID:    "offer-2",
		BrandID:    "brand-2",
		CreatorID:  "creator-2",
		Selections: []entities.Selection{{DeliverableType: entities.DeliverableStoryPost, Quantity: 1}},
	}
	if _, _, err := svc.QuoteOffer(context.Background(), "quote-key-2", input); err != nil {
		t.Fatalf("seed quote failed: %v", err)
	}
	input.Selections[0].Quantity = 3
	_, _, err := svc.QuoteOffer(context.Background(), "quote-key-2", input)
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestQuoteOfferRequiresIdempotencyKey(t *testing.T) {
	svc := newTestService(memory.NewStore())
	_, _, err := svc.QuoteOffer(context.Background(), " ", ports.QuoteOfferInput{})
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyMissing) {
		t.Fatalf("expected missing idempotency key, got %v", err)
	}
}

func TestQuoteOfferMissingRateCard(t *testing.T) {
	svc := newTestService(memory.NewStore())
	_, _, err := svc.QuoteOffer(context.Background(), "quote-key-3", ports.QuoteOfferInput{
		OfferID:    "offer-3",
		BrandID:    "brand-3",
		CreatorID:  "creator-3",
		Selections: []entities.Selection{{DeliverableType: entities.DeliverableLongVideo}},
	})
	if !errors.Is(err, domainerrors.ErrRateCardNotFound) {
		t.Fatalf("expected rate card not found, got %v", err)
	}
}

func TestQuoteOfferAppendsCanonicalOutboxEvent(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	seedRateCard(t, svc, entities.RateCard{
		CreatorID:           "creator-4",
		DeliverableType:     entities.DeliverableImagePost,
		BasePriceMinorUnits: 10000,
		Currency:            money.SGD,
	})
	quote, _, err := svc.QuoteOffer(context.Background(), "quote-key-4", ports.QuoteOfferInput{
		OfferID:         "offer-4",
		BrandID:         "brand-4",
		CreatorID:       "creator-4",
		Selections:      []entities.Selection{{DeliverableType: entities.DeliverableImagePost, Quantity: 1}},
		DisplayCurrency: "myr",
	})
	if err != nil {
		t.Fatalf("quote offer failed: %v", err)
	}
	if quote.DisplayTotal == nil || quote.DisplayTotal.Currency != money.MYR || quote.DisplayTotal.AmountMinor != 41760 {
		t.Fatalf("unexpected display total: %+v", quote.DisplayTotal)
	}

	outbox, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(outbox) != 1 || outbox[0].EventType != "offer.priced" {
		t.Fatalf("expected one offer.priced event, got %+v", outbox)
	}
	var envelope map[string]any
	if err := json.Unmarshal(outbox[0].Payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if source, _ := envelope["source_service"].(string); source != "offer-pricing-engine" {
		t.Fatalf("unexpected source_service %q", source)
	}
	if path, _ := envelope["partition_key_path"].(string); path != "offer_id" {
		t.Fatalf("unexpected partition_key_path %q", path)
	}
	data, _ := envelope["data"].(map[string]any)
	if offerID, _ := data["offer_id"].(string); offerID != envelope["partition_key"] {
		t.Fatalf("partition key mismatch: data.offer_id=%v partition_key=%v", data["offer_id"], envelope["partition_key"])
	}
}

func TestQuoteOfferCanDisableEventEmission(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	svc.DisablePricedEventEmission = true
	seedRateCard(t, svc, entities.RateCard{
		CreatorID:           "creator-5",
		DeliverableType:     entities.DeliverableLiveStream,
		BasePriceMinorUnits: 30000,
		Currency:            money.USD,
	})
	if _, _, err := svc.QuoteOffer(context.Background(), "quote-key-5", ports.QuoteOfferInput{
		OfferID:    "offer-5",
		BrandID:    "brand-5",
		CreatorID:  "creator-5",
		Selections: []entities.Selection{{DeliverableType: entities.DeliverableLiveStream}},
	}); err != nil {
		t.Fatalf("quote offer failed: %v", err)
	}
	outbox, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(outbox) != 0 {
		t.Fatalf("expected no outbox events, got %d", len(outbox))
	}
}

func TestUpsertRateCardKeepsSingleActiveCard(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	first := seedRateCard(t, svc, entities.RateCard{
		CreatorID:           "creator-6",
		DeliverableType:     entities.DeliverableBundle,
		BasePriceMinorUnits: 90000,
		Currency:            money.USD,
	})
	second := seedRateCard(t, svc, entities.RateCard{
		CreatorID:           "creator-6",
		DeliverableType:     entities.DeliverableBundle,
		BasePriceMinorUnits: 95000,
		Currency:            money.USD,
	})
	if first.RateCardID == second.RateCardID {
		t.Fatalf("expected distinct rate card ids")
	}

	cards, err := svc.ListRateCards(context.Background(), "creator-6")
	if err != nil {
		t.Fatalf("list rate cards failed: %v", err)
	}
	active := 0
	for _, card := range cards {
		if card.Active {
			active++
			if card.BasePriceMinorUnits != 95000 {
				t.Fatalf("expected newest card to stay active, got %+v", card)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active card, got %d", active)
	}
}

func TestUpsertRateCardRejectsInvalidInput(t *testing.T) {
	svc := newTestService(memory.NewStore())
	_, err := svc.UpsertRateCard(context.Background(), entities.RateCard{
		CreatorID:           "creator-7",
		DeliverableType:     entities.DeliverableStoryPost,
		BasePriceMinorUnits: 1000,
		Currency:            money.USD,
		RushPercent:         250,
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for rush above cap, got %v", err)
	}
	_, err = svc.UpsertRateCard(context.Background(), entities.RateCard{
		CreatorID:           "creator-7",
		DeliverableType:     entities.DeliverableStoryPost,
		BasePriceMinorUnits: 1000,
		Currency:            "EUR",
	})
	if !errors.Is(err, domainerrors.ErrUnsupportedCurrency) {
		t.Fatalf("expected unsupported currency, got %v", err)
	}
}

func TestCalculateRejectsFeeOutsidePolicy(t *testing.T) {
	svc := newTestService(memory.NewStore())
	fee := 51.0
	_, err := svc.Calculate(context.Background(), []entities.LineItem{{
		DeliverableType:     entities.DeliverableStoryPost,
		Quantity:            1,
		UnitPriceMinorUnits: 1000,
		Currency:            money.USD,
	}}, &fee)
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	breakdown, err := svc.Calculate(context.Background(), []entities.LineItem{{
		DeliverableType:     entities.DeliverableStoryPost,
		Quantity:            1,
		UnitPriceMinorUnits: 1000,
		Currency:            money.USD,
	}}, nil)
	if err != nil {
		t.Fatalf("calculate with default fee failed: %v", err)
	}
	if breakdown.PlatformFeePercent != 20 || breakdown.PlatformFeeMinorUnits != 200 {
		t.Fatalf("expected default 20%% fee, got %+v", breakdown)
	}
}

func TestCalculateRejectsOverflowingAmounts(t *testing.T) {
	svc := newTestService(memory.NewStore())
	breakdown, err := svc.Calculate(context.Background(), []entities.LineItem{{
		DeliverableType:     entities.DeliverableBundle,
		Quantity:            2,
		UnitPriceMinorUnits: math.MaxInt64/2 + 1,
		Currency:            money.USD,
	}}, nil)
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %+v err=%v", breakdown, err)
	}
}

func TestConvertRejectsUnsupportedCurrency(t *testing.T) {
	svc := newTestService(memory.NewStore())
	if _, err := svc.Convert(context.Background(), 100, "USD", "JPY"); !errors.Is(err, domainerrors.ErrUnsupportedCurrency) {
		t.Fatalf("expected unsupported currency, got %v", err)
	}
	converted, err := svc.Convert(context.Background(), 100, "sgd", "sgd")
	if err != nil || converted.AmountMinor != 100 {
		t.Fatalf("expected identity conversion, got %+v err=%v", converted, err)
	}
}

func TestMonthlyReportGroupsByCurrency(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	seedRateCard(t, svc, entities.RateCard{CreatorID: "creator-8", DeliverableType: entities.DeliverableStoryPost, BasePriceMinorUnits: 1000, Currency: money.USD})
	seedRateCard(t, svc, entities.RateCard{CreatorID: "creator-9", DeliverableType: entities.DeliverableStoryPost, BasePriceMinorUnits: 2000, Currency: money.MYR})

	for idx, creator := range []string{"creator-8", "creator-8", "creator-9"} {
		if _, _, err := svc.QuoteOffer(context.Background(), "report-key-"+string(rune('a'+idx)), ports.QuoteOfferInput{
			OfferID:    "offer-report-" + string(rune('a'+idx)),
			BrandID:    "brand-report",
			CreatorID:  creator,
			Selections: []entities.Selection{{DeliverableType: entities.DeliverableStoryPost}},
		}); err != nil {
			t.Fatalf("quote %d failed: %v", idx, err)
		}
	}

	month := store.Now().Format("2006-01")
	report, err := svc.MonthlyReport(context.Background(), month)
	if err != nil {
		t.Fatalf("monthly report failed: %v", err)
	}
	if len(report.Currencies) != 2 {
		t.Fatalf("expected two currencies, got %+v", report.Currencies)
	}
	myr, usd := report.Currencies[0], report.Currencies[1]
	if myr.Currency != money.MYR || myr.Count != 1 || myr.TotalFee != 400 {
		t.Fatalf("unexpected MYR row: %+v", myr)
	}
	if usd.Currency != money.USD || usd.Count != 2 || usd.TotalCharged != 2400 {
		t.Fatalf("unexpected USD row: %+v", usd)
	}

	if _, err := svc.MonthlyReport(context.Background(), "2024-13"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid month, got %v", err)
	}
}
