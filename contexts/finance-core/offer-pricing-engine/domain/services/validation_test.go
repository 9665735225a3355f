package services

import (
	"math"
	"strings"
	"testing"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
)

func TestValidateOfferPricingRoundTrip(t *testing.T) {
	fees := []float64{0, 5, 12.5, 20, 49.9, 50}
	for price := int64(1); price < 5000; price += 211 {
		for _, fee := range fees {
			items := []entities.LineItem{
				{DeliverableType: entities.DeliverableShortVideoPost, Quantity: 3, UnitPriceMinorUnits: price, Currency: money.SGD},
				{DeliverableType: entities.DeliverableStoryPost, Quantity: 1, UnitPriceMinorUnits: price + 17, Currency: money.SGD},
			}
			breakdown, err := CalculatePricing(items, fee)
			if err != nil {
				t.Fatalf("calculate pricing failed: %v", err)
			}
			feeCopy := fee
			result := ValidateOfferPricing(entities.OfferData{
				Items:              items,
				PlatformFeePercent: &feeCopy,
				SubtotalCents:      breakdown.SubtotalMinorUnits,
				TotalCents:         breakdown.TotalMinorUnits,
			})
			if !result.IsValid {
				t.Fatalf("expected round trip to validate for price=%d fee=%v, got %v", price, fee, result.Errors)
			}
		}
	}
}

func TestValidateOfferPricingToleratesOneMinorUnit(t *testing.T) {
	items := []entities.LineItem{{DeliverableType: entities.DeliverableLongVideo, Quantity: 1, UnitPriceMinorUnits: 10000, Currency: money.USD}}
	result := ValidateOfferPricing(entities.OfferData{Items: items, SubtotalCents: 10001, TotalCents: 11999})
	if !result.IsValid {
		t.Fatalf("expected +/-1 tolerance to pass, got %v", result.Errors)
	}
	result = ValidateOfferPricing(entities.OfferData{Items: items, SubtotalCents: 10000, TotalCents: 12002})
	if result.IsValid {
		t.Fatalf("expected total off by 2 to fail")
	}
	if !containsError(result.Errors, "total mismatch") {
		t.Fatalf("expected total mismatch error, got %v", result.Errors)
	}
}

func TestValidateOfferPricingStructuralErrors(t *testing.T) {
	fee := 65.0
	result := ValidateOfferPricing(entities.OfferData{
		Items: []entities.LineItem{
			{Quantity: -1, UnitPriceMinorUnits: 0, Currency: money.USD},
		},
		PlatformFeePercent: &fee,
	})
	if result.IsValid {
		t.Fatalf("expected invalid offer")
	}
	for _, fragment := range []string{"deliverable type", "unit price", "quantity", "platform fee percent", "total must be positive"} {
		if !containsError(result.Errors, fragment) {
			t.Fatalf("expected error containing %q, got %v", fragment, result.Errors)
		}
	}
}

func TestValidateOfferPricingEmptyAndMixedCurrency(t *testing.T) {
	result := ValidateOfferPricing(entities.OfferData{})
	if result.IsValid || !containsError(result.Errors, "at least one item") {
		t.Fatalf("expected empty offer to fail, got %+v", result)
	}

	result = ValidateOfferPricing(entities.OfferData{Items: []entities.LineItem{
		{DeliverableType: entities.DeliverableStoryPost, Quantity: 1, UnitPriceMinorUnits: 100, Currency: money.USD},
		{DeliverableType: entities.DeliverableStoryPost, Quantity: 1, UnitPriceMinorUnits: 100, Currency: money.MYR},
	}})
	if result.IsValid || !containsError(result.Errors, "one currency") {
		t.Fatalf("expected currency mismatch to be reported, got %+v", result)
	}
}

func containsError(errs []string, fragment string) bool {
	for _, item := range errs {
		if strings.Contains(item, fragment) {
			return true
		}
	}
	return false
}

func TestValidateOfferPricingReportsOverflow(t *testing.T) {
	items := []entities.LineItem{{
		DeliverableType:     entities.DeliverableBundle,
		Quantity:            2,
		UnitPriceMinorUnits: math.MaxInt64/2 + 1,
		Currency:            money.USD,
	}}
	result := ValidateOfferPricing(entities.OfferData{Items: items, SubtotalCents: 2, TotalCents: 2})
	if result.IsValid {
		t.Fatalf("expected overflowing offer to be invalid")
	}
	found := false
	for _, problem := range result.Errors {
		if strings.Contains(problem, "exceed the supported range") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected overflow to be reported, got %v", result.Errors)
	}
}
