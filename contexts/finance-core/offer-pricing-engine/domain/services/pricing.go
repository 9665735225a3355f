package services

import (
	"fmt"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
)

// Engine evaluates offers against a pricing policy. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	Policy    entities.Policy
	Converter money.Converter
}

func NewEngine(policy entities.Policy, converter money.Converter) Engine {
	if policy.DefaultCurrency == "" {
		policy.DefaultCurrency = money.DefaultCurrency
	}
	if converter.Rates == nil {
		converter.Rates = money.DefaultRates()
	}
	return Engine{Policy: policy, Converter: converter}
}

var defaultEngine = NewEngine(entities.DefaultPolicy(), money.NewConverter(nil, nil))

func CalculatePricing(items []entities.LineItem, platformFeePercent float64) (entities.PricingBreakdown, error) {
	return defaultEngine.CalculatePricing(items, platformFeePercent)
}

func ApplyRushPricing(basePriceMinorUnits int64, rushPercent float64) (int64, error) {
	return defaultEngine.ApplyRushPricing(basePriceMinorUnits, rushPercent)
}

func ConvertCurrency(amountMinorUnits int64, from money.Currency, to money.Currency) int64 {
	return defaultEngine.ConvertCurrency(amountMinorUnits, from, to)
}

// CalculatePricing turns ordered line items into a breakdown. Rounding happens
// once, when the fee is derived from the integer subtotal. Amounts that do
// not fit in int64 minor units fail with an AmountOverflowError.
func (e Engine) CalculatePricing(items []entities.LineItem, platformFeePercent float64) (entities.PricingBreakdown, error) {
	breakdown := entities.PricingBreakdown{
		PlatformFeePercent: platformFeePercent,
		Currency:           e.Policy.DefaultCurrency,
		LineItems:          []entities.LineItemBreakdown{},
	}
	if len(items) == 0 {
		return breakdown, nil
	}

	currency := items[0].Currency
	for idx, item := range items {
		if item.Currency != currency {
			return entities.PricingBreakdown{}, &domainerrors.CurrencyMismatchError{
				Expected: string(currency),
				Found:    string(item.Currency),
				Index:    idx,
			}
		}
	}
	if !currency.IsSupported() {
		return entities.PricingBreakdown{}, fmt.Errorf("%w: %q", domainerrors.ErrUnsupportedCurrency, currency)
	}

	var subtotal int64
	lines := make([]entities.LineItemBreakdown, 0, len(items))
	for idx, item := range items {
		total, err := item.TotalMinorUnits()
		if err != nil {
			return entities.PricingBreakdown{}, fmt.Errorf("line item %d: %w", idx, err)
		}
		if subtotal, err = money.Add(subtotal, total); err != nil {
			return entities.PricingBreakdown{}, fmt.Errorf("subtotal: %w", err)
		}
		lines = append(lines, entities.LineItemBreakdown{
			DeliverableType:     item.DeliverableType,
			Quantity:            item.EffectiveQuantity(),
			UnitPriceMinorUnits: item.UnitPriceMinorUnits,
			TotalMinorUnits:     total,
		})
	}

	fee, err := money.PercentOf(subtotal, platformFeePercent)
	if err != nil {
		return entities.PricingBreakdown{}, fmt.Errorf("platform fee: %w", err)
	}
	total, err := money.Add(subtotal, fee)
	if err != nil {
		return entities.PricingBreakdown{}, fmt.Errorf("total: %w", err)
	}
	breakdown.SubtotalMinorUnits = subtotal
	breakdown.PlatformFeeMinorUnits = fee
	breakdown.TotalMinorUnits = total
	breakdown.CreatorEarningsMinorUnits = subtotal
	breakdown.Currency = currency
	breakdown.LineItems = lines
	return breakdown, nil
}

// ApplyRushPricing treats a non-positive percentage as no rush.
func (e Engine) ApplyRushPricing(basePriceMinorUnits int64, rushPercent float64) (int64, error) {
	if rushPercent <= 0 {
		return basePriceMinorUnits, nil
	}
	surcharge, err := money.PercentOf(basePriceMinorUnits, rushPercent)
	if err != nil {
		return 0, fmt.Errorf("rush surcharge: %w", err)
	}
	return money.Add(basePriceMinorUnits, surcharge)
}

func (e Engine) ConvertCurrency(amountMinorUnits int64, from money.Currency, to money.Currency) int64 {
	return e.Converter.Convert(amountMinorUnits, from, to)
}
