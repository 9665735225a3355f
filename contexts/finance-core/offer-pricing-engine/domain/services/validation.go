package services

import (
	"errors"
	"fmt"
	"strings"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
)

func ValidateOfferPricing(offer entities.OfferData) entities.ValidationResult {
	return defaultEngine.ValidateOfferPricing(offer)
}

// ValidateOfferPricing re-derives the breakdown and cross-checks the totals the
// caller supplied. Failures are reported in the result, never returned.
func (e Engine) ValidateOfferPricing(offer entities.OfferData) entities.ValidationResult {
	var problems []string

	feePercent := e.Policy.DefaultFeePercent
	if offer.PlatformFeePercent != nil {
		feePercent = *offer.PlatformFeePercent
	}

	if len(offer.Items) == 0 {
		problems = append(problems, "offer must contain at least one item")
	}
	for idx, item := range offer.Items {
		if strings.TrimSpace(string(item.DeliverableType)) == "" {
			problems = append(problems, fmt.Sprintf("item %d: deliverable type is required", idx))
		}
		if item.UnitPriceMinorUnits <= 0 {
			problems = append(problems, fmt.Sprintf("item %d: unit price must be positive", idx))
		}
		if item.EffectiveQuantity() <= 0 {
			problems = append(problems, fmt.Sprintf("item %d: quantity must be positive", idx))
		}
	}
	if !e.Policy.FeeInRange(feePercent) {
		problems = append(problems, fmt.Sprintf(
			"platform fee percent must be between %g and %g",
			e.Policy.MinFeePercent,
			e.Policy.MaxFeePercent,
		))
	}

	calculated, err := e.CalculatePricing(offer.Items, feePercent)
	if err != nil {
		var mismatch *domainerrors.CurrencyMismatchError
		switch {
		case errors.As(err, &mismatch):
			problems = append(problems, "all items must share one currency: "+mismatch.Error())
		case errors.Is(err, domainerrors.ErrAmountOverflow):
			problems = append(problems, "offer amounts exceed the supported range: "+err.Error())
		default:
			problems = append(problems, err.Error())
		}
		return entities.ValidationResult{IsValid: false, Errors: problems, Calculated: calculated}
	}

	if calculated.TotalMinorUnits <= 0 {
		problems = append(problems, "total must be positive")
	}
	if diff := absDiff(offer.SubtotalCents, calculated.SubtotalMinorUnits); diff > e.Policy.ToleranceMinorUnits {
		problems = append(problems, fmt.Sprintf(
			"subtotal mismatch: got %d, expected %d",
			offer.SubtotalCents,
			calculated.SubtotalMinorUnits,
		))
	}
	if diff := absDiff(offer.TotalCents, calculated.TotalMinorUnits); diff > e.Policy.ToleranceMinorUnits {
		problems = append(problems, fmt.Sprintf(
			"total mismatch: got %d, expected %d",
			offer.TotalCents,
			calculated.TotalMinorUnits,
		))
	}

	if problems == nil {
		problems = []string{}
	}
	return entities.ValidationResult{
		IsValid:    len(problems) == 0,
		Errors:     problems,
		Calculated: calculated,
	}
}

func absDiff(a int64, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
