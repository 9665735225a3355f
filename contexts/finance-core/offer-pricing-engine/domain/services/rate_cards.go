package services

import (
	"fmt"
	"strings"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
)

func GenerateOfferItems(selections []entities.Selection, rateCards []entities.RateCard) ([]entities.LineItem, error) {
	return defaultEngine.GenerateOfferItems(selections, rateCards)
}

// GenerateOfferItems prices each selection from the creator's active rate
// card. A selection's rush percent overrides the card default when set.
func (e Engine) GenerateOfferItems(selections []entities.Selection, rateCards []entities.RateCard) ([]entities.LineItem, error) {
	items := make([]entities.LineItem, 0, len(selections))
	for _, selection := range selections {
		card, ok := findRateCard(rateCards, selection.CreatorID, selection.DeliverableType)
		if !ok {
			return nil, &domainerrors.RateCardNotFoundError{
				CreatorID:       selection.CreatorID,
				DeliverableType: string(selection.DeliverableType),
			}
		}

		rush := card.RushPercent
		if selection.RushPercent != nil {
			rush = *selection.RushPercent
		}
		quantity := selection.Quantity
		if quantity == 0 {
			quantity = 1
		}
		unitPrice, err := e.ApplyRushPricing(card.BasePriceMinorUnits, rush)
		if err != nil {
			return nil, fmt.Errorf("creator %q deliverable %q: %w", card.CreatorID, card.DeliverableType, err)
		}

		items = append(items, entities.LineItem{
			DeliverableType:     card.DeliverableType,
			Quantity:            quantity,
			UnitPriceMinorUnits: unitPrice,
			Currency:            card.Currency,
			CreatorID:           card.CreatorID,
			RushPercent:         rush,
		})
	}
	return items, nil
}

func findRateCard(cards []entities.RateCard, creatorID string, deliverable entities.DeliverableType) (entities.RateCard, bool) {
	creatorID = strings.TrimSpace(creatorID)
	for _, card := range cards {
		if !card.Active {
			continue
		}
		if strings.TrimSpace(card.CreatorID) == creatorID && card.DeliverableType == deliverable {
			return card, true
		}
	}
	return entities.RateCard{}, false
}

// EnsureSingleActiveRateCards checks the one-active-card-per-slot invariant.
func EnsureSingleActiveRateCards(cards []entities.RateCard) error {
	seen := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		if !card.Active {
			continue
		}
		key := card.Key()
		if _, exists := seen[key]; exists {
			return domainerrors.ErrDuplicateRateCard
		}
		seen[key] = struct{}{}
	}
	return nil
}
