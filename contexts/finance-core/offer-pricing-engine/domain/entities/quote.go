package entities

import (
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
)

type OfferStatus string

const (
	OfferStatusDraft      OfferStatus = "draft"
	OfferStatusPending    OfferStatus = "pending"
	OfferStatusPaidEscrow OfferStatus = "paid_escrow"
	OfferStatusInProgress OfferStatus = "in_progress"
	OfferStatusCompleted  OfferStatus = "completed"
	OfferStatusCancelled  OfferStatus = "cancelled"
	OfferStatusRefunded   OfferStatus = "refunded"
)

// OfferQuote is a persisted pricing breakdown for one offer. Lifecycle
// transitions belong to the offer service; quotes start as drafts.
type OfferQuote struct {
	QuoteID        string
	OfferID        string
	BrandID        string
	CreatorID      string
	Status         OfferStatus
	Items          []LineItem
	Breakdown      PricingBreakdown
	DisplayTotal   *ConvertedAmount
	CreatedAt      time.Time
	IdempotencyKey string
}

type ConvertedAmount struct {
	Currency    money.Currency `json:"currency"`
	AmountMinor int64          `json:"amount_cents"`
}
