package entities

import "strings"

// OfferStatus mirrors the offer lifecycle as seen by the scanner. The
// pricing context keeps its own copy of this vocabulary.
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

// ParseOfferStatus normalizes a caller supplied status. no_payment is an
// alias for pending; anything unrecognised is returned as-is and treated as
// unsecured.
func ParseOfferStatus(raw string) OfferStatus {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "no_payment" {
		return OfferStatusPending
	}
	return OfferStatus(value)
}

// Secured reports whether payment is held in escrow for the offer.
func (s OfferStatus) Secured() bool {
	return s == OfferStatusPaidEscrow || s == OfferStatusInProgress
}
