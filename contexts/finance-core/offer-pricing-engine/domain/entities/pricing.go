package entities

import (
	"strings"
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
)

type DeliverableType string

const (
	DeliverableShortVideoPost DeliverableType = "short-video-post"
	DeliverableStoryPost      DeliverableType = "story-post"
	DeliverableLongVideo      DeliverableType = "long-video"
	DeliverableImagePost      DeliverableType = "image-post"
	DeliverableLiveStream     DeliverableType = "live-stream"
	DeliverableBundle         DeliverableType = "bundle"
)

func (d DeliverableType) IsSupported() bool {
	switch d {
	case DeliverableShortVideoPost,
		DeliverableStoryPost,
		DeliverableLongVideo,
		DeliverableImagePost,
		DeliverableLiveStream,
		DeliverableBundle:
		return true
	default:
		return false
	}
}

func NormalizeDeliverableType(raw string) DeliverableType {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "_", "-")
	return DeliverableType(value)
}

// LineItem is one deliverable unit in an offer. Prices are integer minor units.
type LineItem struct {
	DeliverableType     DeliverableType `json:"deliverable_type"`
	Quantity            int             `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unit_price_cents"`
	Currency            money.Currency  `json:"currency"`
	CreatorID           string          `json:"creator_id,omitempty"`
	RushPercent         float64         `json:"rush_percent,omitempty"`
	Description         string          `json:"description,omitempty"`
}

// EffectiveQuantity applies the default quantity of 1 to unset items.
func (i LineItem) EffectiveQuantity() int {
	if i.Quantity == 0 {
		return 1
	}
	return i.Quantity
}

func (i LineItem) TotalMinorUnits() (int64, error) {
	return money.Mul(i.UnitPriceMinorUnits, int64(i.EffectiveQuantity()))
}

type LineItemBreakdown struct {
	DeliverableType     DeliverableType `json:"deliverable_type"`
	Quantity            int             `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unit_price_cents"`
	TotalMinorUnits     int64           `json:"total_cents"`
}

// PricingBreakdown is built fresh per request and never mutated afterwards.
// The platform fee is charged on top of the subtotal; the creator keeps the
// full subtotal.
type PricingBreakdown struct {
	SubtotalMinorUnits        int64               `json:"subtotal_cents"`
	PlatformFeePercent        float64             `json:"platform_fee_percent"`
	PlatformFeeMinorUnits     int64               `json:"platform_fee_cents"`
	TotalMinorUnits           int64               `json:"total_cents"`
	CreatorEarningsMinorUnits int64               `json:"creator_earnings_cents"`
	Currency                  money.Currency      `json:"currency"`
	LineItems                 []LineItemBreakdown `json:"line_items"`
}

func (b PricingBreakdown) Balanced() bool {
	return b.TotalMinorUnits == b.SubtotalMinorUnits+b.PlatformFeeMinorUnits &&
		b.CreatorEarningsMinorUnits == b.SubtotalMinorUnits
}

// RateCard is a creator's standing price for one deliverable in one currency.
type RateCard struct {
	RateCardID          string          `json:"rate_card_id"`
	CreatorID           string          `json:"creator_id"`
	DeliverableType     DeliverableType `json:"deliverable_type"`
	BasePriceMinorUnits int64           `json:"base_price_cents"`
	Currency            money.Currency  `json:"currency"`
	RushPercent         float64         `json:"rush_percent"`
	Active              bool            `json:"active"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Key identifies the (creator, deliverable, currency) slot a card occupies.
func (c RateCard) Key() string {
	return strings.TrimSpace(c.CreatorID) + "|" + string(c.DeliverableType) + "|" + string(c.Currency)
}

// Selection is a brand's pick of one creator deliverable.
type Selection struct {
	CreatorID       string          `json:"creator_id"`
	DeliverableType DeliverableType `json:"deliverable_type"`
	Quantity        int             `json:"quantity"`
	RushPercent     *float64        `json:"rush_percent,omitempty"`
}

// OfferData is a caller-supplied offer with the totals it claims.
type OfferData struct {
	Items              []LineItem `json:"items"`
	PlatformFeePercent *float64   `json:"platform_fee_percent,omitempty"`
	SubtotalCents      int64      `json:"subtotal_cents"`
	TotalCents         int64      `json:"total_cents"`
}

type ValidationResult struct {
	IsValid    bool             `json:"is_valid"`
	Errors     []string         `json:"errors"`
	Calculated PricingBreakdown `json:"calculated"`
}

// Policy holds the business constants for pricing. They are expected to
// change, so callers override them instead of inlining numbers.
type Policy struct {
	DefaultFeePercent   float64
	MinFeePercent       float64
	MaxFeePercent       float64
	MaxRushPercent      float64
	ToleranceMinorUnits int64
	DefaultCurrency     money.Currency
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultFeePercent:   20,
		MinFeePercent:       0,
		MaxFeePercent:       50,
		MaxRushPercent:      200,
		ToleranceMinorUnits: 1,
		DefaultCurrency:     money.DefaultCurrency,
	}
}

func (p Policy) FeeInRange(percent float64) bool {
	return percent >= p.MinFeePercent && percent <= p.MaxFeePercent
}
