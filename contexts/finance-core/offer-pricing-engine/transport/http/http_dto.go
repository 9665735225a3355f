package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type LineItemRequest struct {
	DeliverableType string  `json:"deliverable_type"`
	Quantity        int     `json:"quantity"`
	UnitPriceCents  int64   `json:"unit_price_cents"`
	Currency        string  `json:"currency"`
	CreatorID       string  `json:"creator_id,omitempty"`
	RushPercent     float64 `json:"rush_percent,omitempty"`
	Description     string  `json:"description,omitempty"`
}

type CalculatePricingRequest struct {
	Items              []LineItemRequest `json:"items"`
	PlatformFeePercent *float64          `json:"platform_fee_percent,omitempty"`
}

type LineItemBreakdownDTO struct {
	DeliverableType string `json:"deliverable_type"`
	Quantity        int    `json:"quantity"`
	UnitPriceCents  int64  `json:"unit_price_cents"`
	TotalCents      int64  `json:"total_cents"`
}

type PricingBreakdownDTO struct {
	SubtotalCents        int64                  `json:"subtotal_cents"`
	PlatformFeePercent   float64                `json:"platform_fee_percent"`
	PlatformFeeCents     int64                  `json:"platform_fee_cents"`
	TotalCents           int64                  `json:"total_cents"`
	CreatorEarningsCents int64                  `json:"creator_earnings_cents"`
	Currency             string                 `json:"currency"`
	LineItems            []LineItemBreakdownDTO `json:"line_items"`
	Display              DisplayAmountsDTO      `json:"display"`
}

// DisplayAmountsDTO carries locale-formatted strings such as "RM1,250.00".
type DisplayAmountsDTO struct {
	Subtotal        string `json:"subtotal"`
	PlatformFee     string `json:"platform_fee"`
	Total           string `json:"total"`
	CreatorEarnings string `json:"creator_earnings"`
}

type CalculatePricingResponse struct {
	Status    string              `json:"status"`
	Data      PricingBreakdownDTO `json:"data"`
	Timestamp string              `json:"timestamp"`
}

type ValidateOfferRequest struct {
	Items              []LineItemRequest `json:"items"`
	PlatformFeePercent *float64          `json:"platform_fee_percent,omitempty"`
	SubtotalCents      int64             `json:"subtotal_cents"`
	TotalCents         int64             `json:"total_cents"`
}

type ValidateOfferResponse struct {
	Status string `json:"status"`
	Data   struct {
		IsValid    bool                `json:"is_valid"`
		Errors     []string            `json:"errors"`
		Calculated PricingBreakdownDTO `json:"calculated"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ConvertCurrencyRequest struct {
	AmountCents int64  `json:"amount_cents"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type ConvertCurrencyResponse struct {
	Status string `json:"status"`
	Data   struct {
		AmountCents int64  `json:"amount_cents"`
		Currency    string `json:"currency"`
		Formatted   string `json:"formatted"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type CurrencyDTO struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type ListCurrenciesResponse struct {
	Status    string        `json:"status"`
	Data      []CurrencyDTO `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type UpsertRateCardRequest struct {
	RateCardID      string  `json:"rate_card_id,omitempty"`
	DeliverableType string  `json:"deliverable_type"`
	BasePriceCents  int64   `json:"base_price_cents"`
	Currency        string  `json:"currency"`
	RushPercent     float64 `json:"rush_percent"`
}

type RateCardDTO struct {
	RateCardID      string  `json:"rate_card_id"`
	CreatorID       string  `json:"creator_id"`
	DeliverableType string  `json:"deliverable_type"`
	BasePriceCents  int64   `json:"base_price_cents"`
	Currency        string  `json:"currency"`
	RushPercent     float64 `json:"rush_percent"`
	Active          bool    `json:"active"`
	UpdatedAt       string  `json:"updated_at"`
	DisplayPrice    string  `json:"display_price"`
}

type RateCardResponse struct {
	Status    string      `json:"status"`
	Data      RateCardDTO `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type RateCardListResponse struct {
	Status    string        `json:"status"`
	Data      []RateCardDTO `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type SelectionRequest struct {
	CreatorID       string   `json:"creator_id,omitempty"`
	DeliverableType string   `json:"deliverable_type"`
	Quantity        int      `json:"quantity"`
	RushPercent     *float64 `json:"rush_percent,omitempty"`
}

type QuoteOfferRequest struct {
	OfferID            string             `json:"offer_id"`
	BrandID            string             `json:"brand_id"`
	CreatorID          string             `json:"creator_id"`
	Selections         []SelectionRequest `json:"selections"`
	PlatformFeePercent *float64           `json:"platform_fee_percent,omitempty"`
	Currency           string             `json:"currency,omitempty"`
	DisplayCurrency    string             `json:"display_currency,omitempty"`
}

type ConvertedAmountDTO struct {
	Currency    string `json:"currency"`
	AmountCents int64  `json:"amount_cents"`
	Formatted   string `json:"formatted"`
}

type OfferQuoteDTO struct {
	QuoteID      string              `json:"quote_id"`
	OfferID      string              `json:"offer_id"`
	BrandID      string              `json:"brand_id"`
	CreatorID    string              `json:"creator_id"`
	Status       string              `json:"status"`
	Breakdown    PricingBreakdownDTO `json:"breakdown"`
	DisplayTotal *ConvertedAmountDTO `json:"display_total,omitempty"`
	CreatedAt    string              `json:"created_at"`
}

type OfferQuoteResponse struct {
	Status    string        `json:"status"`
	Replayed  bool          `json:"replayed,omitempty"`
	Data      OfferQuoteDTO `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type CurrencyReportDTO struct {
	Currency           string `json:"currency"`
	Count              int    `json:"count"`
	TotalSubtotalCents int64  `json:"total_subtotal_cents"`
	TotalFeeCents      int64  `json:"total_fee_cents"`
	TotalChargedCents  int64  `json:"total_charged_cents"`
	DisplayFee         string `json:"display_fee"`
}

type MonthlyReportResponse struct {
	Status string `json:"status"`
	Data   struct {
		Month      string              `json:"month"`
		Currencies []CurrencyReportDTO `json:"currencies"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}
