package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"creatorhub/contexts/finance-core/offer-pricing-engine/application"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	"creatorhub/contexts/finance-core/offer-pricing-engine/ports"
	httptransport "creatorhub/contexts/finance-core/offer-pricing-engine/transport/http"
)

type Handler struct {
	Service   application.Service
	Formatter AmountFormatter
	Logger    *slog.Logger
}

func (h Handler) CalculatePricingHandler(
	ctx context.Context,
	req httptransport.CalculatePricingRequest,
) (httptransport.CalculatePricingResponse, error) {
	items, err := toLineItems(req.Items)
	if err != nil {
		return httptransport.CalculatePricingResponse{}, err
	}
	breakdown, err := h.Service.Calculate(ctx, items, req.PlatformFeePercent)
	if err != nil {
		return httptransport.CalculatePricingResponse{}, err
	}
	return httptransport.CalculatePricingResponse{
		Status:    "success",
		Data:      h.toBreakdownDTO(breakdown),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) ValidateOfferHandler(
	ctx context.Context,
	req httptransport.ValidateOfferRequest,
) (httptransport.ValidateOfferResponse, error) {
	items := make([]entities.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, toLineItem(item, money.Currency(strings.ToUpper(strings.TrimSpace(item.Currency)))))
	}
	result := h.Service.Validate(ctx, entities.OfferData{
		Items:              items,
		PlatformFeePercent: req.PlatformFeePercent,
		SubtotalCents:      req.SubtotalCents,
		TotalCents:         req.TotalCents,
	})
	resp := httptransport.ValidateOfferResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.IsValid = result.IsValid
	resp.Data.Errors = result.Errors
	resp.Data.Calculated = h.toBreakdownDTO(result.Calculated)
	return resp, nil
}

func (h Handler) ConvertCurrencyHandler(
	ctx context.Context,
	req httptransport.ConvertCurrencyRequest,
) (httptransport.ConvertCurrencyResponse, error) {
	from, err := parseCurrencyCode(req.From)
	if err != nil {
		return httptransport.ConvertCurrencyResponse{}, err
	}
	to, err := parseCurrencyCode(req.To)
	if err != nil {
		return httptransport.ConvertCurrencyResponse{}, err
	}
	converted, err := h.Service.Convert(ctx, req.AmountCents, string(from), string(to))
	if err != nil {
		return httptransport.ConvertCurrencyResponse{}, err
	}
	resp := httptransport.ConvertCurrencyResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.AmountCents = converted.AmountMinor
	resp.Data.Currency = string(converted.Currency)
	resp.Data.Formatted = h.Formatter.Format(converted.AmountMinor, converted.Currency)
	return resp, nil
}

func (h Handler) ListCurrenciesHandler(_ context.Context) httptransport.ListCurrenciesResponse {
	resp := httptransport.ListCurrenciesResponse{
		Status:    "success",
		Data:      make([]httptransport.CurrencyDTO, 0, len(money.Supported())),
		Timestamp: timestamp(),
	}
	for _, code := range money.Supported() {
		info, _ := code.Info()
		resp.Data = append(resp.Data, httptransport.CurrencyDTO{
			Code:   string(info.Code),
			Symbol: info.Symbol,
			Name:   info.Name,
		})
	}
	return resp
}

func (h Handler) UpsertRateCardHandler(
	ctx context.Context,
	creatorID string,
	req httptransport.UpsertRateCardRequest,
) (httptransport.RateCardResponse, error) {
	code, err := parseCurrencyCode(req.Currency)
	if err != nil {
		return httptransport.RateCardResponse{}, err
	}
	card, err := h.Service.UpsertRateCard(ctx, entities.RateCard{
		RateCardID:          req.RateCardID,
		CreatorID:           creatorID,
		DeliverableType:     entities.DeliverableType(req.DeliverableType),
		BasePriceMinorUnits: req.BasePriceCents,
		Currency:            code,
		RushPercent:         req.RushPercent,
	})
	if err != nil {
		return httptransport.RateCardResponse{}, err
	}
	return httptransport.RateCardResponse{
		Status:    "success",
		Data:      h.toRateCardDTO(card),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) ListRateCardsHandler(ctx context.Context, creatorID string) (httptransport.RateCardListResponse, error) {
	cards, err := h.Service.ListRateCards(ctx, creatorID)
	if err != nil {
		return httptransport.RateCardListResponse{}, err
	}
	resp := httptransport.RateCardListResponse{
		Status:    "success",
		Data:      make([]httptransport.RateCardDTO, 0, len(cards)),
		Timestamp: timestamp(),
	}
	for _, card := range cards {
		resp.Data = append(resp.Data, h.toRateCardDTO(card))
	}
	return resp, nil
}

func (h Handler) QuoteOfferHandler(
	ctx context.Context,
	idempotencyKey string,
	brandID string,
	req httptransport.QuoteOfferRequest,
) (httptransport.OfferQuoteResponse, error) {
	selections := make([]entities.Selection, 0, len(req.Selections))
	for _, selection := range req.Selections {
		selections = append(selections, entities.Selection{
			CreatorID:       selection.CreatorID,
			DeliverableType: entities.DeliverableType(selection.DeliverableType),
			Quantity:        selection.Quantity,
			RushPercent:     selection.RushPercent,
		})
	}
	if strings.TrimSpace(req.BrandID) != "" {
		brandID = req.BrandID
	}
	quote, replayed, err := h.Service.QuoteOffer(ctx, idempotencyKey, ports.QuoteOfferInput{
		OfferID:            req.OfferID,
		BrandID:            brandID,
		CreatorID:          req.CreatorID,
		Selections:         selections,
		PlatformFeePercent: req.PlatformFeePercent,
		Currency:           req.Currency,
		DisplayCurrency:    req.DisplayCurrency,
	})
	if err != nil {
		return httptransport.OfferQuoteResponse{}, err
	}
	return httptransport.OfferQuoteResponse{
		Status:    "success",
		Replayed:  replayed,
		Data:      h.toQuoteDTO(quote),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) GetQuoteHandler(ctx context.Context, quoteID string) (httptransport.OfferQuoteResponse, error) {
	quote, err := h.Service.GetQuote(ctx, quoteID)
	if err != nil {
		return httptransport.OfferQuoteResponse{}, err
	}
	return httptransport.OfferQuoteResponse{
		Status:    "success",
		Data:      h.toQuoteDTO(quote),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) MonthlyReportHandler(ctx context.Context, month string) (httptransport.MonthlyReportResponse, error) {
	report, err := h.Service.MonthlyReport(ctx, month)
	if err != nil {
		return httptransport.MonthlyReportResponse{}, err
	}
	resp := httptransport.MonthlyReportResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Month = report.Month
	resp.Data.Currencies = make([]httptransport.CurrencyReportDTO, 0, len(report.Currencies))
	for _, row := range report.Currencies {
		resp.Data.Currencies = append(resp.Data.Currencies, httptransport.CurrencyReportDTO{
			Currency:           string(row.Currency),
			Count:              row.Count,
			TotalSubtotalCents: row.TotalSubtotal,
			TotalFeeCents:      row.TotalFee,
			TotalChargedCents:  row.TotalCharged,
			DisplayFee:         h.Formatter.Format(row.TotalFee, row.Currency),
		})
	}
	return resp, nil
}

func (h Handler) toBreakdownDTO(breakdown entities.PricingBreakdown) httptransport.PricingBreakdownDTO {
	dto := httptransport.PricingBreakdownDTO{
		SubtotalCents:        breakdown.SubtotalMinorUnits,
		PlatformFeePercent:   breakdown.PlatformFeePercent,
		PlatformFeeCents:     breakdown.PlatformFeeMinorUnits,
		TotalCents:           breakdown.TotalMinorUnits,
		CreatorEarningsCents: breakdown.CreatorEarningsMinorUnits,
		Currency:             string(breakdown.Currency),
		LineItems:            make([]httptransport.LineItemBreakdownDTO, 0, len(breakdown.LineItems)),
		Display: httptransport.DisplayAmountsDTO{
			Subtotal:        h.Formatter.Format(breakdown.SubtotalMinorUnits, breakdown.Currency),
			PlatformFee:     h.Formatter.Format(breakdown.PlatformFeeMinorUnits, breakdown.Currency),
			Total:           h.Formatter.Format(breakdown.TotalMinorUnits, breakdown.Currency),
			CreatorEarnings: h.Formatter.Format(breakdown.CreatorEarningsMinorUnits, breakdown.Currency),
		},
	}
	for _, line := range breakdown.LineItems {
		dto.LineItems = append(dto.LineItems, httptransport.LineItemBreakdownDTO{
			DeliverableType: string(line.DeliverableType),
			Quantity:        line.Quantity,
			UnitPriceCents:  line.UnitPriceMinorUnits,
			TotalCents:      line.TotalMinorUnits,
		})
	}
	return dto
}

func (h Handler) toRateCardDTO(card entities.RateCard) httptransport.RateCardDTO {
	return httptransport.RateCardDTO{
		RateCardID:      card.RateCardID,
		CreatorID:       card.CreatorID,
		DeliverableType: string(card.DeliverableType),
		BasePriceCents:  card.BasePriceMinorUnits,
		Currency:        string(card.Currency),
		RushPercent:     card.RushPercent,
		Active:          card.Active,
		UpdatedAt:       card.UpdatedAt.UTC().Format(time.RFC3339),
		DisplayPrice:    h.Formatter.Format(card.BasePriceMinorUnits, card.Currency),
	}
}

func (h Handler) toQuoteDTO(quote entities.OfferQuote) httptransport.OfferQuoteDTO {
	dto := httptransport.OfferQuoteDTO{
		QuoteID:   quote.QuoteID,
		OfferID:   quote.OfferID,
		BrandID:   quote.BrandID,
		CreatorID: quote.CreatorID,
		Status:    string(quote.Status),
		Breakdown: h.toBreakdownDTO(quote.Breakdown),
		CreatedAt: quote.CreatedAt.UTC().Format(time.RFC3339),
	}
	if quote.DisplayTotal != nil {
		dto.DisplayTotal = &httptransport.ConvertedAmountDTO{
			Currency:    string(quote.DisplayTotal.Currency),
			AmountCents: quote.DisplayTotal.AmountMinor,
			Formatted:   h.Formatter.Format(quote.DisplayTotal.AmountMinor, quote.DisplayTotal.Currency),
		}
	}
	return dto
}

func toLineItems(items []httptransport.LineItemRequest) ([]entities.LineItem, error) {
	out := make([]entities.LineItem, 0, len(items))
	for _, item := range items {
		code := money.DefaultCurrency
		if strings.TrimSpace(item.Currency) != "" {
			parsed, err := parseCurrencyCode(item.Currency)
			if err != nil {
				return nil, err
			}
			code = parsed
		}
		out = append(out, toLineItem(item, code))
	}
	return out, nil
}

func toLineItem(item httptransport.LineItemRequest, code money.Currency) entities.LineItem {
	return entities.LineItem{
		DeliverableType:     entities.DeliverableType(item.DeliverableType),
		Quantity:            item.Quantity,
		UnitPriceMinorUnits: item.UnitPriceCents,
		Currency:            code,
		CreatorID:           item.CreatorID,
		RushPercent:         item.RushPercent,
		Description:         item.Description,
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
