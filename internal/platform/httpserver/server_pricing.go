package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	pricingerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	pricinghttp "creatorhub/contexts/finance-core/offer-pricing-engine/transport/http"
)

func writePricingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pricinghttp.ErrorEnvelope{
		Status: "error",
		Error: pricinghttp.ErrorBody{
			Code:    strings.ToUpper(code),
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writePricingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricingerrors.ErrUnsupportedCurrency):
		writePricingError(w, http.StatusUnprocessableEntity, "UNSUPPORTED_CURRENCY", err.Error())
	case errors.Is(err, pricingerrors.ErrCurrencyMismatch):
		writePricingError(w, http.StatusUnprocessableEntity, "CURRENCY_MISMATCH", err.Error())
	case errors.Is(err, pricingerrors.ErrRateCardNotFound):
		writePricingError(w, http.StatusUnprocessableEntity, "RATE_CARD_NOT_FOUND", err.Error())
	case errors.Is(err, pricingerrors.ErrDuplicateRateCard):
		writePricingError(w, http.StatusConflict, "DUPLICATE_RATE_CARD", err.Error())
	case errors.Is(err, pricingerrors.ErrInvalidInput):
		writePricingError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, pricingerrors.ErrNotFound):
		writePricingError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, pricingerrors.ErrIdempotencyKeyMissing):
		writePricingError(w, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED", err.Error())
	case errors.Is(err, pricingerrors.ErrIdempotencyConflict):
		writePricingError(w, http.StatusConflict, "IDEMPOTENCY_CONFLICT", err.Error())
	default:
		writePricingError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handlePricingCalculate(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	var req pricinghttp.CalculatePricingRequest
	if !s.decodeJSON(w, r, &req, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.CalculatePricingHandler(r.Context(), req)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePricingValidate(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	var req pricinghttp.ValidateOfferRequest
	if !s.decodeJSON(w, r, &req, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.ValidateOfferHandler(r.Context(), req)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePricingConvert(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	var req pricinghttp.ConvertCurrencyRequest
	if !s.decodeJSON(w, r, &req, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.ConvertCurrencyHandler(r.Context(), req)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePricingCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pricing.Handler.ListCurrenciesHandler(r.Context()))
}

func (s *Server) handlePricingUpsertRateCard(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	if _, ok := requireUser(w, r, writePricingError); !ok {
		return
	}
	var req pricinghttp.UpsertRateCardRequest
	if !s.decodeJSON(w, r, &req, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.UpsertRateCardHandler(r.Context(), r.PathValue("creator_id"), req)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePricingListRateCards(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.ListRateCardsHandler(r.Context(), r.PathValue("creator_id"))
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePricingQuoteOffer(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	brandID, ok := requireUser(w, r, writePricingError)
	if !ok {
		return
	}
	idempotencyKey, ok := requireIdempotency(w, r, writePricingError)
	if !ok {
		return
	}
	var req pricinghttp.QuoteOfferRequest
	if !s.decodeJSON(w, r, &req, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.QuoteOfferHandler(r.Context(), idempotencyKey, brandID, req)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	status := http.StatusCreated
	if resp.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (s *Server) handlePricingGetQuote(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.GetQuoteHandler(r.Context(), r.PathValue("quote_id"))
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePricingMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePricingError) || !requireRequestID(w, r, writePricingError) {
		return
	}
	resp, err := s.pricing.Handler.MonthlyReportHandler(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
