package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	offerpricingengine "creatorhub/contexts/finance-core/offer-pricing-engine"
	contentsafetyscanner "creatorhub/contexts/moderation-safety/content-safety-scanner"

	_ "creatorhub/internal/platform/httpserver/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxRequestBodyBytes = 1 << 20

type errorWriter func(w http.ResponseWriter, status int, code string, message string)

type Server struct {
	mux     *http.ServeMux
	http    *http.Server
	logger  *slog.Logger
	addr    string
	pricing offerpricingengine.Module
	safety  contentsafetyscanner.Module
}

func New(
	pricing offerpricingengine.Module,
	safety contentsafetyscanner.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		pricing: pricing,
		safety:  safety,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/pricing/v1/calculate", s.handlePricingCalculate)
	s.mux.HandleFunc("POST /api/pricing/v1/validate", s.handlePricingValidate)
	s.mux.HandleFunc("POST /api/pricing/v1/convert", s.handlePricingConvert)
	s.mux.HandleFunc("GET /api/pricing/v1/currencies", s.handlePricingCurrencies)
	s.mux.HandleFunc("PUT /api/pricing/v1/creators/{creator_id}/rate-cards", s.handlePricingUpsertRateCard)
	s.mux.HandleFunc("GET /api/pricing/v1/creators/{creator_id}/rate-cards", s.handlePricingListRateCards)
	s.mux.HandleFunc("POST /api/pricing/v1/quotes", s.handlePricingQuoteOffer)
	s.mux.HandleFunc("GET /api/pricing/v1/quotes/{quote_id}", s.handlePricingGetQuote)
	s.mux.HandleFunc("GET /api/pricing/v1/reports/monthly", s.handlePricingMonthlyReport)

	s.mux.HandleFunc("POST /api/safety/v1/analyze", s.handleSafetyAnalyze)
	s.mux.HandleFunc("POST /api/safety/v1/messages/sanitize", s.handleSafetySanitizeMessage)
	s.mux.HandleFunc("POST /api/safety/v1/profiles/mask", s.handleSafetyMaskProfile)
	s.mux.HandleFunc("POST /api/safety/v1/fields/sanitize", s.handleSafetySanitizeField)
	s.mux.HandleFunc("POST /api/safety/v1/files/gate", s.handleSafetyFileGate)
	s.mux.HandleFunc("POST /api/safety/v1/links/validate", s.handleSafetyValidateLink)
	s.mux.HandleFunc("GET /api/safety/v1/violations", s.handleSafetyListViolations)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a bounded JSON body into target and reports failures
// through the caller's error envelope.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any, writeErr errorWriter) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(target); err != nil {
		s.logger.Debug("request body rejected",
			"event", "http_request_decode_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeErr(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func requireAuthorization(w http.ResponseWriter, r *http.Request, writeErr errorWriter) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeErr(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return false
	}
	return true
}

func requireRequestID(w http.ResponseWriter, r *http.Request, writeErr errorWriter) bool {
	if strings.TrimSpace(r.Header.Get("X-Request-Id")) == "" {
		writeErr(w, http.StatusBadRequest, "REQUEST_ID_REQUIRED", "X-Request-Id header is required")
		return false
	}
	return true
}

func requireUser(w http.ResponseWriter, r *http.Request, writeErr errorWriter) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeErr(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func requireIdempotency(w http.ResponseWriter, r *http.Request, writeErr errorWriter) (string, bool) {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key == "" {
		writeErr(w, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED", "Idempotency-Key header is required")
		return "", false
	}
	return key, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
