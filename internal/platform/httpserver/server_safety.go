package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	safetyerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
	safetyports "creatorhub/contexts/moderation-safety/content-safety-scanner/ports"
	safetyhttp "creatorhub/contexts/moderation-safety/content-safety-scanner/transport/http"
)

func writeSafetyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, safetyhttp.ErrorEnvelope{
		Status: "error",
		Error: safetyhttp.ErrorBody{
			Code:    strings.ToUpper(code),
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeSafetyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, safetyerrors.ErrUnknownField):
		writeSafetyError(w, http.StatusBadRequest, "UNKNOWN_FIELD", err.Error())
	case errors.Is(err, safetyerrors.ErrInvalidInput):
		writeSafetyError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, safetyerrors.ErrNotFound):
		writeSafetyError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		writeSafetyError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleSafetyAnalyze(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	var req safetyhttp.AnalyzeContentRequest
	if !s.decodeJSON(w, r, &req, writeSafetyError) {
		return
	}
	resp, err := s.safety.Handler.AnalyzeContentHandler(r.Context(), req)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetySanitizeMessage(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	senderID, ok := requireUser(w, r, writeSafetyError)
	if !ok {
		return
	}
	var req safetyhttp.SanitizeMessageRequest
	if !s.decodeJSON(w, r, &req, writeSafetyError) {
		return
	}
	resp, err := s.safety.Handler.SanitizeMessageHandler(r.Context(), senderID, req)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetyMaskProfile(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	viewerID, ok := requireUser(w, r, writeSafetyError)
	if !ok {
		return
	}
	var req safetyhttp.MaskProfileRequest
	if !s.decodeJSON(w, r, &req, writeSafetyError) {
		return
	}
	resp, err := s.safety.Handler.MaskProfileHandler(r.Context(), viewerID, req)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetySanitizeField(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	var req safetyhttp.SanitizeFieldRequest
	if !s.decodeJSON(w, r, &req, writeSafetyError) {
		return
	}
	resp, err := s.safety.Handler.SanitizeFieldHandler(r.Context(), req)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetyFileGate(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	var req safetyhttp.FileGateRequest
	if !s.decodeJSON(w, r, &req, writeSafetyError) {
		return
	}
	resp, err := s.safety.Handler.FileGateHandler(r.Context(), req)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetyValidateLink(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	var req safetyhttp.LinkValidationRequest
	if !s.decodeJSON(w, r, &req, writeSafetyError) {
		return
	}
	resp, err := s.safety.Handler.ValidateLinkHandler(r.Context(), req)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetyListViolations(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeSafetyError) || !requireRequestID(w, r, writeSafetyError) {
		return
	}
	if _, ok := requireUser(w, r, writeSafetyError); !ok {
		return
	}
	query := r.URL.Query()
	filter := safetyports.ViolationFilter{
		ConversationID: query.Get("conversation_id"),
		SenderID:       query.Get("sender_id"),
	}
	for name, target := range map[string]*int{
		"min_risk_score": &filter.MinRiskScore,
		"limit":          &filter.Limit,
		"offset":         &filter.Offset,
	} {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeSafetyError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be an integer")
			return
		}
		*target = value
	}
	resp, err := s.safety.Handler.ListViolationsHandler(r.Context(), filter)
	if err != nil {
		writeSafetyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
