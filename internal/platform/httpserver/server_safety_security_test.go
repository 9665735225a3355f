package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSafetySanitizeRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/safety/v1/messages/sanitize", bytes.NewReader([]byte(`{
		"content":"hello",
		"conversation_id":"conv-1"
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-Request-Id", "req-safety-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSafetySanitizeRedactsAndLogs(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, authorizedRequest(http.MethodPost, "/api/safety/v1/messages/sanitize", `{
		"content":"reach me at bob@x.com",
		"conversation_id":"conv-1"
	}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data struct {
			Content        string `json:"content"`
			RequiresReview bool   `json:"requires_review"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Data.Content != "reach me at [REDACTED]" || !resp.Data.RequiresReview {
		t.Fatalf("unexpected sanitize response: %+v", resp.Data)
	}

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, authorizedRequest(http.MethodGet, "/api/safety/v1/violations?conversation_id=conv-1", ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var list struct {
		Data []struct {
			SenderID string `json:"sender_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].SenderID != "user-1" {
		t.Fatalf("expected one violation from user-1, got %+v", list.Data)
	}
}

func TestSafetyViolationsRejectsNonIntegerLimit(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, authorizedRequest(http.MethodGet, "/api/safety/v1/violations?limit=ten", ""))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSafetySanitizeFieldUnknownField(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, authorizedRequest(http.MethodPost, "/api/safety/v1/fields/sanitize", `{"field":"pager","value":"x"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := decodeErrorCode(t, rr); code != "UNKNOWN_FIELD" {
		t.Fatalf("expected UNKNOWN_FIELD, got %s", code)
	}
}

func TestSafetyLinkValidationBlocksMessagingHosts(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, authorizedRequest(http.MethodPost, "/api/safety/v1/links/validate", `{
		"url":"https://t.me/dealroom",
		"offer_status":"in_progress"
	}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data struct {
			IsValid   bool   `json:"is_valid"`
			RiskLevel string `json:"risk_level"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Data.IsValid || resp.Data.RiskLevel != "critical" {
		t.Fatalf("expected blocked link, got %+v", resp.Data)
	}
}
