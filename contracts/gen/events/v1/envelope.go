package v1

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Event types emitted by creatorhub services.
const (
	EventTypeOfferPriced = "offer.priced"
)

// Envelope is the versioned event envelope shared by the API, the worker
// relay and external brokers. Fields may be added but never renamed.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

var ErrIncompleteEnvelope = errors.New("envelope requires event_id, event_type and schema_version")

func (e Envelope) Validate() error {
	if strings.TrimSpace(e.EventID) == "" || strings.TrimSpace(e.EventType) == "" || e.SchemaVersion <= 0 {
		return ErrIncompleteEnvelope
	}
	return nil
}
