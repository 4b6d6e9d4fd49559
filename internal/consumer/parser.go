package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// JSONEventParser implements MessageParser for JSON-formatted checkout
// telemetry messages
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse parses a JSON message body into an Event. Events missing
// session_id, event_type, or timestamp are rejected here so the store
// never holds records the aggregations would have to skip anyway.
func (p *JSONEventParser) Parse(body []byte) (*domain.Event, error) {
	var msgBody map[string]interface{}
	if err := json.Unmarshal(body, &msgBody); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	metadata := domain.Metadata{}
	if raw, ok := msgBody["metadata"].(map[string]interface{}); ok && len(raw) > 0 {
		metadata = domain.Metadata(raw)
	}

	eventID := getStringField(msgBody, "event_id")
	if eventID == "" {
		// Producers that predate deterministic IDs send none at all.
		eventID = uuid.NewString()
	}

	timestamp := getInt64Field(msgBody, "timestamp")

	event := &domain.Event{
		EventID:     eventID,
		AccountID:   getStringField(msgBody, "account_id"),
		SessionID:   getStringField(msgBody, "session_id"),
		OrderFormID: getStringField(msgBody, "order_form_id"),
		EventType:   getStringField(msgBody, "event_type"),
		Timestamp:   time.Unix(timestamp, 0).UTC(),
		Metadata:    metadata,
		ProcessedAt: time.Now(),
		Version:     uint64(time.Now().UnixNano()),
	}

	if timestamp == 0 || !event.Valid() {
		return nil, fmt.Errorf("event %s is missing session_id, event_type, or timestamp", eventID)
	}

	return event, nil
}

// Helper functions for extracting fields from parsed JSON
func getStringField(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Field(m map[string]interface{}, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}
