package domain

import "time"

// Checkout telemetry event types produced by the storefront. The set is
// open-ended; these constants cover the types the analytics queries filter on.
const (
	EventCheckoutStart          = "checkout_start"
	EventCheckoutComplete       = "checkout_complete"
	EventOrderConfirmed         = "order_confirmed"
	EventShippingMethodSelected = "shipping_method_selected"
)

// Event represents a single checkout telemetry event stored in ClickHouse
type Event struct {
	EventID     string    `ch:"event_id"`
	AccountID   string    `ch:"account_id"`
	SessionID   string    `ch:"session_id"`
	OrderFormID string    `ch:"order_form_id"`
	EventType   string    `ch:"event_type"`
	Timestamp   time.Time `ch:"timestamp"`
	Metadata    Metadata  `ch:"metadata"`
	ProcessedAt time.Time `ch:"processed_at"`
	Version     uint64    `ch:"version"`
}

// Valid reports whether the event carries the fields every aggregation
// depends on. Invalid events are skipped by consumers, never rejected as
// errors: one malformed record must not fail a whole batch.
func (e Event) Valid() bool {
	return e.SessionID != "" && e.EventType != "" && !e.Timestamp.IsZero()
}
