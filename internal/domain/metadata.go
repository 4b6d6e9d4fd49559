package domain

import (
	"math"
	"strconv"
	"strings"
)

// Metadata is the open key/value bag attached to every checkout event.
// The schema evolved across producers with no migration of historical
// records, so typed access is ordered probing over the historical field
// names rather than schema validation.
type Metadata map[string]interface{}

// revenueFields is the probe order for monetary values. Older producers
// wrote "amount" or "totalValue"; current ones write "revenue".
var revenueFields = []string{"revenue", "value", "orderValue", "totalValue", "amount"}

// Revenue extracts the event's monetary value. It returns the first
// recognized field coerced to a number, or 0 when no field is present,
// the value is not numeric, or the value is negative. It never fails;
// callers treat 0 as "no usable revenue".
func (m Metadata) Revenue() float64 {
	for _, field := range revenueFields {
		raw, ok := m[field]
		if !ok || raw == nil {
			continue
		}

		value, ok := coerceNumber(raw)
		if !ok || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return 0
		}
		return value
	}
	return 0
}

// CustomerID returns the stable customer identifier, when the producer
// supplied one.
func (m Metadata) CustomerID() (string, bool) {
	return m.stringField("customer_id")
}

// ChannelHint returns the raw acquisition channel evidence in decreasing
// order of reliability: utm_source, then referrer, then channel.
func (m Metadata) ChannelHint() (string, bool) {
	for _, field := range []string{"utm_source", "referrer", "channel"} {
		if value, ok := m.stringField(field); ok {
			return value, true
		}
	}
	return "", false
}

func (m Metadata) stringField(field string) (string, bool) {
	raw, ok := m[field]
	if !ok || raw == nil {
		return "", false
	}
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// coerceNumber accepts JSON numbers, integer types, and numeric-looking
// strings such as "129.99".
func coerceNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
