package analytics

import (
	"strings"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// KeyFunc resolves the grouping key an event is aggregated under.
type KeyFunc func(domain.Event) string

// ResolveIdentity returns the best available identity key for an event,
// in decreasing order of evidence: stable customer_id, then orderFormId,
// then sessionId. SessionID is required on every valid event, so the
// result is never empty.
//
// Because the resolved tier varies per event, identity aggregates are a
// best-effort approximation of "one customer", not a 1:1 mapping: a
// returning customer without customer_id tracking counts once per session.
func ResolveIdentity(e domain.Event) string {
	if customerID, ok := e.Metadata.CustomerID(); ok {
		return customerID
	}
	if e.OrderFormID != "" {
		return e.OrderFormID
	}
	return e.SessionID
}

// ResolveChannel returns the normalized acquisition channel for an event:
// utm_source, then referrer, then the channel field, else "direct".
func ResolveChannel(e domain.Event) string {
	hint, ok := e.Metadata.ChannelHint()
	if !ok {
		return "direct"
	}
	return NormalizeChannel(hint)
}

// NormalizeChannel lower-cases a channel label and collapses everything
// that is not a letter or digit to underscores, so "Google Ads" and
// "google-ads" land in the same bucket.
func NormalizeChannel(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "direct"
	}
	return b.String()
}
