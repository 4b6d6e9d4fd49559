package analytics

import (
	"time"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// Aggregate accumulates the per-key statistics every metric calculator
// builds on. Aggregates are ephemeral: recomputed per query, never stored.
type Aggregate struct {
	Key             string
	OrderCount      int
	TotalRevenue    float64
	FirstActivityAt time.Time
	LastActivityAt  time.Time
}

// AvgOrderValue returns the mean revenue per order, 0 when there are no orders.
func (a *Aggregate) AvgOrderValue() float64 {
	if a.OrderCount == 0 {
		return 0
	}
	return a.TotalRevenue / float64(a.OrderCount)
}

// ActiveDays returns the whole days between first and last activity,
// never less than 1 so frequency math stays total for same-day orders.
func (a *Aggregate) ActiveDays() float64 {
	days := a.LastActivityAt.Sub(a.FirstActivityAt).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}

// PurchaseFrequency returns orders per 30-day month over the active span.
func (a *Aggregate) PurchaseFrequency() float64 {
	return float64(a.OrderCount) / a.ActiveDays() * 30
}

// DaysSinceLastOrder returns whole days between the last activity and now.
func (a *Aggregate) DaysSinceLastOrder(now time.Time) float64 {
	return now.Sub(a.LastActivityAt).Hours() / 24
}

// IsRecurring reports whether the key produced more than one order.
func (a *Aggregate) IsRecurring() bool {
	return a.OrderCount > 1
}

// Fold reduces an event slice into per-key aggregates. Structurally
// invalid events and events without usable revenue are skipped, not
// errors. Sums and counts are order-independent and activity bounds are
// tracked as min/max, so any permutation of the input yields the same map.
func Fold(events []domain.Event, key KeyFunc) map[string]*Aggregate {
	aggregates := make(map[string]*Aggregate)

	for _, event := range events {
		if !event.Valid() {
			continue
		}

		revenue := event.Metadata.Revenue()
		if revenue == 0 {
			continue
		}

		k := key(event)
		agg, ok := aggregates[k]
		if !ok {
			agg = &Aggregate{
				Key:             k,
				FirstActivityAt: event.Timestamp,
				LastActivityAt:  event.Timestamp,
			}
			aggregates[k] = agg
		}

		agg.OrderCount++
		agg.TotalRevenue += revenue
		if event.Timestamp.Before(agg.FirstActivityAt) {
			agg.FirstActivityAt = event.Timestamp
		}
		if event.Timestamp.After(agg.LastActivityAt) {
			agg.LastActivityAt = event.Timestamp
		}
	}

	return aggregates
}
