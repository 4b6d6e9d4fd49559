package analytics

import (
	"sort"
	"time"
)

// LTV segment labels, relative to the window's average LTV.
const (
	LTVSegmentHigh   = "high"
	LTVSegmentMedium = "medium"
	LTVSegmentLow    = "low"
)

// CustomerLTV is the per-identity detail row of an LTV report.
type CustomerLTV struct {
	IdentityKey        string
	Orders             int
	Revenue            float64
	AvgOrderValue      float64
	PurchaseFrequency  float64
	DaysSinceLastOrder float64
	IsRecurring        bool
	Segment            string
	FirstOrderAt       time.Time
	LastOrderAt        time.Time
}

// LTVSegmentCounts counts customers per relative value segment.
type LTVSegmentCounts struct {
	High   int
	Medium int
	Low    int
}

// LTVSummary is the roll-up section of an LTV report.
type LTVSummary struct {
	TotalCustomers       int
	TotalRevenue         float64
	AvgLTV               float64
	AvgOrdersPerCustomer float64
	RecurringRate        float64
	Segments             LTVSegmentCounts
}

// LTVBySegment averages LTV across recurring vs single-order customers.
type LTVBySegment struct {
	Recurring float64
	New       float64
}

// LTVReport is the full output of the LTV calculator.
type LTVReport struct {
	Summary   LTVSummary
	Customers []CustomerLTV
	BySegment LTVBySegment
}

// ComputeLTV derives the lifetime value report from identity aggregates.
// Segment boundaries are relative to the computed mean of the current
// window (1.5x / 0.5x avgLTV), so they shift with the query. The detail
// list is sorted by revenue descending and capped at limit entries.
func ComputeLTV(aggregates map[string]*Aggregate, now time.Time, limit int) *LTVReport {
	report := &LTVReport{Customers: []CustomerLTV{}}
	if len(aggregates) == 0 {
		return report
	}

	var totalRevenue float64
	var totalOrders, recurringCount int
	var recurringRevenue, newRevenue float64
	var newCount int

	for _, agg := range aggregates {
		totalRevenue += agg.TotalRevenue
		totalOrders += agg.OrderCount
		if agg.IsRecurring() {
			recurringCount++
			recurringRevenue += agg.TotalRevenue
		} else {
			newCount++
			newRevenue += agg.TotalRevenue
		}
	}

	customerCount := len(aggregates)
	avgLTV := totalRevenue / float64(customerCount)

	customers := make([]CustomerLTV, 0, customerCount)
	var segments LTVSegmentCounts
	for _, agg := range aggregates {
		segment := ltvSegment(agg.TotalRevenue, avgLTV)
		switch segment {
		case LTVSegmentHigh:
			segments.High++
		case LTVSegmentMedium:
			segments.Medium++
		case LTVSegmentLow:
			segments.Low++
		}

		customers = append(customers, CustomerLTV{
			IdentityKey:        agg.Key,
			Orders:             agg.OrderCount,
			Revenue:            agg.TotalRevenue,
			AvgOrderValue:      agg.AvgOrderValue(),
			PurchaseFrequency:  agg.PurchaseFrequency(),
			DaysSinceLastOrder: agg.DaysSinceLastOrder(now),
			IsRecurring:        agg.IsRecurring(),
			Segment:            segment,
			FirstOrderAt:       agg.FirstActivityAt,
			LastOrderAt:        agg.LastActivityAt,
		})
	}

	sort.Slice(customers, func(i, j int) bool {
		if customers[i].Revenue != customers[j].Revenue {
			return customers[i].Revenue > customers[j].Revenue
		}
		return customers[i].IdentityKey < customers[j].IdentityKey
	})
	if limit > 0 && len(customers) > limit {
		customers = customers[:limit]
	}

	report.Customers = customers
	report.Summary = LTVSummary{
		TotalCustomers:       customerCount,
		TotalRevenue:         totalRevenue,
		AvgLTV:               avgLTV,
		AvgOrdersPerCustomer: float64(totalOrders) / float64(customerCount),
		RecurringRate:        float64(recurringCount) / float64(customerCount),
		Segments:             segments,
	}
	if recurringCount > 0 {
		report.BySegment.Recurring = recurringRevenue / float64(recurringCount)
	}
	if newCount > 0 {
		report.BySegment.New = newRevenue / float64(newCount)
	}

	return report
}

func ltvSegment(revenue, avgLTV float64) string {
	switch {
	case revenue >= avgLTV*1.5:
		return LTVSegmentHigh
	case revenue >= avgLTV*0.5:
		return LTVSegmentMedium
	default:
		return LTVSegmentLow
	}
}
