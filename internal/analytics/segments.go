package analytics

import (
	"math"
	"time"
)

// Behavioral segment names. Segments are not mutually exclusive: each is
// an independent condition and a customer can carry several tags at once.
const (
	SegmentVIP      = "vip"
	SegmentFrequent = "frequent"
	SegmentNew      = "new"
	SegmentAtRisk   = "at-risk"
	SegmentDormant  = "dormant"
)

var segmentDescriptions = map[string]string{
	SegmentVIP:      "Average order value at least one standard deviation above the window mean",
	SegmentFrequent: "Two or more orders in the window",
	SegmentNew:      "Single order, placed within the last 30 days",
	SegmentAtRisk:   "Between 60 and 89 days since the last order",
	SegmentDormant:  "90 days or more since the last order",
}

// segmentOrder fixes the output ordering of the report.
var segmentOrder = []string{SegmentVIP, SegmentFrequent, SegmentNew, SegmentAtRisk, SegmentDormant}

// SegmentStats aggregates the customers carrying one segment tag.
type SegmentStats struct {
	Name          string
	Description   string
	Customers     int
	TotalRevenue  float64
	AvgOrderValue float64
	AvgOrders     float64
}

// SegmentsSummary is the roll-up section of a segmentation report.
type SegmentsSummary struct {
	TotalCustomers int
	TotalRevenue   float64
	OverallAvgLTV  float64
	AvgAOV         float64
	AvgOrders      float64
}

// SegmentReport is the full output of the behavioral segmentation calculator.
type SegmentReport struct {
	Summary  SegmentsSummary
	Segments []SegmentStats
}

// ClassifySegments returns the segment tags an aggregate satisfies,
// given the window's mean and standard deviation of average order value.
// The result is a set: zero, one, or several tags.
func ClassifySegments(agg *Aggregate, meanAOV, stddevAOV float64, now time.Time) []string {
	var tags []string

	if agg.AvgOrderValue() >= meanAOV+stddevAOV {
		tags = append(tags, SegmentVIP)
	}
	if agg.OrderCount >= 2 {
		tags = append(tags, SegmentFrequent)
	}

	daysSinceLast := agg.DaysSinceLastOrder(now)
	if agg.OrderCount == 1 && now.Sub(agg.FirstActivityAt).Hours() <= 30*24 {
		tags = append(tags, SegmentNew)
	}
	if agg.OrderCount >= 1 && daysSinceLast >= 60 && daysSinceLast < 90 {
		tags = append(tags, SegmentAtRisk)
	}
	if daysSinceLast >= 90 {
		tags = append(tags, SegmentDormant)
	}

	return tags
}

// ComputeSegments classifies every identity in the window and aggregates
// per-segment statistics.
func ComputeSegments(aggregates map[string]*Aggregate, now time.Time) *SegmentReport {
	report := &SegmentReport{Segments: []SegmentStats{}}
	if len(aggregates) == 0 {
		return report
	}

	mean, stddev := aovDistribution(aggregates)

	type segmentAcc struct {
		customers int
		revenue   float64
		orders    int
		aovSum    float64
	}
	accs := make(map[string]*segmentAcc, len(segmentOrder))
	for _, name := range segmentOrder {
		accs[name] = &segmentAcc{}
	}

	var totalRevenue, totalAOV float64
	var totalOrders int
	for _, agg := range aggregates {
		totalRevenue += agg.TotalRevenue
		totalOrders += agg.OrderCount
		totalAOV += agg.AvgOrderValue()

		for _, tag := range ClassifySegments(agg, mean, stddev, now) {
			acc := accs[tag]
			acc.customers++
			acc.revenue += agg.TotalRevenue
			acc.orders += agg.OrderCount
			acc.aovSum += agg.AvgOrderValue()
		}
	}

	customerCount := float64(len(aggregates))
	report.Summary = SegmentsSummary{
		TotalCustomers: len(aggregates),
		TotalRevenue:   totalRevenue,
		OverallAvgLTV:  totalRevenue / customerCount,
		AvgAOV:         totalAOV / customerCount,
		AvgOrders:      float64(totalOrders) / customerCount,
	}

	for _, name := range segmentOrder {
		acc := accs[name]
		stats := SegmentStats{
			Name:         name,
			Description:  segmentDescriptions[name],
			Customers:    acc.customers,
			TotalRevenue: acc.revenue,
		}
		if acc.customers > 0 {
			stats.AvgOrderValue = acc.aovSum / float64(acc.customers)
			stats.AvgOrders = float64(acc.orders) / float64(acc.customers)
		}
		report.Segments = append(report.Segments, stats)
	}

	return report
}

// aovDistribution returns the mean and population standard deviation of
// average order value across all aggregates.
func aovDistribution(aggregates map[string]*Aggregate) (mean, stddev float64) {
	n := float64(len(aggregates))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, agg := range aggregates {
		sum += agg.AvgOrderValue()
	}
	mean = sum / n

	var variance float64
	for _, agg := range aggregates {
		d := agg.AvgOrderValue() - mean
		variance += d * d
	}
	stddev = math.Sqrt(variance / n)

	return mean, stddev
}
