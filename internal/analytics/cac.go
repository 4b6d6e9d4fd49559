package analytics

import (
	"sort"
	"strings"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// CACNote accompanies every CAC report: the per-channel costs come from a
// static industry-average table, not from measured ad spend.
const CACNote = "CAC values are estimated from industry-average channel costs, not measured ad spend"

// CostEstimator supplies the estimated cost to acquire one converting
// customer on a channel. The in-tree implementation is a static table;
// the interface exists so a real ad-spend integration can replace it
// without touching the aggregation core.
type CostEstimator interface {
	EstimateCAC(channel string) float64
}

// industryCost pairs a channel-name fragment with an average acquisition cost.
type industryCost struct {
	fragment string
	cost     float64
}

// IndustryAverageCosts estimates CAC by substring match against the
// normalized channel name. Channels matching nothing get DefaultCAC.
type IndustryAverageCosts struct{}

// DefaultCAC is the estimate for channels with no table entry.
const DefaultCAC = 25.0

var industryCosts = []industryCost{
	{"google", 45.50},
	{"facebook", 38.00},
	{"instagram", 42.00},
	{"tiktok", 35.00},
	{"youtube", 40.00},
	{"email", 8.50},
	{"organic", 5.00},
	{"referral", 15.00},
	{"direct", 12.00},
}

// EstimateCAC returns the first table entry whose fragment occurs in the
// channel name, else DefaultCAC.
func (IndustryAverageCosts) EstimateCAC(channel string) float64 {
	for _, entry := range industryCosts {
		if strings.Contains(channel, entry.fragment) {
			return entry.cost
		}
	}
	return DefaultCAC
}

// ChannelStats is the per-channel detail row of a CAC report.
type ChannelStats struct {
	Channel        string
	Sessions       int
	Conversions    int
	ConversionRate float64
	Revenue        float64
	AvgOrderValue  float64
	EstimatedCAC   float64
	EstimatedSpend float64
}

// CACSummary is the roll-up section of a CAC report.
type CACSummary struct {
	TotalNewCustomers     int
	AvgCAC                float64
	AvgLTV                float64
	LTVCACRatio           float64
	TotalEstimatedSpend   float64
	AcquisitionEfficiency string
}

// CACReport is the full output of the CAC calculator.
type CACReport struct {
	Summary  CACSummary
	Channels []ChannelStats
}

// ComputeCAC attributes conversions and revenue to acquisition channels.
// A checkout_start registers its session under the channel resolved from
// its metadata; a completion for the same session is attributed back to
// that channel. Completions whose session has no registered start fall
// back to the channel resolved from their own metadata, so revenue is
// never dropped. A session converts at most once. The LTV side of the
// ratio is the 2x average-order-value proxy, pending a full LTV join.
func ComputeCAC(starts, completions []domain.Event, costs CostEstimator) *CACReport {
	sessionChannel := make(map[string]string)
	sessionsByChannel := make(map[string]int)
	for _, event := range starts {
		if !event.Valid() {
			continue
		}
		if _, seen := sessionChannel[event.SessionID]; seen {
			continue
		}
		channel := ResolveChannel(event)
		sessionChannel[event.SessionID] = channel
		sessionsByChannel[channel]++
	}

	type channelAcc struct {
		conversions int
		revenue     float64
	}
	accs := make(map[string]*channelAcc)
	converted := make(map[string]bool)
	for _, event := range completions {
		if !event.Valid() || converted[event.SessionID] {
			continue
		}
		converted[event.SessionID] = true

		channel, ok := sessionChannel[event.SessionID]
		if !ok {
			channel = ResolveChannel(event)
		}

		acc, ok := accs[channel]
		if !ok {
			acc = &channelAcc{}
			accs[channel] = acc
		}
		acc.conversions++
		acc.revenue += event.Metadata.Revenue()
	}

	// Channels with sessions but no conversions still appear in the report.
	for channel := range sessionsByChannel {
		if _, ok := accs[channel]; !ok {
			accs[channel] = &channelAcc{}
		}
	}

	report := &CACReport{Channels: []ChannelStats{}}
	var totalConversions int
	var totalRevenue, totalSpend float64

	for channel, acc := range accs {
		cac := costs.EstimateCAC(channel)
		spend := float64(acc.conversions) * cac

		stats := ChannelStats{
			Channel:        channel,
			Sessions:       sessionsByChannel[channel],
			Conversions:    acc.conversions,
			Revenue:        acc.revenue,
			EstimatedCAC:   cac,
			EstimatedSpend: spend,
		}
		if stats.Sessions > 0 {
			stats.ConversionRate = float64(stats.Conversions) / float64(stats.Sessions)
		}
		if stats.Conversions > 0 {
			stats.AvgOrderValue = stats.Revenue / float64(stats.Conversions)
		}
		report.Channels = append(report.Channels, stats)

		totalConversions += acc.conversions
		totalRevenue += acc.revenue
		totalSpend += spend
	}

	sort.Slice(report.Channels, func(i, j int) bool {
		if report.Channels[i].Conversions != report.Channels[j].Conversions {
			return report.Channels[i].Conversions > report.Channels[j].Conversions
		}
		return report.Channels[i].Channel < report.Channels[j].Channel
	})

	report.Summary.TotalNewCustomers = totalConversions
	report.Summary.TotalEstimatedSpend = totalSpend
	if totalConversions > 0 {
		report.Summary.AvgCAC = totalSpend / float64(totalConversions)
		avgOrderValue := totalRevenue / float64(totalConversions)
		report.Summary.AvgLTV = 2 * avgOrderValue
	}
	if report.Summary.AvgCAC > 0 {
		report.Summary.LTVCACRatio = report.Summary.AvgLTV / report.Summary.AvgCAC
	}
	report.Summary.AcquisitionEfficiency = efficiencyRating(report.Summary.LTVCACRatio)

	return report
}

// efficiencyRating buckets the LTV:CAC ratio; 3:1 is the usual benchmark
// for a healthy acquisition mix.
func efficiencyRating(ratio float64) string {
	switch {
	case ratio >= 3:
		return "excellent"
	case ratio >= 2:
		return "good"
	case ratio >= 1:
		return "fair"
	default:
		return "poor"
	}
}
