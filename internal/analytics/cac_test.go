package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

func startEvent(sessionID string, metadata domain.Metadata) domain.Event {
	return domain.Event{
		SessionID: sessionID,
		EventType: domain.EventCheckoutStart,
		Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Metadata:  metadata,
	}
}

func TestComputeCAC_AttributesConversionToStartChannel(t *testing.T) {
	starts := []domain.Event{
		startEvent("s1", domain.Metadata{"utm_source": "google"}),
	}
	completions := []domain.Event{
		completionEvent("s1", time.Date(2026, 8, 1, 10, 5, 0, 0, time.UTC), 50),
	}

	report := ComputeCAC(starts, completions, IndustryAverageCosts{})

	assert.Len(t, report.Channels, 1)
	google := report.Channels[0]
	assert.Equal(t, "google", google.Channel)
	assert.Equal(t, 1, google.Sessions)
	assert.Equal(t, 1, google.Conversions)
	assert.Equal(t, 50.0, google.Revenue)
	assert.Equal(t, 45.50, google.EstimatedCAC)
	assert.Equal(t, 1, report.Summary.TotalNewCustomers)
}

func TestComputeCAC_UnmatchedCompletionUsesOwnMetadata(t *testing.T) {
	completion := completionEvent("s9", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), 80)
	completion.Metadata["utm_source"] = "facebook"

	report := ComputeCAC(nil, []domain.Event{completion}, IndustryAverageCosts{})

	assert.Len(t, report.Channels, 1)
	assert.Equal(t, "facebook", report.Channels[0].Channel)
	assert.Equal(t, 0, report.Channels[0].Sessions)
	assert.Equal(t, 1, report.Channels[0].Conversions)
	assert.Equal(t, 80.0, report.Channels[0].Revenue)
}

func TestComputeCAC_SessionConvertsOnce(t *testing.T) {
	// A checkout_complete followed by order_confirmed for the same
	// session is one conversion, not two.
	starts := []domain.Event{
		startEvent("s1", domain.Metadata{"utm_source": "google"}),
	}
	confirmed := completionEvent("s1", time.Date(2026, 8, 1, 10, 6, 0, 0, time.UTC), 50)
	confirmed.EventType = domain.EventOrderConfirmed
	completions := []domain.Event{
		completionEvent("s1", time.Date(2026, 8, 1, 10, 5, 0, 0, time.UTC), 50),
		confirmed,
	}

	report := ComputeCAC(starts, completions, IndustryAverageCosts{})

	assert.Equal(t, 1, report.Summary.TotalNewCustomers)
	assert.Equal(t, 50.0, report.Channels[0].Revenue)
}

func TestComputeCAC_ChannelsSortedByConversions(t *testing.T) {
	starts := []domain.Event{
		startEvent("g1", domain.Metadata{"utm_source": "google"}),
		startEvent("g2", domain.Metadata{"utm_source": "google"}),
		startEvent("f1", domain.Metadata{"utm_source": "facebook"}),
		startEvent("e1", domain.Metadata{"utm_source": "email"}),
	}
	completions := []domain.Event{
		completionEvent("g1", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC), 40),
		completionEvent("g2", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC), 60),
		completionEvent("f1", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC), 30),
	}

	report := ComputeCAC(starts, completions, IndustryAverageCosts{})

	assert.Len(t, report.Channels, 3)
	assert.Equal(t, "google", report.Channels[0].Channel)
	assert.Equal(t, "facebook", report.Channels[1].Channel)
	// Sessions without conversions still show up.
	assert.Equal(t, "email", report.Channels[2].Channel)
	assert.Equal(t, 0, report.Channels[2].Conversions)
	assert.Equal(t, 1, report.Channels[2].Sessions)
}

func TestComputeCAC_SummaryMath(t *testing.T) {
	starts := []domain.Event{
		startEvent("s1", domain.Metadata{"utm_source": "email"}),
		startEvent("s2", domain.Metadata{"utm_source": "email"}),
	}
	completions := []domain.Event{
		completionEvent("s1", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC), 40),
		completionEvent("s2", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC), 60),
	}

	report := ComputeCAC(starts, completions, IndustryAverageCosts{})

	// 2 conversions at 8.50 each.
	assert.Equal(t, 2, report.Summary.TotalNewCustomers)
	assert.Equal(t, 17.0, report.Summary.TotalEstimatedSpend)
	assert.Equal(t, 8.50, report.Summary.AvgCAC)
	// AOV 50, LTV proxy 100, ratio 100/8.50.
	assert.Equal(t, 100.0, report.Summary.AvgLTV)
	assert.InDelta(t, 11.76, report.Summary.LTVCACRatio, 0.01)
	assert.Equal(t, "excellent", report.Summary.AcquisitionEfficiency)
}

func TestComputeCAC_EmptyInput(t *testing.T) {
	report := ComputeCAC(nil, nil, IndustryAverageCosts{})

	assert.Equal(t, 0, report.Summary.TotalNewCustomers)
	assert.Equal(t, 0.0, report.Summary.AvgCAC)
	assert.Equal(t, 0.0, report.Summary.LTVCACRatio)
	assert.Equal(t, "poor", report.Summary.AcquisitionEfficiency)
	assert.Empty(t, report.Channels)
}

func TestIndustryAverageCosts_SubstringMatch(t *testing.T) {
	costs := IndustryAverageCosts{}

	assert.Equal(t, 45.50, costs.EstimateCAC("google"))
	assert.Equal(t, 45.50, costs.EstimateCAC("google_ads"))
	assert.Equal(t, 38.00, costs.EstimateCAC("m_facebook_com"))
	assert.Equal(t, 8.50, costs.EstimateCAC("email_newsletter"))
	assert.Equal(t, DefaultCAC, costs.EstimateCAC("billboard"))
}
