package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/analytics"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/config"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/dto"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/repository"
)

// customerDetailLimit caps the per-customer detail list on LTV responses.
const customerDetailLimit = 100

// completionEventTypes are the event types that carry order revenue.
var completionEventTypes = []string{domain.EventCheckoutComplete, domain.EventOrderConfirmed}

// AnalyticsService orchestrates the metric queries: it resolves the
// reporting window, fetches the event slices, folds them into aggregates
// and runs the calculators. It holds no state between requests; every
// response is computed fresh from whatever the event store returns.
type AnalyticsService struct {
	repository repository.EventRepository
	costs      analytics.CostEstimator
	plans      config.Plans
	log        *zap.Logger
	now        func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.EventRepository, costs analytics.CostEstimator, plans config.Plans, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		repository: repo,
		costs:      costs,
		plans:      plans,
		log:        log,
		now:        time.Now,
	}
}

// resolveWindow validates the requested period against the plan ceiling.
// Errors here wrap analytics.ErrInvalidWindow and abort before any fetch.
func (s *AnalyticsService) resolveWindow(req *dto.AnalyticsRequest) (analytics.Window, string, error) {
	period := req.Period
	if period == "" {
		period = analytics.PeriodMonth
	}

	maxDays := s.plans.MaxCustomRangeDays(req.Plan)
	window, err := analytics.ResolveWindow(period, req.StartDate, req.EndDate, s.now(), maxDays)
	if err != nil {
		s.log.Warn("Invalid reporting window",
			zap.String("account_id", req.AccountID),
			zap.String("period", period),
			zap.String("plan", req.Plan),
			zap.Error(err))
		return analytics.Window{}, "", err
	}

	return window, period, nil
}

// GetLTV computes the customer lifetime value report for the window.
func (s *AnalyticsService) GetLTV(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetLTVResponse, error) {
	window, period, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}

	events, err := s.repository.FetchEvents(ctx, req.AccountID, completionEventTypes, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completion events: %w", err)
	}

	aggregates := analytics.Fold(events, analytics.ResolveIdentity)
	report := analytics.ComputeLTV(aggregates, s.now(), customerDetailLimit)

	s.log.Info("LTV computed",
		zap.String("account_id", req.AccountID),
		zap.String("period", period),
		zap.Int("events", len(events)),
		zap.Int("customers", report.Summary.TotalCustomers))

	customers := make([]dto.CustomerLTV, 0, len(report.Customers))
	for _, c := range report.Customers {
		customers = append(customers, dto.CustomerLTV{
			IdentityKey:        c.IdentityKey,
			Orders:             c.Orders,
			Revenue:            c.Revenue,
			AvgOrderValue:      c.AvgOrderValue,
			PurchaseFrequency:  c.PurchaseFrequency,
			DaysSinceLastOrder: c.DaysSinceLastOrder,
			IsRecurring:        c.IsRecurring,
			Segment:            c.Segment,
			FirstOrderAt:       c.FirstOrderAt.Unix(),
			LastOrderAt:        c.LastOrderAt.Unix(),
		})
	}

	return &dto.GetLTVResponse{
		Summary: dto.LTVSummary{
			TotalCustomers:       report.Summary.TotalCustomers,
			TotalRevenue:         report.Summary.TotalRevenue,
			AvgLTV:               report.Summary.AvgLTV,
			AvgOrdersPerCustomer: report.Summary.AvgOrdersPerCustomer,
			RecurringRate:        report.Summary.RecurringRate,
			LTVSegments: dto.LTVSegmentCounts{
				High:   report.Summary.Segments.High,
				Medium: report.Summary.Segments.Medium,
				Low:    report.Summary.Segments.Low,
			},
		},
		Customers: customers,
		LTVBySegment: dto.LTVBySegment{
			Recurring: report.BySegment.Recurring,
			New:       report.BySegment.New,
		},
		Period: periodInfo(period, window),
	}, nil
}

// GetCAC computes the acquisition cost report for the window.
func (s *AnalyticsService) GetCAC(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetCACResponse, error) {
	window, period, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}

	starts, err := s.repository.FetchEvents(ctx, req.AccountID, []string{domain.EventCheckoutStart}, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkout_start events: %w", err)
	}

	completions, err := s.repository.FetchEvents(ctx, req.AccountID, completionEventTypes, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completion events: %w", err)
	}

	report := analytics.ComputeCAC(starts, completions, s.costs)

	s.log.Info("CAC computed",
		zap.String("account_id", req.AccountID),
		zap.String("period", period),
		zap.Int("starts", len(starts)),
		zap.Int("completions", len(completions)),
		zap.Int("conversions", report.Summary.TotalNewCustomers))

	channels := make([]dto.ChannelStats, 0, len(report.Channels))
	for _, ch := range report.Channels {
		channels = append(channels, dto.ChannelStats{
			Channel:        ch.Channel,
			Sessions:       ch.Sessions,
			Conversions:    ch.Conversions,
			ConversionRate: ch.ConversionRate,
			Revenue:        ch.Revenue,
			AvgOrderValue:  ch.AvgOrderValue,
			EstimatedCAC:   ch.EstimatedCAC,
			EstimatedSpend: ch.EstimatedSpend,
		})
	}

	return &dto.GetCACResponse{
		Summary: dto.CACSummary{
			TotalNewCustomers:            report.Summary.TotalNewCustomers,
			AvgCAC:                       report.Summary.AvgCAC,
			AvgLTV:                       report.Summary.AvgLTV,
			LTVCACRatio:                  report.Summary.LTVCACRatio,
			TotalEstimatedMarketingSpend: report.Summary.TotalEstimatedSpend,
			AcquisitionEfficiency:        report.Summary.AcquisitionEfficiency,
		},
		Channels: channels,
		Period:   periodInfo(period, window),
		Note:     analytics.CACNote,
	}, nil
}

// GetSegments computes the behavioral segmentation report for the window.
func (s *AnalyticsService) GetSegments(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetSegmentsResponse, error) {
	window, period, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}

	events, err := s.repository.FetchEvents(ctx, req.AccountID, completionEventTypes, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completion events: %w", err)
	}

	aggregates := analytics.Fold(events, analytics.ResolveIdentity)
	report := analytics.ComputeSegments(aggregates, s.now())

	s.log.Info("Segments computed",
		zap.String("account_id", req.AccountID),
		zap.String("period", period),
		zap.Int("events", len(events)),
		zap.Int("customers", report.Summary.TotalCustomers))

	segments := make([]dto.SegmentData, 0, len(report.Segments))
	for _, seg := range report.Segments {
		segments = append(segments, dto.SegmentData{
			Name:        seg.Name,
			Description: seg.Description,
			Metrics: dto.SegmentMetrics{
				Customers:     seg.Customers,
				TotalRevenue:  seg.TotalRevenue,
				AvgOrderValue: seg.AvgOrderValue,
				AvgOrders:     seg.AvgOrders,
			},
		})
	}

	return &dto.GetSegmentsResponse{
		Summary: dto.SegmentsSummary{
			TotalCustomers: report.Summary.TotalCustomers,
			TotalRevenue:   report.Summary.TotalRevenue,
			OverallAvgLTV:  report.Summary.OverallAvgLTV,
			AvgAOV:         report.Summary.AvgAOV,
			AvgOrders:      report.Summary.AvgOrders,
		},
		Segments: segments,
		Period:   periodInfo(period, window),
	}, nil
}

func periodInfo(period string, window analytics.Window) dto.PeriodInfo {
	return dto.PeriodInfo{
		Period: period,
		From:   window.Start.Unix(),
		To:     window.End.Unix(),
	}
}
