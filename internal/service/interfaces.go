package service

import (
	"context"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/dto"
)

// EventServicer defines the interface for event ingestion operations
type EventServicer interface {
	ProcessEvent(event *dto.PublishEventRequest) (string, error)
	ProcessBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error)
}

// AnalyticsServicer defines the interface for the metric query operations
type AnalyticsServicer interface {
	GetLTV(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetLTVResponse, error)
	GetCAC(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetCACResponse, error)
	GetSegments(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetSegmentsResponse, error)
}
