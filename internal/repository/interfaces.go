package repository

import (
	"context"
	"time"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// EventRepository defines the interface for checkout event storage operations
type EventRepository interface {
	// FetchEvents returns all events for the account matching one of the
	// event types within [start, end). Ordering is unspecified; callers
	// must not assume sort order.
	FetchEvents(ctx context.Context, accountID string, eventTypes []string, start, end time.Time) ([]domain.Event, error)

	// InsertBatch inserts a batch of events into the storage
	InsertBatch(ctx context.Context, events []*domain.Event) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
