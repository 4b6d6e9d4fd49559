package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// Repository implements EventRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema initializes the ClickHouse schema with ReplacingMergeTree engine
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS checkout_events (
		event_id String,
		account_id LowCardinality(String),
		session_id String,
		order_form_id String,
		event_type LowCardinality(String),
		timestamp Int64,
		metadata String,
		processed_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PRIMARY KEY (account_id, event_type, timestamp, event_id)
	ORDER BY (account_id, event_type, timestamp, event_id)
	PARTITION BY toYYYYMM(toDateTime(timestamp))
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create checkout_events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertBatch inserts a batch of events into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, events []*domain.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO checkout_events")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	insertedCount := 0
	for _, event := range events {
		if event.Version == 0 {
			event.Version = uint64(time.Now().UnixNano())
		}

		metadataJSON := "{}"
		if len(event.Metadata) > 0 {
			encoded, err := json.Marshal(event.Metadata)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal event metadata: %w", err)
			}
			metadataJSON = string(encoded)
		}

		err := batch.Append(
			event.EventID,
			event.AccountID,
			event.SessionID,
			event.OrderFormID,
			event.EventType,
			event.Timestamp.Unix(),
			metadataJSON,
			event.ProcessedAt,
			event.Version,
		)

		if err != nil {
			return 0, fmt.Errorf("failed to append event to batch: %w", err)
		}
		insertedCount++
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return insertedCount, nil
}

// FetchEvents retrieves all events for the account matching one of the
// given event types within [start, end). No ordering is applied: the
// aggregation layer is order-independent by contract.
func (r *Repository) FetchEvents(ctx context.Context, accountID string, eventTypes []string, start, end time.Time) ([]domain.Event, error) {
	query := `
		SELECT event_id, session_id, order_form_id, event_type, timestamp, metadata
		FROM checkout_events FINAL
		WHERE account_id = ? AND event_type IN (?) AND timestamp >= ? AND timestamp < ?
	`

	rows, err := r.client.Conn().Query(ctx, query, accountID, eventTypes, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func(rows driver.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close event rows", zap.Error(err))
		}
	}(rows)

	var events []domain.Event
	for rows.Next() {
		var (
			event        domain.Event
			timestamp    int64
			metadataJSON string
		)
		if err := rows.Scan(&event.EventID, &event.SessionID, &event.OrderFormID, &event.EventType, &timestamp, &metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		event.AccountID = accountID
		event.Timestamp = time.Unix(timestamp, 0).UTC()

		// Historical rows may carry metadata that is not valid JSON;
		// those events still count, just without a usable metadata bag.
		metadata := domain.Metadata{}
		if metadataJSON != "" && metadataJSON != "{}" {
			if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
				r.log.Warn("Skipping unparsable event metadata",
					zap.String("event_id", event.EventID),
					zap.Error(err))
				metadata = domain.Metadata{}
			}
		}
		event.Metadata = metadata

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}
