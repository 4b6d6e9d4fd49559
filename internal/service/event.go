package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/dto"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/queue"
)

// EventService accepts checkout telemetry and hands it to the queue.
type EventService struct {
	publisher queue.QueuePublisher
	log       *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(publisher queue.QueuePublisher, log *zap.Logger) *EventService {
	return &EventService{
		publisher: publisher,
		log:       log,
	}
}

// computeEventID generates a deterministic event ID based on event content.
// Duplicate deliveries of the same event collapse onto one row via
// ReplacingMergeTree, which is how at-least-once delivery stays tolerable.
func computeEventID(event *dto.PublishEventRequest) string {
	data := fmt.Sprintf("%s|%s|%s|%d|%s",
		event.AccountID,
		event.SessionID,
		event.EventType,
		event.Timestamp,
		event.OrderFormID,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ProcessEvent processes a single event
func (s *EventService) ProcessEvent(event *dto.PublishEventRequest) (string, error) {
	ctx := context.Background()

	currentTime := time.Now().Unix()
	if event.Timestamp > currentTime+1 {
		s.log.Warn("Timestamp validation failed: future timestamp",
			zap.Int64("event_timestamp", event.Timestamp),
			zap.Int64("current_time", currentTime),
			zap.String("event_type", event.EventType))
		return "", fmt.Errorf("timestamp cannot be in the future: %d > %d", event.Timestamp, currentTime)
	}

	eventID := computeEventID(event)

	err := s.publisher.PublishEvent(ctx, event, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return eventID, nil
}

// ProcessBulkEvents validates and processes multiple events
func (s *EventService) ProcessBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errors []string

	for i, event := range events {
		eventID, err := s.ProcessEvent(&event)
		if err != nil {
			errors = append(errors, err.Error())
			s.log.Warn("Failed to process event in bulk",
				zap.Int("index", i),
				zap.Error(err),
				zap.String("event_type", event.EventType))
			continue
		}
		eventIDs = append(eventIDs, eventID)
	}

	return eventIDs, errors, nil
}
