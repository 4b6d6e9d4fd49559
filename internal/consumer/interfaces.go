package consumer

import (
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into events
type MessageParser interface {
	Parse(body []byte) (*domain.Event, error)
}
