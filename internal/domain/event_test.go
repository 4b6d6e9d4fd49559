package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Valid(t *testing.T) {
	valid := Event{
		SessionID: "s1",
		EventType: EventCheckoutComplete,
		Timestamp: time.Unix(1723475612, 0),
	}
	assert.True(t, valid.Valid())

	missingSession := valid
	missingSession.SessionID = ""
	assert.False(t, missingSession.Valid())

	missingType := valid
	missingType.EventType = ""
	assert.False(t, missingType.Valid())

	missingTimestamp := valid
	missingTimestamp.Timestamp = time.Time{}
	assert.False(t, missingTimestamp.Valid())
}
