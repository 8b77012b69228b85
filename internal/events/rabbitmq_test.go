package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/models"
)

func TestNewOutcomeMessage(t *testing.T) {
	event := engine.Event{
		PostID:     "p1",
		UserID:     3,
		Status:     models.PostStatusRetrying,
		RetryCount: 1,
		Error:      "B: rate limited",
		OccurredAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	msg := NewOutcomeMessage(event)

	assert.Equal(t, "post.retrying", msg.Action)
	assert.Equal(t, event, msg.Event)
	assert.False(t, msg.Timestamp.IsZero())
}
