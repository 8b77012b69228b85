package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/autopost/internal/models"
)

func TestDecideOutcome(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 50, 0, 0, time.UTC)

	t.Run("no failures posts", func(t *testing.T) {
		out := decideOutcome(&models.Post{MaxRetryCount: 3}, nil, now, 15*time.Minute)
		assert.Equal(t, models.PostStatusPosted, out.Status)
		require.NotNil(t, out.PostedAt)
		assert.True(t, now.Equal(*out.PostedAt))
		assert.Nil(t, out.ErrorMessage)
		assert.Nil(t, out.RetryCount)
	})

	t.Run("failure under budget retries across midnight", func(t *testing.T) {
		failures := []destinationFailure{{accountID: "B", message: "rate limited"}}
		out := decideOutcome(&models.Post{RetryCount: 0, MaxRetryCount: 3}, failures, now, 15*time.Minute)

		assert.Equal(t, models.PostStatusRetrying, out.Status)
		require.NotNil(t, out.RetryCount)
		assert.Equal(t, 1, *out.RetryCount)
		assert.Equal(t, "2024-05-02", out.NextDate)
		assert.Equal(t, "00:05", out.NextTime)
		require.NotNil(t, out.ErrorMessage)
		assert.Equal(t, "B: rate limited", *out.ErrorMessage)
	})

	t.Run("last allowed attempt fails", func(t *testing.T) {
		failures := []destinationFailure{{accountID: "A", message: "x"}, {accountID: "B", message: "y"}}
		out := decideOutcome(&models.Post{RetryCount: 2, MaxRetryCount: 3}, failures, now, 15*time.Minute)

		assert.Equal(t, models.PostStatusFailed, out.Status)
		assert.Nil(t, out.RetryCount)
		assert.Empty(t, out.NextDate)
		require.NotNil(t, out.ErrorMessage)
		assert.Equal(t, "A: x\nB: y", *out.ErrorMessage)
	})

	t.Run("budget of one never retries", func(t *testing.T) {
		failures := []destinationFailure{{accountID: "A", message: "x"}}
		out := decideOutcome(&models.Post{MaxRetryCount: 1}, failures, now, 15*time.Minute)
		assert.Equal(t, models.PostStatusFailed, out.Status)
	})
}

func TestRetryInterval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, retryInterval(&models.Post{RetryInterval: 5}, 15*time.Minute))
	assert.Equal(t, 15*time.Minute, retryInterval(&models.Post{}, 15*time.Minute))
}

func TestFormatDue(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	date, clock := FormatDue(time.Date(2024, 5, 1, 16, 7, 59, 0, time.UTC).In(loc))
	assert.Equal(t, "2024-05-02", date)
	assert.Equal(t, "01:07", clock)
}
