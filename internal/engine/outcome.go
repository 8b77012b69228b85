package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

type destinationFailure struct {
	accountID string
	message   string
}

func aggregateErrors(failures []destinationFailure) string {
	lines := make([]string, 0, len(failures))
	for _, f := range failures {
		lines = append(lines, fmt.Sprintf("%s: %s", f.accountID, f.message))
	}
	return strings.Join(lines, "\n")
}

// decideOutcome applies the retry policy to the failures of one attempt.
// now must already be in the scheduler's location.
func decideOutcome(post *models.Post, failures []destinationFailure, now time.Time, interval time.Duration) models.Outcome {
	if len(failures) == 0 {
		postedAt := now
		return models.Outcome{
			Status:   models.PostStatusPosted,
			PostedAt: &postedAt,
		}
	}

	msg := aggregateErrors(failures)
	retries := post.RetryCount + 1
	if retries < post.MaxRetryCount {
		nextDate, nextTime := FormatDue(now.Add(interval))
		return models.Outcome{
			Status:       models.PostStatusRetrying,
			ErrorMessage: &msg,
			NextDate:     nextDate,
			NextTime:     nextTime,
			RetryCount:   &retries,
		}
	}

	return models.Outcome{
		Status:       models.PostStatusFailed,
		ErrorMessage: &msg,
	}
}

func retryInterval(post *models.Post, fallback time.Duration) time.Duration {
	if post.RetryInterval > 0 {
		return time.Duration(post.RetryInterval) * time.Minute
	}
	return fallback
}
