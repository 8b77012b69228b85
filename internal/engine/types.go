package engine

import (
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

type MediaRef struct {
	URL       string
	LocalPath string
}

// Unit is one network call's worth of content.
type Unit struct {
	Text    string
	Media   []MediaRef
	ReplyTo string
}

type DestinationResult struct {
	AccountID   string   `json:"account_id"`
	ExternalIDs []string `json:"external_ids,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Result describes what one processing attempt did to a post.
type Result struct {
	PostID       string              `json:"post_id"`
	Status       models.PostStatus   `json:"status"`
	RetryCount   int                 `json:"retry_count"`
	Error        string              `json:"error,omitempty"`
	NextDate     string              `json:"next_date,omitempty"`
	NextTime     string              `json:"next_time,omitempty"`
	Destinations []DestinationResult `json:"destinations,omitempty"`
}

type CycleStats struct {
	Paused   bool
	Selected int
	Skipped  int
	Posted   int
	Retrying int
	Failed   int
}

type Event struct {
	PostID     string            `json:"post_id"`
	UserID     int64             `json:"user_id"`
	Status     models.PostStatus `json:"status"`
	RetryCount int               `json:"retry_count"`
	Error      string            `json:"error,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type Config struct {
	BatchSize              int
	PostConcurrency        int
	DestinationConcurrency int
	// RetryInterval applies to posts that carry no interval of their own.
	RetryInterval time.Duration
	Location      *time.Location
}

func (c *Config) setDefaults() {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.PostConcurrency <= 0 {
		c.PostConcurrency = 1
	}
	if c.DestinationConcurrency <= 0 {
		c.DestinationConcurrency = 1
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 15 * time.Minute
	}
	if c.Location == nil {
		c.Location = time.Local
	}
}
