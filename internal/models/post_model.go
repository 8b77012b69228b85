package models

import "time"

type PostStatus string

const (
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosting   PostStatus = "posting"
	PostStatusPosted    PostStatus = "posted"
	PostStatusRetrying  PostStatus = "retrying"
	PostStatusFailed    PostStatus = "failed"
)

type PostType string

const (
	PostTypeSingle PostType = "single"
	PostTypeThread PostType = "thread"
)

type Post struct {
	ID            string     `db:"id" json:"id"`
	UserID        int64      `db:"user_id" json:"user_id"`
	Text          string     `db:"text" json:"text"`
	ScheduledDate string     `db:"scheduled_date" json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string     `db:"scheduled_time" json:"scheduled_time"` // HH:MM
	Timezone      string     `db:"timezone" json:"timezone"`
	Status        PostStatus `db:"status" json:"status"`
	PostType      PostType   `db:"post_type" json:"post_type"`
	ThreadCount   int        `db:"thread_count" json:"thread_count"`
	RetryCount    int        `db:"retry_count" json:"retry_count"`
	MaxRetryCount int        `db:"max_retry_count" json:"max_retry_count"`
	RetryInterval int        `db:"retry_interval" json:"retry_interval"` // minutes
	ErrorMessage  *string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	PostedAt      *time.Time `db:"posted_at" json:"posted_at,omitempty"`
}

// PostMedia is an image attached to the first unit of a post.
type PostMedia struct {
	ID           string    `db:"id" json:"id"`
	PostID       string    `db:"post_id" json:"post_id"`
	URL          string    `db:"url" json:"url"`
	FilePath     *string   `db:"file_path" json:"file_path,omitempty"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Outcome is the terminal write for one processing attempt of a post.
// Nil pointers and empty strings leave the stored value untouched,
// except ErrorMessage which is always written.
type Outcome struct {
	Status       PostStatus
	ErrorMessage *string
	PostedAt     *time.Time
	NextDate     string
	NextTime     string
	RetryCount   *int
}
