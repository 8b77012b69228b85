package models

import "time"

const (
	DefaultTimezone      = "Asia/Tokyo"
	DefaultMaxRetryCount = 3
	DefaultRetryInterval = 15
)

type Settings struct {
	UserID             int64     `db:"user_id" json:"user_id"`
	Timezone           string    `db:"timezone" json:"timezone"`
	BulkPause          bool      `db:"bulk_pause" json:"bulk_pause"`
	EmailNotifications bool      `db:"email_notifications" json:"email_notifications"`
	Email              *string   `db:"email" json:"email,omitempty"`
	AutoRetry          bool      `db:"auto_retry" json:"auto_retry"`
	MaxRetryCount      int       `db:"max_retry_count" json:"max_retry_count"`
	RetryInterval      int       `db:"retry_interval" json:"retry_interval"` // minutes
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// EffectiveMaxRetryCount is the attempt budget snapshotted onto new posts.
func (s *Settings) EffectiveMaxRetryCount() int {
	if !s.AutoRetry {
		return 1
	}
	if s.MaxRetryCount <= 0 {
		return DefaultMaxRetryCount
	}
	return s.MaxRetryCount
}

func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:        userID,
		Timezone:      DefaultTimezone,
		AutoRetry:     true,
		MaxRetryCount: DefaultMaxRetryCount,
		RetryInterval: DefaultRetryInterval,
	}
}
