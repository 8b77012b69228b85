package transfer

type SettingsUpdate struct {
	Timezone           *string `json:"timezone" validate:"omitempty,timezone"`
	BulkPause          *bool   `json:"bulk_pause"`
	EmailNotifications *bool   `json:"email_notifications"`
	Email              *string `json:"email" validate:"omitempty,email"`
	AutoRetry          *bool   `json:"auto_retry"`
	MaxRetryCount      *int    `json:"max_retry_count" validate:"omitempty,min=1,max=10"`
	RetryInterval      *int    `json:"retry_interval" validate:"omitempty,min=1,max=1440"`
}
