package transfer

import "github.com/maheshrc27/autopost/internal/models"

type PostCreation struct {
	ID               string   `json:"id" validate:"omitempty,max=64"`
	Text             string   `json:"text" validate:"not_blank"`
	ScheduledDate    string   `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime    string   `json:"scheduled_time" validate:"required,datetime=15:04"`
	Timezone         string   `json:"timezone" validate:"omitempty,timezone"`
	PostType         string   `json:"post_type" validate:"omitempty,oneof=single thread"`
	SelectedAccounts []string `json:"selected_accounts" validate:"required,min=1,dive,required"`
	ImageURLs        []string `json:"image_urls" validate:"omitempty,max=4,dive,url"`
}

// PostUpdate carries only the fields the caller wants changed.
type PostUpdate struct {
	Text             *string   `json:"text" validate:"omitempty,not_blank"`
	ScheduledDate    *string   `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime    *string   `json:"scheduled_time" validate:"omitempty,datetime=15:04"`
	Timezone         *string   `json:"timezone" validate:"omitempty,timezone"`
	PostType         *string   `json:"post_type" validate:"omitempty,oneof=single thread"`
	SelectedAccounts *[]string `json:"selected_accounts" validate:"omitempty,min=1,dive,required"`
	ImageURLs        *[]string `json:"image_urls" validate:"omitempty,max=4,dive,url"`
}

type PostDetail struct {
	*models.Post
	Accounts []*models.AccountDetail `json:"accounts"`
	Media    []*models.PostMedia     `json:"media,omitempty"`
}
