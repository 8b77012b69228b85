package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPost() PostCreation {
	return PostCreation{
		Text:             "hello",
		ScheduledDate:    "2024-05-01",
		ScheduledTime:    "09:00",
		Timezone:         "Asia/Tokyo",
		PostType:         "thread",
		SelectedAccounts: []string{"123"},
	}
}

func TestValidateStruct_PostCreation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *PostCreation)
		wantErr string
	}{
		{name: "valid", mutate: func(p *PostCreation) {}},
		{name: "blank text", mutate: func(p *PostCreation) { p.Text = "  \n " }, wantErr: "Text failed not_blank"},
		{name: "bad date", mutate: func(p *PostCreation) { p.ScheduledDate = "01/05/2024" }, wantErr: "ScheduledDate failed datetime"},
		{name: "seconds in time", mutate: func(p *PostCreation) { p.ScheduledTime = "09:00:00" }, wantErr: "ScheduledTime failed datetime"},
		{name: "unknown zone", mutate: func(p *PostCreation) { p.Timezone = "Mars/Olympus" }, wantErr: "Timezone failed timezone"},
		{name: "bad type", mutate: func(p *PostCreation) { p.PostType = "carousel" }, wantErr: "PostType failed oneof"},
		{name: "no accounts", mutate: func(p *PostCreation) { p.SelectedAccounts = nil }, wantErr: "SelectedAccounts failed required"},
		{name: "bad image url", mutate: func(p *PostCreation) { p.ImageURLs = []string{"not a url"} }, wantErr: "failed url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPost()
			tt.mutate(&p)

			err := ValidateStruct(p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateStruct_PartialUpdates(t *testing.T) {
	assert.NoError(t, ValidateStruct(PostUpdate{}))
	assert.NoError(t, ValidateStruct(SettingsUpdate{}))

	zero := 0
	assert.ErrorContains(t, ValidateStruct(SettingsUpdate{MaxRetryCount: &zero}), "MaxRetryCount failed min=1")

	blank := " "
	assert.ErrorContains(t, ValidateStruct(PostUpdate{Text: &blank}), "Text failed not_blank")

	assert.ErrorContains(t, ValidateStruct(AccountTypeUpdate{AccountType: "gold"}), "AccountType failed oneof")
}
