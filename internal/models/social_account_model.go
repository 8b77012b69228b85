package models

import (
	"time"
)

const (
	AccountTypeFree    = "free"
	AccountTypePremium = "premium"
)

// SocialAccount is a linked X account. ID is the X user id.
type SocialAccount struct {
	ID             string     `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	DisplayName    string     `db:"display_name" json:"display_name"`
	Username       string     `db:"username" json:"username"`
	AccountType    string     `db:"account_type" json:"account_type"`
	AccessToken    string     `db:"access_token" json:"-"`
	RefreshToken   *string    `db:"refresh_token" json:"-"`
	TokenExpiresAt *time.Time `db:"token_expires_at" json:"token_expires_at,omitempty"`
	IsConnected    bool       `db:"is_connected" json:"is_connected"`
	Avatar         *string    `db:"avatar" json:"avatar,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// SelectedAccount is the destination record of a post on one account.
type SelectedAccount struct {
	PostID        string     `db:"post_id" json:"post_id"`
	AccountID     string     `db:"account_id" json:"account_id"`
	Position      int        `db:"position" json:"position"`
	Posted        bool       `db:"posted" json:"posted"`
	PostedTweetID *string    `db:"posted_tweet_id" json:"posted_tweet_id,omitempty"`
	PostedAt      *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	ErrorMessage  *string    `db:"error_message" json:"error_message,omitempty"`
}

// AccountDetail joins a destination record with the account it points at.
type AccountDetail struct {
	SelectedAccount
	DisplayName *string `db:"display_name" json:"display_name,omitempty"`
	Username    *string `db:"username" json:"username,omitempty"`
	Avatar      *string `db:"avatar" json:"avatar,omitempty"`
}
