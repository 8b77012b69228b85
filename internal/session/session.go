// Package session keeps the short-lived state of an OAuth authorization
// between the redirect to X and the callback.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("oauth session not found or expired")

type OAuthSession struct {
	UserID       int64     `json:"user_id"`
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store saves a session under its state value. Take removes it, so a state
// can be redeemed once.
type Store interface {
	Save(ctx context.Context, state string, s OAuthSession) error
	Take(ctx context.Context, state string) (*OAuthSession, error)
}
