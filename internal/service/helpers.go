package service

import (
	"time"

	"golang.org/x/oauth2"
)

func GetExpiresAt(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

func tokenExpiry(tok *oauth2.Token) *time.Time {
	if tok.Expiry.IsZero() {
		if tok.ExpiresIn > 0 {
			at := GetExpiresAt(int(tok.ExpiresIn)).UTC()
			return &at
		}
		return nil
	}
	at := tok.Expiry.UTC()
	return &at
}
