package engine

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidState    = errors.New("post is not in scheduled status")
	ErrNoDestinations  = errors.New("no accounts to post to")
	ErrAccountNotFound = errors.New("account not found")
	ErrDeliveryFailed  = errors.New("delivery failed")
)
