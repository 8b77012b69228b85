package engine

import (
	"context"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// PostStore selects, claims and finalizes posts.
type PostStore interface {
	ListDue(ctx context.Context, date, clock string, limit int) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Claim(ctx context.Context, id string, from models.PostStatus) (bool, error)
	FinalizePost(ctx context.Context, id string, outcome models.Outcome) error
}

// DestinationStore reads and records the per-account state of a post.
type DestinationStore interface {
	ListPending(ctx context.Context, postID string) ([]*models.SelectedAccount, error)
	RecordDestinationSuccess(ctx context.Context, postID, accountID string, externalIDs []string, at time.Time) error
	RecordDestinationFailure(ctx context.Context, postID, accountID, message string) error
}

type MediaStore interface {
	ListByPostID(ctx context.Context, postID string) ([]*models.PostMedia, error)
}

// CredentialStore resolves an account id to the credential the publisher
// needs. Unknown accounts yield ErrAccountNotFound.
type CredentialStore interface {
	GetDestinationCredential(ctx context.Context, accountID string) (string, error)
}

// Publisher sends one unit of content and returns the external post id.
type Publisher interface {
	PublishUnit(ctx context.Context, credential string, unit Unit) (string, error)
}

type PauseGate interface {
	IsGloballyPaused(ctx context.Context) (bool, error)
}

// Notifier is told about every finalized post.
type Notifier interface {
	PostFinalized(ctx context.Context, event Event) error
}
