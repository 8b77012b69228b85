package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/pkg/utils"
)

type credentialStore struct {
	sa  repository.SocialAccountRepository
	key []byte
}

// NewCredentialStore resolves destination accounts to usable X access tokens.
// Disconnected accounts still resolve; whether they are used is decided when
// destinations are chosen.
func NewCredentialStore(sa repository.SocialAccountRepository, key []byte) engine.CredentialStore {
	return &credentialStore{sa: sa, key: key}
}

func (s *credentialStore) GetDestinationCredential(ctx context.Context, accountID string) (string, error) {
	account, err := s.sa.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", engine.ErrAccountNotFound
	}

	token, err := utils.Decrypt(account.AccessToken, s.key)
	if err != nil {
		return "", fmt.Errorf("decrypt access token: %w", err)
	}
	return token, nil
}
