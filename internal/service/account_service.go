package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/session"
	"github.com/maheshrc27/autopost/internal/transfer"
	"github.com/maheshrc27/autopost/internal/transport/x"
	"github.com/maheshrc27/autopost/pkg/utils"
)

const (
	X_AUTH_URL  = "https://twitter.com/i/oauth2/authorize"
	X_TOKEN_URL = "https://api.twitter.com/2/oauth2/token"
)

var xScopes = []string{"tweet.read", "tweet.write", "users.read", "offline.access"}

// NewXOAuthConfig builds the OAuth2 client for linking X accounts.
func NewXOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       xScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   X_AUTH_URL,
			TokenURL:  X_TOKEN_URL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

type ProfileFetcher interface {
	GetMe(ctx context.Context, accessToken string) (*x.Profile, error)
}

type AccountService interface {
	ConnectURL(ctx context.Context, userID int64) (*transfer.ConnectResponse, error)
	Callback(ctx context.Context, state, code string) (*models.SocialAccount, error)
	List(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	Disconnect(ctx context.Context, userID int64, accountID string) error
	Delete(ctx context.Context, userID int64, accountID string) error
	SetAccountType(ctx context.Context, userID int64, accountID, accountType string) error
	RefreshToken(ctx context.Context, account *models.SocialAccount) error
}

type accountService struct {
	oauth    *oauth2.Config
	sessions session.Store
	sa       repository.SocialAccountRepository
	profiles ProfileFetcher
	key      []byte
}

func NewAccountService(
	oauth *oauth2.Config,
	sessions session.Store,
	sa repository.SocialAccountRepository,
	profiles ProfileFetcher,
	key []byte) AccountService {
	return &accountService{
		oauth:    oauth,
		sessions: sessions,
		sa:       sa,
		profiles: profiles,
		key:      key,
	}
}

// ConnectURL starts a PKCE authorization. The verifier stays server side,
// keyed by the random state echoed back on the callback.
func (s *accountService) ConnectURL(ctx context.Context, userID int64) (*transfer.ConnectResponse, error) {
	state, err := utils.GenerateRandomKey(32)
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	verifier := oauth2.GenerateVerifier()
	err = s.sessions.Save(ctx, state, session.OAuthSession{
		UserID:       userID,
		CodeVerifier: verifier,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &transfer.ConnectResponse{
		AuthURL: s.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
		State:   state,
	}, nil
}

func (s *accountService) Callback(ctx context.Context, state, code string) (*models.SocialAccount, error) {
	if state == "" || code == "" {
		return nil, fmt.Errorf("%w: missing state or code", ErrInvalidInput)
	}

	sess, err := s.sessions.Take(ctx, state)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	tok, err := s.oauth.Exchange(ctx, code, oauth2.VerifierOption(sess.CodeVerifier))
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	profile, err := s.profiles.GetMe(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := utils.Encrypt([]byte(tok.AccessToken), s.key)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.encryptOptional(tok.RefreshToken)
	if err != nil {
		return nil, err
	}

	account := &models.SocialAccount{
		ID:             profile.ID,
		UserID:         sess.UserID,
		DisplayName:    profile.DisplayName,
		Username:       profile.Username,
		AccountType:    models.AccountTypeFree,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: tokenExpiry(tok),
		IsConnected:    true,
	}
	if profile.Avatar != "" {
		account.Avatar = &profile.Avatar
	}

	if err := s.sa.Upsert(ctx, account); err != nil {
		return nil, err
	}

	slog.Info("x account linked", "user_id", sess.UserID, "account_id", account.ID, "username", account.Username)
	return account, nil
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	accounts, err := s.sa.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Disconnect keeps the account row but stops delivery to it.
func (s *accountService) Disconnect(ctx context.Context, userID int64, accountID string) error {
	ok, err := s.sa.SetConnected(ctx, accountID, userID, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *accountService) Delete(ctx context.Context, userID int64, accountID string) error {
	ok, err := s.sa.Remove(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *accountService) SetAccountType(ctx context.Context, userID int64, accountID, accountType string) error {
	ok, err := s.sa.SetAccountType(ctx, accountID, userID, accountType)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// RefreshToken trades the stored refresh token for a new access token. X
// rotates refresh tokens, so both are written back.
func (s *accountService) RefreshToken(ctx context.Context, account *models.SocialAccount) error {
	if account.RefreshToken == nil {
		return fmt.Errorf("%w: account %s has no refresh token", ErrInvalidInput, account.ID)
	}

	refresh, err := utils.Decrypt(*account.RefreshToken, s.key)
	if err != nil {
		return fmt.Errorf("decrypt refresh token: %w", err)
	}

	tok, err := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refresh}).Token()
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("refresh token: %w", err)
	}

	accessToken, err := utils.Encrypt([]byte(tok.AccessToken), s.key)
	if err != nil {
		return err
	}
	var refreshToken *string
	if tok.RefreshToken != "" && tok.RefreshToken != refresh {
		if refreshToken, err = s.encryptOptional(tok.RefreshToken); err != nil {
			return err
		}
	}

	return s.sa.UpdateTokens(ctx, account.ID, accessToken, refreshToken, tokenExpiry(tok))
}

func (s *accountService) encryptOptional(v string) (*string, error) {
	if v == "" {
		return nil, nil
	}
	enc, err := utils.Encrypt([]byte(v), s.key)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}
