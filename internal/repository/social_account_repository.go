package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/autopost/internal/models"
)

const socialAccountColumns = `id, user_id, display_name, username, account_type, access_token, refresh_token,
	token_expires_at, is_connected, avatar, created_at, updated_at`

type SocialAccountRepository interface {
	Upsert(ctx context.Context, sa *models.SocialAccount) error
	GetByID(ctx context.Context, id string) (*models.SocialAccount, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	CountOwned(ctx context.Context, userID int64, ids []string) (int, error)
	SetConnected(ctx context.Context, id string, userID int64, connected bool) (bool, error)
	SetAccountType(ctx context.Context, id string, userID int64, accountType string) (bool, error)
	Remove(ctx context.Context, id string, userID int64) (bool, error)

	ListByTimeInterval(ctx context.Context, from, to time.Time) ([]*models.SocialAccount, error)
	UpdateTokens(ctx context.Context, id, accessToken string, refreshToken *string, expiresAt *time.Time) error
}

type socialAccountRepository struct {
	db *sqlx.DB
}

func NewSocialAccountRepository(db *sqlx.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

// Upsert links an X account to a user, refreshing its profile and tokens when
// it is linked again.
func (r *socialAccountRepository) Upsert(ctx context.Context, sa *models.SocialAccount) error {
	exec := GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	sa.CreatedAt = now
	sa.UpdatedAt = now
	if sa.AccountType == "" {
		sa.AccountType = models.AccountTypeFree
	}

	query := exec.Rebind(`
		INSERT INTO social_accounts (` + socialAccountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			display_name = excluded.display_name,
			username = excluded.username,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expires_at = excluded.token_expires_at,
			is_connected = excluded.is_connected,
			avatar = excluded.avatar,
			updated_at = excluded.updated_at
	`)

	_, err := exec.ExecContext(ctx, query,
		sa.ID, sa.UserID, sa.DisplayName, sa.Username, sa.AccountType, sa.AccessToken, sa.RefreshToken,
		sa.TokenExpiresAt, sa.IsConnected, sa.Avatar, sa.CreatedAt, sa.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("upsert social account: %w", err)
	}

	return nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id string) (*models.SocialAccount, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE id = ?`)

	var sa models.SocialAccount
	if err := sqlx.GetContext(ctx, exec, &sa, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("get social account: %w", err)
	}

	return &sa, nil
}

func (r *socialAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE user_id = ? ORDER BY created_at`)

	accounts := []*models.SocialAccount{}
	if err := sqlx.SelectContext(ctx, exec, &accounts, query, userID); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("list social accounts: %w", err)
	}

	return accounts, nil
}

// CountOwned returns how many of the given account ids belong to the user.
func (r *socialAccountRepository) CountOwned(ctx context.Context, userID int64, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	exec := GetExecutor(ctx, r.db)
	query, args, err := sqlx.In(`SELECT COUNT(*) FROM social_accounts WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, exec, &count, exec.Rebind(query), args...); err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("count social accounts: %w", err)
	}

	return count, nil
}

func (r *socialAccountRepository) SetConnected(ctx context.Context, id string, userID int64, connected bool) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE social_accounts SET is_connected = ?, updated_at = ? WHERE id = ? AND user_id = ?`)

	res, err := exec.ExecContext(ctx, query, connected, time.Now().UTC(), id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("update social account: %w", err)
	}

	return affected(res)
}

func (r *socialAccountRepository) SetAccountType(ctx context.Context, id string, userID int64, accountType string) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE social_accounts SET account_type = ?, updated_at = ? WHERE id = ? AND user_id = ?`)

	res, err := exec.ExecContext(ctx, query, accountType, time.Now().UTC(), id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("update social account: %w", err)
	}

	return affected(res)
}

func (r *socialAccountRepository) Remove(ctx context.Context, id string, userID int64) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`DELETE FROM social_accounts WHERE id = ? AND user_id = ?`)

	res, err := exec.ExecContext(ctx, query, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("delete social account: %w", err)
	}

	return affected(res)
}

// ListByTimeInterval returns connected accounts holding a refresh token whose
// access token expires before to. from is only used to skip tokens that
// expired long ago and will not refresh anyway.
func (r *socialAccountRepository) ListByTimeInterval(ctx context.Context, from, to time.Time) ([]*models.SocialAccount, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`
		SELECT ` + socialAccountColumns + `
		FROM social_accounts
		WHERE is_connected = ?
			AND refresh_token IS NOT NULL
			AND token_expires_at IS NOT NULL
			AND token_expires_at >= ?
			AND token_expires_at < ?
		ORDER BY token_expires_at
	`)

	accounts := []*models.SocialAccount{}
	if err := sqlx.SelectContext(ctx, exec, &accounts, query, true, from.UTC(), to.UTC()); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("list expiring social accounts: %w", err)
	}

	return accounts, nil
}

func (r *socialAccountRepository) UpdateTokens(ctx context.Context, id, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`
		UPDATE social_accounts
		SET access_token = ?,
			refresh_token = COALESCE(?, refresh_token),
			token_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`)

	if _, err := exec.ExecContext(ctx, query, accessToken, refreshToken, expiresAt, time.Now().UTC(), id); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("update social account tokens: %w", err)
	}

	return nil
}
