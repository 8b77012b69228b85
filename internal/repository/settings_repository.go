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

const settingsColumns = `user_id, timezone, bulk_pause, email_notifications, email, auto_retry, max_retry_count,
	retry_interval, created_at, updated_at`

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Settings, error)
	EnsureDefault(ctx context.Context, userID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s *models.Settings) error
	IsGloballyPaused(ctx context.Context) (bool, error)
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.Settings, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + settingsColumns + ` FROM settings WHERE user_id = ?`)

	var settings models.Settings
	if err := sqlx.GetContext(ctx, exec, &settings, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// EnsureDefault returns the user's settings, creating the default row first
// when none exists.
func (r *settingsRepository) EnsureDefault(ctx context.Context, userID int64) (*models.Settings, error) {
	exec := GetExecutor(ctx, r.db)

	d := models.DefaultSettings(userID)
	now := time.Now().UTC()
	query := exec.Rebind(`
		INSERT INTO settings (` + settingsColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING
	`)
	_, err := exec.ExecContext(ctx, query,
		d.UserID, d.Timezone, d.BulkPause, d.EmailNotifications, d.Email, d.AutoRetry, d.MaxRetryCount,
		d.RetryInterval, now, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("insert default settings: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, s *models.Settings) error {
	exec := GetExecutor(ctx, r.db)

	s.UpdatedAt = time.Now().UTC()
	query := exec.Rebind(`
		UPDATE settings
		SET timezone = ?,
			bulk_pause = ?,
			email_notifications = ?,
			email = ?,
			auto_retry = ?,
			max_retry_count = ?,
			retry_interval = ?,
			updated_at = ?
		WHERE user_id = ?
	`)

	_, err := exec.ExecContext(ctx, query,
		s.Timezone, s.BulkPause, s.EmailNotifications, s.Email, s.AutoRetry, s.MaxRetryCount, s.RetryInterval,
		s.UpdatedAt, s.UserID)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("update settings: %w", err)
	}

	return nil
}

// IsGloballyPaused reports whether any user has switched on bulk pause.
// A single paused user halts the whole delivery cycle.
func (r *settingsRepository) IsGloballyPaused(ctx context.Context) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT COUNT(*) FROM settings WHERE bulk_pause = ?`)

	var count int
	if err := sqlx.GetContext(ctx, exec, &count, query, true); err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("read pause flag: %w", err)
	}

	return count > 0, nil
}
