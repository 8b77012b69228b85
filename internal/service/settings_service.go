package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.Settings, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

// GetSettingsInfo returns the user's settings, creating the defaults on
// first access.
func (s *settingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error) {
	settings, err := s.sr.EnsureDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.Settings, error) {
	settings, err := s.sr.EnsureDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	if su.Timezone != nil {
		settings.Timezone = *su.Timezone
	}
	if su.BulkPause != nil {
		settings.BulkPause = *su.BulkPause
	}
	if su.EmailNotifications != nil {
		settings.EmailNotifications = *su.EmailNotifications
	}
	if su.Email != nil {
		settings.Email = su.Email
	}
	if su.AutoRetry != nil {
		settings.AutoRetry = *su.AutoRetry
	}
	if su.MaxRetryCount != nil {
		settings.MaxRetryCount = *su.MaxRetryCount
	}
	if su.RetryInterval != nil {
		settings.RetryInterval = *su.RetryInterval
	}

	if err := s.sr.UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return settings, nil
}
