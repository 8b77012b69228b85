package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transport/x"
)

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

// bootstrap loads config, installs the logger and opens a migrated database.
func bootstrap(ctx context.Context, opts *RootOptions) (*config.Config, *sqlx.DB, *slog.Logger, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	return cfg, db, logger, nil
}

func newEngine(cfg *config.Config, db *sqlx.DB, logger *slog.Logger, opts ...engine.Option) (*engine.Engine, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	accounts := repository.NewSocialAccountRepository(db)

	return engine.New(
		repository.NewPostRepository(db),
		repository.NewSelectedAccountRepository(db),
		repository.NewPostMediaRepository(db),
		service.NewCredentialStore(accounts, cfg.EncryptionKey()),
		x.NewPublisher(cfg.X.RequestTimeout, logger),
		repository.NewSettingsRepository(db),
		engine.Config{
			BatchSize:              cfg.Scheduler.BatchSize,
			PostConcurrency:        cfg.Scheduler.PostConcurrency,
			DestinationConcurrency: cfg.Scheduler.DestinationConcurrency,
			RetryInterval:          cfg.Scheduler.RetryInterval,
			Location:               loc,
		},
		logger,
		opts...,
	), nil
}
