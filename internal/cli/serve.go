package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/api/handlers"
	"github.com/maheshrc27/autopost/internal/api/middleware"
	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/events"
	job "github.com/maheshrc27/autopost/internal/jobs"
	"github.com/maheshrc27/autopost/internal/queue"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/session"
	"github.com/maheshrc27/autopost/internal/transport/x"
)

const shutdownGrace = 30 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the delivery scheduler and the task workers",
		Long: `Run the HTTP API, the delivery scheduler and the task workers.

Redis is optional. Without it OAuth sessions live in memory and
publish-now requests always run inline. RabbitMQ and R2 are optional too;
outcome events and image uploads are disabled when they are not configured.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, db, logger, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer closeDB(db)

	// Jobs get their own context so shutdown can drain a running cycle
	// before its database calls are cancelled.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	var engineOpts []engine.Option
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := events.NewRabbitMQ(events.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		engineOpts = append(engineOpts, engine.WithNotifier(rabbitMQ))
	}

	eng, err := newEngine(cfg, db, logger, engineOpts...)
	if err != nil {
		return err
	}

	postRepo := repository.NewPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	var (
		sessions    session.Store
		enqueuer    queue.Enqueuer
		asynqServer *asynq.Server
		scheduled   []job.Scheduled
	)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		sessions = session.NewRedisStore(rdb, cfg.Redis.SessionTTL)

		redisConn := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		client := asynq.NewClient(redisConn)
		defer client.Close()
		enqueuer = client

		asynqServer = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: cfg.Scheduler.WorkerConcurrency,
		})
		mux := asynq.NewServeMux()
		queue.NewQueue(eng, logger).Register(mux)
		if err := asynqServer.Start(mux); err != nil {
			return fmt.Errorf("start asynq server: %w", err)
		}
		logger.Info("asynq workers started", "concurrency", cfg.Scheduler.WorkerConcurrency)
	} else {
		memory := session.NewMemoryStore(cfg.Redis.SessionTTL)
		sessions = memory
		scheduled = append(scheduled, job.Scheduled{Spec: "@every 1h", Job: job.NewSessionPurgeJob(memory)})
		logger.Warn("redis not configured, using in-memory oauth sessions and inline publishing")
	}

	xClient := x.NewPublisher(cfg.X.RequestTimeout, logger)

	postService := service.NewPostService(
		repository.NewTransactionManager(db),
		postRepo,
		repository.NewSelectedAccountRepository(db),
		socialAccountRepo,
		repository.NewPostMediaRepository(db),
		settingsRepo,
	)
	settingsService := service.NewSettingsService(settingsRepo)
	accountService := service.NewAccountService(
		service.NewXOAuthConfig(cfg.X.ClientID, cfg.X.ClientSecret, cfg.X.RedirectURI),
		sessions,
		socialAccountRepo,
		xClient,
		cfg.EncryptionKey(),
	)

	routes := api.Handlers{
		Posts:    handlers.NewPostHandler(postService, eng, enqueuer),
		Settings: handlers.NewSettingsHandler(settingsService),
		Accounts: handlers.NewAccountHandler(accountService, cfg.Server.FrontendURL),
		Health:   handlers.NewHealthHandler(db),
	}
	if cfg.R2.BucketName != "" {
		r2Service, err := service.NewR2Service(ctx, cfg.R2)
		if err != nil {
			return err
		}
		routes.Media = handlers.NewMediaHandler(service.NewMediaService(r2Service))
	}

	app := newApp(cfg)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth)
	api.SetupRoutes(app, routes, authMiddleware.AuthMiddleware())

	// cron jobs
	deliveryJob := job.NewDeliveryJob(jobCtx, eng, cfg.Scheduler.CycleTimeout, logger)
	refreshTokenJob := job.NewTokenRefreshJob(jobCtx, socialAccountRepo, accountService)
	scheduled = append(scheduled,
		job.Scheduled{Spec: cfg.Scheduler.Spec, Job: deliveryJob},
		job.Scheduled{Spec: "@every 00h10m00s", Job: refreshTokenJob},
	)

	c, err := job.NewScheduler(scheduled...)
	if err != nil {
		return err
	}
	c.Start()
	logger.Info("scheduler started", "spec", cfg.Scheduler.Spec)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	c.Stop()
	if err := app.ShutdownWithTimeout(shutdownGrace); err != nil {
		logger.Error("failed to shut down http server", "error", err)
	}
	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	if !deliveryJob.Drain(shutdownGrace) {
		logger.Warn("delivery cycle still running at shutdown, cancelling")
	}
	cancelJobs()

	log.Println("Server shutdown complete.")
	return nil
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    10 * 1024 * 1024, // 10 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("request failed", "path", c.Path(), "error", err)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	return app
}

func closeDB(db interface{ Close() error }) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}
