package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/database"
	"github.com/localnerve/nftune-store/internal/handlers"
	"github.com/localnerve/nftune-store/internal/logger"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// setup loads configuration, starts logging and opens the migrated database.
func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, OutputPath: cfg.LogFile}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return cfg, db, nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	app := newApp(cfg, db)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("gracefully shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("shutdown failed", logger.ErrorField(err))
		}
	}()

	logger.Info("starting server",
		logger.String("port", cfg.Port),
		logger.String("authMode", cfg.AuthMode),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newApp assembles the fiber application over db.
func newApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("nftune")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", handlers.Health(cfg, db))

	svc := services.New(store.New(db),
		services.WithMarketplaceBase(cfg.MarketplaceBaseURL),
		services.WithContributionCeiling(cfg.ContributionCeiling),
	)

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.Identify(newResolver(cfg)))
	handlers.RegisterRoutes(api, &handlers.Handlers{Service: svc})

	app.Use(handlers.NotFound)

	return app
}

// newResolver picks the credential check named by AUTH_MODE. Config
// validation has already rejected unknown modes.
func newResolver(cfg *config.Config) middleware.IdentityResolver {
	if cfg.AuthMode == config.AuthModeAuthorizer {
		return middleware.NewSessionResolver(middleware.NewAuthorizerSessions(cfg))
	}
	return middleware.NewJWTResolver(cfg.JWTSecret)
}
