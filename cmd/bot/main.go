package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusbot/internal/config"
	"campusbot/internal/content"
	"campusbot/internal/handler"
	"campusbot/internal/health"
	"campusbot/internal/middleware"
	"campusbot/internal/repository"
	"campusbot/internal/repository/memory"
	"campusbot/internal/repository/postgres"
	"campusbot/internal/service"
	"campusbot/migrations"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting campus bot",
		zap.String("storage", cfg.Storage),
		zap.Int("admins", len(cfg.AdminIDs)),
	)

	registry, err := content.Load(cfg.ContentFile, cfg.AssetsDir)
	if err != nil {
		logger.Fatal("Failed to load content", zap.Error(err))
	}

	// Initialize repositories
	profileRepo, registrationRepo, closeStore, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStore()

	adminSessionRepo := memory.NewAdminSessionRepo()

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Bot error", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bot.Use(middleware.RecoverMiddleware(logger), middleware.LoggingMiddleware(logger))

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Initialize services
	messenger := handler.NewBotMessenger(bot)
	accessService := service.NewAccessService(cfg.AdminIDs)
	registrationService := service.NewRegistrationService(profileRepo, registrationRepo, logger)
	menuService := service.NewMenuService(registry, profileRepo)
	broadcastService := service.NewBroadcastService(profileRepo, messenger, logger)
	adminService := service.NewAdminService(accessService, adminSessionRepo, broadcastService, logger)
	cleanupService := service.NewCleanupService(registrationRepo, adminSessionRepo, cfg.SessionTTL, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize handler
	h := handler.NewHandler(ctx, bot, messenger, registrationService, menuService, adminService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	go runCleanupJob(ctx, cleanupService, cfg.SweepInterval, logger)

	// Start liveness server in background
	healthServer := health.NewServer(cfg.HTTPPort, logger)
	healthDone := make(chan struct{})
	go func() {
		defer close(healthDone)
		if err := healthServer.Run(ctx); err != nil {
			logger.Error("Health server stopped", zap.Error(err))
		}
	}()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()
	<-healthDone

	logger.Info("Bot stopped gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// openStorage builds the profile and registration stores selected by STORAGE
func openStorage(cfg *config.Config, logger *zap.Logger) (
	repository.ProfileRepository,
	repository.RegistrationRepository,
	func(),
	error,
) {
	if cfg.Storage != config.StoragePostgres {
		logger.Info("Using in-memory storage, data is lost on restart")
		return memory.NewProfileRepo(), memory.NewRegistrationRepo(), func() {}, nil
	}

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	dbx := sqlx.NewDb(db, "postgres")
	closeFn := func() {
		if err := dbx.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	return postgres.NewProfileRepo(dbx), postgres.NewRegistrationRepo(dbx), closeFn, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies the embedded schema migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}
	return nil
}

// runCleanupJob periodically purges abandoned conversations
func runCleanupJob(ctx context.Context, cleanupService *service.CleanupService, interval time.Duration, logger *zap.Logger) {
	// Run cleanup once at startup
	if err := cleanupService.CleanupStaleSessions(ctx); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Debug("Running scheduled cleanup")
			if err := cleanupService.CleanupStaleSessions(ctx); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
