package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dating-backend/internal/config"
	"dating-backend/internal/handlers"
	"dating-backend/internal/repository"
	"dating-backend/internal/services"
	"dating-backend/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const staticPrefix = "/static"

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret (or JWT_SECRET) must be set")
	}

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	if err := repository.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	store, err := newStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage")
	}
	log.Info().Str("backend", cfg.Storage.Backend).Msg("Storage ready")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, store, services.UserConfig{
		JWTSecret:         cfg.JWT.Secret,
		JWTTTL:            cfg.JWT.TTL,
		AllowedExtensions: cfg.Storage.AllowedExtensions,
	})
	compatibilityService := services.NewCompatibilityService(userRepo, userService)
	matchService := services.NewMatchService(matchRepo, userService)
	chatService := services.NewChatService(messageRepo, userService, store, cfg.Storage.AllowedExtensions)

	if cfg.Seed.DemoUsers {
		if err := userService.SeedDemoUsers(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo users")
		}
	}

	// Initialize handlers
	deps := routerDeps{
		users: handlers.NewUserHandler(userService, handlers.SessionCookie{
			Name:   cfg.JWT.CookieName,
			TTL:    cfg.JWT.TTL,
			Secure: cfg.JWT.CookieSecure,
		}),
		home:        handlers.NewHomeHandler(compatibilityService, userService),
		matches:     handlers.NewMatchHandler(matchService),
		chat:        handlers.NewChatHandler(chatService, userService),
		userService: userService,
		cookieName:  cfg.JWT.CookieName,
	}
	if local, ok := store.(*storage.LocalStore); ok {
		deps.staticDir = local.Root()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newStore builds the configured asset backend
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "local":
		local, err := storage.NewLocalStore(cfg.Storage.Dir, staticPrefix)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		s3, err := storage.NewS3Store(ctx, storage.S3Options{
			Region:    cfg.AWS.Region,
			Bucket:    cfg.AWS.S3Bucket,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			Endpoint:  cfg.AWS.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
