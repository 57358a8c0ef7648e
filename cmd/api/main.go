package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	rediscache "github.com/srgjo27/event_ticketing/internal/adapter/cache/redis"
	"github.com/srgjo27/event_ticketing/internal/adapter/handler"
	"github.com/srgjo27/event_ticketing/internal/adapter/identity"
	"github.com/srgjo27/event_ticketing/internal/adapter/repository/postgres"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/srgjo27/event_ticketing/internal/platform/config"
	"github.com/srgjo27/event_ticketing/internal/platform/database"
	"github.com/srgjo27/event_ticketing/internal/platform/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 25

	db, err := database.NewPostgresDB(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to db after retries: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	logger.Info("connecting to redis", "addr", cfg.RedisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("redis connected")

	eventRepo := postgres.NewEventRepository(db)
	ticketTypeRepo := postgres.NewTicketTypeRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	sessions := rediscache.NewSessionStore(redisClient)
	eventCache := rediscache.NewEventCache(redisClient, cfg.EventCacheTTL)

	idp := identity.NewProvider(profileRepo).WithGoogle(identity.OAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})

	ticketService := services.NewTicketService(ticketRepo, ticketTypeRepo, cfg.Tickets(), logger.With("component", "tickets"))

	catalogService := services.NewCatalogService(eventRepo, ticketTypeRepo, profileRepo, eventCache, logger.With("component", "catalog"))

	authService := services.NewAuthService(idp, sessions, services.AuthConfig{
		Secret:     []byte(cfg.SessionSecret),
		SessionTTL: cfg.SessionTTL,
	}, logger.With("component", "auth"))

	router := handler.NewRouter(handler.RouterConfig{
		Tickets:      ticketService,
		Catalog:      catalogService,
		Auth:         authService,
		Policy:       services.NewAdminPolicy(cfg.AdminEmails),
		SecureCookie: strings.HasPrefix(cfg.GoogleRedirectURL, "https://"),
		Logger:       logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.HTTPAddr, "admins", len(cfg.AdminEmails))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server startup failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}
