package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garage-backend/internal/auth"
	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/handler"
	"garage-backend/internal/repository"
	"garage-backend/internal/router"
	"garage-backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load a local .env when present; environment variables take precedence.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting garage API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema migrations
	if err := database.RunMigrations(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	billRepo := repository.NewBillRepository(pool, logger)
	bookingRepo := repository.NewBookingRepository(pool, logger)
	driverRepo := repository.NewDriverRepository(pool, logger)
	storeRepo := repository.NewStoreRepository(pool, logger)
	authz := auth.NewPermissionRepository(pool, logger)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, logger)
	billService := service.NewBillService(billRepo, orderRepo, pool, logger)
	bookingService := service.NewBookingService(bookingRepo, logger)
	driverService := service.NewDriverService(driverRepo, logger)
	storeService := service.NewStoreService(storeRepo, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	billHandler := handler.NewBillHandler(billService, logger)
	bookingHandler := handler.NewBookingHandler(bookingService, logger)
	driverHandler := handler.NewDriverHandler(driverService, logger)
	storeHandler := handler.NewStoreHandler(storeService, logger)

	// Initialize router
	mux := router.New(
		orderHandler,
		billHandler,
		bookingHandler,
		driverHandler,
		storeHandler,
		authz,
		cfg.Auth.APIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
