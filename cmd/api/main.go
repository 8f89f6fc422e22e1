// Package main is the entry point for the Balance Board API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/balance-board/backend/config"
	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/application/usecase/auth"
	"github.com/balance-board/backend/internal/application/usecase/category"
	"github.com/balance-board/backend/internal/application/usecase/ledger"
	"github.com/balance-board/backend/internal/application/usecase/stats"
	"github.com/balance-board/backend/internal/application/usecase/transfer"
	"github.com/balance-board/backend/internal/infra/db"
	"github.com/balance-board/backend/internal/infra/server/router"
	"github.com/balance-board/backend/internal/integration/adapters"
	"github.com/balance-board/backend/internal/integration/entrypoint/controller"
	"github.com/balance-board/backend/internal/integration/entrypoint/middleware"
	"github.com/balance-board/backend/internal/integration/events"
	"github.com/balance-board/backend/internal/integration/persistence"
	"github.com/balance-board/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Balance Board API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.LedgerTotalsModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Change fanout: Redis when configured, otherwise in-process. The
	// in-process notifier is fine for a single instance; Redis is required
	// once a second replica serves the live streams.
	var notifier adapter.ChangeNotifier
	var redisHealthChecker func() bool

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.Error("Invalid Redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()

		notifier = events.NewRedisNotifier(redisClient)
		redisHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
		slog.Info("Change fanout backed by Redis")
	} else {
		notifier = events.NewMemoryNotifier()
		slog.Info("Change fanout running in-process")
	}

	// Repositories and services
	clock := adapters.NewSystemClock()
	categoryRepo := persistence.NewCategoryRepository(database.DB(), notifier)
	ledgerRepo := persistence.NewLedgerRepository(database.DB())
	statsRepo := persistence.NewStatsRepository(database.DB(), clock)
	transferStore := persistence.NewTransferStore(database.DB(), clock, cfg.Transfer.MaxConflictRetries)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Use cases
	loginUseCase := auth.NewLoginAdminUseCase(
		auth.AdminCredentials{
			Email:        cfg.Auth.AdminEmail,
			PasswordHash: cfg.Auth.AdminPasswordHash,
		},
		passwordService,
		tokenService,
	)

	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, notifier)
	watchCategoriesUseCase := category.NewWatchCategoriesUseCase(categoryRepo)

	listHistoryUseCase := ledger.NewListHistoryUseCase(ledgerRepo, categoryRepo)

	transferUseCase := transfer.NewTransferFundsUseCase(transferStore, notifier, transfer.Policy{
		AllowNegativeBalance: cfg.Transfer.AllowNegativeBalance,
	})

	getStatsUseCase := stats.NewGetStatsUseCase(statsRepo)
	watchStatsUseCase := stats.NewWatchStatsUseCase(statsRepo, notifier)
	recomputeTotalsUseCase := stats.NewRecomputeTotalsUseCase(statsRepo)

	// Refold the ledger once at startup so the totals row is trustworthy
	// even after a restore or schema change.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := recomputeTotalsUseCase.Execute(ctx); err != nil {
			slog.Error("Failed to recompute ledger totals", "error", err)
			cancel()
			os.Exit(1)
		}
		cancel()
	}

	// Controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck, redisHealthChecker)
	authController := controller.NewAuthController(loginUseCase)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		watchCategoriesUseCase,
		listHistoryUseCase,
	)
	transferController := controller.NewTransferController(transferUseCase)
	statsController := controller.NewStatsController(getStatsUseCase, watchStatsUseCase)

	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transferController,
		statsController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
