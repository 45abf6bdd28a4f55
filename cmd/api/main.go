package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finbook/finbook/internal/infra/gateway/openrates"
	"github.com/finbook/finbook/internal/infra/postgres"
	infraRedis "github.com/finbook/finbook/internal/infra/redis"
	"github.com/finbook/finbook/internal/module/overview"
	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/platform/category"
	"github.com/finbook/finbook/internal/platform/rates"
	"github.com/finbook/finbook/internal/platform/transaction"
	"github.com/finbook/finbook/internal/platform/user"
	"github.com/finbook/finbook/internal/transport/httpapi"
	"github.com/finbook/finbook/internal/transport/httpapi/handler"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Finbook API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Redis client for rate table caching
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	accountRepo := postgres.NewAccountRepository(db.Pool)
	categoryRepo := postgres.NewCategoryRepository(db.Pool)
	transactionRepo := postgres.NewTransactionRepository(db.Pool)
	ratesRepo := postgres.NewRatesRepository(db.Pool)

	// Exchange rates: external provider + Redis cache + persisted fallback
	ratesProvider := openrates.NewClient(cfg.RatesURL)
	ratesCache := infraRedis.NewRateCache(redisClient, log)
	ratesSvc := rates.NewService(ratesRepo, ratesCache, ratesProvider, cfg.RatesBaseCurrency, log)
	ratesSvc.StartRefresher(ctx, cfg.RatesRefreshInterval)
	log.Info("Rates service initialized", "base", cfg.RatesBaseCurrency, "refresh_interval", cfg.RatesRefreshInterval)

	// Domain services
	userSvc := user.NewService(userRepo, log)
	accountSvc := account.NewService(accountRepo, transactionRepo)
	categorySvc := category.NewService(categoryRepo)
	transactionSvc := transaction.NewService(transactionRepo, accountRepo)
	overviewSvc := overview.NewService(userSvc, accountRepo, transactionRepo, ratesSvc, log)

	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	overviewHandler := handler.NewOverviewHandler(overviewSvc)
	healthHandler := handler.NewHealthHandler(db)

	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthHandler:        authHandler,
		AccountHandler:     accountHandler,
		CategoryHandler:    categoryHandler,
		TransactionHandler: transactionHandler,
		OverviewHandler:    overviewHandler,
		HealthHandler:      healthHandler,
		JWTMiddleware:      middleware.JWTMiddleware(jwtSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
