package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/tanveerhkit/habit-tracker/internal/adapters/cache"
	adapterHTTP "github.com/tanveerhkit/habit-tracker/internal/adapters/handler/http"
	"github.com/tanveerhkit/habit-tracker/internal/adapters/repository"
	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/services"
	"github.com/tanveerhkit/habit-tracker/internal/core/view"
	"github.com/tanveerhkit/habit-tracker/internal/core/workers"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	serverPort := envOr("PORT", "8080")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	logger.Info("connecting to database", zap.String("host", dbHost), zap.String("port", dbPort))

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("database connected")

	redisDB, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
	redisClient, err := cache.NewRedisClient(cache.Options{
		Host:     envOr("REDIS_HOST", "localhost"),
		Port:     envOr("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DBIndex:  redisDB,
	})
	if err != nil {
		logger.Warn("redis unavailable, running without caching and rate limiting", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connected")
	}

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if redisClient != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient, logger)
	}
	completionRepo := repository.NewPostgresCompletionRepository(db)
	timerRepo := repository.NewPostgresTimerRepository(db)

	var statsCache *repository.RedisStatsCache
	if redisClient != nil {
		statsCache = repository.NewRedisStatsCache(redisClient, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var invalidator *workers.StatsInvalidator
	if statsCache != nil {
		invalidator = workers.NewStatsInvalidator(statsCache, logger)
		invalidator.Start(ctx)
	}

	habitService := services.NewHabitService(habitRepo, completionRepo)
	logService := services.NewLogService(completionRepo, habitRepo, invalidator)
	timerService := services.NewTimerService(timerRepo)

	var overviewCache services.OverviewCache
	if statsCache != nil {
		overviewCache = statsCache
	}
	statsService := services.NewStatsService(habitRepo, completionRepo, overviewCache, logger)

	toggleController := view.NewController(completionRepo, invalidator, logger)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(habitService, toggleController, logger),
		LogHandler:   adapterHTTP.NewLogHandler(logService, logger),
		StatsHandler: adapterHTTP.NewStatsHandler(statsService, logger),
		TimerHandler: adapterHTTP.NewTimerHandler(timerService, logger),
		DB:           db,
		Redis:        redisClient,
		Logger:       logger,
		StartTime:    startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("habit tracker running", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
