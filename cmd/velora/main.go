package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/velora-studio/velora/internal/app"
	"github.com/velora-studio/velora/internal/appointments"
	"github.com/velora-studio/velora/internal/auth"
	"github.com/velora-studio/velora/internal/catalog"
	"github.com/velora-studio/velora/internal/customers"
	"github.com/velora-studio/velora/internal/insights"
	"github.com/velora-studio/velora/internal/media"
	"github.com/velora-studio/velora/internal/observability"
	"github.com/velora-studio/velora/internal/orders"
	"github.com/velora-studio/velora/internal/platform/blob"
	"github.com/velora-studio/velora/internal/platform/cache"
	"github.com/velora-studio/velora/internal/platform/db"
	"github.com/velora-studio/velora/internal/shared"
	"github.com/velora-studio/velora/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.Connect(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "velora_session", cfg.SessionTTL, cfg.IsProduction())

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	customerRepo := customers.NewRepository(dbpool)
	customerService := customers.NewService(customerRepo)
	customerHandler := customers.NewHandler(logger, customerService)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	orderRepo := orders.NewRepository(dbpool)
	draftStore := orders.NewDraftStore(redisClient, cfg.DraftTTL)
	orderService := orders.NewService(orderRepo, draftStore, catalogService)
	orderHandler := orders.NewHandler(logger, orderService)

	appointmentRepo := appointments.NewRepository(dbpool)
	appointmentService := appointments.NewService(appointmentRepo)
	appointmentHandler := appointments.NewHandler(logger, appointmentService, jobsClient)

	insightsRepo := insights.NewRepository(dbpool)
	insightsService := insights.NewService(insightsRepo, redisClient, cfg.InsightsTTL)
	insightsHandler := insights.NewHandler(logger, insightsService, jobsClient)

	blobClient := blob.NewClient(cfg.BlobAPIURL, cfg.BlobPublicURL, cfg.BlobAPIKey)
	mediaService := media.NewService(blobClient)
	mediaHandler := media.NewHandler(logger, mediaService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		AuthHandler:        authHandler,
		CustomerHandler:    customerHandler,
		CatalogHandler:     catalogHandler,
		OrderHandler:       orderHandler,
		AppointmentHandler: appointmentHandler,
		InsightsHandler:    insightsHandler,
		MediaHandler:       mediaHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
