package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"

	"github.com/huduglue/watchtower/internal/checker"
	"github.com/huduglue/watchtower/internal/config"
	"github.com/huduglue/watchtower/internal/handler"
	"github.com/huduglue/watchtower/internal/kafka"
	"github.com/huduglue/watchtower/internal/logger"
	"github.com/huduglue/watchtower/internal/metrics"
	"github.com/huduglue/watchtower/internal/probe"
	"github.com/huduglue/watchtower/internal/router"
	"github.com/huduglue/watchtower/internal/service"
	"github.com/huduglue/watchtower/internal/storage"
	"github.com/huduglue/watchtower/pkg/tracing"
)

func main() {
	l := logger.NewLogger()
	slog.SetDefault(l)

	metrics.Init()

	if err := godotenv.Load(); err != nil {
		l.Warn("No .env file loaded", "err", err)
	}
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracerShutdown, err := tracing.NewTracerProvider(ctx, cfg.ServiceName, cfg.CollectorEndpoint, l)
	if err != nil {
		l.Error("Failed to initialize TracerProvider", slog.Any("err", err))
		os.Exit(1)
	}
	defer tracerShutdown()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		l.Error("Failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	monitorStore := storage.NewPostgresMonitorStorage(dbPool)
	expirationStore := storage.NewPostgresExpirationStorage(dbPool)

	monitorSvc := service.NewMonitorService(monitorStore, l)
	expirationSvc := service.NewExpirationService(expirationStore, l)
	healthSvc := service.NewHealthService(monitorStore, l)

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.ClientID = "watchtower-producer"

	asyncProducer, err := sarama.NewAsyncProducer(cfg.KafkaBrokers, saramaConfig)
	if err != nil {
		l.Error("Failed to create sarama producer", slog.Any("error", err))
		os.Exit(1)
	}

	var wg sync.WaitGroup
	notificationProducer := kafka.NewProducer(
		asyncProducer,
		cfg.KafkaTopic,
		l,
		&wg,
		tracing.NewTracer(tracing.GetTracer("notification-producer")),
	)
	notificationProducer.Start(ctx)
	defer notificationProducer.Close(ctx)

	prober := probe.NewProber(nil, nil, nil, l)
	chkr := checker.NewChecker(monitorSvc, prober, notificationProducer, l, cfg.CheckInterval)
	go chkr.Start(ctx)

	monitorHandler := handler.NewMonitorHandler(monitorSvc, chkr, l)
	expirationHandler := handler.NewExpirationHandler(expirationSvc, l)
	healthHandler := handler.NewHealthHandler(healthSvc, l)

	r := router.NewRouter(monitorHandler, expirationHandler, healthHandler, cfg.JWTSecret)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		l.Info("Server started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Failed to start server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error("Shutdown failed", "err", err)
	} else {
		l.Info("Server exited cleanly")
	}
}
