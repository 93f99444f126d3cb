package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/downtime-prediction/internal/api/http"
	"github.com/i474232898/downtime-prediction/internal/config"
	"github.com/i474232898/downtime-prediction/internal/logging"
	"github.com/i474232898/downtime-prediction/internal/risk"
	"github.com/i474232898/downtime-prediction/internal/risk/remote"
	"github.com/i474232898/downtime-prediction/internal/scheduler"
	"github.com/i474232898/downtime-prediction/internal/store"
	"github.com/i474232898/downtime-prediction/internal/telemetry"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logging.Sugar.Fatalf("failed to load config: %v", err)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Sugar.Fatalf("failed to initialize logging: %v", err)
	}
	defer logging.Sync()

	// Shared HTTP client for outbound prediction calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Remote client only when an authenticated connection is configured;
	// otherwise the service runs entirely on the local scorer and datasets.
	var remoteClient risk.RemoteClient
	if cfg.RemoteConfigured() {
		remoteClient = remote.NewClient(httpClient, cfg.PredictionAPIURL, cfg.PredictionAPIToken)
		logging.Sugar.Infof("remote prediction service configured at %s", cfg.PredictionAPIURL)
	} else {
		logging.Sugar.Info("no remote prediction service configured; running in local mode")
	}

	// Core service orchestrating remote calls and local fallback.
	service := risk.NewService(memStore, remoteClient, risk.NewScorer(), risk.Options{
		DemoMode:    cfg.DemoMode,
		MockDelay:   cfg.MockDelay,
		CityTimeout: cfg.CityTimeout,
	})

	// Scheduler that periodically evaluates and stores region risk.
	sampler := telemetry.NewSampler()
	sched := scheduler.New(cfg.MonitorRegions, cfg.MonitorInterval, service, sampler)
	if err := sched.Start(); err != nil {
		logging.Sugar.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "downtime-prediction",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "downtime-prediction",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, cfg.RiskThresholds)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logging.Sugar.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Sugar.Errorf("error during shutdown: %v", err)
	}
}
