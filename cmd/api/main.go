package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/imaahil/dhonipass/internal/adapters/http"
	natsadapter "github.com/imaahil/dhonipass/internal/adapters/nats"
	"github.com/imaahil/dhonipass/internal/adapters/postgres"
	"github.com/imaahil/dhonipass/internal/adapters/static"
	"github.com/imaahil/dhonipass/internal/adapters/valkey"
	"github.com/imaahil/dhonipass/internal/core/planner"
	"github.com/imaahil/dhonipass/internal/core/ports"
	"github.com/imaahil/dhonipass/internal/core/usecases"
	"github.com/imaahil/dhonipass/internal/pkg/config"
	"github.com/imaahil/dhonipass/internal/pkg/logging"
	"github.com/imaahil/dhonipass/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("dhonipass-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Catalog source: postgres, or the embedded island catalog
	var catalog ports.CatalogRepository
	var db *postgres.DB
	var insightsSvc *usecases.InsightsService
	if cfg.Database.Enabled {
		db, err = postgres.New(ctx, cfg.Database.DSN(), 50)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		go db.ReportPoolMetrics(ctx, 15*time.Second)

		catalog = postgres.NewCatalogRepo(db)
		insightsSvc = usecases.NewInsightsService(postgres.NewPlanEventRepo(db))
	} else {
		slog.Info("database disabled, serving the embedded catalog")
		catalog, err = static.Load()
		if err != nil {
			log.Fatalf("embedded catalog: %v", err)
		}
	}

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	engine := planner.Engine{
		Hub:                   cfg.Planner.Hub,
		TransferBufferMinutes: cfg.Planner.TransferBufferMinutes,
		BalancedPriceUnit:     cfg.Planner.BalancedPriceUnit,
		BalancedTimeUnit:      cfg.Planner.BalancedTimeUnit,
	}

	// A typed nil must not leak into the service interfaces.
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	var publisherSvc ports.EventPublisher
	if publisher != nil {
		publisherSvc = publisher
	}

	deps := &http.Dependencies{
		Planner:  usecases.NewPlannerService(catalog, cacheSvc, publisherSvc, engine),
		Catalog:  usecases.NewCatalogService(catalog, cacheSvc),
		Insights: insightsSvc,
		NATS:     natsConn,
		DB:       db,
		Cache:    cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "DhoniPass API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.dhonipass.mv",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
