package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/imaahil/dhonipass/internal/adapters/nats"
	"github.com/imaahil/dhonipass/internal/adapters/postgres"
	"github.com/imaahil/dhonipass/internal/adapters/valkey"
	"github.com/imaahil/dhonipass/internal/core/ports"
	"github.com/imaahil/dhonipass/internal/pkg/config"
	"github.com/imaahil/dhonipass/internal/pkg/logging"
	"github.com/imaahil/dhonipass/internal/workflows"
)

// The sync worker runs the catalog refresh workflow: it is the only writer
// to the catalog tables besides the one-shot ingestor.
func main() {
	cfg, err := config.Load("dhonipass-syncworker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("info", "json")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 10)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	var cacheSvc ports.CacheService
	if cache, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, sync will skip cache invalidation", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	var publisherSvc ports.EventPublisher
	if publisher, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, sync will skip announcements", "error", err)
	} else {
		defer publisher.Close()
		publisherSvc = publisher
	}

	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.CatalogSyncWorkflow)
	w.RegisterActivity(&workflows.SyncActivities{
		Catalog:   postgres.NewCatalogRepo(db),
		Cache:     cacheSvc,
		Publisher: publisherSvc,
	})

	slog.Info("catalog sync worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
