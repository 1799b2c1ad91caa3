package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/imaahil/dhonipass/internal/adapters/nats"
	"github.com/imaahil/dhonipass/internal/adapters/postgres"
	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/usecases"
	"github.com/imaahil/dhonipass/internal/pkg/config"
	"github.com/imaahil/dhonipass/internal/pkg/logging"
)

// The insights consumer drains plan-computed events off JetStream, persists
// them for the stats endpoint, and rebroadcasts them to WebSocket clients.
func main() {
	cfg, err := config.Load("dhonipass-insights")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("info", "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 10)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	insights := usecases.NewInsightsService(postgres.NewPlanEventRepo(db))

	subscriber, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer subscriber.Close()

	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer publisher.Close()

	err = subscriber.SubscribePlanEvents(ctx, func(ctx context.Context, event *domain.PlanEvent) error {
		if err := insights.Record(ctx, event); err != nil {
			slog.Error("record plan event", "error", err)
			return err
		}

		// Push to live dashboards; losing a broadcast is fine.
		if data, err := json.Marshal(event); err == nil {
			_ = publisher.PublishBroadcast(ctx, data)
		}

		slog.Info("plan event recorded",
			"found", event.Found,
			"preference", event.Preference,
			"destinations", len(event.Destinations),
		)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("insights consumer running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("insights consumer stopped")
}
