package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/imaahil/dhonipass/internal/adapters/postgres"
	"github.com/imaahil/dhonipass/internal/catalogfeed"
	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/pkg/config"
)

// The ingestor loads an operator schedule manifest and batch-upserts it into
// the catalog tables. Usage:
//
//	ingestor [manifest.json] [operator-filter,...]
func main() {
	cfg, err := config.Load("dhonipass-ingestor")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 10)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	manifestPath := "manifest.json"
	if len(os.Args) > 1 {
		manifestPath = os.Args[1]
	}

	manifest, err := catalogfeed.ReadFile(manifestPath)
	if err != nil {
		log.Fatalf("manifest: %v", err)
	}

	log.Printf("DhoniPass ingestor — %d locations, %d segments from %s",
		len(manifest.Locations), len(manifest.Segments), manifest.Source)

	// Optional operator filter (comma-separated list)
	segments := manifest.Segments
	if len(os.Args) > 2 {
		keep := map[string]bool{}
		for _, op := range strings.Split(os.Args[2], ",") {
			keep[strings.TrimSpace(op)] = true
		}
		var filtered []domain.TransportSegment
		for _, s := range segments {
			if keep[s.Operator] {
				filtered = append(filtered, s)
			}
		}
		segments = filtered
		log.Printf("operator filter: keeping %d of %d segments", len(segments), len(manifest.Segments))
	}

	repo := postgres.NewCatalogRepo(db)
	if err := repo.UpsertLocations(ctx, manifest.Locations); err != nil {
		log.Fatalf("upsert locations: %v", err)
	}
	if err := repo.UpsertSegments(ctx, segments); err != nil {
		log.Fatalf("upsert segments: %v", err)
	}

	log.Println("ingestion complete")
}
