package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/imaahil/dhonipass/internal/catalogfeed"
)

// CatalogSyncInput is the input for the catalog sync workflow.
type CatalogSyncInput struct {
	ManifestURL string
	Source      string
}

// CatalogSyncWorkflow refreshes the transport catalog from an operator
// manifest: fetch, upsert, invalidate the planner cache, announce. Cache
// invalidation must not be skipped after an upsert — a stale materialized
// catalog would keep serving the old schedules for its full TTL — so a
// failed invalidation fails the run and Temporal retries the whole chain.
func CatalogSyncWorkflow(ctx workflow.Context, input CatalogSyncInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting catalog sync", "source", input.Source)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Fetch the operator manifest
	var manifest *catalogfeed.Manifest
	err := workflow.ExecuteActivity(ctx, "FetchManifest", input.ManifestURL).Get(ctx, &manifest)
	if err != nil {
		return err
	}

	// Step 2: Upsert into the catalog store
	var count int
	err = workflow.ExecuteActivity(ctx, "UpsertCatalog", manifest).Get(ctx, &count)
	if err != nil {
		return err
	}

	// Step 3: Invalidate the planner's cached catalog
	err = workflow.ExecuteActivity(ctx, "InvalidateCatalogCache").Get(ctx, nil)
	if err != nil {
		return err
	}

	// Step 4: Announce the update; best-effort, the catalog is already live
	source := input.Source
	if source == "" {
		source = input.ManifestURL
	}
	if err := workflow.ExecuteActivity(ctx, "PublishCatalogUpdated", source).Get(ctx, nil); err != nil {
		logger.Warn("catalog update announcement failed", "error", err)
	}

	logger.Info("Catalog sync complete", "segments", count)
	return nil
}
