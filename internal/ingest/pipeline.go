package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finrefdata/secsync/internal/api"
	"github.com/finrefdata/secsync/internal/catalog"
	"github.com/finrefdata/secsync/internal/config"
	"github.com/finrefdata/secsync/internal/loader"
	"github.com/finrefdata/secsync/internal/series"
)

// Pipeline runs the daily catalog sync and price load.
type Pipeline struct {
	cfg        config.IngestConfig
	db         *pgxpool.Pool
	client     *api.Client
	reconciler *catalog.Reconciler
	logger     *slog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(cfg config.IngestConfig, db *pgxpool.Pool, client *api.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:        cfg,
		db:         db,
		client:     client,
		reconciler: catalog.NewReconciler(logger),
		logger:     logger,
	}
}

// Run ingests one trading date. The catalog sync and every group load share
// one transaction; it commits once after the last group, so a run is
// all-or-nothing. A group whose price fetch fails (after the client's retry)
// is logged and skipped, degrading that day's coverage without aborting the
// run. The connection returns to the pool on every exit path.
func (p *Pipeline) Run(ctx context.Context, date time.Time) error {
	logger := p.logger.With(
		"run_id", uuid.New().String(),
		"date", date.Format("2006-01-02"),
	)

	// Fetch the universe before touching the database; an unavailable
	// universe aborts the run with no mutations.
	universe, err := p.client.GetSymbols(ctx, p.cfg.SecurityTypes)
	if err != nil {
		return fmt.Errorf("universe unavailable: %w", err)
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// No-op once committed.
	defer tx.Rollback(ctx)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	mapping, err := p.reconciler.Sync(ctx, tx, universe, today)
	if err != nil {
		return fmt.Errorf("catalog sync: %w", err)
	}

	groups := SymbolGroups(mapping, p.cfg.SymbolGroupSize)
	logger.Info("loading intraday prices",
		"securities", len(mapping),
		"groups", len(groups),
	)

	var loadedGroups, skippedGroups int
	var rows int64
	for _, group := range groups {
		payload, err := p.client.GetIntradayBatch(ctx, date, group)
		if err != nil {
			logger.Warn("skipping symbol group, intraday fetch failed",
				"symbols", len(group),
				"error", err,
			)
			skippedGroups++
			continue
		}

		stream := series.Flatten(payload, mapping, logger)
		n, err := loader.CopyInto(ctx, tx, stream, p.cfg.CopyBufferSize)
		if err != nil {
			return fmt.Errorf("load symbol group: %w", err)
		}
		rows += n
		loadedGroups++
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	logger.Info("ingestion run committed",
		"groups_loaded", loadedGroups,
		"groups_skipped", skippedGroups,
		"rows", rows,
	)
	return nil
}
