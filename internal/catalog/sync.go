package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finrefdata/secsync/internal/model"
)

// Reconciler synchronizes the security_info table with a provider universe.
type Reconciler struct {
	logger *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{logger: logger}
}

// Sync diffs the universe against the enabled catalog rows and applies the
// minimum set of mutations on tx: history-preserving renames, inserts for new
// listings, and one batched deprecation update. It returns the symbol to
// security-id mapping for every security enabled after the sync; deprecated
// ids are excluded. The caller owns the transaction and commits it.
func (r *Reconciler) Sync(ctx context.Context, tx pgx.Tx, universe []model.SecurityDescriptor, today time.Time) (map[string]int64, error) {
	snapshot, err := r.loadSnapshot(ctx, tx)
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(universe, snapshot)

	mapping := make(map[string]int64, len(universe))
	for sym, id := range plan.Unchanged {
		mapping[sym] = id
	}

	for _, rn := range plan.Renamed {
		if err := r.applyRename(ctx, tx, rn); err != nil {
			return nil, err
		}
		mapping[rn.NewSymbol] = rn.SecurityID
	}

	for _, desc := range plan.New {
		id, err := r.insertNew(ctx, tx, desc)
		if err != nil {
			return nil, err
		}
		mapping[desc.Symbol] = id
	}

	if err := r.deprecate(ctx, tx, plan.Deprecated, today); err != nil {
		return nil, err
	}

	r.logger.Info("catalog synchronized",
		"universe", len(universe),
		"renamed", len(plan.Renamed),
		"new", len(plan.New),
		"deprecated", len(plan.Deprecated),
		"unchanged", len(plan.Unchanged),
	)

	return mapping, nil
}

// loadSnapshot selects the enabled catalog rows ordered by external id.
func (r *Reconciler) loadSnapshot(ctx context.Context, tx pgx.Tx) ([]model.CatalogRef, error) {
	rows, err := tx.Query(ctx, `
		SELECT security_id, symbol ->> 'current', iex_id
		FROM security_info
		WHERE is_enabled
		ORDER BY iex_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	defer rows.Close()

	var snapshot []model.CatalogRef
	for rows.Next() {
		var ref model.CatalogRef
		if err := rows.Scan(&ref.SecurityID, &ref.CurrentSymbol, &ref.ExternalID); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		snapshot = append(snapshot, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}

	return snapshot, nil
}

// applyRename retires the previous live symbol into the history and writes
// the new one under "current".
func (r *Reconciler) applyRename(ctx context.Context, tx pgx.Tx, rn model.Rename) error {
	var history model.SymbolHistory
	err := tx.QueryRow(ctx,
		`SELECT symbol FROM security_info WHERE security_id = $1`,
		rn.SecurityID,
	).Scan(&history)
	if err != nil {
		return fmt.Errorf("load symbol history for %d: %w", rn.SecurityID, err)
	}

	updated := model.AppendHistory(history, rn.NewSymbol)

	_, err = tx.Exec(ctx,
		`UPDATE security_info SET symbol = $1 WHERE security_id = $2`,
		updated, rn.SecurityID,
	)
	if err != nil {
		return fmt.Errorf("update symbol for %d: %w", rn.SecurityID, err)
	}

	r.logger.Debug("symbol renamed",
		"security_id", rn.SecurityID,
		"old", rn.OldSymbol,
		"new", rn.NewSymbol,
	)
	return nil
}

// insertNew creates a catalog entry for a new listing and returns the
// assigned security id.
func (r *Reconciler) insertNew(ctx context.Context, tx pgx.Tx, desc model.SecurityDescriptor) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO security_info(
			symbol, exchange, comp_name, date_added,
			security_type, iex_id, region, currency,
			is_enabled, figi, cik)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING security_id
	`,
		model.NewSymbolHistory(desc.Symbol), desc.Exchange, desc.Name, desc.ListingDate,
		desc.SecurityType, desc.ExternalID, desc.Region, desc.Currency,
		desc.Enabled, desc.FIGI, desc.CIK,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert security %s: %w", desc.Symbol, err)
	}

	r.logger.Debug("security added", "security_id", id, "symbol", desc.Symbol)
	return id, nil
}

// deprecate disables every listed id and stamps the deprecation date in one
// batched round trip.
func (r *Reconciler) deprecate(ctx context.Context, tx pgx.Tx, ids []int64, today time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`
			UPDATE security_info
			SET is_enabled = false, date_deprecated = $1
			WHERE security_id = $2
		`, today, id)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range ids {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("deprecate securities: %w", err)
		}
	}

	return nil
}
