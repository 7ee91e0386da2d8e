// Package catalog reconciles the provider's security universe against the
// persisted security_info table.
//
// BuildPlan computes the pure outer-join diff; Reconciler.Sync applies the
// resulting mutations (symbol renames with history append, inserts, batched
// deprecations) on the caller's transaction and returns the symbol to
// security-id mapping the price loaders consume. The catalog is the only
// writer of security identity and symbol history.
package catalog
