// Package model defines the domain types shared across the ingestion
// pipeline: provider security descriptors, persisted catalog entries with
// their symbol history, per-minute price bars, and the reconciliation plan
// that classifies the diff between the provider universe and the catalog.
package model
