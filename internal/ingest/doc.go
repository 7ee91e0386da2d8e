// Package ingest orchestrates one ingestion run: synchronize the security
// catalog with the provider universe, then fetch and bulk-load the day's
// per-minute prices group by group, all inside a single transaction that
// commits once at the end. A failed group fetch degrades coverage; a storage
// failure rolls the whole run back.
package ingest
