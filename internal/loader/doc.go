// Package loader streams price bars into the security_data table through
// Postgres' COPY protocol. A pull-based reader formats one pipe-delimited
// line per bar on demand, so a day's load never materializes in memory; the
// copy either ingests the whole stream or fails and leaves the caller's
// transaction to roll back.
package loader
