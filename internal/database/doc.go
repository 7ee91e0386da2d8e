// Package database provides the PostgreSQL connection pool for the ingest
// pipeline. The catalog (security_info) and the minute price series
// (security_data) live in the same database; each ingest run checks out a
// single connection and transaction from the pool.
package database
