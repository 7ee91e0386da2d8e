// Package api provides the client for the market-data provider's REST API.
//
// Three endpoints feed the ingest pipeline:
//   - the security reference universe (GetSymbols)
//   - the last trading day (GetLastTradingDay)
//   - per-minute intraday prices for a batch of symbols (GetIntradayBatch)
//
// Server errors are retried a configurable number of times (default once)
// with a fixed delay; everything else fails immediately.
package api
