// Package series flattens the provider's nested per-symbol intraday payload
// into a single-pass stream of price bars stamped with resolved security ids,
// ready for bulk loading. One symbol's bars are materialized at a time.
package series
