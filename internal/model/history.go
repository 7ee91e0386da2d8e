package model

import (
	"sort"
	"strconv"
)

// CurrentKey is the reserved symbol-history key holding the live symbol.
const CurrentKey = "current"

// SymbolHistory records every trading symbol a security has used. The
// "current" key always holds the live symbol; retired symbols sit under
// sequential integer keys ("0", "1", ...) in the order they were replaced.
// It marshals to the catalog's JSONB symbol column as a plain object.
type SymbolHistory map[string]string

// NewSymbolHistory builds the history for a freshly listed security.
func NewSymbolHistory(symbol string) SymbolHistory {
	return SymbolHistory{CurrentKey: symbol}
}

// Current returns the live symbol.
func (h SymbolHistory) Current() string {
	return h[CurrentKey]
}

// Past returns the retired symbols, oldest first.
func (h SymbolHistory) Past() []string {
	if len(h) <= 1 {
		return nil
	}
	past := make([]string, 0, len(h)-1)
	keys := make([]int, 0, len(h)-1)
	for k := range h {
		if k == CurrentKey {
			continue
		}
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		keys = append(keys, n)
	}
	sort.Ints(keys)
	for _, n := range keys {
		past = append(past, h[strconv.Itoa(n)])
	}
	return past
}

// AppendHistory returns a new history with the previous live symbol retired
// under the next sequential key and "current" set to newSymbol. The input is
// not mutated, so the append law is testable in isolation and callers can
// hold the old snapshot across the update.
func AppendHistory(old SymbolHistory, newSymbol string) SymbolHistory {
	updated := make(SymbolHistory, len(old)+1)
	for k, v := range old {
		updated[k] = v
	}
	// Next key follows the original storage layout: a history with n entries
	// retires the live symbol under key n-1.
	updated[strconv.Itoa(len(old)-1)] = old[CurrentKey]
	updated[CurrentKey] = newSymbol
	return updated
}
