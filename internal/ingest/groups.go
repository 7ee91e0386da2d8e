package ingest

import "sort"

// SymbolGroups partitions the mapped symbols into groups of at most size,
// sorted so runs are deterministic. Every symbol lands in exactly one group.
func SymbolGroups(mapping map[string]int64, size int) [][]string {
	symbols := make([]string, 0, len(mapping))
	for sym := range mapping {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var groups [][]string
	for len(symbols) > 0 {
		n := size
		if n > len(symbols) {
			n = len(symbols)
		}
		groups = append(groups, symbols[:n])
		symbols = symbols[n:]
	}
	return groups
}
