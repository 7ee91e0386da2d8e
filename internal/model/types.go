package model

import "time"

// UnknownCIK is stored when the provider omits a central index key, so the
// column is always present and well-typed.
const UnknownCIK int64 = -1

// SecurityDescriptor is one entry of the provider's security universe.
// ExternalID is the provider-assigned key that never changes across runs;
// Symbol is the trading symbol and may change between runs.
type SecurityDescriptor struct {
	ExternalID   string // join key against the catalog
	Symbol       string // current trading symbol
	Exchange     string
	Name         string
	ListingDate  time.Time
	SecurityType string // one of the allow-listed types
	Region       string
	Currency     string
	Enabled      bool
	FIGI         string
	CIK          int64 // UnknownCIK when absent
}

// CatalogRef is the slice of a persisted catalog row the reconciler joins
// against: internal id, the live symbol, and the external join key.
type CatalogRef struct {
	SecurityID    int64
	CurrentSymbol string
	ExternalID    string
}

// CatalogEntry is a full persisted security_info row.
type CatalogEntry struct {
	SecurityID     int64
	Symbol         SymbolHistory
	Exchange       string
	Name           string
	ListingDate    time.Time
	SecurityType   string
	ExternalID     string
	Region         string
	Currency       string
	Enabled        bool
	FIGI           string
	CIK            int64
	DateDeprecated *time.Time
}

// Rename pairs a catalog security with the symbol the provider now reports.
type Rename struct {
	SecurityID int64
	OldSymbol  string
	NewSymbol  string
}

// ReconciliationPlan partitions the outer join between the provider universe
// and the catalog snapshot into four disjoint mutation sets, keyed by
// external id. Every id present on either side lands in exactly one set.
type ReconciliationPlan struct {
	Renamed    []Rename
	New        []SecurityDescriptor
	Deprecated []int64          // security ids to disable
	Unchanged  map[string]int64 // symbol -> security id, already in sync
}

// PriceBar is one minute of trading data for one security, stamped with the
// resolved internal id before load. The price and notional fields are
// pointers because the provider reports null for minutes without prints;
// volume and trade count are required by the target schema and stored as
// integers.
type PriceBar struct {
	SecurityID int64
	Timestamp  time.Time
	Open       *float64
	High       *float64
	Low        *float64
	Close      *float64
	Volume     *float64
	Notional   *float64
	Trades     *float64
}
