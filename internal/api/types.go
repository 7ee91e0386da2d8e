package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/finrefdata/secsync/internal/model"
)

// APISymbol is one entry of the provider's reference universe, as it appears
// on the wire.
type APISymbol struct {
	Symbol    string      `json:"symbol"`
	Exchange  string      `json:"exchange"`
	Name      string      `json:"name"`
	Date      string      `json:"date"` // listing date, YYYY-MM-DD
	Type      string      `json:"type"`
	IEXID     string      `json:"iexId"`
	Region    string      `json:"region"`
	Currency  string      `json:"currency"`
	IsEnabled bool        `json:"isEnabled"`
	FIGI      string      `json:"figi"`
	CIK       json.Number `json:"cik"` // number, string, or null
}

// ToModel converts the wire shape into a SecurityDescriptor. An absent or
// malformed CIK maps to the sentinel rather than failing the whole universe.
func (s APISymbol) ToModel() (model.SecurityDescriptor, error) {
	listed, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return model.SecurityDescriptor{}, fmt.Errorf("symbol %s: parse listing date %q: %w", s.Symbol, s.Date, err)
	}

	cik := model.UnknownCIK
	if s.CIK != "" {
		if n, err := s.CIK.Int64(); err == nil {
			cik = n
		}
	}

	return model.SecurityDescriptor{
		ExternalID:   s.IEXID,
		Symbol:       s.Symbol,
		Exchange:     s.Exchange,
		Name:         s.Name,
		ListingDate:  listed,
		SecurityType: s.Type,
		Region:       s.Region,
		Currency:     s.Currency,
		Enabled:      s.IsEnabled,
		FIGI:         s.FIGI,
		CIK:          cik,
	}, nil
}

// IntradayBar is one minute of price data as it appears on the wire. The
// market fields are pointers because the provider reports null for minutes
// without prints.
type IntradayBar struct {
	Date     string   `json:"date"`   // YYYY-MM-DD
	Minute   string   `json:"minute"` // HH:MM
	Open     *float64 `json:"marketOpen"`
	High     *float64 `json:"marketHigh"`
	Low      *float64 `json:"marketLow"`
	Close    *float64 `json:"marketClose"`
	Volume   *float64 `json:"marketVolume"`
	Notional *float64 `json:"marketNotional"`
	Trades   *float64 `json:"marketNumberOfTrades"`
}

// Timestamp combines the bar's date and minute into a single time.
func (b IntradayBar) Timestamp() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", b.Date+" "+b.Minute)
}

// IntradayEntry is one symbol's slice of the nested batch payload.
type IntradayEntry struct {
	IntradayPrices []IntradayBar `json:"intraday-prices"`
}

// IntradayBatch is the nested per-symbol payload of a bulk price fetch.
type IntradayBatch map[string]IntradayEntry

// TradeDate is one entry of the trading-calendar response.
type TradeDate struct {
	Date string `json:"date"` // YYYY-MM-DD
}
