package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/finrefdata/secsync/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "tok_test", WithRetries(1, time.Millisecond))
}

func TestGetSymbols_FiltersTypesAndCleansCIK(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ref-data/symbols" {
			t.Errorf("path = %s, want /ref-data/symbols", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "tok_test" {
			t.Errorf("token missing from query")
		}
		w.Write([]byte(`[
			{"symbol":"AAPL","exchange":"NAS","name":"Apple Inc.","date":"1980-12-12","type":"cs","iexId":"IEX_A","region":"US","currency":"USD","isEnabled":true,"figi":"BBG000B9XRY4","cik":320193},
			{"symbol":"SPY","exchange":"ARCX","name":"SPDR S&P 500","date":"1993-01-22","type":"et","iexId":"IEX_B","region":"US","currency":"USD","isEnabled":true,"figi":"","cik":null},
			{"symbol":"AAPL240119C00150000","exchange":"NAS","name":"AAPL option","date":"2023-01-01","type":"option","iexId":"IEX_C","region":"US","currency":"USD","isEnabled":true,"figi":"","cik":null}
		]`))
	}))

	universe, err := c.GetSymbols(context.Background(), []string{"cs", "cef", "oef", "ps", "et"})
	if err != nil {
		t.Fatalf("GetSymbols failed: %v", err)
	}

	if len(universe) != 2 {
		t.Fatalf("len(universe) = %d, want 2 (option filtered out)", len(universe))
	}
	if universe[0].ExternalID != "IEX_A" || universe[0].Symbol != "AAPL" {
		t.Errorf("universe[0] = %+v", universe[0])
	}
	if universe[0].CIK != 320193 {
		t.Errorf("CIK = %d, want 320193", universe[0].CIK)
	}
	if universe[1].CIK != model.UnknownCIK {
		t.Errorf("null CIK = %d, want sentinel %d", universe[1].CIK, model.UnknownCIK)
	}
	wantDate := time.Date(1980, 12, 12, 0, 0, 0, 0, time.UTC)
	if !universe[0].ListingDate.Equal(wantDate) {
		t.Errorf("ListingDate = %v, want %v", universe[0].ListingDate, wantDate)
	}
}

func TestGetSymbols_RetriesServerErrorOnce(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))

	if _, err := c.GetSymbols(context.Background(), []string{"cs"}); err != nil {
		t.Fatalf("GetSymbols failed after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestGetSymbols_SecondServerErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	if _, err := c.GetSymbols(context.Background(), []string{"cs"}); err == nil {
		t.Fatal("GetSymbols = nil error, want failure")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls.Load())
	}
}

func TestGetSymbols_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.GetSymbols(context.Background(), []string{"cs"})
	if err == nil {
		t.Fatal("GetSymbols = nil error, want failure")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", calls.Load())
	}
}

func TestGetLastTradingDay(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ref-data/us/dates/trade/last" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"date":"2026-08-28"}]`))
	}))

	day, err := c.GetLastTradingDay(context.Background())
	if err != nil {
		t.Fatalf("GetLastTradingDay failed: %v", err)
	}
	want := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Errorf("day = %v, want %v", day, want)
	}
}

func TestGetIntradayBatch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/market/batch/date/20260828" {
			t.Errorf("path = %s, want date-scoped batch path", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("types") != "intraday-prices" {
			t.Errorf("types = %q", q.Get("types"))
		}
		if q.Get("symbols") != "AAPL,SPY" {
			t.Errorf("symbols = %q", q.Get("symbols"))
		}
		w.Write([]byte(`{
			"AAPL": {"intraday-prices": [
				{"date":"2026-08-28","minute":"09:30","marketOpen":230.1,"marketHigh":230.5,"marketLow":230.0,"marketClose":230.4,"marketVolume":120000,"marketNotional":27612000.5,"marketNumberOfTrades":950},
				{"date":"2026-08-28","minute":"09:31","marketOpen":null,"marketHigh":null,"marketLow":null,"marketClose":null,"marketVolume":0,"marketNotional":0,"marketNumberOfTrades":0}
			]},
			"SPY": {"intraday-prices": []}
		}`))
	}))

	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	batch, err := c.GetIntradayBatch(context.Background(), date, []string{"AAPL", "SPY"})
	if err != nil {
		t.Fatalf("GetIntradayBatch failed: %v", err)
	}

	bars := batch["AAPL"].IntradayPrices
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2", len(bars))
	}
	if bars[0].Open == nil || *bars[0].Open != 230.1 {
		t.Errorf("bars[0].Open = %v, want 230.1", bars[0].Open)
	}
	if bars[1].Open != nil {
		t.Errorf("bars[1].Open = %v, want nil", bars[1].Open)
	}

	ts, err := bars[0].Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	want := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", ts, want)
	}

	if len(batch["SPY"].IntradayPrices) != 0 {
		t.Errorf("SPY bars = %d, want 0", len(batch["SPY"].IntradayPrices))
	}
}
