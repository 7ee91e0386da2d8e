package series

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/finrefdata/secsync/internal/api"
	"github.com/finrefdata/secsync/internal/model"
)

// BarStream is a pull-based, single-pass sequence of price bars. Next
// returns false when the stream is exhausted or failed; Err distinguishes
// the two. A stream is not restartable.
type BarStream interface {
	Next() (model.PriceBar, bool)
	Err() error
}

// Flatten turns a nested intraday batch into a BarStream. Each bar is
// stamped with the security id resolved through mapping; symbols absent from
// the mapping are skipped entirely. Within a symbol the provider's minute
// order is preserved; symbols are visited in lexical order.
func Flatten(payload api.IntradayBatch, mapping map[string]int64, logger *slog.Logger) BarStream {
	if logger == nil {
		logger = slog.Default()
	}

	symbols := make([]string, 0, len(payload))
	for sym := range payload {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	return &flattenStream{
		payload: payload,
		mapping: mapping,
		symbols: symbols,
		logger:  logger,
	}
}

type flattenStream struct {
	payload api.IntradayBatch
	mapping map[string]int64
	symbols []string
	logger  *slog.Logger

	symIdx int
	barIdx int
	secID  int64
	bars   []api.IntradayBar
	opened bool
	err    error
}

func (s *flattenStream) Next() (model.PriceBar, bool) {
	if s.err != nil {
		return model.PriceBar{}, false
	}

	for {
		if !s.opened {
			if !s.openNextSymbol() {
				return model.PriceBar{}, false
			}
		}

		if s.barIdx >= len(s.bars) {
			s.opened = false
			continue
		}

		raw := s.bars[s.barIdx]
		s.barIdx++

		ts, err := raw.Timestamp()
		if err != nil {
			s.err = fmt.Errorf("security %d: %w", s.secID, err)
			return model.PriceBar{}, false
		}

		return model.PriceBar{
			SecurityID: s.secID,
			Timestamp:  ts,
			Open:       raw.Open,
			High:       raw.High,
			Low:        raw.Low,
			Close:      raw.Close,
			Volume:     raw.Volume,
			Notional:   raw.Notional,
			Trades:     raw.Trades,
		}, true
	}
}

func (s *flattenStream) Err() error {
	return s.err
}

// openNextSymbol advances to the next symbol that resolves through the
// mapping and has bars. Unmapped symbols indicate a catalog/provider
// inconsistency and are dropped.
func (s *flattenStream) openNextSymbol() bool {
	for s.symIdx < len(s.symbols) {
		sym := s.symbols[s.symIdx]
		s.symIdx++

		secID, ok := s.mapping[sym]
		if !ok {
			s.logger.Debug("skipping unmapped symbol", "symbol", sym)
			continue
		}

		bars := s.payload[sym].IntradayPrices
		if len(bars) == 0 {
			continue
		}

		s.secID = secID
		s.bars = bars
		s.barIdx = 0
		s.opened = true
		return true
	}
	return false
}
