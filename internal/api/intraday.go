package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// intradayFields limits the batch response to the columns the price table
// stores.
var intradayFields = []string{
	"date", "minute", "marketOpen", "marketHigh", "marketLow",
	"marketClose", "marketVolume", "marketNotional", "marketNumberOfTrades",
}

// GetIntradayBatch fetches per-minute bars for one group of symbols on the
// given trading date. The response is keyed by trading symbol.
func (c *Client) GetIntradayBatch(ctx context.Context, date time.Time, symbols []string) (IntradayBatch, error) {
	query := url.Values{}
	query.Set("types", "intraday-prices")
	query.Set("symbols", strings.Join(symbols, ","))
	query.Set("filter", strings.Join(intradayFields, ","))

	path := "/stock/market/batch/date/" + date.Format("20060102")

	var batch IntradayBatch
	if err := c.get(ctx, path, query, &batch); err != nil {
		return nil, fmt.Errorf("get intraday batch: %w", err)
	}

	return batch, nil
}
