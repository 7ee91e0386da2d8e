package api

import (
	"context"
	"fmt"
	"time"
)

// GetLastTradingDay fetches the most recent completed trading day.
func (c *Client) GetLastTradingDay(ctx context.Context) (time.Time, error) {
	var days []TradeDate
	if err := c.get(ctx, "/ref-data/us/dates/trade/last", nil, &days); err != nil {
		return time.Time{}, fmt.Errorf("get last trading day: %w", err)
	}
	if len(days) == 0 {
		return time.Time{}, fmt.Errorf("get last trading day: empty calendar response")
	}

	day, err := time.Parse("2006-01-02", days[0].Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("get last trading day: parse %q: %w", days[0].Date, err)
	}
	return day, nil
}
