package api

import (
	"context"
	"fmt"

	"github.com/finrefdata/secsync/internal/model"
)

// GetSymbols fetches the provider's security reference universe, keeping only
// the allow-listed security types. The filter applies to the provider side of
// the join, never to the catalog.
func (c *Client) GetSymbols(ctx context.Context, types []string) ([]model.SecurityDescriptor, error) {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	var raw []APISymbol
	if err := c.get(ctx, "/ref-data/symbols", nil, &raw); err != nil {
		return nil, fmt.Errorf("get symbols: %w", err)
	}

	universe := make([]model.SecurityDescriptor, 0, len(raw))
	for _, s := range raw {
		if _, ok := allowed[s.Type]; !ok {
			continue
		}
		desc, err := s.ToModel()
		if err != nil {
			return nil, err
		}
		universe = append(universe, desc)
	}

	c.logger.Debug("fetched security universe",
		"total", len(raw),
		"kept", len(universe),
	)

	return universe, nil
}
