package client

import (
	"context"
	"fmt"
	"net/url"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

type blockCypherBalance struct {
	Address string          `json:"address"`
	Balance jsoniter.Number `json:"balance"`
}

// BlockCypherClient reads confirmed Bitcoin balances from BlockCypher. No API key is used.
type BlockCypherClient struct {
	baseFetcher
}

// FetchBalance implements port.BalanceFetcher.
func (c *BlockCypherClient) FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error) {
	requestURL := fmt.Sprintf("%s/addrs/%s/balance", c.def.BaseURL, url.PathEscape(address))
	res, err := c.get(ctx, requestURL, nil)
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.transportError(err))
	}

	switch {
	case res.status == 400:
		return entity.BalanceResult{}, c.finish(c.invalidAddress(c.statusError(res.status)))
	case res.status == 404:
		return entity.BalanceResult{}, c.finish(c.notFound(c.statusError(res.status)))
	case res.status == 429:
		return entity.BalanceResult{}, c.finish(c.rateLimited(c.statusError(res.status)))
	case !res.ok():
		return entity.BalanceResult{}, c.finish(c.transportError(c.statusError(res.status)))
	}

	var payload blockCypherBalance
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(fmt.Errorf("failed to unmarshal BlockCypher response: %w", err)))
	}
	raw, err := utils.ParseBaseUnits(payload.Balance.String())
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(err))
	}
	return c.compose(ctx, raw), nil
}
