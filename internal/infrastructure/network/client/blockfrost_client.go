package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/utils"
)

const lovelaceUnit = "lovelace"

type blockfrostAmount struct {
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
}

type blockfrostAddress struct {
	Address string             `json:"address"`
	Amount  []blockfrostAmount `json:"amount"`
}

// BlockfrostClient reads Cardano balances from Blockfrost. The key travels in the project_id header.
type BlockfrostClient struct {
	baseFetcher
}

// FetchBalance implements port.BalanceFetcher.
func (c *BlockfrostClient) FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error) {
	key, err := c.requireCredential()
	if err != nil {
		return entity.BalanceResult{}, err
	}

	requestURL := fmt.Sprintf("%s/addresses/%s", c.def.BaseURL, url.PathEscape(address))
	res, err := c.get(ctx, requestURL, map[string]string{"project_id": key})
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.transportError(err))
	}

	switch {
	case res.status == 400:
		return entity.BalanceResult{}, c.finish(c.invalidAddress(c.statusError(res.status)))
	case res.status == 403:
		return entity.BalanceResult{}, c.finish(c.rejectedCredential(c.statusError(res.status)))
	case res.status == 404:
		return entity.BalanceResult{}, c.finish(c.notFound(c.statusError(res.status)))
	case res.status == 429:
		return entity.BalanceResult{}, c.finish(c.rateLimited(c.statusError(res.status)))
	case !res.ok():
		return entity.BalanceResult{}, c.finish(c.transportError(c.statusError(res.status)))
	}

	var payload blockfrostAddress
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(fmt.Errorf("failed to unmarshal Blockfrost response: %w", err)))
	}

	raw := new(big.Int)
	for _, a := range payload.Amount {
		if a.Unit != lovelaceUnit {
			continue
		}
		raw, err = utils.ParseBaseUnits(a.Quantity)
		if err != nil {
			return entity.BalanceResult{}, c.finish(c.decodeError(err))
		}
		break
	}
	return c.compose(ctx, raw), nil
}
