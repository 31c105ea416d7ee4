package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

type algorandAccount struct {
	Address string          `json:"address"`
	Amount  jsoniter.Number `json:"amount"`
}

type algorandAccountResponse struct {
	Account      *algorandAccount `json:"account"`
	CurrentRound int64            `json:"current-round"`
}

// AlgorandClient reads microAlgo balances from an Algorand indexer.
type AlgorandClient struct {
	baseFetcher
}

// FetchBalance implements port.BalanceFetcher.
func (c *AlgorandClient) FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error) {
	requestURL := fmt.Sprintf("%s/v2/accounts/%s", c.def.BaseURL, url.PathEscape(address))
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

	var payload algorandAccountResponse
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(fmt.Errorf("failed to unmarshal indexer response: %w", err)))
	}
	if payload.Account == nil {
		return entity.BalanceResult{}, c.finish(c.notFound(errors.New("indexer response has no account")))
	}
	raw, err := utils.ParseBaseUnits(payload.Account.Amount.String())
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(err))
	}
	return c.compose(ctx, raw), nil
}
