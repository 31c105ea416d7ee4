package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/infrastructure/configloader"
	"balance_resolver/internal/pkg/utils"

	"go.uber.org/zap"
)

// explorerResponse is the envelope shared by Etherscan and its forks (BscScan, PolygonScan, SnowTrace).
type explorerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// ExplorerClient reads native balances from an Etherscan-compatible explorer API.
type ExplorerClient struct {
	baseFetcher
}

// FetchBalance implements port.BalanceFetcher.
func (c *ExplorerClient) FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error) {
	var (
		res httpResult
		err error
	)
	switch c.def.Auth {
	case entity.AuthOptional:
		res, err = c.fetchWithOptionalKey(ctx, address)
	default:
		key, keyErr := c.requireCredential()
		if keyErr != nil {
			return entity.BalanceResult{}, keyErr
		}
		res, err = c.get(ctx, c.balanceURL(address, key), nil)
	}
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.transportError(err))
	}

	raw, err := c.interpret(res)
	if err != nil {
		return entity.BalanceResult{}, c.finish(err)
	}
	return c.compose(ctx, raw), nil
}

// fetchWithOptionalKey queries anonymously first and retries once with the key on a non-2xx answer.
func (c *ExplorerClient) fetchWithOptionalKey(ctx context.Context, address string) (httpResult, error) {
	res, err := c.get(ctx, c.balanceURL(address, ""), nil)
	if err != nil {
		return res, err
	}
	if res.ok() || !c.hasKey {
		return res, nil
	}
	c.logger.Debug("Anonymous request rejected, retrying with API key",
		zap.String("network", c.def.ID), zap.Int("statusCode", res.status))
	return c.get(ctx, c.balanceURL(address, c.credential), nil)
}

func (c *ExplorerClient) balanceURL(address, apiKey string) string {
	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "balance")
	q.Set("address", address)
	q.Set("tag", "latest")
	if apiKey != "" {
		q.Set("apikey", apiKey)
	}
	return c.def.BaseURL + "?" + q.Encode()
}

func (c *ExplorerClient) interpret(res httpResult) (*big.Int, error) {
	if res.status == 429 {
		return nil, c.rateLimited(c.statusError(res.status))
	}
	if !res.ok() {
		return nil, c.transportError(c.statusError(res.status))
	}

	var payload explorerResponse
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return nil, c.decodeError(fmt.Errorf("failed to unmarshal %s response: %w", c.def.Provider, err))
	}
	if payload.Status != "1" {
		return nil, c.envelopeError(payload)
	}

	raw, err := utils.ParseBaseUnits(payload.Result)
	if err != nil {
		return nil, c.decodeError(err)
	}
	return raw, nil
}

// envelopeError maps a status "0" envelope. The useful detail is usually in result, not message.
func (c *ExplorerClient) envelopeError(payload explorerResponse) error {
	cause := fmt.Errorf("%s: status=%s message=%s result=%s", c.def.Provider, payload.Status, payload.Message, payload.Result)
	result := strings.ToLower(payload.Result)

	switch {
	case strings.Contains(result, "rate limit"):
		if c.def.Auth == entity.AuthOptional && !c.hasKey {
			msg := fmt.Sprintf("Rate limit exceeded. Please set %s for higher limits.", configloader.EnvName(c.def.CredentialName))
			return entity.WrapBalanceError(entity.KindRateLimited, c.def.ID, msg, cause)
		}
		return c.rateLimited(cause)
	case strings.Contains(result, "invalid api key"):
		return c.rejectedCredential(cause)
	case strings.Contains(result, "invalid address"):
		return c.invalidAddress(cause)
	case payload.Message == "NOTOK":
		msg := fmt.Sprintf("Invalid API key or rate limit exceeded. Please check your %s API key.", c.def.Provider)
		return entity.WrapBalanceError(entity.KindProvider, c.def.ID, msg, cause)
	case payload.Message != "":
		return entity.WrapBalanceError(entity.KindProvider, c.def.ID, payload.Message, cause)
	default:
		msg := fmt.Sprintf("Invalid %s address or API error", c.def.Name)
		return entity.WrapBalanceError(entity.KindProvider, c.def.ID, msg, cause)
	}
}
