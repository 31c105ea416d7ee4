package client

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// JSON-RPC 2.0 "invalid params", returned by both Sui and Solana nodes for malformed addresses.
const rpcInvalidParams = -32602

const heliusKeyParam = "api-key"

// rpcFetcher is the JSON-RPC flavour of baseFetcher. rpcClient stays nil when a required key is missing.
type rpcFetcher struct {
	baseFetcher
	rpcClient *rpc.Client
}

func (c *rpcFetcher) dial(endpoint string) error {
	opts := []rpc.ClientOption{rpc.WithHTTPClient(&http.Client{Timeout: c.timeout})}
	if c.userAgent != "" {
		opts = append(opts, rpc.WithHeader("User-Agent", c.userAgent))
	}
	client, err := rpc.DialOptions(context.Background(), endpoint, opts...)
	if err != nil {
		return fmt.Errorf("failed to create JSON-RPC client for %s: %w", c.def.Provider, err)
	}
	c.rpcClient = client
	c.logger.Debug("JSON-RPC client ready", zap.String("network", c.def.ID), zap.String("provider", c.def.Provider))
	return nil
}

// Close releases the underlying JSON-RPC client.
func (c *rpcFetcher) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

func (c *rpcFetcher) call(ctx context.Context, result any, method string, args ...any) error {
	if c.rpcClient == nil {
		if c.def.Auth == entity.AuthRequired {
			if _, err := c.requireCredential(); err != nil {
				return err
			}
		}
		return c.transportError(errors.New("JSON-RPC client is not initialised"))
	}
	if err := c.rpcClient.CallContext(ctx, result, method, args...); err != nil {
		return c.mapCallError(err)
	}
	return nil
}

func (c *rpcFetcher) mapCallError(err error) error {
	err = redactURLError(err)

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return c.rateLimited(err)
		case c.def.Auth == entity.AuthRequired &&
			(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden):
			return c.rejectedCredential(err)
		default:
			return c.transportError(c.statusError(httpErr.StatusCode))
		}
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.ErrorCode() == rpcInvalidParams {
			return c.invalidAddress(err)
		}
		msg := rpcErr.Error()
		if msg == "" {
			msg = fmt.Sprintf("Invalid %s address", c.def.Name)
		}
		return entity.WrapBalanceError(entity.KindProvider, c.def.ID, msg, err)
	}

	var syntaxErr *stdjson.SyntaxError
	var typeErr *stdjson.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return c.decodeError(err)
	}
	return c.transportError(err)
}

// redactURLError masks the api-key query parameter in transport errors, which quote the request URL.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: "[unparseable url]", Err: urlErr.Err}
	}
	q := u.Query()
	if !q.Has(heliusKeyParam) {
		return err
	}
	q.Set(heliusKeyParam, "REDACTED")
	u.RawQuery = q.Encode()
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}

type suiBalance struct {
	CoinType        string         `json:"coinType"`
	CoinObjectCount int64          `json:"coinObjectCount"`
	TotalBalance    stdjson.Number `json:"totalBalance"`
}

// SuiClient reads SUI balances from a full node with suix_getBalance.
type SuiClient struct {
	rpcFetcher
}

// FetchBalance implements port.BalanceFetcher.
func (c *SuiClient) FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error) {
	var result suiBalance
	if err := c.call(ctx, &result, "suix_getBalance", address); err != nil {
		return entity.BalanceResult{}, c.finish(err)
	}
	raw, err := utils.ParseBaseUnits(result.TotalBalance.String())
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(err))
	}
	return c.compose(ctx, raw), nil
}

type solanaBalance struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value stdjson.Number `json:"value"`
}

// SolanaClient reads lamport balances through the Helius RPC gateway.
type SolanaClient struct {
	rpcFetcher
}

// FetchBalance implements port.BalanceFetcher.
func (c *SolanaClient) FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error) {
	if _, err := c.requireCredential(); err != nil {
		return entity.BalanceResult{}, err
	}
	var result solanaBalance
	if err := c.call(ctx, &result, "getBalance", address); err != nil {
		return entity.BalanceResult{}, c.finish(err)
	}
	raw, err := utils.ParseBaseUnits(result.Value.String())
	if err != nil {
		return entity.BalanceResult{}, c.finish(c.decodeError(err))
	}
	return c.compose(ctx, raw), nil
}

// heliusEndpoint appends the api-key query parameter Helius authenticates with.
func heliusEndpoint(baseURL, apiKey string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Helius base URL %q: %w", baseURL, err)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	q := u.Query()
	q.Set(heliusKeyParam, apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
