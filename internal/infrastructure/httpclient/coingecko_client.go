package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const demoAPIKeyHeader = "x-cg-demo-api-key"

// CoinGeckoClient implements port.PriceOracle on top of the /simple/price endpoint.
// Every call hits the network; nothing is cached.
type CoinGeckoClient struct {
	client     *fasthttp.Client
	baseURL    string
	apiKey     string
	vsCurrency string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewCoinGeckoClient creates a new instance of CoinGeckoClient.
func NewCoinGeckoClient(baseURL, apiKey, vsCurrency string, timeout time.Duration, logger *zap.Logger) *CoinGeckoClient {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	return &CoinGeckoClient{
		client:     &fasthttp.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		vsCurrency: strings.ToLower(vsCurrency),
		timeout:    timeout,
		logger:     logger.Named("CoinGeckoClient"),
	}
}

// GetUSDPrice implements port.PriceOracle. An unknown coin yields zero and no error.
func (c *CoinGeckoClient) GetUSDPrice(ctx context.Context, coinID string) (decimal.Decimal, error) {
	if coinID == "" {
		return decimal.Zero, fmt.Errorf("coinID cannot be empty")
	}

	q := url.Values{}
	q.Set("ids", coinID)
	q.Set("vs_currencies", c.vsCurrency)
	requestURL := c.baseURL + "/simple/price?" + q.Encode()

	c.logger.Debug("Requesting price from CoinGecko", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(demoAPIKeyHeader, c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
			return decimal.Zero, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return decimal.Zero, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return decimal.Zero, fmt.Errorf("CoinGecko API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	// {"bitcoin":{"usd":67000.12}}
	var prices map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(rawBody, &prices); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko response",
			zap.String("url", requestURL), zap.ByteString("responseBody", rawBody), zap.Error(err))
		return decimal.Zero, fmt.Errorf("failed to unmarshal CoinGecko response from %s: %w", requestURL, err)
	}

	price, ok := prices[coinID][c.vsCurrency]
	if !ok {
		c.logger.Warn("CoinGecko returned no price for coin", zap.String("coinId", coinID))
		return decimal.Zero, nil
	}
	return price, nil
}
