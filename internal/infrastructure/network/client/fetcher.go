package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/infrastructure/configloader"
	"balance_resolver/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const rateLimitedMessage = "Rate limit exceeded. Please try again later."

// baseFetcher carries what every network fetcher shares: the definition row, the credential,
// the outbound transport and the price oracle.
type baseFetcher struct {
	def        entity.NetworkDefinition
	credential string
	hasKey     bool
	httpClient *fasthttp.Client
	timeout    time.Duration
	userAgent  string
	oracle     port.PriceOracle
	logger     *zap.Logger
}

// Definition implements port.BalanceFetcher.
func (b *baseFetcher) Definition() entity.NetworkDefinition {
	return b.def
}

// requireCredential fails before any I/O when a required key is missing or still the placeholder.
func (b *baseFetcher) requireCredential() (string, error) {
	if b.hasKey {
		return b.credential, nil
	}
	msg := fmt.Sprintf("%s API key is required. Please set %s.", b.def.Provider, configloader.EnvName(b.def.CredentialName))
	return "", entity.NewBalanceError(entity.KindMissingCredential, b.def.ID, msg)
}

// httpResult is a detached copy of a fasthttp response.
type httpResult struct {
	status int
	body   []byte
}

func (r httpResult) ok() bool {
	return r.status >= 200 && r.status < 300
}

// get performs one GET request. The caller's deadline wins over the default timeout.
func (b *baseFetcher) get(ctx context.Context, requestURL string, headers map[string]string) (httpResult, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if b.userAgent != "" {
		req.Header.SetUserAgent(b.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := ctx.Err(); err != nil {
		return httpResult{}, err
	}
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = b.httpClient.DoDeadline(req, resp, deadline)
	} else {
		err = b.httpClient.DoTimeout(req, resp, b.timeout)
	}
	if err != nil {
		return httpResult{}, fmt.Errorf("failed to execute request to %s: %w", b.def.Provider, err)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return httpResult{status: resp.StatusCode(), body: body}, nil
}

// compose converts the base-unit amount and prices it. Oracle failures degrade to a zero price.
func (b *baseFetcher) compose(ctx context.Context, raw *big.Int) entity.BalanceResult {
	native := utils.ToDisplayUnits(raw, b.def.Decimals, b.def.Precision)

	price := decimal.Zero
	if b.oracle != nil {
		p, err := b.oracle.GetUSDPrice(ctx, b.def.CoinGeckoID)
		if err != nil {
			b.logger.Warn("Price lookup failed, using zero price",
				zap.String("coinId", b.def.CoinGeckoID), zap.Error(err))
		} else {
			price = p
		}
	}

	return entity.BalanceResult{
		Native:  native.StringFixed(b.def.Precision),
		USD:     native.Mul(price).StringFixed(2),
		Symbol:  b.def.Symbol,
		Network: b.def.Name,
	}
}

func (b *baseFetcher) genericMessage() string {
	return fmt.Sprintf("Failed to fetch %s balance. Please check the address format.", b.def.Name)
}

// transportError wraps I/O failures and unexpected HTTP statuses.
func (b *baseFetcher) transportError(cause error) *entity.BalanceError {
	return entity.WrapBalanceError(entity.KindTransport, b.def.ID, b.genericMessage(), cause)
}

// decodeError wraps bodies that could not be interpreted.
func (b *baseFetcher) decodeError(cause error) *entity.BalanceError {
	return entity.WrapBalanceError(entity.KindProvider, b.def.ID, b.genericMessage(), cause)
}

func (b *baseFetcher) statusError(status int) error {
	return fmt.Errorf("%s API error: %d", b.def.Name, status)
}

func (b *baseFetcher) rateLimited(cause error) *entity.BalanceError {
	return entity.WrapBalanceError(entity.KindRateLimited, b.def.ID, rateLimitedMessage, cause)
}

func (b *baseFetcher) invalidAddress(cause error) *entity.BalanceError {
	return entity.WrapBalanceError(entity.KindInvalidAddressFormat, b.def.ID,
		fmt.Sprintf("Invalid %s address format.", b.def.Name), cause)
}

func (b *baseFetcher) notFound(cause error) *entity.BalanceError {
	return entity.WrapBalanceError(entity.KindNotFound, b.def.ID,
		fmt.Sprintf("Address not found on %s network.", b.def.Name), cause)
}

func (b *baseFetcher) rejectedCredential(cause error) *entity.BalanceError {
	return entity.WrapBalanceError(entity.KindMissingCredential, b.def.ID,
		fmt.Sprintf("Invalid %s API key or access denied. Please check your API key.", b.def.Provider), cause)
}

// finish logs a failed lookup with its cause and makes sure the caller only sees a BalanceError.
func (b *baseFetcher) finish(err error) error {
	var be *entity.BalanceError
	if !errors.As(err, &be) {
		be = b.decodeError(err)
	}
	b.logger.Warn("Balance fetch failed",
		zap.String("network", b.def.ID),
		zap.String("kind", string(be.Kind)),
		zap.String("detail", be.Detail()))
	return be
}
