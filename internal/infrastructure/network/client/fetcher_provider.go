package client

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/infrastructure/configloader"
	networkdefinition "balance_resolver/internal/infrastructure/network/definition"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 15 * time.Second
	maxConnsPerHost       = 64
)

// Registry implements the port.FetcherProvider interface.
// The table is built once; lookups afterwards are read-only.
type Registry struct {
	fetchers map[string]port.BalanceFetcher
	order    []string
	closers  []func()
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewRegistry builds one fetcher per resolvable network, sharing a single fasthttp client.
func NewRegistry(cfg *configloader.Config, oracle port.PriceOracle, logger *zap.Logger) (*Registry, error) {
	timeout := defaultRequestTimeout
	if cfg.HTTP.RequestTimeoutMillis > 0 {
		timeout = time.Duration(cfg.HTTP.RequestTimeoutMillis) * time.Millisecond
	}
	userAgent := cfg.HTTP.UserAgent

	httpClient := &fasthttp.Client{
		Name:            userAgent,
		MaxConnsPerHost: maxConnsPerHost,
		ReadTimeout:     timeout,
		WriteTimeout:    timeout,
	}

	p := &Registry{
		fetchers: make(map[string]port.BalanceFetcher),
		logger:   logger.Named("FetcherRegistry"),
	}

	for _, def := range networkdefinition.Definitions(cfg.Providers) {
		base := baseFetcher{
			def:        def,
			httpClient: httpClient,
			timeout:    timeout,
			userAgent:  userAgent,
			oracle:     oracle,
			logger:     logger.Named(def.Provider),
		}
		if def.CredentialName != "" {
			base.credential, base.hasKey = cfg.Credentials.Lookup(def.CredentialName)
		}

		fetcher, err := p.newFetcher(base)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to create fetcher for %s: %w", def.ID, err)
		}
		p.fetchers[def.ID] = fetcher
		p.order = append(p.order, def.ID)
		p.logger.Info("Registered balance fetcher",
			zap.String("network", def.ID),
			zap.String("provider", def.Provider),
			zap.Bool("credentialConfigured", base.hasKey))
	}
	return p, nil
}

func (p *Registry) newFetcher(base baseFetcher) (port.BalanceFetcher, error) {
	def := base.def
	switch def.ID {
	case networkdefinition.Bitcoin.ID:
		return &BlockCypherClient{baseFetcher: base}, nil
	case networkdefinition.Cardano.ID:
		return &BlockfrostClient{baseFetcher: base}, nil
	case networkdefinition.Algorand.ID:
		return &AlgorandClient{baseFetcher: base}, nil
	case networkdefinition.Ethereum.ID, networkdefinition.BNBChain.ID,
		networkdefinition.Polygon.ID, networkdefinition.Avalanche.ID:
		return &ExplorerClient{baseFetcher: base}, nil
	case networkdefinition.Sui.ID:
		c := &SuiClient{rpcFetcher{baseFetcher: base}}
		if err := c.dial(def.BaseURL); err != nil {
			return nil, err
		}
		p.closers = append(p.closers, c.Close)
		return c, nil
	case networkdefinition.Solana.ID:
		c := &SolanaClient{rpcFetcher{baseFetcher: base}}
		if !base.hasKey {
			// Requests fail with MissingCredential until a key is configured.
			return c, nil
		}
		endpoint, err := heliusEndpoint(def.BaseURL, base.credential)
		if err != nil {
			return nil, err
		}
		if err := c.dial(endpoint); err != nil {
			return nil, err
		}
		p.closers = append(p.closers, c.Close)
		return c, nil
	default:
		return nil, fmt.Errorf("no fetcher implementation for transport %s", def.Transport)
	}
}

// GetFetcher implements port.FetcherProvider.
func (p *Registry) GetFetcher(networkID string) (port.BalanceFetcher, bool) {
	f, ok := p.fetchers[strings.ToLower(strings.TrimSpace(networkID))]
	return f, ok
}

// SupportedNetworks implements port.FetcherProvider.
func (p *Registry) SupportedNetworks() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Close releases JSON-RPC clients. Safe to call more than once.
func (p *Registry) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, closeFn := range p.closers {
		closeFn()
	}
	p.closers = nil
}
