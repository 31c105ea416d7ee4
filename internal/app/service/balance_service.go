package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/metrics"
)

const outcomeOK = "ok"

// balanceServiceImpl implements port.BalanceResolver.
type balanceServiceImpl struct {
	fetchers port.FetcherProvider
	logger   port.Logger
}

// NewBalanceService creates a new instance of balanceServiceImpl.
func NewBalanceService(fp port.FetcherProvider, l port.Logger) port.BalanceResolver {
	s := &balanceServiceImpl{
		fetchers: fp,
		logger:   l,
	}
	l.Info("BalanceService initialized", "networks", strings.Join(fp.SupportedNetworks(), ","))
	return s
}

// GetBalance dispatches to the network's fetcher. It adds no retry, cache or timeout of its own.
func (s *balanceServiceImpl) GetBalance(ctx context.Context, address string, networkID string) (entity.BalanceResult, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return entity.BalanceResult{}, entity.NewBalanceError(entity.KindEmptyAddress, networkID, "Address is required")
	}

	network := strings.ToLower(strings.TrimSpace(networkID))
	fetcher, ok := s.fetchers.GetFetcher(network)
	if !ok {
		metrics.BalanceLookups.WithLabelValues("unsupported", string(entity.KindUnsupportedNetwork)).Inc()
		return entity.BalanceResult{}, entity.NewBalanceError(entity.KindUnsupportedNetwork, network,
			fmt.Sprintf("Network %s is not yet supported", networkID))
	}

	started := time.Now()
	s.logger.Debug("Balance lookup started", "network", network, "address", addr)

	result, err := fetcher.FetchBalance(ctx, addr)
	if err != nil {
		kind := entity.KindOf(err)
		metrics.ObserveLookup(network, string(kind), started)
		s.logger.Debug("Balance lookup failed", "network", network, "kind", kind, "error", err)
		return entity.BalanceResult{}, err
	}

	metrics.ObserveLookup(network, outcomeOK, started)
	s.logger.Info("Balance lookup completed",
		"network", network, "native", result.Native, "usd", result.USD, "duration", time.Since(started))
	return result, nil
}

// SupportedNetworks returns the identifiers that have a fetcher.
func (s *balanceServiceImpl) SupportedNetworks() []string {
	return s.fetchers.SupportedNetworks()
}

// IsSupported reports whether networkID has a fetcher.
func (s *balanceServiceImpl) IsSupported(networkID string) bool {
	_, ok := s.fetchers.GetFetcher(strings.ToLower(strings.TrimSpace(networkID)))
	return ok
}
