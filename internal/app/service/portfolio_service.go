package service

import (
	"context"
	"time"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 4

// portfolioServiceImpl resolves a list of addresses of one network through a BalanceResolver.
type portfolioServiceImpl struct {
	resolver       port.BalanceResolver
	logger         port.Logger
	maxConcurrency int
}

// NewPortfolioService creates a batch resolver. maxConcurrency <= 0 uses a default of 4.
func NewPortfolioService(resolver port.BalanceResolver, l port.Logger, maxConcurrency int) port.PortfolioResolver {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultBatchConcurrency
	}
	return &portfolioServiceImpl{resolver: resolver, logger: l, maxConcurrency: maxConcurrency}
}

// ResolveAll looks up every address and returns one item per address, in input order.
// A failing lookup never aborts the others.
func (s *portfolioServiceImpl) ResolveAll(ctx context.Context, networkID string, addresses []string) []entity.BatchItem {
	started := time.Now()
	items := make([]entity.BatchItem, len(addresses))

	eg, childCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrency)

	for i, address := range addresses {
		i, address := i, address
		eg.Go(func() error {
			item := entity.BatchItem{Address: address}
			result, err := s.resolver.GetBalance(childCtx, address, networkID)
			if err != nil {
				item.Err = err
			} else {
				item.Result = &result
			}
			items[i] = item
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	s.logger.Info("Batch lookup complete", "network", networkID, "addresses", len(addresses), "failed", failed, "elapsed", time.Since(started))
	return items
}
