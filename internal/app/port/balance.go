package port

import (
	"context"

	"balance_resolver/internal/domain/entity"
)

// BalanceResolver is the single balance entry point consumed by the HTTP API and the CLI.
type BalanceResolver interface {
	GetBalance(ctx context.Context, address string, networkID string) (entity.BalanceResult, error)
	SupportedNetworks() []string
	IsSupported(networkID string) bool
}

// AddressValidator format-checks addresses. It never performs I/O.
type AddressValidator interface {
	// Validate reports whether address matches networkID's expected encoding.
	// With strict set, the address is also decoded with the network's real codec.
	Validate(address string, networkID string, strict bool) bool
}

// PortfolioResolver looks up many addresses of one network with bounded concurrency.
type PortfolioResolver interface {
	// ResolveAll returns one item per address, in input order.
	ResolveAll(ctx context.Context, networkID string, addresses []string) []entity.BatchItem
}
