package port

import (
	"context"

	"balance_resolver/internal/domain/entity"
)

// BalanceFetcher queries one network's upstream and normalizes the answer.
// Implementations are specific to a provider (BlockCypher, Etherscan, Blockfrost, ...).
type BalanceFetcher interface {
	// FetchBalance resolves the native balance of address and its USD value.
	// Every returned error is an *entity.BalanceError.
	FetchBalance(ctx context.Context, address string) (entity.BalanceResult, error)

	// Definition returns the network definition associated with this fetcher.
	Definition() entity.NetworkDefinition
}

// FetcherProvider exposes the static network-to-fetcher table built at startup.
type FetcherProvider interface {
	// GetFetcher returns the fetcher for a lower-cased network identifier.
	GetFetcher(networkID string) (BalanceFetcher, bool)

	// SupportedNetworks lists the identifiers that have a fetcher, in display order.
	SupportedNetworks() []string
}

// NetworkDescriptorProvider defines the interface for providing collaborator-facing network descriptors.
type NetworkDescriptorProvider interface {
	GetAllDescriptors() []entity.NetworkDescriptor
	GetDescriptor(networkID string) (entity.NetworkDescriptor, bool)
}
