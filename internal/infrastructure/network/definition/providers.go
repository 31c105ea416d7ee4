package networkdefinition

import (
	"strings"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/infrastructure/configloader"
)

// Provider names, used in logs and in provider error messages.
const (
	ProviderBlockCypher = "BlockCypher"
	ProviderEtherscan   = "Etherscan"
	ProviderBlockfrost  = "Blockfrost"
	ProviderSui         = "Sui"
	ProviderHelius      = "Helius"
	ProviderAlgoIndexer = "AlgoExplorer"
	ProviderBscScan     = "BscScan"
	ProviderPolygonScan = "PolygonScan"
	ProviderSnowTrace   = "SnowTrace"
)

// Predefined network definitions. Order of ResolvableNetworks is the display order.
var ( //nolint:gochecknoglobals // Global for definitions
	Bitcoin = entity.NetworkDefinition{
		ID:          "bitcoin",
		Name:        "Bitcoin",
		Symbol:      "BTC",
		Decimals:    8,
		Precision:   8,
		CoinGeckoID: "bitcoin",
		Transport:   entity.TransportREST,
		Auth:        entity.AuthNone,
		Provider:    ProviderBlockCypher,
		BaseURL:     "https://api.blockcypher.com/v1/btc/main",
	}
	Ethereum = entity.NetworkDefinition{
		ID:             "ethereum",
		Name:           "Ethereum",
		Symbol:         "ETH",
		Decimals:       18,
		Precision:      6,
		CoinGeckoID:    "ethereum",
		Transport:      entity.TransportREST,
		Auth:           entity.AuthRequired,
		Provider:       ProviderEtherscan,
		CredentialName: configloader.CredentialEtherscan,
		BaseURL:        "https://api.etherscan.io/api",
	}
	Cardano = entity.NetworkDefinition{
		ID:             "cardano",
		Name:           "Cardano",
		Symbol:         "ADA",
		Decimals:       6,
		Precision:      6,
		CoinGeckoID:    "cardano",
		Transport:      entity.TransportREST,
		Auth:           entity.AuthRequired,
		Provider:       ProviderBlockfrost,
		CredentialName: configloader.CredentialBlockfrost,
		BaseURL:        "https://cardano-mainnet.blockfrost.io/api/v0",
	}
	Sui = entity.NetworkDefinition{
		ID:          "sui",
		Name:        "Sui",
		Symbol:      "SUI",
		Decimals:    9,
		Precision:   6,
		CoinGeckoID: "sui",
		Transport:   entity.TransportJSONRPC,
		Auth:        entity.AuthNone,
		Provider:    ProviderSui,
		BaseURL:     "https://fullnode.mainnet.sui.io:443",
	}
	Solana = entity.NetworkDefinition{
		ID:             "solana",
		Name:           "Solana",
		Symbol:         "SOL",
		Decimals:       9,
		Precision:      6,
		CoinGeckoID:    "solana",
		Transport:      entity.TransportJSONRPC,
		Auth:           entity.AuthRequired,
		Provider:       ProviderHelius,
		CredentialName: configloader.CredentialHelius,
		BaseURL:        "https://rpc.helius.xyz",
	}
	Algorand = entity.NetworkDefinition{
		ID:          "algorand",
		Name:        "Algorand",
		Symbol:      "ALGO",
		Decimals:    6,
		Precision:   6,
		CoinGeckoID: "algorand",
		Transport:   entity.TransportREST,
		Auth:        entity.AuthNone,
		Provider:    ProviderAlgoIndexer,
		BaseURL:     "https://algoindexer.algoexplorerapi.io",
	}
	BNBChain = entity.NetworkDefinition{
		ID:             "bnb-chain",
		Name:           "BNB Chain",
		Symbol:         "BNB",
		Decimals:       18,
		Precision:      6,
		CoinGeckoID:    "binancecoin",
		Transport:      entity.TransportREST,
		Auth:           entity.AuthRequired,
		Provider:       ProviderBscScan,
		CredentialName: configloader.CredentialBscScan,
		BaseURL:        "https://api.bscscan.com/api",
	}
	Polygon = entity.NetworkDefinition{
		ID:             "polygon",
		Name:           "Polygon",
		Symbol:         "MATIC",
		Decimals:       18,
		Precision:      6,
		CoinGeckoID:    "matic-network",
		Transport:      entity.TransportREST,
		Auth:           entity.AuthRequired,
		Provider:       ProviderPolygonScan,
		CredentialName: configloader.CredentialPolygonScan,
		BaseURL:        "https://api.polygonscan.com/api",
	}
	Avalanche = entity.NetworkDefinition{
		ID:             "avalanche",
		Name:           "Avalanche",
		Symbol:         "AVAX",
		Decimals:       18,
		Precision:      6,
		CoinGeckoID:    "avalanche-2",
		Transport:      entity.TransportREST,
		Auth:           entity.AuthOptional,
		Provider:       ProviderSnowTrace,
		CredentialName: configloader.CredentialSnowTrace,
		BaseURL:        "https://api.snowtrace.io/api",
	}
)

// ResolvableNetworks is the fetch table, one row per network that has a balance fetcher.
var ResolvableNetworks = []entity.NetworkDefinition{ //nolint:gochecknoglobals
	Bitcoin, Ethereum, Cardano, Sui, Solana, Algorand, BNBChain, Polygon, Avalanche,
}

const evmPattern = `^0x[a-fA-F0-9]{40}$`

// descriptors are the networks a collaborator may offer, in UI order.
var descriptors = []entity.NetworkDescriptor{ //nolint:gochecknoglobals
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Pattern: evmPattern,
		Placeholder: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ExplorerURL: "https://etherscan.io/address/"},
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Pattern: `^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$|^bc1[a-z0-9]{39,59}$`,
		Placeholder: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", ExplorerURL: "https://blockstream.info/address/"},
	{ID: "bnb-chain", Name: "BNB Chain", Symbol: "BNB", Pattern: evmPattern,
		Placeholder: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ExplorerURL: "https://bscscan.com/address/"},
	{ID: "polygon", Name: "Polygon", Symbol: "MATIC", Pattern: evmPattern,
		Placeholder: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ExplorerURL: "https://polygonscan.com/address/"},
	{ID: "avalanche", Name: "Avalanche", Symbol: "AVAX", Pattern: evmPattern,
		Placeholder: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ExplorerURL: "https://snowtrace.io/address/"},
	{ID: "solana", Name: "Solana", Symbol: "SOL", Pattern: `^[1-9A-HJ-NP-Za-km-z]{32,44}$`,
		Placeholder: "7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj", ExplorerURL: "https://solscan.io/account/"},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", Pattern: `^addr1[a-z0-9]+$|^[1-9A-HJ-NP-Za-km-z]+$`,
		Placeholder: "addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3jcu5d8ps7zex2k2xt3uqxgjqnnj0vs2qd4a", ExplorerURL: "https://cardanoscan.io/address/"},
	{ID: "sui", Name: "Sui", Symbol: "SUI", Pattern: `^0x[a-fA-F0-9]{64}$`,
		Placeholder: "0x2d178b9704706393d2630fe6cf9415c2c50b181e9e3c7a977237bb2929f82d9c", ExplorerURL: "https://suiexplorer.com/address/"},
	{ID: "algorand", Name: "Algorand", Symbol: "ALGO", Pattern: `^[A-Z2-7]{58}$`,
		Placeholder: "VCMJKWOY5P5P7SKMZFFOCEROPJCZOTIJMNIYNUCKH7LRO45JMJP6UYBIJA", ExplorerURL: "https://algoexplorer.io/address/", ComingSoon: true},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT",
		Placeholder: "1FRMM8PEiWXYax7rpS6X4XZX1aAAxSWx1CrKTyrVYhV24fg", ExplorerURL: "https://polkadot.subscan.io/account/", ComingSoon: true},
	{ID: "sonic", Name: "Sonic", Symbol: "S",
		Placeholder: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ExplorerURL: "https://explorer.sonic.network/address/", ComingSoon: true},
}

// DescriptorProvider serves the static network descriptors.
type DescriptorProvider struct{}

// NewDescriptorProvider creates a new DescriptorProvider.
func NewDescriptorProvider() *DescriptorProvider {
	return &DescriptorProvider{}
}

// GetAllDescriptors returns a copy of every declared descriptor in display order.
func (p *DescriptorProvider) GetAllDescriptors() []entity.NetworkDescriptor {
	out := make([]entity.NetworkDescriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// GetDescriptor looks a descriptor up by case-insensitive identifier.
func (p *DescriptorProvider) GetDescriptor(networkID string) (entity.NetworkDescriptor, bool) {
	id := strings.ToLower(strings.TrimSpace(networkID))
	for _, d := range descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return entity.NetworkDescriptor{}, false
}

// Definitions returns the fetch table with base URLs overridden from configuration.
func Definitions(providers configloader.ProvidersConfig) []entity.NetworkDefinition {
	overrides := map[string]string{
		Bitcoin.ID:   providers.BlockCypher,
		Ethereum.ID:  providers.Etherscan,
		Cardano.ID:   providers.Blockfrost,
		Sui.ID:       providers.SuiRPC,
		Solana.ID:    providers.Helius,
		Algorand.ID:  providers.AlgoIndexer,
		BNBChain.ID:  providers.BscScan,
		Polygon.ID:   providers.PolygonScan,
		Avalanche.ID: providers.SnowTrace,
	}

	defs := make([]entity.NetworkDefinition, 0, len(ResolvableNetworks))
	for _, def := range ResolvableNetworks {
		if u := strings.TrimSpace(overrides[def.ID]); u != "" {
			def.BaseURL = strings.TrimRight(u, "/")
		}
		defs = append(defs, def)
	}
	return defs
}
