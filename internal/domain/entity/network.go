package entity

// Transport describes how a network's balance endpoint is reached.
type Transport string

const (
	TransportREST    Transport = "rest"
	TransportJSONRPC Transport = "jsonrpc"
)

// AuthPolicy describes whether a provider needs an API key.
type AuthPolicy int

const (
	// AuthNone means the provider is queried anonymously.
	AuthNone AuthPolicy = iota
	// AuthRequired means a missing key fails the lookup before any request is made.
	AuthRequired
	// AuthOptional means the key is only attached on a retry after an anonymous failure.
	AuthOptional
)

// NetworkDefinition holds everything a fetcher needs to query and normalize one network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ID             string     `json:"id" yaml:"id"` // lowercase network id, e.g. "bitcoin", "bnb-chain"
	Name           string     `json:"name" yaml:"name"`
	Symbol         string     `json:"symbol" yaml:"symbol"`
	Decimals       int32      `json:"decimals" yaml:"decimals"`   // base unit exponent: 8 for satoshi, 18 for wei
	Precision      int32      `json:"precision" yaml:"precision"` // decimals shown in BalanceResult.Native
	CoinGeckoID    string     `json:"coinGeckoId" yaml:"coinGeckoId"`
	Transport      Transport  `json:"transport" yaml:"transport"`
	Auth           AuthPolicy `json:"-" yaml:"-"`
	Provider       string     `json:"provider" yaml:"provider"`
	CredentialName string     `json:"-" yaml:"-"` // key into the credential set, empty when Auth is AuthNone
	BaseURL        string     `json:"-" yaml:"baseUrl"`
}

// NetworkDescriptor is the static, collaborator-facing description of a selectable network.
type NetworkDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Pattern     string `json:"pattern,omitempty"`
	Placeholder string `json:"placeholder"`
	ExplorerURL string `json:"explorerUrl"`
	ComingSoon  bool   `json:"comingSoon"`
}

// ExplorerLink returns the block explorer page for address.
func (d NetworkDescriptor) ExplorerLink(address string) string {
	if d.ExplorerURL == "" || address == "" {
		return ""
	}
	return d.ExplorerURL + address
}
