package entity

// BalanceResult is the normalized outcome of a single balance lookup.
// All four fields are populated together; a failed lookup returns an error and a zero value.
type BalanceResult struct {
	Native  string `json:"native" yaml:"native"`   // display-unit amount, fixed precision per network
	USD     string `json:"usd" yaml:"usd"`         // fiat equivalent, two decimals
	Symbol  string `json:"symbol" yaml:"symbol"`   // ticker, e.g. "BTC"
	Network string `json:"network" yaml:"network"` // display name, e.g. "Bitcoin"
}

// BatchItem is the outcome of one address in a batch. Exactly one of Result and Err is set.
type BatchItem struct {
	Address string         `json:"address"`
	Result  *BalanceResult `json:"result,omitempty"`
	Err     error          `json:"-"`
}
