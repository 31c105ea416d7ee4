package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceOracle returns USD spot prices keyed by the oracle's coin identifier.
type PriceOracle interface {
	// GetUSDPrice returns zero without error when the oracle does not know coinID.
	GetUSDPrice(ctx context.Context, coinID string) (decimal.Decimal, error)
}
