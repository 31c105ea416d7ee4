package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBaseUnits parses an integer amount in base units (satoshi, wei, lamports...).
// Providers return these either as JSON strings or as numbers, so both "123" and 123 reach here as text.
func ParseBaseUnits(raw string) (*big.Int, error) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("amount %q is not a base-10 integer", raw)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("amount %q is negative", raw)
	}
	return v, nil
}

// ToDisplayUnits converts a base-unit amount into display units rounded to precision decimals.
// Example: amount=1234500000000000000, decimals=18, precision=6 => 1.2345
func ToDisplayUnits(amount *big.Int, decimals, precision int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals).Round(precision)
}
