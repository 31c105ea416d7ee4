package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

const maxDisplayFractionDigits = 6

var minDisplayAmount = decimal.New(1, -maxDisplayFractionDigits)

// FormatDisplayAmount renders a native balance for humans: "0" for zero, "< 0.000001" for dust,
// otherwise thousands-grouped with at most six fraction digits. Unparsable input is returned as is.
func FormatDisplayAmount(native string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(native))
	if err != nil {
		return native
	}
	if d.IsZero() {
		return "0"
	}
	if d.Abs().LessThan(minDisplayAmount) {
		return "< 0.000001"
	}

	text := d.Round(maxDisplayFractionDigits).String()
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	intPart, fracPart, _ := strings.Cut(text, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	out := sign + groupThousands(intPart)
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

// FormatUSD renders a USD amount with two decimals and thousands separators.
func FormatUSD(usd string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(usd))
	if err != nil {
		return usd
	}
	intPart, fracPart, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + groupThousands(intPart) + "." + fracPart
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
