package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a monetary value as "R$ 1.234,56".
func FormatCurrency(v decimal.Decimal) string {
	return "R$ " + FormatNumber(v)
}

// FormatNumber renders a value with two decimal places in the Brazilian
// convention: dot for thousands, comma for decimals.
func FormatNumber(v decimal.Decimal) string {
	s := v.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
