package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatKg renders a weight with "." thousands, "," decimals and a Kg suffix:
// 1234.5 -> "1.234,50 Kg".
func FormatKg(d decimal.Decimal) string {
	return FormatNumber(d, 2) + " Kg"
}

// FormatNumber renders d with the given decimals in the same locale style.
func FormatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

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
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatUnits renders a unit total: integers plain, fractions with two decimals.
func FormatUnits(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.String()
	}
	return FormatNumber(d, 2)
}
