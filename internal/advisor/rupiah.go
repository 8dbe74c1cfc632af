package advisor

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders d the way id-ID locales do: dot thousands separators,
// comma decimals, and no trailing fractional zeros.
func FormatRupiah(d decimal.Decimal) string {
	return "Rp " + formatNumber(d)
}

func formatNumber(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().Round(2).StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

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
