package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice parses catalog prices written the Brazilian way ("20,00",
// "1.234,50", "R$ 20,00"). Dot-decimal strings ("20.00") are accepted too.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)

	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative %q", ErrInvalidPrice, raw)
	}

	return d, nil
}

// FormatDecimal renders d as a comma-decimal catalog price ("1234,50").
func FormatDecimal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// FormatPrice renders d for humans: "R$ 1.234,50".
func FormatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
