package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"resto-platform/internal/domain"
)

// Currency symbols the storefront displays. Codes without a symbol render
// with the code itself so nothing ever formats blank.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"XOF": "CFA",
}

const symbolSeparator = " " // non-breaking space

func symbolFor(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return currency
}

// Format renders a Money value for display: two fraction digits, symbol as a
// suffix. Formatting is the only place minor units get divided.
func Format(m domain.Money) string {
	return decimal.New(m.Amount, -2).StringFixed(2) + symbolSeparator + symbolFor(m.Currency)
}

// ParseDisplay recovers the minor-unit amount from a string produced by
// Format. Format then ParseDisplay round-trips exactly for any non-negative
// amount; anything else is a parse error.
func ParseDisplay(s, currency string) (int64, error) {
	s = strings.TrimSuffix(s, symbolSeparator+symbolFor(currency))

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price string %q: %w", s, err)
	}

	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("price %q has sub-cent precision", s)
	}
	return shifted.IntPart(), nil
}
