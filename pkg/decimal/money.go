package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount for display. Projection math runs in
// float64; Money is used at the edges to round and format consistently.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromString parses a decimal string such as "1000", "0.125" or "1.5e3".
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// String returns the amount with two decimals and no grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "$1,234,567.89".
func (m Money) Format() string {
	return formatGrouped(m.Decimal.StringFixed(2))
}

// FormatWhole renders the amount rounded to whole units, as "$1,234,568".
func (m Money) FormatWhole() string {
	return formatGrouped(m.Decimal.StringFixed(0))
}

func formatGrouped(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
