package values

import "fmt"

// Money is an amount in the currency's minor units (cents).
// Formatting for display is delegated to a MoneyFormatter.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// IsPositive returns true if the amount is strictly greater than zero
func (m Money) IsPositive() bool {
	return m > 0
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m == 0
}

// Cents returns the raw minor-unit amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// String renders the amount without currency, e.g. "8.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
