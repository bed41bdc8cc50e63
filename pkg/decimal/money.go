package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WeeksPerYear is the divisor used to turn annual pay into weekly pay.
const WeeksPerYear = 52

// Money represents a euro amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromInt creates a new Money instance from whole euros
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string.
// Thousands separators and a leading euro sign are accepted ("€10,000.50").
func NewMoneyFromString(value string) (Money, error) {
	clean := strings.TrimSpace(value)
	clean = strings.TrimPrefix(clean, "€")
	clean = strings.ReplaceAll(clean, ",", "")
	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// MustMoney parses a literal amount and panics on failure. Intended for static tables.
func MustMoney(value string) Money {
	m, err := NewMoneyFromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Round rounds the money amount to cents (half away from zero)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Weekly converts an annual amount to weekly
func (m Money) Weekly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(WeeksPerYear))}
}

// AnnualFromWeekly converts a weekly amount to annual
func (m Money) AnnualFromWeekly() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(WeeksPerYear))}
}

// ApplyRate returns the share of the amount at the given rate (amount × rate)
func (m Money) ApplyRate(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(rate)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// GreaterThanOrEqual checks if this amount is greater than or equal to another
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.Decimal.GreaterThanOrEqual(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// LessThanOrEqual checks if this amount is less than or equal to another
func (m Money) LessThanOrEqual(other Money) bool {
	return m.Decimal.LessThanOrEqual(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// IsZero checks if the amount is zero
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// IsPositive checks if the amount is positive
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// IsNegative checks if the amount is negative
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// ClampZero returns the amount, or zero when it is negative
func (m Money) ClampZero() Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

// Float64 returns the amount rounded to cents as a float, for display layers
func (m Money) Float64() float64 {
	return m.Decimal.Round(2).InexactFloat64()
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Sum adds up a list of amounts
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the string representation with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with the euro sign
func (m Money) Format() string {
	if m.IsNegative() {
		return "-€" + m.Neg().String()
	}
	return "€" + m.String()
}

// Neg returns the negated amount
func (m Money) Neg() Money {
	return Money{m.Decimal.Neg()}
}

// MarshalJSON renders the amount as a number with two decimals
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// MarshalText renders the amount with two decimals for yaml and csv writers
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
