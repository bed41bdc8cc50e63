package domain

import (
	"strconv"

	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// Bound is an inclusive upper limit on a money range that may be open-ended.
// The zero value is a closed bound at €0.
type Bound struct {
	limit decimal.Money
	open  bool
}

// UpTo returns a closed bound at limit
func UpTo(limit decimal.Money) Bound {
	return Bound{limit: limit}
}

// Unbounded returns an open-ended bound
func Unbounded() Bound {
	return Bound{open: true}
}

// IsOpen reports whether the bound has no limit
func (b Bound) IsOpen() bool { return b.open }

// Limit returns the limit and whether one exists
func (b Bound) Limit() (decimal.Money, bool) {
	return b.limit, !b.open
}

// Admits reports whether amount is at or below the bound
func (b Bound) Admits(amount decimal.Money) bool {
	return b.open || amount.LessThanOrEqual(b.limit)
}

func (b Bound) String() string {
	if b.open {
		return "∞"
	}
	return b.limit.String()
}

// MarshalText renders open bounds as "open" so tables survive json/yaml
func (b Bound) MarshalText() ([]byte, error) {
	if b.open {
		return []byte("open"), nil
	}
	return []byte(b.limit.String()), nil
}

// MonthLimit is an inclusive upper limit in whole months that may be open-ended
type MonthLimit struct {
	months int
	open   bool
}

// WithinMonths returns a closed limit of n months
func WithinMonths(n int) MonthLimit {
	return MonthLimit{months: n}
}

// AnyMonths returns the catch-all limit
func AnyMonths() MonthLimit {
	return MonthLimit{open: true}
}

// IsOpen reports whether the limit is the catch-all
func (l MonthLimit) IsOpen() bool { return l.open }

// Months returns the limit and whether one exists
func (l MonthLimit) Months() (int, bool) {
	return l.months, !l.open
}

// Admits reports whether months is at or below the limit
func (l MonthLimit) Admits(months int) bool {
	return l.open || months <= l.months
}

func (l MonthLimit) String() string {
	if l.open {
		return "∞"
	}
	return strconv.Itoa(l.months)
}

// MarshalText renders the catch-all as "open"
func (l MonthLimit) MarshalText() ([]byte, error) {
	if l.open {
		return []byte("open"), nil
	}
	return []byte(strconv.Itoa(l.months)), nil
}
