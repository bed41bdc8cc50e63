package calculation

import (
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// Weekly cost-of-living adjustment by year. Years after the last entry reuse it.
var colaWeekly = map[int]decimal.Money{
	2025: decimal.MustMoney("5.24"),
	2026: decimal.MustMoney("4.66"),
}

// COLAWeekly returns the weekly COLA for a year and whether one applies
func COLAWeekly(year int) (decimal.Money, bool) {
	best := 0
	for y := range colaWeekly {
		if y <= year && y > best {
			best = y
		}
	}
	if best == 0 {
		return decimal.Zero(), false
	}
	return colaWeekly[best], true
}

// AnnualCOLA returns weekly COLA × 52 for a year, or zero before the first known year
func AnnualCOLA(year int) decimal.Money {
	weekly, ok := COLAWeekly(year)
	if !ok {
		return decimal.Zero()
	}
	return weekly.AnnualFromWeekly().Round()
}
