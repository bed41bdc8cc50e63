package output

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/calculation"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	stddec "github.com/shopspring/decimal"
)

// DefaultAssumptions lists the calculation conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Months late count whole calendar months; a month is not complete until its day-of-month is reached",
	"Interest is charged per month or part of a month at the rate in force for each period",
	"Income tax uses the rate x income - subtract form of the progressive schedule",
	"Weekly SSC is annual gross / 52, rounded to cents, then multiplied back by 52",
	"Figures are estimates and are not a substitute for professional advice",
}

// GenerateAssumptions adds the interest regimes in force to the default list
func GenerateAssumptions(periods []domain.InterestPeriod) []string {
	out := append([]string(nil), DefaultAssumptions...)
	for _, p := range periods {
		out = append(out, fmt.Sprintf("Interest %s: %s per month", p.Label, FormatPercentage(p.MonthlyRate.Mul(decimalHundred))))
	}
	return out
}

var decimalHundred = stddec.NewFromInt(100)

func reportAssumptions() []string {
	return GenerateAssumptions(calculation.InterestPeriods())
}
