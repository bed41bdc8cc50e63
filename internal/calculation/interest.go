package calculation

import (
	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
	stddec "github.com/shopspring/decimal"
)

// INTEREST ACCRUAL:
//
// Interest is charged per month or part of a month. Each regime that overlaps
// [due, asOf) contributes amount × rate × ceil(days / 30.44) on its whole,
// unsplit overlap; splitting an overlap would overcharge because ceil is
// superadditive. Each contribution is rounded to cents and the total is the
// sum of the rounded contributions.

var averageMonthDays = stddec.RequireFromString("30.44")

func period(label, first, last, rate string) domain.InterestPeriod {
	return domain.InterestPeriod{
		Label:       label,
		First:       mustDate(first),
		Last:        mustDate(last),
		MonthlyRate: stddec.RequireFromString(rate),
	}
}

func mustDate(s string) civil.Date {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

var interestPeriods = []domain.InterestPeriod{
	period("until 2006", "1900-01-01", "2006-12-31", "0.01"),
	period("2007 to 2018", "2007-01-01", "2018-12-31", "0.0075"),
	period("2019 to May 2022", "2019-01-01", "2022-05-31", "0.0033"),
	period("from June 2022", "2022-06-01", "9999-12-31", "0.006"),
}

// InterestPeriods returns the rate regimes in chronological order
func InterestPeriods() []domain.InterestPeriod {
	return append([]domain.InterestPeriod(nil), interestPeriods...)
}

// MonthsCharged converts a day count into chargeable months, rounding any part month up
func MonthsCharged(days int) int {
	if days <= 0 {
		return 0
	}
	return int(stddec.NewFromInt(int64(days)).Div(averageMonthDays).Ceil().IntPart())
}

// AccrueInterest walks the standard regimes from due to asOf
func AccrueInterest(amount decimal.Money, due, asOf civil.Date) (decimal.Money, []domain.PeriodContribution) {
	return AccrueInterestOver(interestPeriods, amount, due, asOf)
}

// AccrueInterestOver walks periods in order and returns the total and the
// per-regime breakdown. Nothing accrues when asOf is not after due or the
// amount is not positive.
func AccrueInterestOver(periods []domain.InterestPeriod, amount decimal.Money, due, asOf civil.Date) (decimal.Money, []domain.PeriodContribution) {
	breakdown := []domain.PeriodContribution{}
	if !asOf.After(due) || !amount.IsPositive() {
		return decimal.Zero(), breakdown
	}

	cursor := due
	for _, p := range periods {
		start, end := p.Window()
		from := dateutil.Later(cursor, start)
		to := dateutil.Earlier(asOf, end)
		if !to.After(from) {
			continue
		}

		days := dateutil.DaysBetween(from, to)
		months := MonthsCharged(days)
		breakdown = append(breakdown, domain.PeriodContribution{
			Label:       p.Label,
			From:        from,
			To:          to,
			Days:        days,
			Months:      months,
			MonthlyRate: FormatRate(p.MonthlyRate),
			Amount:      amount.ApplyRate(p.MonthlyRate).Mul(stddec.NewFromInt(int64(months))).Round(),
		})

		cursor = to
		if !cursor.Before(asOf) {
			break
		}
	}

	total := decimal.Sum(lo.Map(breakdown, func(c domain.PeriodContribution, _ int) decimal.Money { return c.Amount })...)
	return total, breakdown
}
