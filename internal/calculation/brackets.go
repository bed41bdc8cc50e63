package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
	stddec "github.com/shopspring/decimal"
)

// BRACKET TABLES:
//
// Every schedule is stored in "rate × income − subtract" form. A band applies
// to incomes up to and including its upper bound, so 17,500 is still taxed at
// 0% in the Single 2025 table and 17,501 is the first income at 15%.
//
// Resident tables are versioned by year and filing status. The non-resident
// schedule is the same for every supported year and ignores filing status.

type bracketKey struct {
	year   int
	status domain.FilingStatus
}

// bracket builds a table row from literals; an empty upper means open-ended.
func bracket(lower, upper, rate, subtract string) domain.TaxBracket {
	ub := domain.Unbounded()
	if upper != "" {
		ub = domain.UpTo(decimal.MustMoney(upper))
	}
	return domain.TaxBracket{
		Lower:    decimal.MustMoney(lower),
		Upper:    ub,
		Rate:     stddec.RequireFromString(rate),
		Subtract: decimal.MustMoney(subtract),
	}
}

var residentBrackets = map[bracketKey][]domain.TaxBracket{
	{2025, domain.Single}: {
		bracket("0", "17500", "0", "0"),
		bracket("17501", "26500", "0.15", "2625"),
		bracket("26501", "60000", "0.25", "5275"),
		bracket("60001", "", "0.35", "11275"),
	},
	{2026, domain.Single}: {
		bracket("0", "18500", "0", "0"),
		bracket("18501", "27500", "0.15", "2775"),
		bracket("27501", "60000", "0.25", "5525"),
		bracket("60001", "", "0.35", "11525"),
	},
	{2027, domain.Single}: {
		bracket("0", "19500", "0", "0"),
		bracket("19501", "28500", "0.15", "2925"),
		bracket("28501", "60000", "0.25", "5775"),
		bracket("60001", "", "0.35", "11775"),
	},
	{2028, domain.Single}: {
		bracket("0", "20500", "0", "0"),
		bracket("20501", "29500", "0.15", "3075"),
		bracket("29501", "60000", "0.25", "6025"),
		bracket("60001", "", "0.35", "12025"),
	},
	{2025, domain.Married}: {
		bracket("0", "23000", "0", "0"),
		bracket("23001", "35000", "0.15", "3450"),
		bracket("35001", "60000", "0.25", "6950"),
		bracket("60001", "", "0.35", "12950"),
	},
	{2026, domain.Married}: {
		bracket("0", "24000", "0", "0"),
		bracket("24001", "36000", "0.15", "3600"),
		bracket("36001", "60000", "0.25", "7200"),
		bracket("60001", "", "0.35", "13200"),
	},
	{2027, domain.Married}: {
		bracket("0", "25000", "0", "0"),
		bracket("25001", "37000", "0.15", "3750"),
		bracket("37001", "60000", "0.25", "7450"),
		bracket("60001", "", "0.35", "13450"),
	},
	{2028, domain.Married}: {
		bracket("0", "26000", "0", "0"),
		bracket("26001", "38000", "0.15", "3900"),
		bracket("38001", "60000", "0.25", "7700"),
		bracket("60001", "", "0.35", "13700"),
	},
	{2025, domain.Parent}: {
		bracket("0", "19500", "0", "0"),
		bracket("19501", "29000", "0.15", "2925"),
		bracket("29001", "60000", "0.25", "5825"),
		bracket("60001", "", "0.35", "11825"),
	},
	{2026, domain.Parent}: {
		bracket("0", "20500", "0", "0"),
		bracket("20501", "30000", "0.15", "3075"),
		bracket("30001", "60000", "0.25", "6075"),
		bracket("60001", "", "0.35", "12075"),
	},
	{2027, domain.Parent}: {
		bracket("0", "21500", "0", "0"),
		bracket("21501", "31000", "0.15", "3225"),
		bracket("31001", "60000", "0.25", "6325"),
		bracket("60001", "", "0.35", "12325"),
	},
	{2028, domain.Parent}: {
		bracket("0", "22500", "0", "0"),
		bracket("22501", "32000", "0.15", "3375"),
		bracket("32001", "60000", "0.25", "6575"),
		bracket("60001", "", "0.35", "12575"),
	},
}

var nonResidentBrackets = []domain.TaxBracket{
	bracket("0", "700", "0", "0"),
	bracket("701", "3100", "0.20", "140"),
	bracket("3101", "7800", "0.30", "450"),
	bracket("7801", "", "0.35", "840"),
}

var supportedYears = []int{2025, 2026, 2027, 2028}

var filingStatuses = []domain.FilingStatus{domain.Single, domain.Married, domain.Parent}

// SupportedYears returns the tax years that have bracket tables, oldest first
func SupportedYears() []int {
	return append([]int(nil), supportedYears...)
}

// SelectBrackets returns the predefined table for (year, status, residency).
// Non-resident tables ignore status.
func SelectBrackets(year int, status domain.FilingStatus, residency domain.Residency) (domain.BracketTable, error) {
	if !lo.Contains(supportedYears, year) {
		return domain.BracketTable{}, fmt.Errorf("%w: %d (supported: %d-%d)",
			ErrUnsupportedYear, year, supportedYears[0], supportedYears[len(supportedYears)-1])
	}

	switch residency {
	case domain.NonResident:
		return domain.BracketTable{Year: year, Residency: domain.NonResident, Brackets: nonResidentBrackets}, nil
	case domain.Resident, "":
		brackets, ok := residentBrackets[bracketKey{year, status}]
		if !ok {
			return domain.BracketTable{}, fmt.Errorf("%w: filing status %q", ErrUnknownCategory, status)
		}
		return domain.BracketTable{Year: year, Status: status, Residency: domain.Resident, Brackets: brackets}, nil
	default:
		return domain.BracketTable{}, fmt.Errorf("%w: residency %q", ErrUnknownCategory, residency)
	}
}

// AllBracketTables lists every predefined table in year, residency, status order
func AllBracketTables() []domain.BracketTable {
	var tables []domain.BracketTable
	for _, year := range supportedYears {
		for _, status := range filingStatuses {
			tables = append(tables, domain.BracketTable{
				Year: year, Status: status, Residency: domain.Resident,
				Brackets: residentBrackets[bracketKey{year, status}],
			})
		}
		tables = append(tables, domain.BracketTable{Year: year, Residency: domain.NonResident, Brackets: nonResidentBrackets})
	}
	return tables
}

// FindBracket returns the first band whose upper bound admits income.
// Negative incomes fall into the first band.
func FindBracket(income decimal.Money, brackets []domain.TaxBracket) (domain.TaxBracket, bool) {
	return lo.Find(brackets, func(b domain.TaxBracket) bool {
		return b.Upper.Admits(income)
	})
}

// EvaluateBrackets computes max(0, income × rate − subtract) for the band
// containing income, rounded to cents.
func EvaluateBrackets(income decimal.Money, brackets []domain.TaxBracket) decimal.Money {
	if !income.IsPositive() {
		return decimal.Zero()
	}
	b, ok := FindBracket(income, brackets)
	if !ok {
		return decimal.Zero()
	}
	return income.ApplyRate(b.Rate).Sub(b.Subtract).ClampZero().Round()
}

// BandBreakdown splits the tax on income across the bands of a table.
// The band amounts add up to EvaluateBrackets for a correctly pre-baked table,
// give or take a cent of rounding.
func BandBreakdown(income decimal.Money, brackets []domain.TaxBracket) []domain.BandTax {
	bands := make([]domain.BandTax, 0, len(brackets))
	floor := decimal.Zero()
	for _, b := range brackets {
		portion := income
		if limit, ok := b.Upper.Limit(); ok {
			portion = decimal.Min(income, limit)
		}
		portion = portion.Sub(floor).ClampZero()

		bands = append(bands, domain.BandTax{
			Label:  fmt.Sprintf("%s to %s", floor, b.Upper),
			Rate:   FormatRate(b.Rate),
			Income: portion.Round(),
			Tax:    portion.ApplyRate(b.Rate).Round(),
		})

		limit, ok := b.Upper.Limit()
		if !ok || income.LessThanOrEqual(limit) {
			break
		}
		floor = limit
	}
	return bands
}

// FormatRate renders a rate as a percentage without trailing zeros ("15%", "0.33%")
func FormatRate(rate stddec.Decimal) string {
	return rate.Shift(2).String() + "%"
}
