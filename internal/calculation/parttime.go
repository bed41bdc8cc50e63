package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

var flatRateRules = []domain.FlatRateRule{
	{Source: domain.PartTimeEmployment, Rate: stddec.RequireFromString("0.10"), Ceiling: decimal.MustMoney("10000")},
	{Source: domain.PartTimeSelfEmployment, Rate: stddec.RequireFromString("0.15"), Ceiling: decimal.MustMoney("12000")},
}

// FlatRateRules returns the part-time flat-rate rules
func FlatRateRules() []domain.FlatRateRule {
	return append([]domain.FlatRateRule(nil), flatRateRules...)
}

// FlatRateRuleFor returns the rule for a part-time income source
func FlatRateRuleFor(source domain.PartTimeSource) (domain.FlatRateRule, error) {
	for _, r := range flatRateRules {
		if r.Source == source {
			return r, nil
		}
	}
	return domain.FlatRateRule{}, fmt.Errorf("%w: part-time source %q", ErrUnknownCategory, source)
}

// SplitFlatRate taxes min(amount, ceiling) at the flat rate and returns the
// excess, which the caller adds to chargeable income.
func SplitFlatRate(amount decimal.Money, rule domain.FlatRateRule) domain.FlatRateSplit {
	amount = amount.ClampZero()
	flat := decimal.Min(amount, rule.Ceiling)
	return domain.FlatRateSplit{
		Source:    rule.Source,
		FlatTaxed: flat,
		FlatTax:   flat.ApplyRate(rule.Rate).Round(),
		Excess:    amount.Sub(rule.Ceiling).ClampZero(),
	}
}
