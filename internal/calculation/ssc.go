package calculation

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// SSC RULES (Class 1, weekly):
//
// Banded categories pay a fixed minimum up to and including the lower weekly
// threshold, 10% of weekly pay up to and including the upper threshold, and a
// fixed maximum above it. Students pay 10% capped at a fixed amount.
// The weekly contribution is rounded to cents before annualising.

var tenPercent = stddec.RequireFromString("0.10")

var sscRules = []domain.SSCRule{
	{Category: domain.SSCExempt, Kind: domain.SSCRuleExempt},
	{Category: domain.SSCStudentUnder18, Kind: domain.SSCRuleCapped, Rate: tenPercent, Cap: decimal.MustMoney("3.32")},
	{Category: domain.SSCStudent18Plus, Kind: domain.SSCRuleCapped, Rate: tenPercent, Cap: decimal.MustMoney("6.62")},
	{
		Category: domain.SSCUnder18, Kind: domain.SSCRuleBanded, Rate: tenPercent,
		LowerWeekly: decimal.MustMoney("221.78"), UpperWeekly: decimal.MustMoney("544.28"),
		Minimum: decimal.MustMoney("6.62"), Maximum: decimal.MustMoney("54.43"),
	},
	{
		Category: domain.SSCBornBefore1962, Kind: domain.SSCRuleBanded, Rate: tenPercent,
		LowerWeekly: decimal.MustMoney("221.78"), UpperWeekly: decimal.MustMoney("451.91"),
		Minimum: decimal.MustMoney("22.18"), Maximum: decimal.MustMoney("45.19"),
	},
	{
		Category: domain.SSCBornFrom1962, Kind: domain.SSCRuleBanded, Rate: tenPercent,
		LowerWeekly: decimal.MustMoney("221.78"), UpperWeekly: decimal.MustMoney("544.28"),
		Minimum: decimal.MustMoney("22.18"), Maximum: decimal.MustMoney("54.43"),
	},
}

// SSCRules returns the contribution table in category order
func SSCRules() []domain.SSCRule {
	return append([]domain.SSCRule(nil), sscRules...)
}

// SSCRuleFor returns the rule for a category
func SSCRuleFor(category domain.SSCCategory) (domain.SSCRule, error) {
	for _, r := range sscRules {
		if r.Category == category {
			return r, nil
		}
	}
	return domain.SSCRule{}, fmt.Errorf("%w: SSC category %q", ErrUnknownCategory, category)
}

// WeeklyContribution applies a rule to weekly gross pay
func WeeklyContribution(weeklyGross decimal.Money, rule domain.SSCRule) decimal.Money {
	weeklyGross = weeklyGross.ClampZero()
	switch rule.Kind {
	case domain.SSCRuleCapped:
		return decimal.Min(weeklyGross.ApplyRate(rule.Rate), rule.Cap).Round()
	case domain.SSCRuleBanded:
		switch {
		case weeklyGross.LessThanOrEqual(rule.LowerWeekly):
			return rule.Minimum
		case weeklyGross.LessThanOrEqual(rule.UpperWeekly):
			return weeklyGross.ApplyRate(rule.Rate).Round()
		default:
			return rule.Maximum
		}
	default:
		return decimal.Zero()
	}
}

// CalculateSSC converts annual gross pay to weekly, applies the category rule
// and annualises the rounded weekly contribution.
func CalculateSSC(in domain.SSCInput) (*domain.SSCResult, error) {
	rule, err := SSCRuleFor(in.Category)
	if err != nil {
		return nil, err
	}
	weeklyGross := in.AnnualGross.ClampZero().Weekly()
	weekly := WeeklyContribution(weeklyGross, rule)
	return &domain.SSCResult{
		Category:    in.Category,
		WeeklyGross: weeklyGross.Round(),
		Weekly:      weekly,
		Annual:      weekly.AnnualFromWeekly().Round(),
	}, nil
}

// SSCCategoryFor derives the category from a birth date at asOf.
// Students are split only by age; other workers under 18 use the under-18
// band and adults are split by birth year around 1962.
func SSCCategoryFor(birth, asOf civil.Date, student bool) domain.SSCCategory {
	minor := dateutil.Age(birth, asOf) < 18
	switch {
	case student && minor:
		return domain.SSCStudentUnder18
	case student:
		return domain.SSCStudent18Plus
	case minor:
		return domain.SSCUnder18
	case birth.Year < 1962:
		return domain.SSCBornBefore1962
	default:
		return domain.SSCBornFrom1962
	}
}
