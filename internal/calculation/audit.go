package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
)

// AuditRule names the path taken through the audit-exemption table
type AuditRule string

const (
	AuditRuleMerchantShipping AuditRule = "merchant_shipping"
	AuditRuleParent           AuditRule = "parent_without_article_174"
	AuditRuleSmallGroup       AuditRule = "small_group"
	AuditRuleStartUp          AuditRule = "rule_3_start_up"
	AuditRuleSmallCompany     AuditRule = "rule_6_small_company"
)

// AuditThresholds are the size limits tested by one rule
type AuditThresholds struct {
	Turnover     decimal.Money `json:"turnover" yaml:"turnover"`
	BalanceSheet decimal.Money `json:"balance_sheet" yaml:"balance_sheet"`
	Employees    int           `json:"employees,omitempty" yaml:"employees,omitempty"`
}

var auditThresholds = map[AuditRule]AuditThresholds{
	AuditRuleStartUp:      {Turnover: decimal.MustMoney("80000"), BalanceSheet: decimal.MustMoney("46600"), Employees: 2},
	AuditRuleSmallCompany: {Turnover: decimal.MustMoney("93000"), BalanceSheet: decimal.MustMoney("46600"), Employees: 2},
	AuditRuleSmallGroup:   {Turnover: decimal.MustMoney("186000"), BalanceSheet: decimal.MustMoney("93200")},
}

// auditOutcomes maps (rule, criteria satisfied) to an outcome.
// Rules without criteria are keyed at 0.
var auditOutcomes = map[AuditRule]map[int]domain.AuditOutcome{
	AuditRuleMerchantShipping: {0: domain.AuditRequired},
	AuditRuleParent:           {0: domain.AuditRequired},
	AuditRuleSmallGroup: {
		2: domain.AuditExempt,
		1: domain.AuditReview,
		0: domain.AuditRequired,
	},
	AuditRuleStartUp: {
		3: domain.AuditExempt,
		2: domain.AuditExempt,
		1: domain.AuditReview,
		0: domain.AuditRequired,
	},
	AuditRuleSmallCompany: {
		3: domain.AuditExempt,
		2: domain.AuditReview,
		1: domain.AuditRequired,
		0: domain.AuditRequired,
	},
}

var auditReasons = map[AuditRule]string{
	AuditRuleMerchantShipping: "merchant shipping companies are always audited",
	AuditRuleParent:           "parent companies without an Article 174 exemption are audited",
	AuditRuleSmallGroup:       "small group test on group turnover and balance sheet",
	AuditRuleStartUp:          "start-up test (Rule 3) for companies in their first two years",
	AuditRuleSmallCompany:     "small company test (Rule 6)",
}

// AuditThresholdsFor returns the limits used by a rule
func AuditThresholdsFor(rule AuditRule) (AuditThresholds, bool) {
	t, ok := auditThresholds[rule]
	return t, ok
}

// DecideAudit walks the audit-exemption table: merchant shipping first, then
// parent status, then the start-up bucket (incorporated in the tax year or the
// year before) and finally the small company test.
func DecideAudit(in domain.AuditInput) (*domain.AuditResult, error) {
	if in.IncorporationYear > in.TaxYear {
		return nil, fmt.Errorf("incorporation year %d is after tax year %d", in.IncorporationYear, in.TaxYear)
	}

	var (
		rule      AuditRule
		satisfied int
		total     int
	)
	switch {
	case in.MerchantShipping:
		rule = AuditRuleMerchantShipping
	case in.IsParent && !in.Article174Exempt:
		rule = AuditRuleParent
	case in.IsParent:
		rule = AuditRuleSmallGroup
		t := auditThresholds[rule]
		satisfied = lo.Count([]bool{
			in.GroupTurnover.LessThanOrEqual(t.Turnover),
			in.GroupBalanceSheet.LessThanOrEqual(t.BalanceSheet),
		}, true)
		total = 2
	default:
		rule = AuditRuleSmallCompany
		if in.IncorporationYear >= in.TaxYear-1 {
			rule = AuditRuleStartUp
		}
		t := auditThresholds[rule]
		satisfied = lo.Count([]bool{
			in.Turnover.LessThanOrEqual(t.Turnover),
			in.BalanceSheetTotal.LessThanOrEqual(t.BalanceSheet),
			in.Employees <= t.Employees,
		}, true)
		total = 3
	}

	outcome, ok := auditOutcomes[rule][satisfied]
	if !ok {
		return nil, fmt.Errorf("%w: no audit outcome for %s with %d criteria met", ErrUnknownCategory, rule, satisfied)
	}
	return &domain.AuditResult{
		Rule:      string(rule),
		Satisfied: satisfied,
		Of:        total,
		Outcome:   outcome,
		Reason:    auditReasons[rule],
	}, nil
}
