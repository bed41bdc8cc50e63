package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// TaxBracket is one band of a progressive schedule in "rate × income − subtract" form.
// Lower is informational; a band applies to incomes up to and including Upper.
type TaxBracket struct {
	Lower    decimal.Money  `json:"lower" yaml:"lower"`
	Upper    Bound          `json:"upper" yaml:"upper"`
	Rate     stddec.Decimal `json:"rate" yaml:"rate"`
	Subtract decimal.Money  `json:"subtract" yaml:"subtract"`
}

// BracketTable is a complete progressive schedule for one (year, status, residency)
type BracketTable struct {
	Year      int          `json:"year" yaml:"year"`
	Status    FilingStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Residency Residency    `json:"residency" yaml:"residency"`
	Brackets  []TaxBracket `json:"brackets" yaml:"brackets"`
}

// FlatRateRule taxes part-time income at Rate up to Ceiling
type FlatRateRule struct {
	Source  PartTimeSource `json:"source" yaml:"source"`
	Rate    stddec.Decimal `json:"rate" yaml:"rate"`
	Ceiling decimal.Money  `json:"ceiling" yaml:"ceiling"`
}

// SSCRuleKind selects how an SSCRule maps weekly pay to a contribution
type SSCRuleKind string

const (
	SSCRuleExempt SSCRuleKind = "exempt"
	SSCRuleCapped SSCRuleKind = "capped"
	SSCRuleBanded SSCRuleKind = "banded"
)

// SSCRule is a weekly contribution rule for one category.
// Capped rules use Rate and Cap. Banded rules pay Minimum up to LowerWeekly,
// Rate × weekly pay up to UpperWeekly and Maximum above it.
type SSCRule struct {
	Category    SSCCategory    `json:"category" yaml:"category"`
	Kind        SSCRuleKind    `json:"kind" yaml:"kind"`
	Rate        stddec.Decimal `json:"rate" yaml:"rate"`
	Cap         decimal.Money  `json:"cap,omitempty" yaml:"cap,omitempty"`
	LowerWeekly decimal.Money  `json:"lower_weekly,omitempty" yaml:"lower_weekly,omitempty"`
	UpperWeekly decimal.Money  `json:"upper_weekly,omitempty" yaml:"upper_weekly,omitempty"`
	Minimum     decimal.Money  `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     decimal.Money  `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// PenaltyTier is a fixed late-filing penalty for returns up to Within months late
type PenaltyTier struct {
	Within MonthLimit    `json:"within_months" yaml:"within_months"`
	Amount decimal.Money `json:"amount" yaml:"amount"`
	Label  string        `json:"label" yaml:"label"`
}

// InterestPeriod is a regime charging MonthlyRate for each month or part of a month.
// First and Last are both inclusive calendar days.
type InterestPeriod struct {
	Label       string         `json:"label" yaml:"label"`
	First       civil.Date     `json:"first" yaml:"first"`
	Last        civil.Date     `json:"last" yaml:"last"`
	MonthlyRate stddec.Decimal `json:"monthly_rate" yaml:"monthly_rate"`
}

// Window returns the half-open interval [start, end) covered by the regime
func (p InterestPeriod) Window() (start, end civil.Date) {
	return p.First, p.Last.AddDays(1)
}

// TaxpayerProfile identifies who is filing and for which year.
// YearEndMonth only matters for companies; individuals always close in December.
type TaxpayerProfile struct {
	Type         TaxpayerType `json:"taxpayer_type" yaml:"taxpayer_type"`
	TaxYear      int          `json:"tax_year" yaml:"tax_year"`
	YearEndMonth time.Month   `json:"year_end_month" yaml:"year_end_month"`
}

// EffectiveYearEndMonth returns December for individuals and the chosen month otherwise
func (p TaxpayerProfile) EffectiveYearEndMonth() time.Month {
	if p.Type != Corporate || p.YearEndMonth < time.January || p.YearEndMonth > time.December {
		return time.December
	}
	return p.YearEndMonth
}

// FilingEvent records whether and when the self-assessment was submitted
type FilingEvent struct {
	Filed     bool        `json:"filed" yaml:"filed"`
	Submitted *civil.Date `json:"submitted,omitempty" yaml:"submitted,omitempty"`
}

// OutstandingTax is the unpaid tax carried into the interest calculation
type OutstandingTax struct {
	HasOutstanding bool          `json:"has_outstanding" yaml:"has_outstanding"`
	Amount         decimal.Money `json:"amount" yaml:"amount"`
	DDTExemption   bool          `json:"ddt_exemption" yaml:"ddt_exemption"`
}
