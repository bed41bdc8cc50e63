package domain

import (
	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// LateFilingInput is the validated input of the penalty and interest calculator
type LateFilingInput struct {
	Profile     TaxpayerProfile `json:"profile" yaml:"profile"`
	Filing      FilingEvent     `json:"filing" yaml:"filing"`
	Outstanding OutstandingTax  `json:"outstanding" yaml:"outstanding"`
	AsOf        civil.Date      `json:"as_of" yaml:"as_of"`
}

// IncomeTaxInput is the validated input of the personal income tax calculator
type IncomeTaxInput struct {
	Year                   int           `json:"year" yaml:"year"`
	Status                 FilingStatus  `json:"status" yaml:"status"`
	Residency              Residency     `json:"residency" yaml:"residency"`
	GrossEmployment        decimal.Money `json:"gross_employment" yaml:"gross_employment"`
	OtherChargeable        decimal.Money `json:"other_chargeable" yaml:"other_chargeable"`
	Deductions             decimal.Money `json:"deductions" yaml:"deductions"`
	PartTimeEmployment     decimal.Money `json:"part_time_employment" yaml:"part_time_employment"`
	PartTimeSelfEmployment decimal.Money `json:"part_time_self_employment" yaml:"part_time_self_employment"`
	SSCCategory            *SSCCategory  `json:"ssc_category,omitempty" yaml:"ssc_category,omitempty"`
	IncludeCOLA            bool          `json:"include_cola" yaml:"include_cola"`
}

// SSCInput is the validated input of the social security calculator
type SSCInput struct {
	AnnualGross decimal.Money `json:"annual_gross" yaml:"annual_gross"`
	Category    SSCCategory   `json:"category" yaml:"category"`
}

// RentalInput is the validated input of the rental income tax comparison
type RentalInput struct {
	Year            int           `json:"year" yaml:"year"`
	Status          FilingStatus  `json:"status" yaml:"status"`
	Residency       Residency     `json:"residency" yaml:"residency"`
	GrossRent       decimal.Money `json:"gross_rent" yaml:"gross_rent"`
	OtherChargeable decimal.Money `json:"other_chargeable" yaml:"other_chargeable"`
	GroundRent      decimal.Money `json:"ground_rent" yaml:"ground_rent"`
	OtherExpenses   decimal.Money `json:"other_expenses" yaml:"other_expenses"`
}

// NoticeInput is the validated input of the employment notice calculator
type NoticeInput struct {
	EmploymentStart civil.Date `json:"employment_start" yaml:"employment_start"`
	NoticeGiven     civil.Date `json:"notice_given" yaml:"notice_given"`
}

// AuditInput is the validated set of answers for the audit-exemption decision table
type AuditInput struct {
	TaxYear           int           `json:"tax_year" yaml:"tax_year"`
	IncorporationYear int           `json:"incorporation_year" yaml:"incorporation_year"`
	MerchantShipping  bool          `json:"merchant_shipping" yaml:"merchant_shipping"`
	IsParent          bool          `json:"is_parent" yaml:"is_parent"`
	Article174Exempt  bool          `json:"article_174_exempt" yaml:"article_174_exempt"`
	Turnover          decimal.Money `json:"turnover" yaml:"turnover"`
	BalanceSheetTotal decimal.Money `json:"balance_sheet_total" yaml:"balance_sheet_total"`
	Employees         int           `json:"employees" yaml:"employees"`
	GroupTurnover     decimal.Money `json:"group_turnover" yaml:"group_turnover"`
	GroupBalanceSheet decimal.Money `json:"group_balance_sheet" yaml:"group_balance_sheet"`
}

// DeadlineInput is the validated input of the deadline calculator
type DeadlineInput struct {
	Profile      TaxpayerProfile `json:"profile" yaml:"profile"`
	DDTExemption bool            `json:"ddt_exemption" yaml:"ddt_exemption"`
}

// PeriodContribution is the interest charged under one rate regime
type PeriodContribution struct {
	Label       string        `json:"label" yaml:"label"`
	From        civil.Date    `json:"from" yaml:"from"`
	To          civil.Date    `json:"to" yaml:"to"`
	Days        int           `json:"days" yaml:"days"`
	Months      int           `json:"months" yaml:"months"`
	MonthlyRate string        `json:"monthly_rate" yaml:"monthly_rate"`
	Amount      decimal.Money `json:"amount" yaml:"amount"`
}

// CalculationResult is the derived figure set handed to the presentation layer
type CalculationResult struct {
	TaxableIncome     decimal.Money        `json:"taxable_income" yaml:"taxable_income"`
	TaxAmount         decimal.Money        `json:"tax_amount" yaml:"tax_amount"`
	PenaltyAmount     decimal.Money        `json:"penalty_amount" yaml:"penalty_amount"`
	InterestAmount    decimal.Money        `json:"interest_amount" yaml:"interest_amount"`
	InterestBreakdown []PeriodContribution `json:"interest_breakdown" yaml:"interest_breakdown"`
	TotalPayable      decimal.Money        `json:"total_payable" yaml:"total_payable"`
}

// Deadlines are the filing and payment due dates for a profile
type Deadlines struct {
	YearEnd         civil.Date `json:"year_end" yaml:"year_end"`
	FilingDeadline  civil.Date `json:"filing_deadline" yaml:"filing_deadline"`
	PaymentDeadline civil.Date `json:"payment_deadline" yaml:"payment_deadline"`
}

// LateFilingResult combines the deadlines, lateness and the derived amounts
type LateFilingResult struct {
	Deadlines   Deadlines         `json:"deadlines" yaml:"deadlines"`
	MonthsLate  int               `json:"months_late" yaml:"months_late"`
	PenaltyTier string            `json:"penalty_tier,omitempty" yaml:"penalty_tier,omitempty"`
	Result      CalculationResult `json:"result" yaml:"result"`
}

// BandTax is the tax attributable to one bracket band, for display
type BandTax struct {
	Label  string        `json:"label" yaml:"label"`
	Rate   string        `json:"rate" yaml:"rate"`
	Income decimal.Money `json:"income" yaml:"income"`
	Tax    decimal.Money `json:"tax" yaml:"tax"`
}

// FlatRateSplit is a part-time amount split into its flat-taxed and excess portions
type FlatRateSplit struct {
	Source    PartTimeSource `json:"source" yaml:"source"`
	FlatTaxed decimal.Money  `json:"flat_taxed" yaml:"flat_taxed"`
	FlatTax   decimal.Money  `json:"flat_tax" yaml:"flat_tax"`
	Excess    decimal.Money  `json:"excess" yaml:"excess"`
}

// SSCResult is the weekly and annual contribution for a category
type SSCResult struct {
	Category    SSCCategory   `json:"category" yaml:"category"`
	WeeklyGross decimal.Money `json:"weekly_gross" yaml:"weekly_gross"`
	Weekly      decimal.Money `json:"weekly" yaml:"weekly"`
	Annual      decimal.Money `json:"annual" yaml:"annual"`
}

// IncomeTaxResult is the full personal tax computation
type IncomeTaxResult struct {
	Result        CalculationResult `json:"result" yaml:"result"`
	ChargeableTax decimal.Money     `json:"chargeable_tax" yaml:"chargeable_tax"`
	PartTime      []FlatRateSplit   `json:"part_time,omitempty" yaml:"part_time,omitempty"`
	PartTimeTax   decimal.Money     `json:"part_time_tax" yaml:"part_time_tax"`
	Bands         []BandTax         `json:"bands" yaml:"bands"`
	MarginalRate  string            `json:"marginal_rate" yaml:"marginal_rate"`
	EffectiveRate string            `json:"effective_rate" yaml:"effective_rate"`
	SSC           *SSCResult        `json:"ssc,omitempty" yaml:"ssc,omitempty"`
	COLA          decimal.Money     `json:"cola" yaml:"cola"`
	NetIncome     decimal.Money     `json:"net_income" yaml:"net_income"`
}

// RentalOption names the cheaper rental tax route
type RentalOption string

const (
	RentalFinal       RentalOption = "final_15_percent"
	RentalProgressive RentalOption = "progressive"
)

// RentalResult compares the 15% final tax with the progressive route
type RentalResult struct {
	GrossRent          decimal.Money `json:"gross_rent" yaml:"gross_rent"`
	FinalTax           decimal.Money `json:"final_tax" yaml:"final_tax"`
	MaintenanceAllowed decimal.Money `json:"maintenance_allowance" yaml:"maintenance_allowance"`
	NetRent            decimal.Money `json:"net_rent" yaml:"net_rent"`
	ProgressiveTax     decimal.Money `json:"progressive_tax" yaml:"progressive_tax"`
	Recommended        RentalOption  `json:"recommended" yaml:"recommended"`
	Saving             decimal.Money `json:"saving" yaml:"saving"`
}

// NoticeResult is the statutory notice owed for a period of service
type NoticeResult struct {
	ServiceMonths int        `json:"service_months" yaml:"service_months"`
	Probation     bool       `json:"probation" yaml:"probation"`
	Weeks         int        `json:"weeks" yaml:"weeks"`
	NoticeStart   civil.Date `json:"notice_start" yaml:"notice_start"`
	LastDay       civil.Date `json:"last_day" yaml:"last_day"`
}

// AuditResult is the outcome of the audit-exemption decision table
type AuditResult struct {
	Rule      string       `json:"rule" yaml:"rule"`
	Satisfied int          `json:"criteria_met" yaml:"criteria_met"`
	Of        int          `json:"criteria_total" yaml:"criteria_total"`
	Outcome   AuditOutcome `json:"outcome" yaml:"outcome"`
	Reason    string       `json:"reason" yaml:"reason"`
}
