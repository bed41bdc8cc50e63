package config

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/calculation"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
)

// FirstFilingYear is the earliest tax year accepted by the filing calculators
const FirstFilingYear = 1999

// Forms hold raw user input exactly as typed. Tag validation checks each field
// on its own; ToInput applies the cross-field rules and builds the typed input.

// LateFilingForm is the penalty and interest questionnaire
type LateFilingForm struct {
	TaxpayerType   string `yaml:"taxpayer_type" json:"taxpayer_type" validate:"required,taxpayer"`
	TaxYear        string `yaml:"tax_year" json:"tax_year" validate:"required,number"`
	YearEndMonth   string `yaml:"year_end_month" json:"year_end_month" validate:"omitempty,month"`
	Filed          string `yaml:"filed" json:"filed" validate:"yesno"`
	SubmittedDate  string `yaml:"submitted_date" json:"submitted_date" validate:"omitempty,datetime=2006-01-02"`
	HasOutstanding string `yaml:"has_outstanding" json:"has_outstanding" validate:"yesno"`
	Amount         string `yaml:"amount" json:"amount" validate:"omitempty,money"`
	DDTExemption   string `yaml:"ddt_exemption" json:"ddt_exemption" validate:"yesno"`
	AsOf           string `yaml:"as_of" json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

// IncomeTaxForm is the personal income tax questionnaire
type IncomeTaxForm struct {
	Year                   string `yaml:"year" json:"year" validate:"required,number"`
	Status                 string `yaml:"status" json:"status" validate:"required,filingstatus"`
	Residency              string `yaml:"residency" json:"residency" validate:"omitempty,residency"`
	GrossEmployment        string `yaml:"gross_employment" json:"gross_employment" validate:"required,money"`
	OtherChargeable        string `yaml:"other_chargeable" json:"other_chargeable" validate:"omitempty,money"`
	Deductions             string `yaml:"deductions" json:"deductions" validate:"omitempty,money"`
	PartTimeEmployment     string `yaml:"part_time_employment" json:"part_time_employment" validate:"omitempty,money"`
	PartTimeSelfEmployment string `yaml:"part_time_self_employment" json:"part_time_self_employment" validate:"omitempty,money"`
	SSCCategory            string `yaml:"ssc_category" json:"ssc_category" validate:"omitempty,ssccategory"`
	BirthDate              string `yaml:"birth_date" json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Student                string `yaml:"student" json:"student" validate:"yesno"`
	IncludeCOLA            string `yaml:"include_cola" json:"include_cola" validate:"yesno"`
}

// SSCForm is the social security questionnaire. Either category or birth date is needed.
type SSCForm struct {
	AnnualGross string `yaml:"annual_gross" json:"annual_gross" validate:"required,money"`
	Category    string `yaml:"category" json:"category" validate:"omitempty,ssccategory"`
	BirthDate   string `yaml:"birth_date" json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Student     string `yaml:"student" json:"student" validate:"yesno"`
}

// RentalForm is the rental income questionnaire
type RentalForm struct {
	Year            string `yaml:"year" json:"year" validate:"required,number"`
	Status          string `yaml:"status" json:"status" validate:"required,filingstatus"`
	Residency       string `yaml:"residency" json:"residency" validate:"omitempty,residency"`
	GrossRent       string `yaml:"gross_rent" json:"gross_rent" validate:"required,money"`
	OtherChargeable string `yaml:"other_chargeable" json:"other_chargeable" validate:"omitempty,money"`
	GroundRent      string `yaml:"ground_rent" json:"ground_rent" validate:"omitempty,money"`
	OtherExpenses   string `yaml:"other_expenses" json:"other_expenses" validate:"omitempty,money"`
}

// NoticeForm is the employment notice questionnaire
type NoticeForm struct {
	EmploymentStart string `yaml:"employment_start" json:"employment_start" validate:"required,datetime=2006-01-02"`
	NoticeDate      string `yaml:"notice_date" json:"notice_date" validate:"required,datetime=2006-01-02"`
}

// AuditForm is the audit-exemption questionnaire
type AuditForm struct {
	TaxYear           string `yaml:"tax_year" json:"tax_year" validate:"required,number"`
	IncorporationYear string `yaml:"incorporation_year" json:"incorporation_year" validate:"required,number"`
	MerchantShipping  string `yaml:"merchant_shipping" json:"merchant_shipping" validate:"yesno"`
	IsParent          string `yaml:"is_parent" json:"is_parent" validate:"yesno"`
	Article174Exempt  string `yaml:"article_174_exempt" json:"article_174_exempt" validate:"yesno"`
	Turnover          string `yaml:"turnover" json:"turnover" validate:"omitempty,money"`
	BalanceSheetTotal string `yaml:"balance_sheet_total" json:"balance_sheet_total" validate:"omitempty,money"`
	Employees         string `yaml:"employees" json:"employees" validate:"omitempty,number"`
	GroupTurnover     string `yaml:"group_turnover" json:"group_turnover" validate:"omitempty,money"`
	GroupBalanceSheet string `yaml:"group_balance_sheet" json:"group_balance_sheet" validate:"omitempty,money"`
}

// DeadlineForm asks only for the profile
type DeadlineForm struct {
	TaxpayerType string `yaml:"taxpayer_type" json:"taxpayer_type" validate:"required,taxpayer"`
	TaxYear      string `yaml:"tax_year" json:"tax_year" validate:"required,number"`
	YearEndMonth string `yaml:"year_end_month" json:"year_end_month" validate:"omitempty,month"`
	DDTExemption string `yaml:"ddt_exemption" json:"ddt_exemption" validate:"yesno"`
}

// formReader converts validated strings, recording at most one problem per field
type formReader struct {
	errs ValidationErrors
}

func (r *formReader) fail(field, format string, args ...any) {
	if !r.errs.Has(field) {
		r.errs.Add(field, format, args...)
	}
}

func (r *formReader) money(field, s string) decimal.Money {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero()
	}
	m, err := decimal.NewMoneyFromString(s)
	if err != nil || m.IsNegative() {
		r.fail(field, "must be a non-negative amount")
		return decimal.Zero()
	}
	return m
}

func (r *formReader) integer(field, s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		r.fail(field, "must be a whole number")
	}
	return n
}

func (r *formReader) yearIn(field, s string, first, last int) int {
	y := r.integer(field, s)
	if !r.errs.Has(field) && (y < first || y > last) {
		r.fail(field, "must be between %d and %d", first, last)
	}
	return y
}

func (r *formReader) date(field, s string) civil.Date {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		r.fail(field, "must be a date in YYYY-MM-DD format")
	}
	return d
}

func (r *formReader) optionalDate(field, s string) *civil.Date {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d := r.date(field, s)
	return &d
}

func (r *formReader) notFuture(field string, d, today civil.Date) {
	if d.After(today) {
		r.fail(field, "cannot be in the future")
	}
}

func (r *formReader) yes(s string) bool {
	b, _ := domain.ParseYesNo(s)
	return b
}

func (r *formReader) month(field, s string) time.Month {
	if strings.TrimSpace(s) == "" {
		return time.December
	}
	m, err := parseMonth(s)
	if err != nil {
		r.fail(field, "must be a month (1-12 or a month name)")
		return time.December
	}
	return m
}

func (r *formReader) profile(taxpayer, taxYear, yearEndMonth string, today civil.Date) domain.TaxpayerProfile {
	t, err := domain.ParseTaxpayerType(taxpayer)
	if err != nil {
		r.fail("taxpayer_type", "must be individual or corporate")
	}
	p := domain.TaxpayerProfile{
		Type:         t,
		TaxYear:      r.yearIn("tax_year", taxYear, FirstFilingYear, today.Year),
		YearEndMonth: time.December,
	}
	if t == domain.Corporate {
		p.YearEndMonth = r.month("year_end_month", yearEndMonth)
	}
	return p
}

func (r *formReader) result() ValidationErrors {
	return r.errs
}

// ToInput builds the late-filing input. today is the latest acceptable
// submission date and the default "as of" date.
func (f LateFilingForm) ToInput(today civil.Date) (domain.LateFilingInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.LateFilingInput{}, errs
	}
	r := &formReader{}
	in := domain.LateFilingInput{
		Profile: r.profile(f.TaxpayerType, f.TaxYear, f.YearEndMonth, today),
		AsOf:    today,
	}

	in.Filing.Filed = r.yes(f.Filed)
	if in.Filing.Filed {
		in.Filing.Submitted = r.optionalDate("submitted_date", f.SubmittedDate)
		if in.Filing.Submitted == nil {
			r.fail("submitted_date", "is required when the return was filed")
		} else {
			r.notFuture("submitted_date", *in.Filing.Submitted, today)
		}
	}

	in.Outstanding.HasOutstanding = r.yes(f.HasOutstanding)
	if in.Outstanding.HasOutstanding {
		if strings.TrimSpace(f.Amount) == "" {
			r.fail("amount", "is required when tax is outstanding")
		}
		in.Outstanding.Amount = r.money("amount", f.Amount)
	}

	in.Outstanding.DDTExemption = r.yes(f.DDTExemption)
	if in.Outstanding.DDTExemption && in.Profile.Type != domain.Corporate {
		r.fail("ddt_exemption", "only applies to companies")
	}

	if asOf := r.optionalDate("as_of", f.AsOf); asOf != nil {
		in.AsOf = *asOf
		if in.Outstanding.HasOutstanding && len(r.errs) == 0 {
			due := calculation.CalculateDeadlines(in.Profile, in.Outstanding.DDTExemption).PaymentDeadline
			if in.AsOf.Before(due) {
				r.fail("as_of", "must not be before the payment deadline %s", due)
			}
		}
	}
	return in, r.result()
}

// ToInput builds the income tax input, deriving the SSC category from the
// birth date when no category is given.
func (f IncomeTaxForm) ToInput(today civil.Date) (domain.IncomeTaxInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.IncomeTaxInput{}, errs
	}
	r := &formReader{}
	years := calculation.SupportedYears()
	status, _ := domain.ParseFilingStatus(f.Status)
	residency, _ := domain.ParseResidency(f.Residency)

	in := domain.IncomeTaxInput{
		Year:                   r.yearIn("year", f.Year, years[0], years[len(years)-1]),
		Status:                 status,
		Residency:              residency,
		GrossEmployment:        r.money("gross_employment", f.GrossEmployment),
		OtherChargeable:        r.money("other_chargeable", f.OtherChargeable),
		Deductions:             r.money("deductions", f.Deductions),
		PartTimeEmployment:     r.money("part_time_employment", f.PartTimeEmployment),
		PartTimeSelfEmployment: r.money("part_time_self_employment", f.PartTimeSelfEmployment),
		IncludeCOLA:            r.yes(f.IncludeCOLA),
	}
	in.SSCCategory = r.sscCategory("ssc_category", f.SSCCategory, f.BirthDate, f.Student, today)
	return in, r.result()
}

func (r *formReader) sscCategory(field, category, birthDate, student string, today civil.Date) *domain.SSCCategory {
	if strings.TrimSpace(category) != "" {
		c, err := domain.ParseSSCCategory(category)
		if err != nil {
			r.fail(field, "must be a known SSC category")
			return nil
		}
		return &c
	}
	birth := r.optionalDate("birth_date", birthDate)
	if birth == nil {
		return nil
	}
	r.notFuture("birth_date", *birth, today)
	return lo.ToPtr(calculation.SSCCategoryFor(*birth, today, r.yes(student)))
}

// ToInput builds the SSC input
func (f SSCForm) ToInput(today civil.Date) (domain.SSCInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.SSCInput{}, errs
	}
	r := &formReader{}
	in := domain.SSCInput{AnnualGross: r.money("annual_gross", f.AnnualGross)}
	if c := r.sscCategory("category", f.Category, f.BirthDate, f.Student, today); c != nil {
		in.Category = *c
	} else if !r.errs.Has("category") {
		r.fail("category", "give a category or a birth date")
	}
	return in, r.result()
}

// ToInput builds the rental input
func (f RentalForm) ToInput(civil.Date) (domain.RentalInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.RentalInput{}, errs
	}
	r := &formReader{}
	years := calculation.SupportedYears()
	status, _ := domain.ParseFilingStatus(f.Status)
	residency, _ := domain.ParseResidency(f.Residency)
	in := domain.RentalInput{
		Year:            r.yearIn("year", f.Year, years[0], years[len(years)-1]),
		Status:          status,
		Residency:       residency,
		GrossRent:       r.money("gross_rent", f.GrossRent),
		OtherChargeable: r.money("other_chargeable", f.OtherChargeable),
		GroundRent:      r.money("ground_rent", f.GroundRent),
		OtherExpenses:   r.money("other_expenses", f.OtherExpenses),
	}
	return in, r.result()
}

// ToInput builds the notice input. Employment cannot start in the future and
// notice must come after the start.
func (f NoticeForm) ToInput(today civil.Date) (domain.NoticeInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.NoticeInput{}, errs
	}
	r := &formReader{}
	in := domain.NoticeInput{
		EmploymentStart: r.date("employment_start", f.EmploymentStart),
		NoticeGiven:     r.date("notice_date", f.NoticeDate),
	}
	r.notFuture("employment_start", in.EmploymentStart, today)
	if len(r.errs) == 0 && !in.NoticeGiven.After(in.EmploymentStart) {
		r.fail("notice_date", "must be after the employment start date")
	}
	return in, r.result()
}

// ToInput builds the audit input and insists on the figures the chosen path needs
func (f AuditForm) ToInput(today civil.Date) (domain.AuditInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.AuditInput{}, errs
	}
	r := &formReader{}
	in := domain.AuditInput{
		TaxYear:          r.yearIn("tax_year", f.TaxYear, FirstFilingYear, today.Year),
		MerchantShipping: r.yes(f.MerchantShipping),
		IsParent:         r.yes(f.IsParent),
		Article174Exempt: r.yes(f.Article174Exempt),
	}
	in.IncorporationYear = r.integer("incorporation_year", f.IncorporationYear)
	if !r.errs.Has("tax_year") && in.IncorporationYear > in.TaxYear {
		r.fail("incorporation_year", "cannot be after the tax year")
	}

	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			r.fail(field, "is required for this company")
		}
	}
	switch {
	case in.MerchantShipping:
	case in.IsParent && in.Article174Exempt:
		required("group_turnover", f.GroupTurnover)
		required("group_balance_sheet", f.GroupBalanceSheet)
		in.GroupTurnover = r.money("group_turnover", f.GroupTurnover)
		in.GroupBalanceSheet = r.money("group_balance_sheet", f.GroupBalanceSheet)
	case in.IsParent:
	default:
		required("turnover", f.Turnover)
		required("balance_sheet_total", f.BalanceSheetTotal)
		required("employees", f.Employees)
		in.Turnover = r.money("turnover", f.Turnover)
		in.BalanceSheetTotal = r.money("balance_sheet_total", f.BalanceSheetTotal)
		if strings.TrimSpace(f.Employees) != "" {
			in.Employees = r.integer("employees", f.Employees)
		}
	}
	return in, r.result()
}

// ToInput builds the deadline input
func (f DeadlineForm) ToInput(today civil.Date) (domain.DeadlineInput, ValidationErrors) {
	if errs := validateForm(f); len(errs) > 0 {
		return domain.DeadlineInput{}, errs
	}
	r := &formReader{}
	in := domain.DeadlineInput{
		Profile:      r.profile(f.TaxpayerType, f.TaxYear, f.YearEndMonth, today),
		DDTExemption: r.yes(f.DDTExemption),
	}
	if in.DDTExemption && in.Profile.Type != domain.Corporate {
		r.fail("ddt_exemption", "only applies to companies")
	}
	return in, r.result()
}
