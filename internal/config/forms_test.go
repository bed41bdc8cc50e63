package config

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestLateFilingForm(t *testing.T) {
	valid := LateFilingForm{
		TaxpayerType:   "individual",
		TaxYear:        "2022",
		Filed:          "yes",
		SubmittedDate:  "2025-10-15",
		HasOutstanding: "yes",
		Amount:         "5000",
	}

	t.Run("valid", func(t *testing.T) {
		in, errs := valid.ToInput(testToday)
		require.Empty(t, errs)
		assert.Equal(t, domain.Individual, in.Profile.Type)
		assert.Equal(t, time.December, in.Profile.YearEndMonth)
		require.NotNil(t, in.Filing.Submitted)
		assert.Equal(t, civil.Date{Year: 2025, Month: 10, Day: 15}, *in.Filing.Submitted)
		assert.Equal(t, testToday, in.AsOf)
	})

	tests := []struct {
		name   string
		mutate func(f *LateFilingForm)
		field  string
	}{
		{"missing taxpayer", func(f *LateFilingForm) { f.TaxpayerType = "" }, "taxpayer_type"},
		{"unknown taxpayer", func(f *LateFilingForm) { f.TaxpayerType = "trust" }, "taxpayer_type"},
		{"year too early", func(f *LateFilingForm) { f.TaxYear = "1998" }, "tax_year"},
		{"year in future", func(f *LateFilingForm) { f.TaxYear = "2027" }, "tax_year"},
		{"year not a number", func(f *LateFilingForm) { f.TaxYear = "twenty" }, "tax_year"},
		{"submitted required", func(f *LateFilingForm) { f.SubmittedDate = "" }, "submitted_date"},
		{"submitted in future", func(f *LateFilingForm) { f.SubmittedDate = "2026-03-02" }, "submitted_date"},
		{"submitted malformed", func(f *LateFilingForm) { f.SubmittedDate = "15/10/2025" }, "submitted_date"},
		{"amount required", func(f *LateFilingForm) { f.Amount = "" }, "amount"},
		{"amount negative", func(f *LateFilingForm) { f.Amount = "-1" }, "amount"},
		{"ddt for individual", func(f *LateFilingForm) { f.DDTExemption = "yes" }, "ddt_exemption"},
		{"bad yes/no", func(f *LateFilingForm) { f.Filed = "maybe" }, "filed"},
		{"as of before due date", func(f *LateFilingForm) { f.AsOf = "2023-06-29" }, "as_of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			_, errs := form.ToInput(testToday)
			assert.Contains(t, fields(errs), tt.field)
			assert.True(t, errors.Is(errs, ErrInvalidInput))
		})
	}

	t.Run("unfiled ignores submitted date", func(t *testing.T) {
		form := valid
		form.Filed = "no"
		in, errs := form.ToInput(testToday)
		require.Empty(t, errs)
		assert.Nil(t, in.Filing.Submitted)
	})

	t.Run("corporate year end", func(t *testing.T) {
		form := valid
		form.TaxpayerType = "company"
		form.YearEndMonth = "Jun"
		form.DDTExemption = "yes"
		in, errs := form.ToInput(testToday)
		require.Empty(t, errs)
		assert.Equal(t, time.June, in.Profile.YearEndMonth)
		assert.True(t, in.Outstanding.DDTExemption)
	})

	t.Run("as of on due date", func(t *testing.T) {
		form := valid
		form.AsOf = "2023-06-30"
		in, errs := form.ToInput(testToday)
		require.Empty(t, errs)
		assert.Equal(t, civil.Date{Year: 2023, Month: 6, Day: 30}, in.AsOf)
	})
}

func TestIncomeTaxForm(t *testing.T) {
	form := IncomeTaxForm{
		Year:               "2025",
		Status:             "Married",
		GrossEmployment:    "40000",
		PartTimeEmployment: "12000",
		BirthDate:          "1990-05-05",
		IncludeCOLA:        "yes",
	}
	in, errs := form.ToInput(testToday)
	require.Empty(t, errs)
	assert.Equal(t, domain.Married, in.Status)
	assert.Equal(t, domain.Resident, in.Residency)
	require.NotNil(t, in.SSCCategory)
	assert.Equal(t, domain.SSCBornFrom1962, *in.SSCCategory)
	assert.True(t, in.IncludeCOLA)
	assert.True(t, in.OtherChargeable.IsZero())

	form.SSCCategory = "student_18_plus"
	in, errs = form.ToInput(testToday)
	require.Empty(t, errs)
	assert.Equal(t, domain.SSCStudent18Plus, *in.SSCCategory)

	form.Year = "2024"
	form.Status = "widowed"
	_, errs = form.ToInput(testToday)
	assert.Equal(t, []string{"status"}, fields(errs), "tag failures are reported before cross-field rules")

	form.Status = "single"
	_, errs = form.ToInput(testToday)
	assert.Equal(t, []string{"year"}, fields(errs))
}

func TestSSCForm(t *testing.T) {
	in, errs := SSCForm{AnnualGross: "20000", BirthDate: "2010-01-01"}.ToInput(testToday)
	require.Empty(t, errs)
	assert.Equal(t, domain.SSCUnder18, in.Category)

	_, errs = SSCForm{AnnualGross: "20000"}.ToInput(testToday)
	assert.Equal(t, []string{"category"}, fields(errs))

	_, errs = SSCForm{AnnualGross: "20000", BirthDate: "2030-01-01"}.ToInput(testToday)
	assert.Equal(t, []string{"birth_date"}, fields(errs))
}

func TestRentalForm(t *testing.T) {
	_, errs := RentalForm{Year: "2026", Status: "single", Residency: "non-resident", GrossRent: "twelve thousand"}.ToInput(testToday)
	assert.Equal(t, []string{"gross_rent"}, fields(errs))

	in, errs := RentalForm{Year: "2026", Status: "single", Residency: "non-resident", GrossRent: "€12,000", GroundRent: "150"}.ToInput(testToday)
	require.Empty(t, errs)
	assert.Equal(t, domain.NonResident, in.Residency)
	assert.Equal(t, "150.00", in.GroundRent.String())
}

func TestNoticeForm(t *testing.T) {
	in, errs := NoticeForm{EmploymentStart: "2020-02-29", NoticeDate: "2024-08-01"}.ToInput(testToday)
	require.Empty(t, errs)
	assert.Equal(t, civil.Date{Year: 2020, Month: 2, Day: 29}, in.EmploymentStart)

	_, errs = NoticeForm{EmploymentStart: "2026-04-01", NoticeDate: "2026-05-01"}.ToInput(testToday)
	assert.Equal(t, []string{"employment_start"}, fields(errs))

	_, errs = NoticeForm{EmploymentStart: "2024-08-01", NoticeDate: "2024-08-01"}.ToInput(testToday)
	assert.Equal(t, []string{"notice_date"}, fields(errs))

	_, errs = NoticeForm{}.ToInput(testToday)
	assert.ElementsMatch(t, []string{"employment_start", "notice_date"}, fields(errs))
}

func TestAuditForm(t *testing.T) {
	tests := []struct {
		name   string
		form   AuditForm
		fields []string
	}{
		{
			name:   "merchant shipping needs no figures",
			form:   AuditForm{TaxYear: "2025", IncorporationYear: "2010", MerchantShipping: "yes"},
			fields: []string{},
		},
		{
			name:   "small group needs group figures",
			form:   AuditForm{TaxYear: "2025", IncorporationYear: "2010", IsParent: "yes", Article174Exempt: "yes"},
			fields: []string{"group_turnover", "group_balance_sheet"},
		},
		{
			name:   "company needs own figures",
			form:   AuditForm{TaxYear: "2025", IncorporationYear: "2010", Turnover: "50000"},
			fields: []string{"balance_sheet_total", "employees"},
		},
		{
			name:   "incorporated after tax year",
			form:   AuditForm{TaxYear: "2024", IncorporationYear: "2025", MerchantShipping: "yes"},
			fields: []string{"incorporation_year"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := tt.form.ToInput(testToday)
			assert.ElementsMatch(t, tt.fields, fields(errs))
		})
	}

	in, errs := AuditForm{
		TaxYear: "2025", IncorporationYear: "2024",
		Turnover: "70000", BalanceSheetTotal: "40000", Employees: "2",
	}.ToInput(testToday)
	require.Empty(t, errs)
	assert.Equal(t, 2, in.Employees)
	assert.Equal(t, 2024, in.IncorporationYear)
}

func TestDeadlineForm(t *testing.T) {
	_, errs := DeadlineForm{TaxpayerType: "individual", TaxYear: "2024", DDTExemption: "yes"}.ToInput(testToday)
	assert.Equal(t, []string{"ddt_exemption"}, fields(errs))

	_, errs = DeadlineForm{TaxpayerType: "corporate", TaxYear: "2024", YearEndMonth: "13"}.ToInput(testToday)
	assert.Equal(t, []string{"year_end_month"}, fields(errs))
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in   string
		want time.Month
		ok   bool
	}{
		{"1", time.January, true},
		{"12", time.December, true},
		{"June", time.June, true},
		{" sep ", time.September, true},
		{"0", 0, false},
		{"Juneteenth", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := parseMonth(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestValidationErrorsError(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("amount", "must be at least %d", 0)
	errs.Add("year", "is required")
	assert.EqualError(t, errs, "invalid input: amount: must be at least 0; year: is required")
	assert.True(t, errs.Has("year"))
	assert.False(t, errs.Has("status"))
	assert.ErrorIs(t, errs.Err(), ErrInvalidInput)
}
