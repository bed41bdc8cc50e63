package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mtcalc/malta-tax-engine/internal/calculation"
	"github.com/mtcalc/malta-tax-engine/internal/config"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPenaltyCmd(a *app) *cobra.Command {
	var (
		name string
		form config.LateFilingForm
	)
	cmd := &cobra.Command{
		Use:     "penalty",
		Aliases: []string{"late-filing"},
		Short:   "Late-filing penalty and interest on outstanding tax",
		Example: "  mtcalc penalty --taxpayer individual --tax-year 2022 --filed yes --submitted 2025-10-15 --outstanding yes --amount 5000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindLateFiling, Name: name, LateFiling: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Late filing", "label for the report")
	f.StringVar(&form.TaxpayerType, "taxpayer", "individual", "individual or corporate")
	f.StringVar(&form.TaxYear, "tax-year", "", "tax year (YYYY)")
	f.StringVar(&form.YearEndMonth, "year-end-month", "", "financial year end month for companies (1-12 or name)")
	f.StringVar(&form.Filed, "filed", "no", "was the return filed (yes/no)")
	f.StringVar(&form.SubmittedDate, "submitted", "", "submission date (YYYY-MM-DD)")
	f.StringVar(&form.HasOutstanding, "outstanding", "no", "is tax still outstanding (yes/no)")
	f.StringVar(&form.Amount, "amount", "", "outstanding tax amount")
	f.StringVar(&form.DDTExemption, "ddt", "no", "DDT10 exemption, companies only (yes/no)")
	f.StringVar(&form.AsOf, "as-of", "", "compute interest up to this date (YYYY-MM-DD)")
	return cmd
}

func newIncomeCmd(a *app) *cobra.Command {
	var (
		name string
		form config.IncomeTaxForm
	)
	cmd := &cobra.Command{
		Use:     "income",
		Aliases: []string{"income-tax"},
		Short:   "Personal income tax, SSC and net income",
		Example: "  mtcalc income --year 2025 --status single --gross 40000 --ssc-category born_from_1962 --cola yes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindIncomeTax, Name: name, IncomeTax: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Income tax", "label for the report")
	f.StringVar(&form.Year, "year", "", "basis year (2025-2028)")
	f.StringVar(&form.Status, "status", "single", "single, married or parent")
	f.StringVar(&form.Residency, "residency", "resident", "resident or non_resident")
	f.StringVar(&form.GrossEmployment, "gross", "", "gross employment income")
	f.StringVar(&form.OtherChargeable, "other", "", "other chargeable income")
	f.StringVar(&form.Deductions, "deductions", "", "allowable deductions")
	f.StringVar(&form.PartTimeEmployment, "part-time", "", "part-time employment income")
	f.StringVar(&form.PartTimeSelfEmployment, "part-time-self", "", "part-time self-employment income")
	f.StringVar(&form.SSCCategory, "ssc-category", "", "SSC category (overrides --birth-date)")
	f.StringVar(&form.BirthDate, "birth-date", "", "birth date used to derive the SSC category (YYYY-MM-DD)")
	f.StringVar(&form.Student, "student", "no", "full-time student (yes/no)")
	f.StringVar(&form.IncludeCOLA, "cola", "no", "add the cost-of-living adjustment (yes/no)")
	return cmd
}

func newSSCCmd(a *app) *cobra.Command {
	var (
		name string
		form config.SSCForm
	)
	cmd := &cobra.Command{
		Use:     "ssc",
		Short:   "Class 1 social security contribution",
		Example: "  mtcalc ssc --gross 40000 --birth-date 1985-04-02",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindSSC, Name: name, SSC: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Social security", "label for the report")
	f.StringVar(&form.AnnualGross, "gross", "", "annual gross income")
	f.StringVar(&form.Category, "category", "", "SSC category")
	f.StringVar(&form.BirthDate, "birth-date", "", "birth date used to derive the category (YYYY-MM-DD)")
	f.StringVar(&form.Student, "student", "no", "full-time student (yes/no)")
	return cmd
}

func newRentalCmd(a *app) *cobra.Command {
	var (
		name string
		form config.RentalForm
	)
	cmd := &cobra.Command{
		Use:     "rental",
		Short:   "Compare the 15% final rental tax with the progressive route",
		Example: "  mtcalc rental --year 2025 --status single --rent 12000 --other 30000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindRental, Name: name, Rental: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Rental income", "label for the report")
	f.StringVar(&form.Year, "year", "", "basis year (2025-2028)")
	f.StringVar(&form.Status, "status", "single", "single, married or parent")
	f.StringVar(&form.Residency, "residency", "resident", "resident or non_resident")
	f.StringVar(&form.GrossRent, "rent", "", "gross rent received")
	f.StringVar(&form.OtherChargeable, "other", "", "other chargeable income")
	f.StringVar(&form.GroundRent, "ground-rent", "", "ground rent paid")
	f.StringVar(&form.OtherExpenses, "expenses", "", "other deductible expenses (licences, interest)")
	return cmd
}

func newNoticeCmd(a *app) *cobra.Command {
	var (
		name string
		form config.NoticeForm
	)
	cmd := &cobra.Command{
		Use:     "notice",
		Short:   "Statutory notice period and last working day",
		Example: "  mtcalc notice --start 2020-02-29 --notice 2024-08-01",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindNotice, Name: name, Notice: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Notice period", "label for the report")
	f.StringVar(&form.EmploymentStart, "start", "", "employment start date (YYYY-MM-DD)")
	f.StringVar(&form.NoticeDate, "notice", "", "date notice was given (YYYY-MM-DD)")
	return cmd
}

func newAuditCmd(a *app) *cobra.Command {
	var (
		name string
		form config.AuditForm
	)
	cmd := &cobra.Command{
		Use:     "audit",
		Short:   "Audit exemption decision for a company",
		Example: "  mtcalc audit --tax-year 2025 --incorporated 2015 --turnover 70000 --balance-sheet 40000 --employees 2",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindAudit, Name: name, Audit: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Audit exemption", "label for the report")
	f.StringVar(&form.TaxYear, "tax-year", "", "tax year (YYYY)")
	f.StringVar(&form.IncorporationYear, "incorporated", "", "year of incorporation (YYYY)")
	f.StringVar(&form.MerchantShipping, "merchant-shipping", "no", "merchant shipping company (yes/no)")
	f.StringVar(&form.IsParent, "parent", "no", "parent company (yes/no)")
	f.StringVar(&form.Article174Exempt, "article-174", "no", "group exempt under Article 174 (yes/no)")
	f.StringVar(&form.Turnover, "turnover", "", "turnover")
	f.StringVar(&form.BalanceSheetTotal, "balance-sheet", "", "balance sheet total")
	f.StringVar(&form.Employees, "employees", "", "average number of employees")
	f.StringVar(&form.GroupTurnover, "group-turnover", "", "group turnover")
	f.StringVar(&form.GroupBalanceSheet, "group-balance-sheet", "", "group balance sheet total")
	return cmd
}

func newDeadlinesCmd(a *app) *cobra.Command {
	var (
		name string
		form config.DeadlineForm
	)
	cmd := &cobra.Command{
		Use:     "deadlines",
		Short:   "Filing and payment deadlines for a tax year",
		Example: "  mtcalc deadlines --taxpayer corporate --tax-year 2024 --year-end-month june",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.single(cmd, config.CalculationRequest{Kind: domain.KindDeadlines, Name: name, Deadlines: &form})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "Deadlines", "label for the report")
	f.StringVar(&form.TaxpayerType, "taxpayer", "individual", "individual or corporate")
	f.StringVar(&form.TaxYear, "tax-year", "", "tax year (YYYY)")
	f.StringVar(&form.YearEndMonth, "year-end-month", "", "financial year end month for companies")
	f.StringVar(&form.DDTExemption, "ddt", "no", "DDT10 exemption, companies only (yes/no)")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run every calculation in a YAML batch file",
		Example: "  mtcalc run -f batch.yaml -o csv",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batch, err := a.parser.LoadFromFile(file, a.todayDate())
			if err != nil {
				return err
			}
			return a.execute(cmd.Context(), batch.Today, batch.Calculations)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "batch file (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the statutory tables used by the calculators (yaml or json)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables := calculation.Tables()
			var (
				data []byte
				err  error
			)
			switch output.NormalizeFormatName(a.settings.Output) {
			case "json":
				data, err = json.MarshalIndent(tables, "", "  ")
			case "yaml", "console", "":
				data, err = yaml.Marshal(tables)
			default:
				return fmt.Errorf("tables support yaml or json output, not %q", a.settings.Output)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
