package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "MALTA STATUTORY CALCULATION REPORT")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Run:    %s\n", report.RunID)
	fmt.Fprintf(&buf, "As of:  %s\n", FormatDate(report.AsOf))
	fmt.Fprintln(&buf)

	for i, o := range report.Outcomes {
		title := fmt.Sprintf("%d. %s (%s)", i+1, o.Name, o.Kind)
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("-", len(title)))
		writeOutcome(&buf, o)
		fmt.Fprintln(&buf)
	}

	s := AnalyzeReport(report)
	if s.LargestLiability != "" {
		fmt.Fprintln(&buf, "LATE FILING TOTALS")
		fmt.Fprintln(&buf, "==================")
		line(&buf, "Penalties", FormatCurrency(s.TotalPenalty))
		line(&buf, "Interest", FormatCurrency(s.TotalInterest))
		line(&buf, "Total payable", FormatCurrency(s.TotalPayable))
		line(&buf, "Largest liability", s.LargestLiability)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range reportAssumptions() {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-24s %s\n", label+":", value)
}

func writeOutcome(w io.Writer, o domain.Outcome) {
	if o.Failed() {
		fmt.Fprintln(w, "  Could not calculate:")
		for _, e := range o.Errors {
			fmt.Fprintf(w, "  ! %s: %s\n", e.Field, e.Message)
		}
		return
	}
	switch {
	case o.LateFiling != nil:
		writeLateFiling(w, o.LateFiling)
	case o.IncomeTax != nil:
		writeIncomeTax(w, o.IncomeTax)
	case o.SSC != nil:
		writeSSC(w, o.SSC)
	case o.Rental != nil:
		r := o.Rental
		line(w, "Gross rent", FormatCurrency(r.GrossRent))
		line(w, "Final tax (15%)", FormatCurrency(r.FinalTax))
		line(w, "Maintenance (20%)", FormatCurrency(r.MaintenanceAllowed))
		line(w, "Net rent", FormatCurrency(r.NetRent))
		line(w, "Progressive tax", FormatCurrency(r.ProgressiveTax))
		line(w, "Recommended", string(r.Recommended))
		line(w, "Saving", FormatCurrency(r.Saving))
	case o.Notice != nil:
		n := o.Notice
		line(w, "Service", fmt.Sprintf("%d month(s)", n.ServiceMonths))
		line(w, "On probation", boolToString(n.Probation))
		line(w, "Notice", fmt.Sprintf("%d week(s)", n.Weeks))
		line(w, "Notice starts", FormatDate(n.NoticeStart))
		line(w, "Last day", FormatDate(n.LastDay))
	case o.Audit != nil:
		a := o.Audit
		line(w, "Rule", a.Rule)
		if a.Of > 0 {
			line(w, "Criteria met", fmt.Sprintf("%d of %d", a.Satisfied, a.Of))
		}
		line(w, "Outcome", a.Outcome.Label())
		line(w, "Reason", a.Reason)
	case o.Deadlines != nil:
		writeDeadlines(w, *o.Deadlines)
	}
}

func writeDeadlines(w io.Writer, d domain.Deadlines) {
	line(w, "Year end", FormatDate(d.YearEnd))
	line(w, "Filing deadline", FormatDate(d.FilingDeadline))
	line(w, "Payment deadline", FormatDate(d.PaymentDeadline))
}

func writeLateFiling(w io.Writer, r *domain.LateFilingResult) {
	writeDeadlines(w, r.Deadlines)
	line(w, "Months late", intToString(r.MonthsLate))
	if r.PenaltyTier != "" {
		line(w, "Penalty tier", r.PenaltyTier)
	}
	line(w, "Outstanding tax", FormatCurrency(r.Result.TaxAmount))
	line(w, "Penalty", FormatCurrency(r.Result.PenaltyAmount))
	line(w, "Interest", FormatCurrency(r.Result.InterestAmount))
	for _, p := range r.Result.InterestBreakdown {
		fmt.Fprintf(w, "    %-18s %s to %s  %d day(s), %d month(s) at %s  %s\n",
			p.Label, p.From, p.To, p.Days, p.Months, p.MonthlyRate, FormatCurrency(p.Amount))
	}
	line(w, "TOTAL PAYABLE", FormatCurrency(r.Result.TotalPayable))
}

func writeIncomeTax(w io.Writer, r *domain.IncomeTaxResult) {
	line(w, "Chargeable income", FormatCurrency(r.Result.TaxableIncome))
	for _, b := range r.Bands {
		fmt.Fprintf(w, "    %-28s %6s  on %s = %s\n", b.Label, b.Rate, FormatCurrency(b.Income), FormatCurrency(b.Tax))
	}
	line(w, "Tax on chargeable", FormatCurrency(r.ChargeableTax))
	for _, p := range r.PartTime {
		fmt.Fprintf(w, "    part-time %-16s flat-taxed %s, tax %s, excess %s\n",
			p.Source, FormatCurrency(p.FlatTaxed), FormatCurrency(p.FlatTax), FormatCurrency(p.Excess))
	}
	if len(r.PartTime) > 0 {
		line(w, "Part-time tax", FormatCurrency(r.PartTimeTax))
	}
	line(w, "Total tax", FormatCurrency(r.Result.TaxAmount))
	line(w, "Marginal rate", r.MarginalRate)
	line(w, "Effective rate", r.EffectiveRate)
	if r.SSC != nil {
		line(w, "SSC ("+string(r.SSC.Category)+")", FormatCurrency(r.SSC.Annual))
	}
	if r.COLA.IsPositive() {
		line(w, "COLA", FormatCurrency(r.COLA))
	}
	line(w, "NET INCOME", FormatCurrency(r.NetIncome))
}

func writeSSC(w io.Writer, r *domain.SSCResult) {
	line(w, "Category", string(r.Category))
	line(w, "Weekly gross", FormatCurrency(r.WeeklyGross))
	line(w, "Weekly SSC", FormatCurrency(r.Weekly))
	line(w, "Annual SSC", FormatCurrency(r.Annual))
}
