package output

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
)

// Summary aggregates a report for the headline block of each formatter.
type Summary struct {
	Calculations  int
	Failed        int
	TotalPenalty  decimal.Money
	TotalInterest decimal.Money
	TotalPayable  decimal.Money
	// LargestLiability names the late-filing outcome with the highest total payable.
	LargestLiability string
}

// AnalyzeReport totals the late-filing liabilities in a report.
// Extracted from the formatters for testability.
func AnalyzeReport(report *domain.Report) Summary {
	s := Summary{
		Calculations:  len(report.Outcomes),
		Failed:        report.FailedCount(),
		TotalPenalty:  decimal.Zero(),
		TotalInterest: decimal.Zero(),
		TotalPayable:  decimal.Zero(),
	}
	late := lo.Filter(report.Outcomes, func(o domain.Outcome, _ int) bool { return o.LateFiling != nil })
	if len(late) == 0 {
		return s
	}
	largest := late[0]
	for _, o := range late {
		r := o.LateFiling.Result
		s.TotalPenalty = s.TotalPenalty.Add(r.PenaltyAmount)
		s.TotalInterest = s.TotalInterest.Add(r.InterestAmount)
		s.TotalPayable = s.TotalPayable.Add(r.TotalPayable)
		if r.TotalPayable.GreaterThan(largest.LateFiling.Result.TotalPayable) {
			largest = o
		}
	}
	s.LargestLiability = largest.Name
	return s
}

// headline is the one-line answer of an outcome
type headline struct {
	Label  string
	Text   string
	Amount *decimal.Money
}

// display renders the headline for people
func (h headline) display() string {
	if h.Amount != nil {
		return FormatCurrency(*h.Amount)
	}
	return h.Text
}

// raw renders the headline for machines
func (h headline) raw() string {
	if h.Amount != nil {
		return h.Amount.String()
	}
	return h.Text
}

func headlineOf(o domain.Outcome) headline {
	switch {
	case o.Failed():
		return headline{Label: "Error", Text: fmt.Sprintf("%s: %s", o.Errors[0].Field, o.Errors[0].Message)}
	case o.LateFiling != nil:
		return headline{Label: "Total payable", Amount: &o.LateFiling.Result.TotalPayable}
	case o.IncomeTax != nil:
		return headline{Label: "Net income", Amount: &o.IncomeTax.NetIncome}
	case o.SSC != nil:
		return headline{Label: "Annual SSC", Amount: &o.SSC.Annual}
	case o.Rental != nil:
		return headline{Label: "Recommended", Text: string(o.Rental.Recommended)}
	case o.Notice != nil:
		return headline{Label: "Last day", Text: o.Notice.LastDay.String()}
	case o.Audit != nil:
		return headline{Label: "Outcome", Text: string(o.Audit.Outcome)}
	case o.Deadlines != nil:
		return headline{Label: "Filing deadline", Text: o.Deadlines.FilingDeadline.String()}
	}
	return headline{Label: "Result", Text: "-"}
}

// resultOf returns the calculation result carried by an outcome, if any
func resultOf(o domain.Outcome) *domain.CalculationResult {
	switch {
	case o.LateFiling != nil:
		return &o.LateFiling.Result
	case o.IncomeTax != nil:
		return &o.IncomeTax.Result
	}
	return nil
}

func status(o domain.Outcome) string {
	if o.Failed() {
		return "failed"
	}
	return "ok"
}
