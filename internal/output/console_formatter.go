package output

import (
	"bytes"
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MALTA TAX CALCULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "As of: %s\n", report.AsOf)
	fmt.Fprintln(&buf)
	for _, o := range report.Outcomes {
		h := headlineOf(o)
		fmt.Fprintf(&buf, "%s [%s]: %s=%s\n", o.Name, o.Kind, h.Label, h.display())
	}
	s := AnalyzeReport(report)
	if s.LargestLiability != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Late filing total: %s (penalties %s, interest %s)\n",
			FormatCurrency(s.TotalPayable), FormatCurrency(s.TotalPenalty), FormatCurrency(s.TotalInterest))
	}
	if s.Failed > 0 {
		fmt.Fprintf(&buf, "%d of %d calculation(s) failed\n", s.Failed, s.Calculations)
	}
	return buf.Bytes(), nil
}
