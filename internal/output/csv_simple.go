package output

import (
	"bytes"
	"encoding/csv"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// CSVSummarizer implements the simple summary CSV output (one row per outcome, in run order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Name", "Kind", "Status", "Headline", "Value", "TaxableIncome", "TaxAmount", "PenaltyAmount", "InterestAmount", "TotalPayable"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range report.Outcomes {
		h := headlineOf(o)
		row := []string{o.Name, string(o.Kind), status(o), h.Label, h.raw()}
		if r := resultOf(o); r != nil && !o.Failed() {
			row = append(row, moneyCells(r.TaxableIncome, r.TaxAmount, r.PenaltyAmount, r.InterestAmount, r.TotalPayable)...)
		} else {
			row = append(row, "", "", "", "", "")
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func moneyCells(amounts ...decimal.Money) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.String()
	}
	return out
}
