package output

import (
	"bytes"
	"encoding/csv"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
)

// CSVDetailedExporter writes one row per line item: interest periods, penalty,
// tax bands, part-time splits and the rental options.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

var detailedHeader = []string{"Name", "Kind", "Section", "Item", "From", "To", "Days", "Months", "Rate", "Base", "Amount"}

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(detailedHeader); err != nil {
		return nil, err
	}
	for _, o := range report.Outcomes {
		for _, item := range detailRows(o) {
			row := append([]string{o.Name, string(o.Kind)}, item...)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// detailRows returns the rows of one outcome without the Name and Kind columns
func detailRows(o domain.Outcome) [][]string {
	var rows [][]string
	add := func(section, item, from, to, days, months, rate, base, amount string) {
		rows = append(rows, []string{section, item, from, to, days, months, rate, base, amount})
	}
	if o.Failed() {
		for _, e := range o.Errors {
			add("error", e.Field, "", "", "", "", "", "", e.Message)
		}
		return rows
	}

	switch {
	case o.LateFiling != nil:
		r := o.LateFiling
		add("penalty", r.PenaltyTier, "", "", "", intToString(r.MonthsLate), "", "", r.Result.PenaltyAmount.String())
		for _, p := range r.Result.InterestBreakdown {
			add("interest", p.Label, p.From.String(), p.To.String(), intToString(p.Days), intToString(p.Months),
				p.MonthlyRate, r.Result.TaxAmount.String(), p.Amount.String())
		}
		add("total", "total_payable", "", "", "", "", "", "", r.Result.TotalPayable.String())
	case o.IncomeTax != nil:
		r := o.IncomeTax
		for _, b := range r.Bands {
			add("band", b.Label, "", "", "", "", b.Rate, b.Income.String(), b.Tax.String())
		}
		for _, p := range r.PartTime {
			add("part_time", string(p.Source), "", "", "", "", "", p.FlatTaxed.String(), p.FlatTax.String())
		}
		if r.SSC != nil {
			add("ssc", string(r.SSC.Category), "", "", "", "", "", r.SSC.WeeklyGross.String(), r.SSC.Annual.String())
		}
		add("cola", "cola", "", "", "", "", "", "", r.COLA.String())
		add("total", "net_income", "", "", "", "", r.EffectiveRate, r.Result.TaxAmount.String(), r.NetIncome.String())
	case o.Rental != nil:
		r := o.Rental
		add("rental", string(domain.RentalFinal), "", "", "", "", "15%", r.GrossRent.String(), r.FinalTax.String())
		add("rental", string(domain.RentalProgressive), "", "", "", "", "", r.NetRent.String(), r.ProgressiveTax.String())
	}
	return rows
}
