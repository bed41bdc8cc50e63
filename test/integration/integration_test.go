package integration

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/calculation"
	"github.com/mtcalc/malta-tax-engine/internal/config"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchFile = "../testdata/batch.yaml"

func runBatch(t *testing.T) *domain.Report {
	t.Helper()
	parser := config.NewInputParser()
	batch, err := parser.LoadFromFile(batchFile, civil.Date{Year: 2030, Month: 1, Day: 1})
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }
	report, err := engine.Run(context.Background(), batch.Today, batch.Calculations)
	require.NoError(t, err)
	return report
}

func outcome(t *testing.T, report *domain.Report, name string) domain.Outcome {
	t.Helper()
	o, ok := lo.Find(report.Outcomes, func(o domain.Outcome) bool { return o.Name == name })
	require.True(t, ok, "no outcome named %q", name)
	return o
}

func TestBatchEndToEnd(t *testing.T) {
	report := runBatch(t)

	assert.Equal(t, civil.Date{Year: 2026, Month: 10, Day: 18}, report.AsOf, "batch file pins the run date")
	require.Len(t, report.Outcomes, 9)
	assert.Equal(t, 1, report.FailedCount())
	assert.NotEmpty(t, report.RunID)

	company := outcome(t, report, "Company 2022 unfiled")
	require.NotNil(t, company.LateFiling)
	assert.Equal(t, 24, company.LateFiling.MonthsLate)
	assert.Equal(t, "800.00", company.LateFiling.Result.PenaltyAmount.String())
	assert.Equal(t, "1500.00", company.LateFiling.Result.InterestAmount.String())
	assert.Equal(t, "12300.00", company.LateFiling.Result.TotalPayable.String())

	person := outcome(t, report, "Individual 2023 one month late")
	require.NotNil(t, person.LateFiling)
	assert.Equal(t, 1, person.LateFiling.MonthsLate)
	assert.Equal(t, "2070.00", person.LateFiling.Result.TotalPayable.String())

	income := outcome(t, report, "Employee 2025")
	require.NotNil(t, income.IncomeTax)
	assert.Equal(t, "4725.00", income.IncomeTax.Result.TaxAmount.String())
	assert.Equal(t, "32717.12", income.IncomeTax.NetIncome.String())

	ssc := outcome(t, report, "SSC on 40k")
	require.NotNil(t, ssc.SSC)
	assert.Equal(t, "2830.36", ssc.SSC.Annual.String())

	rental := outcome(t, report, "Flat in Sliema")
	require.NotNil(t, rental.Rental)
	assert.Equal(t, "1800.00", rental.Rental.FinalTax.String())

	notice := outcome(t, report, "Resignation")
	require.NotNil(t, notice.Notice)
	assert.Equal(t, 8, notice.Notice.Weeks)
	assert.Equal(t, civil.Date{Year: 2024, Month: 8, Day: 5}, notice.Notice.LastDay)

	audit := outcome(t, report, "Start-up")
	require.NotNil(t, audit.Audit)
	assert.Equal(t, domain.AuditExempt, audit.Audit.Outcome)

	deadlines := outcome(t, report, "June year end")
	require.NotNil(t, deadlines.Deadlines)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 31}, deadlines.Deadlines.FilingDeadline)

	missing := outcome(t, report, "Missing category")
	assert.True(t, missing.Failed())
	assert.Nil(t, missing.SSC)
	assert.Equal(t, "category", missing.Errors[0].Field)
}

func TestBatchIsDeterministic(t *testing.T) {
	first, second := runBatch(t), runBatch(t)
	require.Len(t, second.Outcomes, len(first.Outcomes))
	for i := range first.Outcomes {
		assert.Equal(t, first.Outcomes[i], second.Outcomes[i])
	}
	assert.NotEqual(t, first.RunID, second.RunID)
}
