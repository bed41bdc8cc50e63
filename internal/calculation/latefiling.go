package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// LateFilingCalculator combines the filing penalty and the interest on unpaid tax
type LateFilingCalculator struct {
	Logger Logger
}

// NewLateFilingCalculator creates a new late filing calculator
func NewLateFilingCalculator(logger Logger) *LateFilingCalculator {
	return &LateFilingCalculator{Logger: orNop(logger)}
}

// Calculate measures lateness from the filing deadline to the submission date,
// or to AsOf when the return was never filed, and accrues interest on any
// outstanding tax from the payment deadline to AsOf.
func (c *LateFilingCalculator) Calculate(in domain.LateFilingInput) (*domain.LateFilingResult, error) {
	deadlines := CalculateDeadlines(in.Profile, in.Outstanding.DDTExemption)

	reference := in.AsOf
	if in.Filing.Filed && in.Filing.Submitted != nil {
		reference = *in.Filing.Submitted
	}
	monthsLate := max(0, dateutil.MonthsBetween(deadlines.FilingDeadline, reference))

	tier, late, err := LookupPenalty(in.Profile.Type, monthsLate)
	if err != nil {
		return nil, fmt.Errorf("late filing: %w", err)
	}

	penalty := decimal.Zero()
	res := &domain.LateFilingResult{Deadlines: deadlines, MonthsLate: monthsLate}
	if late {
		penalty = tier.Amount
		res.PenaltyTier = tier.Label
	}

	outstanding := decimal.Zero()
	if in.Outstanding.HasOutstanding {
		outstanding = in.Outstanding.Amount.ClampZero()
	}
	interest, breakdown := AccrueInterest(outstanding, deadlines.PaymentDeadline, in.AsOf)

	res.Result = domain.CalculationResult{
		TaxableIncome:     decimal.Zero(),
		TaxAmount:         outstanding,
		PenaltyAmount:     penalty,
		InterestAmount:    interest,
		InterestBreakdown: breakdown,
		TotalPayable:      decimal.Sum(outstanding, penalty, interest),
	}

	c.Logger.Debugf("late filing %s %d: months late=%d penalty=%s interest=%s",
		in.Profile.Type, in.Profile.TaxYear, monthsLate, penalty, interest)
	return res, nil
}
