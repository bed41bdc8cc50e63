package calculation

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
)

// CalculationEngine orchestrates all statutory calculations
type CalculationEngine struct {
	IncomeTax  *IncomeTaxCalculator
	Rental     *RentalCalculator
	LateFiling *LateFilingCalculator
	Logger     Logger
	// Now stamps reports; tests pin it.
	Now func() time.Time
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	logger := NopLogger{}
	return &CalculationEngine{
		IncomeTax:  NewIncomeTaxCalculator(logger),
		Rental:     NewRentalCalculator(logger),
		LateFiling: NewLateFilingCalculator(logger),
		Logger:     logger,
		Now:        time.Now,
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	l = orNop(l)
	ce.Logger = l
	ce.IncomeTax.Logger = l
	ce.Rental.Logger = l
	ce.LateFiling.Logger = l
}

// Evaluate runs a single calculation. Validation problems carried on the
// calculation and calculator errors are both reported on the outcome.
func (ce *CalculationEngine) Evaluate(calc domain.Calculation) domain.Outcome {
	out := domain.Outcome{Name: calc.Name, Kind: calc.Kind}
	if len(calc.Errors) > 0 {
		ce.Logger.Warnf("calculation %q (%s) failed validation: %d problem(s)", calc.Name, calc.Kind, len(calc.Errors))
		out.Errors = calc.Errors
		return out
	}

	if err := ce.evaluate(calc, &out); err != nil {
		ce.Logger.Warnf("calculation %q (%s) failed: %v", calc.Name, calc.Kind, err)
		out.Errors = []domain.FieldError{{Field: string(calc.Kind), Message: err.Error()}}
	}
	return out
}

func (ce *CalculationEngine) evaluate(calc domain.Calculation, out *domain.Outcome) error {
	var err error
	switch calc.Kind {
	case domain.KindLateFiling:
		if calc.LateFiling == nil {
			return errMissingInput
		}
		out.LateFiling, err = ce.LateFiling.Calculate(*calc.LateFiling)
	case domain.KindIncomeTax:
		if calc.IncomeTax == nil {
			return errMissingInput
		}
		out.IncomeTax, err = ce.IncomeTax.Calculate(*calc.IncomeTax)
	case domain.KindSSC:
		if calc.SSC == nil {
			return errMissingInput
		}
		out.SSC, err = CalculateSSC(*calc.SSC)
	case domain.KindRental:
		if calc.Rental == nil {
			return errMissingInput
		}
		out.Rental, err = ce.Rental.Calculate(*calc.Rental)
	case domain.KindNotice:
		if calc.Notice == nil {
			return errMissingInput
		}
		out.Notice, err = CalculateNotice(*calc.Notice)
	case domain.KindAudit:
		if calc.Audit == nil {
			return errMissingInput
		}
		out.Audit, err = DecideAudit(*calc.Audit)
	case domain.KindDeadlines:
		if calc.Deadlines == nil {
			return errMissingInput
		}
		d := CalculateDeadlines(calc.Deadlines.Profile, calc.Deadlines.DDTExemption)
		out.Deadlines = &d
	default:
		return fmt.Errorf("%w: calculation kind %q", ErrUnknownCategory, calc.Kind)
	}
	return err
}

// Run evaluates every calculation in order and collects the outcomes into a report
func (ce *CalculationEngine) Run(ctx context.Context, asOf civil.Date, calcs []domain.Calculation) (*domain.Report, error) {
	report := &domain.Report{
		RunID:       uuid.NewString(),
		AsOf:        asOf,
		GeneratedAt: ce.Now().UTC(),
		Outcomes:    make([]domain.Outcome, 0, len(calcs)),
	}
	ce.Logger.Debugf("run %s: %d calculation(s) as of %s", report.RunID, len(calcs), asOf)

	for _, calc := range calcs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s cancelled: %w", report.RunID, err)
		}
		ce.Logger.Debugf("run %s: evaluating %q (%s)", report.RunID, calc.Name, calc.Kind)
		report.Outcomes = append(report.Outcomes, ce.Evaluate(calc))
	}

	ce.Logger.Infof("run %s finished: %d calculation(s), %d failed", report.RunID, len(report.Outcomes), report.FailedCount())
	return report, nil
}
