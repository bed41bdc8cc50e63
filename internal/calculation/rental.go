package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	stddec "github.com/shopspring/decimal"
)

// RentalCalculator compares the final 15% rental tax with the progressive route
type RentalCalculator struct {
	Logger Logger
}

// NewRentalCalculator creates a new rental calculator
func NewRentalCalculator(logger Logger) *RentalCalculator {
	return &RentalCalculator{Logger: orNop(logger)}
}

var (
	rentalFinalRate = stddec.RequireFromString("0.15")
	maintenanceRate = stddec.RequireFromString("0.20")
)

// Calculate returns both options. The progressive option taxes net rent
// (gross less 20% maintenance, ground rent and other expenses) as the marginal
// difference on top of other chargeable income. Ties favour the final tax.
func (c *RentalCalculator) Calculate(in domain.RentalInput) (*domain.RentalResult, error) {
	table, err := SelectBrackets(in.Year, in.Status, in.Residency)
	if err != nil {
		return nil, fmt.Errorf("rental: %w", err)
	}

	gross := in.GrossRent.ClampZero()
	finalTax := gross.ApplyRate(rentalFinalRate).Round()
	maintenance := gross.ApplyRate(maintenanceRate).Round()
	net := gross.Sub(maintenance).Sub(in.GroundRent).Sub(in.OtherExpenses).ClampZero()

	base := in.OtherChargeable.ClampZero()
	progressive := EvaluateBrackets(base.Add(net), table.Brackets).
		Sub(EvaluateBrackets(base, table.Brackets)).
		ClampZero()

	res := &domain.RentalResult{
		GrossRent:          gross,
		FinalTax:           finalTax,
		MaintenanceAllowed: maintenance,
		NetRent:            net.Round(),
		ProgressiveTax:     progressive,
		Recommended:        domain.RentalFinal,
	}
	if progressive.LessThan(finalTax) {
		res.Recommended = domain.RentalProgressive
		res.Saving = finalTax.Sub(progressive)
	} else {
		res.Saving = progressive.Sub(finalTax)
	}

	c.Logger.Debugf("rental %d: final=%s progressive=%s recommended=%s", in.Year, finalTax, progressive, res.Recommended)
	return res, nil
}
