package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
)

// IncomeTaxCalculator computes personal income tax and net pay for one year
type IncomeTaxCalculator struct {
	Logger Logger
}

// NewIncomeTaxCalculator creates a new income tax calculator
func NewIncomeTaxCalculator(logger Logger) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Logger: orNop(logger)}
}

// Calculate runs the full personal computation:
//
//	chargeable = gross + other + part-time excess − deductions
//	total tax  = bracket tax on chargeable + flat part-time tax
//	net income = gross + other + part-time − total tax − annual SSC + COLA
func (c *IncomeTaxCalculator) Calculate(in domain.IncomeTaxInput) (*domain.IncomeTaxResult, error) {
	table, err := SelectBrackets(in.Year, in.Status, in.Residency)
	if err != nil {
		return nil, fmt.Errorf("income tax: %w", err)
	}

	var splits []domain.FlatRateSplit
	parts := []struct {
		source domain.PartTimeSource
		amount decimal.Money
	}{
		{domain.PartTimeEmployment, in.PartTimeEmployment},
		{domain.PartTimeSelfEmployment, in.PartTimeSelfEmployment},
	}
	for _, p := range parts {
		if !p.amount.IsPositive() {
			continue
		}
		rule, err := FlatRateRuleFor(p.source)
		if err != nil {
			return nil, err
		}
		splits = append(splits, SplitFlatRate(p.amount, rule))
	}

	excess := decimal.Sum(lo.Map(splits, func(s domain.FlatRateSplit, _ int) decimal.Money { return s.Excess })...)
	partTimeTax := decimal.Sum(lo.Map(splits, func(s domain.FlatRateSplit, _ int) decimal.Money { return s.FlatTax })...)

	gross := in.GrossEmployment.Add(in.OtherChargeable)
	chargeable := gross.Add(excess).Sub(in.Deductions).ClampZero()
	chargeableTax := EvaluateBrackets(chargeable, table.Brackets)
	totalTax := chargeableTax.Add(partTimeTax)

	res := &domain.IncomeTaxResult{
		Result: domain.CalculationResult{
			TaxableIncome:     chargeable.Round(),
			TaxAmount:         totalTax,
			InterestBreakdown: []domain.PeriodContribution{},
			TotalPayable:      totalTax,
		},
		ChargeableTax: chargeableTax,
		PartTime:      splits,
		PartTimeTax:   partTimeTax,
		Bands:         BandBreakdown(chargeable, table.Brackets),
		COLA:          decimal.Zero(),
	}

	if b, ok := FindBracket(chargeable, table.Brackets); ok {
		res.MarginalRate = FormatRate(b.Rate)
	}

	annualSSC := decimal.Zero()
	if in.SSCCategory != nil {
		ssc, err := CalculateSSC(domain.SSCInput{AnnualGross: in.GrossEmployment, Category: *in.SSCCategory})
		if err != nil {
			return nil, fmt.Errorf("income tax: %w", err)
		}
		res.SSC = ssc
		annualSSC = ssc.Annual
	}

	if in.IncludeCOLA {
		res.COLA = AnnualCOLA(in.Year)
	}

	partTime := in.PartTimeEmployment.ClampZero().Add(in.PartTimeSelfEmployment.ClampZero())
	totalIncome := gross.Add(partTime)
	res.NetIncome = totalIncome.Sub(totalTax).Sub(annualSSC).Add(res.COLA).Round()
	res.EffectiveRate = effectiveRate(totalTax, totalIncome)

	c.Logger.Debugf("income tax %d/%s/%s: chargeable=%s tax=%s net=%s",
		in.Year, in.Status, in.Residency, chargeable, totalTax, res.NetIncome)
	return res, nil
}

func effectiveRate(tax, income decimal.Money) string {
	if !income.IsPositive() {
		return "0%"
	}
	return tax.Decimal.Div(income.Decimal).Shift(2).Round(2).String() + "%"
}
