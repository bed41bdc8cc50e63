package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/samber/lo"
)

func tier(within domain.MonthLimit, amount, label string) domain.PenaltyTier {
	return domain.PenaltyTier{Within: within, Amount: decimal.MustMoney(amount), Label: label}
}

var penaltySchedules = map[domain.TaxpayerType][]domain.PenaltyTier{
	domain.Individual: {
		tier(domain.WithinMonths(1), "10", "up to 1 month late"),
		tier(domain.WithinMonths(6), "50", "up to 6 months late"),
		tier(domain.WithinMonths(12), "100", "up to 12 months late"),
		tier(domain.WithinMonths(18), "200", "up to 18 months late"),
		tier(domain.WithinMonths(24), "400", "up to 24 months late"),
		tier(domain.AnyMonths(), "600", "more than 24 months late"),
	},
	domain.Corporate: {
		tier(domain.WithinMonths(6), "200", "up to 6 months late"),
		tier(domain.WithinMonths(12), "400", "up to 12 months late"),
		tier(domain.WithinMonths(18), "600", "up to 18 months late"),
		tier(domain.WithinMonths(24), "800", "up to 24 months late"),
		tier(domain.AnyMonths(), "1000", "more than 24 months late"),
	},
}

// PenaltySchedule returns the ordered tiers for a taxpayer type
func PenaltySchedule(t domain.TaxpayerType) ([]domain.PenaltyTier, error) {
	tiers, ok := penaltySchedules[t]
	if !ok {
		return nil, fmt.Errorf("%w: taxpayer type %q", ErrUnknownCategory, t)
	}
	return append([]domain.PenaltyTier(nil), tiers...), nil
}

// LookupPenalty returns the first tier whose threshold is at least monthsLate.
// Returns false when the return is not late (monthsLate <= 0).
func LookupPenalty(t domain.TaxpayerType, monthsLate int) (domain.PenaltyTier, bool, error) {
	tiers, ok := penaltySchedules[t]
	if !ok {
		return domain.PenaltyTier{}, false, fmt.Errorf("%w: taxpayer type %q", ErrUnknownCategory, t)
	}
	if monthsLate <= 0 {
		return domain.PenaltyTier{}, false, nil
	}
	found, ok := lo.Find(tiers, func(pt domain.PenaltyTier) bool {
		return pt.Within.Admits(monthsLate)
	})
	return found, ok, nil
}
