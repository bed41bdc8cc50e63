package calculation

import (
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// COLARate is one year's weekly cost-of-living adjustment
type COLARate struct {
	Year   int           `json:"year" yaml:"year"`
	Weekly decimal.Money `json:"weekly" yaml:"weekly"`
	Annual decimal.Money `json:"annual" yaml:"annual"`
}

// TableSet is every static table the engine uses, for display and auditing
type TableSet struct {
	Brackets  []domain.BracketTable                        `json:"brackets" yaml:"brackets"`
	FlatRates []domain.FlatRateRule                        `json:"flat_rates" yaml:"flat_rates"`
	SSC       []domain.SSCRule                             `json:"ssc" yaml:"ssc"`
	Penalties map[domain.TaxpayerType][]domain.PenaltyTier `json:"penalties" yaml:"penalties"`
	Interest  []domain.InterestPeriod                      `json:"interest" yaml:"interest"`
	COLA      []COLARate                                   `json:"cola" yaml:"cola"`
	Audit     map[AuditRule]AuditThresholds                `json:"audit_thresholds" yaml:"audit_thresholds"`
}

// Tables returns a copy of all static tables
func Tables() TableSet {
	penalties := make(map[domain.TaxpayerType][]domain.PenaltyTier, len(penaltySchedules))
	for t := range penaltySchedules {
		penalties[t], _ = PenaltySchedule(t)
	}
	audit := make(map[AuditRule]AuditThresholds, len(auditThresholds))
	for r, t := range auditThresholds {
		audit[r] = t
	}

	var cola []COLARate
	for _, year := range supportedYears {
		if weekly, ok := COLAWeekly(year); ok {
			cola = append(cola, COLARate{Year: year, Weekly: weekly, Annual: AnnualCOLA(year)})
		}
	}

	return TableSet{
		Brackets:  AllBracketTables(),
		FlatRates: FlatRateRules(),
		SSC:       SSCRules(),
		Penalties: penalties,
		Interest:  InterestPeriods(),
		COLA:      cola,
		Audit:     audit,
	}
}
