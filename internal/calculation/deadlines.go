package calculation

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
)

const (
	corporateFilingMonths = 9
	corporateDDTMonths    = 18
)

// CalculateDeadlines derives the year end and the filing and payment dates.
//
// Individuals file by 30 September and pay by 30 June of the following year.
// Companies close on the last day of their year-end month in the calendar year
// after the tax year, and both file and pay 9 months later (18 months to pay
// with a DDT10 exemption).
func CalculateDeadlines(profile domain.TaxpayerProfile, ddtExemption bool) domain.Deadlines {
	if profile.Type != domain.Corporate {
		return domain.Deadlines{
			YearEnd:         civil.Date{Year: profile.TaxYear, Month: time.December, Day: 31},
			FilingDeadline:  civil.Date{Year: profile.TaxYear + 1, Month: time.September, Day: 30},
			PaymentDeadline: civil.Date{Year: profile.TaxYear + 1, Month: time.June, Day: 30},
		}
	}

	yearEnd := dateutil.LastDayOfMonth(profile.TaxYear+1, profile.EffectiveYearEndMonth())
	paymentMonths := corporateFilingMonths
	if ddtExemption {
		paymentMonths = corporateDDTMonths
	}
	return domain.Deadlines{
		YearEnd:         yearEnd,
		FilingDeadline:  dateutil.EndOfMonthAfter(yearEnd, corporateFilingMonths),
		PaymentDeadline: dateutil.EndOfMonthAfter(yearEnd, paymentMonths),
	}
}
