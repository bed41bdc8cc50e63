package calculation

import (
	"fmt"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
)

const probationMonths = 6

// noticeBands maps completed months of service to weeks of notice; past the
// last band one week is added per full year beyond seven, up to 12 weeks.
var noticeBands = []struct {
	upToMonths int
	weeks      int
}{
	{1, 0},
	{6, 1},
	{24, 2},
	{48, 4},
	{84, 8},
}

const maxNoticeWeeks = 12

// RequiredNoticeWeeks returns the weeks of notice owed after serviceMonths
func RequiredNoticeWeeks(serviceMonths int) int {
	if serviceMonths < probationMonths {
		if serviceMonths <= 1 {
			return 0
		}
		return 1
	}
	for _, b := range noticeBands {
		if serviceMonths <= b.upToMonths {
			return b.weeks
		}
	}
	years := serviceMonths / 12
	return min(maxNoticeWeeks, 8+(years-7))
}

// CalculateNotice computes the notice owed and the last day of employment.
// Notice runs from the first working day after it is given.
func CalculateNotice(in domain.NoticeInput) (*domain.NoticeResult, error) {
	if !in.NoticeGiven.After(in.EmploymentStart) {
		return nil, fmt.Errorf("notice date %s must be after employment start %s", in.NoticeGiven, in.EmploymentStart)
	}

	months := dateutil.MonthsBetween(in.EmploymentStart, in.NoticeGiven)
	weeks := RequiredNoticeWeeks(months)
	start := dateutil.NextWorkingDay(in.NoticeGiven)

	return &domain.NoticeResult{
		ServiceMonths: months,
		Probation:     months < probationMonths,
		Weeks:         weeks,
		NoticeStart:   start,
		LastDay:       start.AddDays(weeks*7 - 1),
	}, nil
}
