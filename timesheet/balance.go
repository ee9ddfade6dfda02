package timesheet

import (
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// HOUR BANK - Month-to-date balance and current-week hours
// =============================================================================

// HourBank is the hour-bank query result. MonthlyBalance always equals
// Balance; both are kept for wire compatibility.
type HourBank struct {
	AsOf  time.Time
	Month generic.Period // [startOfMonth(now), now]
	Week  generic.Period // Monday 00:00 .. Sunday 23:59:59.999999999

	TotalWorkedHours generic.Amount
	ExpectedHours    generic.Amount
	Balance          generic.Amount
	WeeklyHours      generic.Amount
	MonthlyBalance   generic.Amount
}

// HourBankWindow returns the month-to-date and ISO-week windows for now.
// Sources must supply punches covering Month.Union(Week).
func (c Calendar) HourBankWindow(now time.Time) (month, week generic.Period) {
	month = generic.ToDate(generic.PeriodMonth, now, c.loc())
	week = generic.PeriodFor(generic.PeriodWeek, now, c.loc())
	return month, week
}

// HourBank computes the balance of one owner as of now.
func (c Calendar) HourBank(punches []Punch, schedule *WorkSchedule, now time.Time) HourBank {
	month, week := c.HourBankWindow(now)
	summary := c.Summarize(punches, month.Start, month.End, schedule)

	return HourBank{
		AsOf:             now,
		Month:            month,
		Week:             week,
		TotalWorkedHours: summary.WorkedHours,
		ExpectedHours:    summary.ExpectedHours,
		Balance:          summary.BalanceHours,
		WeeklyHours:      c.WorkedHours(punches, week.Start, week.End),
		MonthlyBalance:   summary.BalanceHours,
	}
}
