package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/hourbank/generic"
)

// =============================================================================
// STATISTICS ENGINE - Weekly/monthly/average hours and punctuality
// =============================================================================

// PunctualityScope selects the entries a punctuality rate is computed over.
type PunctualityScope int

const (
	// EveryEntry rates each entry punch against the cutoff, so a 13:00
	// return from lunch counts as a late entry.
	EveryEntry PunctualityScope = iota
	// FirstEntryOfDay rates arrivals only: each day's earliest entry.
	FirstEntryOfDay
)

// WorkSummary figures are rounded for display: hours to one decimal (half
// up), the rate to a whole percent.
type WorkSummary struct {
	WeeklyHours       generic.Amount
	MonthlyHours      generic.Amount
	AverageDailyHours generic.Amount
	PunctualityRate   int // 0..100
}

// WorkSummary walks each day chronologically. An entry opens a shift and
// the next exit closes it; stray exits count for nothing. Unlike pairing,
// this is the summary's own walk and is independent of Calendar.Pairing.
func (c Calendar) WorkSummary(recordsByDay map[generic.Day][]Punch, now time.Time) WorkSummary {
	loc := c.loc()
	week := generic.PeriodFor(generic.PeriodWeek, now, loc)
	nowLocal := now.In(loc)

	var (
		weeklyMinutes, monthlyMinutes int64
		totalMinutes                  int64
		workedDays                    int64
		punctual, entries             int
	)

	for _, day := range SortedDays(recordsByDay) {
		var (
			dayMinutes int64
			open       *Punch
			arrived    bool
		)
		for _, p := range SortAscending(recordsByDay[day]) {
			switch p.Kind {
			case Entry:
				entry := p
				open = &entry
				if c.Punctuality == EveryEntry || !arrived {
					entries++
					if c.IsPunctual(p.Timestamp) {
						punctual++
					}
				}
				arrived = true
			case Exit:
				if open == nil {
					continue
				}
				minutes := generic.WholeMinutes(p.Timestamp.Sub(open.Timestamp))
				dayMinutes += minutes
				if week.Contains(p.Timestamp) {
					weeklyMinutes += minutes
				}
				if exit := p.Timestamp.In(loc); exit.Year() == nowLocal.Year() && exit.Month() == nowLocal.Month() {
					monthlyMinutes += minutes
				}
				open = nil
			}
		}
		if dayMinutes > 0 {
			workedDays++
			totalMinutes += dayMinutes
		}
	}

	summary := WorkSummary{
		WeeklyHours:       displayHours(generic.Minutes(weeklyMinutes)),
		MonthlyHours:      displayHours(generic.Minutes(monthlyMinutes)),
		AverageDailyHours: generic.ZeroHours(),
	}
	if workedDays > 0 {
		avg := generic.Minutes(totalMinutes).Div(decimal.NewFromInt(workedDays))
		summary.AverageDailyHours = displayHours(avg)
	}
	if entries > 0 {
		rate := decimal.NewFromInt(int64(punctual)).
			Div(decimal.NewFromInt(int64(entries))).
			Mul(decimal.NewFromInt(100))
		summary.PunctualityRate = int(generic.Amount{Value: rate}.RoundHalfUp(0).Value.IntPart())
	}
	return summary
}

// IsPunctual reports whether t's local clock time is at or before the
// cutoff, compared to the second.
func (c Calendar) IsPunctual(t time.Time) bool {
	return generic.ClockOf(t, c.loc()).Compare(c.PunctualityCutoff) <= 0
}

func displayHours(a generic.Amount) generic.Amount {
	return a.ToHours().RoundHalfUp(1)
}
