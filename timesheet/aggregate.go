package timesheet

import (
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// PERIOD AGGREGATOR - Worked vs expected hours over [start, end]
// =============================================================================

// WorkedMinutes filters punches to [start, end] (inclusive), groups them by
// local day, pairs each day and sums the interval minutes. end is never
// padded: a caller meaning "through Friday" passes Friday 23:59:59.
func (c Calendar) WorkedMinutes(punches []Punch, start, end time.Time) int64 {
	window := generic.Period{Start: start, End: end}
	byDay := GroupByDay(InPeriod(punches, window), c.loc())

	var total int64
	for day, onDay := range byDay {
		total += TotalMinutes(pairDay(day, onDay, c.Pairing))
	}
	return total
}

// WorkedHours is WorkedMinutes / 60, unrounded.
func (c Calendar) WorkedHours(punches []Punch, start, end time.Time) generic.Amount {
	return generic.Minutes(c.WorkedMinutes(punches, start, end)).ToHours()
}

// ExpectedHours counts work days in the calendar's zone.
func (c Calendar) ExpectedHours(start, end time.Time, resolved ResolvedSchedule) generic.Amount {
	return ExpectedHours(start.In(c.loc()), end.In(c.loc()), resolved)
}

// PeriodSummary compares worked time against the schedule for one range.
type PeriodSummary struct {
	Period        generic.Period
	WorkedHours   generic.Amount
	ExpectedHours generic.Amount
	BalanceHours  generic.Amount // Worked - Expected
}

// Summarize combines WorkedHours and ExpectedHours over [start, end].
func (c Calendar) Summarize(punches []Punch, start, end time.Time, schedule *WorkSchedule) PeriodSummary {
	worked := c.WorkedHours(punches, start, end)
	expected := c.ExpectedHours(start, end, ResolveSchedule(schedule))
	return PeriodSummary{
		Period:        generic.Period{Start: start, End: end},
		WorkedHours:   worked,
		ExpectedHours: expected,
		BalanceHours:  worked.Sub(expected),
	}
}
