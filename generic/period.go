package generic

import "time"

// =============================================================================
// PERIOD - Inclusive instant range used for every aggregation
// =============================================================================

// Period is an instant range [Start, End], inclusive on both bounds.
//
// The aggregator never pads End. Callers that mean "through the end of
// that day" must pass an End at 23:59:59 (see PeriodFor / Day.End).
//
// Examples:
//   - A day:        2025-03-10 00:00 .. 2025-03-10 23:59:59.999999999
//   - An ISO week:  Monday 00:00 .. Sunday 23:59:59.999999999
//   - Month to date: 2025-03-01 00:00 .. now
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if t is within [Start, End].
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Validate returns ErrInvalidPeriod when End is before Start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Days returns the local calendar days touched by the period.
func (p Period) Days(loc *time.Location) []Day {
	if p.End.Before(p.Start) {
		return nil
	}
	var days []Day
	last := DayOf(p.End, loc)
	for d := DayOf(p.Start, loc); d.BeforeOrEqual(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Union returns the smallest period covering both p and other.
func (p Period) Union(other Period) Period {
	u := p
	if other.Start.Before(u.Start) {
		u.Start = other.Start
	}
	if other.End.After(u.End) {
		u.End = other.End
	}
	return u
}

func (p Period) String() string {
	return "[" + p.Start.Format(time.RFC3339) + ", " + p.End.Format(time.RFC3339) + "]"
}

// PeriodKind selects the calendar unit a period spans.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"  // ISO week, Monday start
	PeriodMonth PeriodKind = "month" // calendar month
)

// =============================================================================
// PERIOD CALCULATOR - Determines which period an instant falls into
// =============================================================================

// PeriodFor returns the full period of the given kind containing at,
// evaluated in loc.
func PeriodFor(kind PeriodKind, at time.Time, loc *time.Location) Period {
	if loc != nil {
		at = at.In(loc)
	}
	switch kind {
	case PeriodWeek:
		return Period{Start: StartOfISOWeek(at), End: EndOfISOWeek(at)}
	case PeriodMonth:
		return Period{Start: StartOfMonth(at), End: EndOfMonth(at)}
	default:
		return Period{Start: StartOfDay(at), End: EndOfDay(at)}
	}
}

// ToDate returns the period of the given kind containing now, truncated at
// now ("month to date", "week to date").
func ToDate(kind PeriodKind, now time.Time, loc *time.Location) Period {
	p := PeriodFor(kind, now, loc)
	p.End = now
	return p
}

// DayPeriod returns the full local-day span from the first to the last day,
// padding the end to 23:59:59 as the reports endpoint does.
func DayPeriod(first, last Day, loc *time.Location) Period {
	return Period{Start: first.Start(loc), End: last.End(loc)}
}
