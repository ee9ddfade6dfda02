package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - A civil calendar date (no time of day, no zone)
// =============================================================================

// Day is a local calendar date. Punches are grouped by the Day their
// timestamp falls on in the engine's time zone; a Day is a date boundary,
// not a 24h window.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDay builds a normalized Day (2025-02-30 becomes 2025-03-02).
func NewDay(year int, month time.Month, day int) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DayOf returns the calendar date of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Day{}, Malformed("date", s, "expected YYYY-MM-DD")
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Day) utc() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// Start returns midnight of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// End returns the last representable instant of d in loc.
func (d Day) End(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

func (d Day) AddDays(n int) Day           { t := d.utc().AddDate(0, 0, n); return DayOf(t, time.UTC) }
func (d Day) Weekday() time.Weekday       { return d.utc().Weekday() }
func (d Day) IsWeekend() bool             { wd := d.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (d Day) Before(other Day) bool       { return d.utc().Before(other.utc()) }
func (d Day) After(other Day) bool        { return d.utc().After(other.utc()) }
func (d Day) Equal(other Day) bool        { return d == other }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) IsZero() bool                { return d == Day{} }

// Format renders d with a time.Format layout (e.g. "02/01/2006").
func (d Day) Format(layout string) string { return d.utc().Format(layout) }

func (d Day) String() string { return d.Format(time.DateOnly) }

// DaysBetween returns the whole number of days from -> to (negative if to < from).
func DaysBetween(from, to Day) int { return int(to.utc().Sub(from.utc()).Hours() / 24) }

// =============================================================================
// CLOCK TIME - Time of day, used for cutoffs and schedule bounds
// =============================================================================

// ClockTime is a wall-clock time of day with second precision.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime accepts "HH:MM" or "HH:MM:SS".
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, Malformed("time", s, "expected HH:MM")
}

// ClockOf returns the local wall-clock time of t in loc.
func ClockOf(t time.Time, loc *time.Location) ClockTime {
	if loc != nil {
		t = t.In(loc)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (c ClockTime) seconds() int { return c.Hour*3600 + c.Minute*60 + c.Second }

// Compare returns -1, 0 or 1.
func (c ClockTime) Compare(other ClockTime) int {
	switch a, b := c.seconds(), other.seconds(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (c ClockTime) String() string {
	if c.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// WholeMinutes returns the number of whole minutes in d, truncated toward
// zero (90s -> 1, -90s -> -1).
func WholeMinutes(d time.Duration) int64 { return int64(d / time.Minute) }

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return DayOf(t, nil).End(t.Location())
}

// StartOfISOWeek returns Monday 00:00 of t's week, in t's location.
func StartOfISOWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// EndOfISOWeek returns the last instant of Sunday of t's week.
func EndOfISOWeek(t time.Time) time.Time {
	return EndOfDay(StartOfISOWeek(t).AddDate(0, 0, 6))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	return EndOfDay(StartOfMonth(t).AddDate(0, 1, -1))
}
