package timesheet

import (
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// CALENDAR - Immutable engine configuration
// =============================================================================

// Calendar carries everything the engine needs to interpret instants as
// local days and clock times. It is a value: share it freely across
// goroutines, every method is pure.
type Calendar struct {
	// Location is the zone "local date" and "local clock time" refer to.
	Location *time.Location

	// Pairing selects how entries and exits of one day are matched.
	Pairing PairingStrategy

	// PunctualityCutoff: an entry at or before this clock time is punctual.
	PunctualityCutoff generic.ClockTime

	// Punctuality selects which entries the punctuality rate counts.
	Punctuality PunctualityScope

	// An open entry older than WarningAfter raises a warning, older than
	// ErrorAfter an error.
	WarningAfter time.Duration
	ErrorAfter   time.Duration

	// The clock-in reminder fires on ReminderDays within [ReminderFrom, ReminderUntil).
	ReminderDays  WorkDays
	ReminderFrom  generic.ClockTime
	ReminderUntil generic.ClockTime

	// Report layouts (time.Format).
	DateLayout string
	TimeLayout string
}

// DefaultCalendar returns the standard configuration in loc (UTC if nil).
func DefaultCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{
		Location:          loc,
		Pairing:           IndexWise,
		PunctualityCutoff: generic.ClockTime{Hour: 9, Minute: 10},
		Punctuality:       EveryEntry,
		WarningAfter:      8 * time.Hour,
		ErrorAfter:        10 * time.Hour,
		ReminderDays:      DefaultWorkDays,
		ReminderFrom:      generic.ClockTime{Hour: 9},
		ReminderUntil:     generic.ClockTime{Hour: 18},
		DateLayout:        "02/01/2006",
		TimeLayout:        "15:04:05",
	}
}

// WithPairing returns a copy using strategy s.
func (c Calendar) WithPairing(s PairingStrategy) Calendar {
	c.Pairing = s
	return c
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Day returns the local calendar date of t.
func (c Calendar) Day(t time.Time) generic.Day { return generic.DayOf(t, c.loc()) }

// Zone is the calendar's location, UTC when unset.
func (c Calendar) Zone() *time.Location { return c.loc() }

// Local converts t to the calendar's zone.
func (c Calendar) Local(t time.Time) time.Time { return t.In(c.loc()) }

// =============================================================================
// WORK DAYS - Set of weekdays (0=Sunday .. 6=Saturday)
// =============================================================================

// WorkDays is a weekday set indexed by time.Weekday.
type WorkDays [7]bool

// DefaultWorkDays is Monday through Friday.
var DefaultWorkDays = NewWorkDays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

func NewWorkDays(days ...time.Weekday) WorkDays {
	var wd WorkDays
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			wd[d] = true
		}
	}
	return wd
}

func (wd WorkDays) Contains(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday && wd[d]
}

func (wd WorkDays) IsEmpty() bool { return wd == WorkDays{} }

// Numbers returns the weekday numbers in ascending order.
func (wd WorkDays) Numbers() []int {
	var out []int
	for i, on := range wd {
		if on {
			out = append(out, i)
		}
	}
	return out
}
