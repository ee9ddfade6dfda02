package timesheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/hourbank/generic"
)

// =============================================================================
// WORK SCHEDULE - Per-owner expected hours
// =============================================================================

// DefaultHoursPerDay applies when an owner has no schedule.
const DefaultHoursPerDay = 8.0

// WorkSchedule is read-only for the engine; the scheduling collaborator
// owns it. At most one per owner.
type WorkSchedule struct {
	OwnerID       string
	WorkDays      WorkDays
	DailyHours    float64
	StartTime     generic.ClockTime
	EndTime       generic.ClockTime
	BreakStart    *generic.ClockTime
	BreakEnd      *generic.ClockTime
	FlexibleHours bool
}

// Validate checks a schedule before it is stored.
func (s WorkSchedule) Validate() error {
	if s.OwnerID == "" {
		return generic.Malformed("userId", "", "required")
	}
	if s.DailyHours <= 0 || s.DailyHours > 24 {
		return generic.Malformed("workHours", strconv.FormatFloat(s.DailyHours, 'f', -1, 64), "must be in (0, 24]")
	}
	if (s.BreakStart == nil) != (s.BreakEnd == nil) {
		return generic.Malformed("breakStart", "", "breakStart and breakEnd must be set together")
	}
	if s.BreakStart != nil && s.BreakStart.Compare(*s.BreakEnd) >= 0 {
		return generic.Malformed("breakEnd", s.BreakEnd.String(), "must be after breakStart")
	}
	return nil
}

// ResolvedSchedule is what the aggregator consumes.
type ResolvedSchedule struct {
	HoursPerDay float64
	WorkDays    WorkDays
}

// ResolveSchedule returns the default (8h, Mon-Fri) when schedule is nil.
// A zero DailyHours or empty WorkDays falls back field by field.
func ResolveSchedule(schedule *WorkSchedule) ResolvedSchedule {
	resolved := ResolvedSchedule{HoursPerDay: DefaultHoursPerDay, WorkDays: DefaultWorkDays}
	if schedule == nil {
		return resolved
	}
	if schedule.DailyHours > 0 {
		resolved.HoursPerDay = schedule.DailyHours
	}
	if !schedule.WorkDays.IsEmpty() {
		resolved.WorkDays = schedule.WorkDays
	}
	return resolved
}

// CountWorkDaysInRange counts calendar days in [start, end] (both
// inclusive, compared as dates in start's location) whose weekday is in
// workDays. Returns 0 when start is after end.
func CountWorkDaysInRange(start, end time.Time, workDays WorkDays) int {
	if start.After(end) {
		return 0
	}
	loc := start.Location()
	last := generic.DayOf(end, loc)
	count := 0
	for d := generic.DayOf(start, loc); d.BeforeOrEqual(last); d = d.AddDays(1) {
		if workDays.Contains(d.Weekday()) {
			count++
		}
	}
	return count
}

// ExpectedHours = work days in [start, end] x hours per day.
func ExpectedHours(start, end time.Time, resolved ResolvedSchedule) generic.Amount {
	days := CountWorkDaysInRange(start, end, resolved.WorkDays)
	return generic.Hours(resolved.HoursPerDay).Mul(decimal.NewFromInt(int64(days)))
}

// =============================================================================
// WIRE FORMAT HELPERS
// =============================================================================

// ParseWorkDays parses the comma-separated form ("1,2,3,4,5").
func ParseWorkDays(s string) (WorkDays, error) {
	var wd WorkDays
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return WorkDays{}, generic.Malformed("workDays", s, "expected weekday numbers 0-6")
		}
		wd[n] = true
	}
	return wd, nil
}

// String renders the comma-separated form.
func (wd WorkDays) String() string {
	nums := wd.Numbers()
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
