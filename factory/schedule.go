package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// SCHEDULE JSON
// =============================================================================

// ScheduleJSON is the JSON representation of a work schedule.
type ScheduleJSON struct {
	UserID        string  `json:"userId"`
	WorkDays      string  `json:"workDays"`
	WorkHours     float64 `json:"workHours"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	BreakStart    *string `json:"breakStart,omitempty"`
	BreakEnd      *string `json:"breakEnd,omitempty"`
	FlexibleHours bool    `json:"flexibleHours"`
}

// ParseSchedule decodes and validates a schedule.
func ParseSchedule(data []byte) (timesheet.WorkSchedule, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return timesheet.WorkSchedule{}, fmt.Errorf("%w: invalid schedule JSON: %v", generic.ErrMalformedInput, err)
	}
	return sj.ToSchedule()
}

// ToSchedule converts and validates.
func (sj ScheduleJSON) ToSchedule() (timesheet.WorkSchedule, error) {
	workDays, err := timesheet.ParseWorkDays(sj.WorkDays)
	if err != nil {
		return timesheet.WorkSchedule{}, err
	}
	start, err := parseClock("startTime", sj.StartTime)
	if err != nil {
		return timesheet.WorkSchedule{}, err
	}
	end, err := parseClock("endTime", sj.EndTime)
	if err != nil {
		return timesheet.WorkSchedule{}, err
	}
	breakStart, err := parseOptionalClock("breakStart", sj.BreakStart)
	if err != nil {
		return timesheet.WorkSchedule{}, err
	}
	breakEnd, err := parseOptionalClock("breakEnd", sj.BreakEnd)
	if err != nil {
		return timesheet.WorkSchedule{}, err
	}

	ws := timesheet.WorkSchedule{
		OwnerID:       sj.UserID,
		WorkDays:      workDays,
		DailyHours:    sj.WorkHours,
		StartTime:     start,
		EndTime:       end,
		BreakStart:    breakStart,
		BreakEnd:      breakEnd,
		FlexibleHours: sj.FlexibleHours,
	}
	if err := ws.Validate(); err != nil {
		return timesheet.WorkSchedule{}, err
	}
	return ws, nil
}

// ScheduleToJSON is the inverse of ToSchedule.
func ScheduleToJSON(ws timesheet.WorkSchedule) ScheduleJSON {
	sj := ScheduleJSON{
		UserID:        ws.OwnerID,
		WorkDays:      ws.WorkDays.String(),
		WorkHours:     ws.DailyHours,
		StartTime:     ws.StartTime.String(),
		EndTime:       ws.EndTime.String(),
		FlexibleHours: ws.FlexibleHours,
	}
	if ws.BreakStart != nil {
		s := ws.BreakStart.String()
		sj.BreakStart = &s
	}
	if ws.BreakEnd != nil {
		s := ws.BreakEnd.String()
		sj.BreakEnd = &s
	}
	return sj
}

func parseClock(field, s string) (generic.ClockTime, error) {
	c, err := generic.ParseClockTime(s)
	if err != nil {
		return generic.ClockTime{}, generic.Malformed(field, s, "expected HH:MM")
	}
	return c, nil
}

func parseOptionalClock(field string, s *string) (*generic.ClockTime, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	c, err := parseClock(field, *s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
