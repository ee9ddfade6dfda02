package timesheet

import (
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// ALERT EVALUATOR
// =============================================================================

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// AlertCode is stable across locales; the API localises Message by code.
type AlertCode string

const (
	AlertShiftOverLimit     AlertCode = "shift.over_limit"
	AlertShiftTargetReached AlertCode = "shift.target_reached"
	AlertClockInReminder    AlertCode = "clock_in.reminder"
)

// DefaultMessages are the English texts used when no localizer is wired.
var DefaultMessages = map[AlertCode]string{
	AlertShiftOverLimit:     "You have been clocked in for more than 10 hours. Register your exit.",
	AlertShiftTargetReached: "You have completed 8 hours of work.",
	AlertClockInReminder:    "Remember to register your entry.",
}

type Alert struct {
	Severity Severity
	Code     AlertCode
	Message  string
}

func newAlert(severity Severity, code AlertCode) Alert {
	return Alert{Severity: severity, Code: code, Message: DefaultMessages[code]}
}

// EvaluateAlerts inspects an owner's most recent punches (any order) at now.
//
// Rules, in order:
//  1. latest punch is an entry open for >= ErrorAfter: error; else >= WarningAfter: warning
//  2. reminder day, local hour in [ReminderFrom, ReminderUntil), nothing open: info
func (c Calendar) EvaluateAlerts(recent []Punch, now time.Time) []Alert {
	var alerts []Alert

	latest, ok := Latest(recent)
	clockedIn := ok && latest.IsEntry()

	if clockedIn {
		elapsed := now.Sub(latest.Timestamp)
		switch {
		case elapsed >= c.ErrorAfter:
			alerts = append(alerts, newAlert(SeverityError, AlertShiftOverLimit))
		case elapsed >= c.WarningAfter:
			alerts = append(alerts, newAlert(SeverityWarning, AlertShiftTargetReached))
		}
	}

	if !clockedIn && c.inReminderWindow(now) {
		alerts = append(alerts, newAlert(SeverityInfo, AlertClockInReminder))
	}
	return alerts
}

func (c Calendar) inReminderWindow(now time.Time) bool {
	local := now.In(c.loc())
	if !c.ReminderDays.Contains(local.Weekday()) {
		return false
	}
	clock := generic.ClockOf(local, nil)
	return clock.Compare(c.ReminderFrom) >= 0 && clock.Compare(c.ReminderUntil) < 0
}
