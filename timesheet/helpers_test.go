package timesheet_test

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// 2025-03-10 is a Monday.
var monday = generic.NewDay(2025, time.March, 10)

func at(d generic.Day, hh, mm, ss int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hh, mm, ss, 0, time.UTC)
}

var punchSeq int

func punch(kind timesheet.Kind, ts time.Time) timesheet.Punch {
	punchSeq++
	return timesheet.Punch{
		ID:        fmt.Sprintf("p-%04d", punchSeq),
		OwnerID:   "emp-1",
		Kind:      kind,
		Timestamp: ts,
	}
}

func entry(ts time.Time) timesheet.Punch { return punch(timesheet.Entry, ts) }
func exit(ts time.Time) timesheet.Punch  { return punch(timesheet.Exit, ts) }

// shift returns an entry/exit pair on d.
func shift(d generic.Day, fromH, fromM, toH, toM int) []timesheet.Punch {
	return []timesheet.Punch{entry(at(d, fromH, fromM, 0)), exit(at(d, toH, toM, 0))}
}

func concat(groups ...[]timesheet.Punch) []timesheet.Punch {
	var out []timesheet.Punch
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func reversed(punches []timesheet.Punch) []timesheet.Punch {
	out := make([]timesheet.Punch, len(punches))
	for i, p := range punches {
		out[len(punches)-1-i] = p
	}
	return out
}

func utcCalendar() timesheet.Calendar {
	return timesheet.DefaultCalendar(time.UTC)
}

// typicalMonday is 08:58-12:00 plus 13:00-17:58: exactly 480 minutes.
func typicalMonday() []timesheet.Punch {
	return concat(shift(monday, 8, 58, 12, 0), shift(monday, 13, 0, 17, 58))
}
