package timesheet

import (
	"fmt"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// REPORT FORMATTER - One row per (employee, local day)
// =============================================================================

// MissingTime marks an absent first entry or last exit.
const MissingTime = "-"

type ReportRow struct {
	OwnerID      string
	Name         string
	Day          generic.Day
	Date         string // Day formatted with Calendar.DateLayout
	Entry        string // first entry, local time, or MissingTime
	Exit         string // last exit, local time, or MissingTime
	TotalMinutes int64
	TotalHours   string // "{h}h {m}min"
}

type reportKey struct {
	ownerID string
	day     generic.Day
}

type reportGroup struct {
	name    string
	punches []Punch
}

// FormatReport groups records by owner and local date. Rows appear in the
// order their first punch appears chronologically.
func (c Calendar) FormatReport(records []NamedPunch) []ReportRow {
	ordered := make([]Punch, len(records))
	names := make(map[string]string, len(records))
	for i, r := range records {
		ordered[i] = r.Punch
		if _, seen := names[r.OwnerID]; !seen {
			names[r.OwnerID] = r.OwnerName
		}
	}
	ordered = SortAscending(ordered)

	var keys []reportKey
	groups := make(map[reportKey]*reportGroup)
	for _, p := range ordered {
		key := reportKey{ownerID: p.OwnerID, day: c.Day(p.Timestamp)}
		g, ok := groups[key]
		if !ok {
			g = &reportGroup{name: names[p.OwnerID]}
			groups[key] = g
			keys = append(keys, key)
		}
		g.punches = append(g.punches, p)
	}

	rows := make([]ReportRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, c.reportRow(key, groups[key]))
	}
	return rows
}

func (c Calendar) reportRow(key reportKey, g *reportGroup) ReportRow {
	entries, exits := splitByKind(g.punches)
	minutes := TotalMinutes(pairDay(key.day, g.punches, c.Pairing))

	row := ReportRow{
		OwnerID:      key.ownerID,
		Name:         g.name,
		Day:          key.day,
		Date:         key.day.Format(c.DateLayout),
		Entry:        MissingTime,
		Exit:         MissingTime,
		TotalMinutes: minutes,
		TotalHours:   FormatDuration(minutes),
	}
	if len(entries) > 0 {
		row.Entry = c.Local(entries[0].Timestamp).Format(c.TimeLayout)
	}
	if len(exits) > 0 {
		row.Exit = c.Local(exits[len(exits)-1].Timestamp).Format(c.TimeLayout)
	}
	return row
}

// FormatDuration renders whole minutes as "{h}h {m}min".
func FormatDuration(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}
