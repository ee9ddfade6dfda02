/*
Package timesheet implements the attendance time-accounting engine.

PURPOSE:
  Turns a sequence of entry/exit punches into worked intervals, compares
  them against an employee's expected schedule, and rolls them up into
  hour-bank balances, weekly/monthly statistics, alerts and report rows.

  Every query is a pure function of (punches, schedule, now, Calendar).
  Nothing is cached or persisted; results are recomputed on each call.

COMPONENTS:
  punch.go     Punch model and validation
  pairing.go   Shift pairer (IndexWise | NearestFollowing)
  schedule.go  Schedule resolver and work-day counting
  aggregate.go Period aggregator (worked vs expected hours)
  balance.go   Hour bank (month-to-date balance + ISO-week hours)
  stats.go     Weekly/monthly/average hours and punctuality
  alerts.go    Long-shift and clock-in reminder alerts
  report.go    Per-employee, per-day report rows
  service.go   Fetch-then-compute queries over the source interfaces
  ledger.go    Append-only punch registration
  request.go   Absence/correction requests and reviewer notifications

SEE ALSO:
  - generic/: Amount, Day, Period, errors
  - store/sqlite, store/memory: source implementations
*/
package timesheet

import (
	"sort"
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// PUNCH - A single clock event
// =============================================================================

// Kind is the direction of a punch.
type Kind string

const (
	Entry Kind = "entry"
	Exit  Kind = "exit"
)

// ParseKind accepts "entry" or "exit".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Entry, Exit:
		return Kind(s), nil
	default:
		return "", generic.Malformed("type", s, `expected "entry" or "exit"`)
	}
}

// Location is where the punch was recorded. The engine carries it but
// never validates it against a geofence.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Punch is immutable once created.
type Punch struct {
	ID        string
	OwnerID   string
	Kind      Kind
	Timestamp time.Time
	Location  Location
	SourceIP  string
}

func (p Punch) IsEntry() bool { return p.Kind == Entry }
func (p Punch) IsExit() bool  { return p.Kind == Exit }

// Validate checks the fields the engine depends on.
func (p Punch) Validate() error {
	if p.OwnerID == "" {
		return generic.Malformed("ownerId", "", "required")
	}
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return err
	}
	if p.Timestamp.IsZero() {
		return generic.Malformed("createdAt", "", "required")
	}
	if p.Location.Latitude < -90 || p.Location.Latitude > 90 {
		return generic.Malformed("latitude", "", "out of range [-90, 90]")
	}
	if p.Location.Longitude < -180 || p.Location.Longitude > 180 {
		return generic.Malformed("longitude", "", "out of range [-180, 180]")
	}
	return nil
}

// NamedPunch is a punch joined with its owner's display name, as the
// report query needs it.
type NamedPunch struct {
	Punch
	OwnerName string
}

// =============================================================================
// ORDERING HELPERS
// =============================================================================

// punchLess orders by timestamp, then by ID so equal instants are stable
// regardless of input order.
func punchLess(a, b Punch) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}

// SortAscending returns a sorted copy; the input is never reordered.
func SortAscending(punches []Punch) []Punch {
	out := make([]Punch, len(punches))
	copy(out, punches)
	sort.SliceStable(out, func(i, j int) bool { return punchLess(out[i], out[j]) })
	return out
}

// Latest returns the most recent punch across all days.
func Latest(punches []Punch) (Punch, bool) {
	if len(punches) == 0 {
		return Punch{}, false
	}
	latest := punches[0]
	for _, p := range punches[1:] {
		if punchLess(latest, p) {
			latest = p
		}
	}
	return latest, true
}

// InPeriod filters punches whose timestamp lies in p (inclusive).
func InPeriod(punches []Punch, p generic.Period) []Punch {
	var out []Punch
	for _, punch := range punches {
		if p.Contains(punch.Timestamp) {
			out = append(out, punch)
		}
	}
	return out
}
