package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// PAIRING STRATEGY - How entries are matched with exits within a day
// =============================================================================

// PairingStrategy is a tagged variant selecting the pairing policy.
//
// IndexWise pairs the i-th sorted entry with the i-th sorted exit. It
// assumes punches alternate correctly and only tolerates a trailing
// imbalance: two entries before any exit (a missed punch) silently shifts
// every later pair of that day.
//
// NearestFollowing walks the day chronologically: an entry opens a shift
// (replacing, and dropping, an earlier unmatched entry) and the next exit
// closes it. Exits with no open entry are dropped.
type PairingStrategy int

const (
	IndexWise PairingStrategy = iota
	NearestFollowing
)

func (s PairingStrategy) String() string {
	switch s {
	case NearestFollowing:
		return "nearest_following"
	default:
		return "index_wise"
	}
}

// ParsePairingStrategy accepts "index_wise" or "nearest_following".
func ParsePairingStrategy(s string) (PairingStrategy, error) {
	switch s {
	case "", "index_wise":
		return IndexWise, nil
	case "nearest_following":
		return NearestFollowing, nil
	default:
		return IndexWise, generic.Malformed("pairing", s, "expected index_wise or nearest_following")
	}
}

// =============================================================================
// WORKED INTERVAL - Derived (entry, exit) span
// =============================================================================

type WorkedInterval struct {
	Day             generic.Day
	Start           Punch // Entry
	End             Punch // Exit
	DurationMinutes int64 // always >= 0
}

// Hours returns the interval length in hours.
func (w WorkedInterval) Hours() generic.Amount {
	return generic.Minutes(w.DurationMinutes).ToHours()
}

func (w WorkedInterval) String() string {
	return fmt.Sprintf("%s %s-%s (%dmin)", w.Day,
		w.Start.Timestamp.Format("15:04"), w.End.Timestamp.Format("15:04"), w.DurationMinutes)
}

func newInterval(day generic.Day, entry, exit Punch) WorkedInterval {
	minutes := generic.WholeMinutes(exit.Timestamp.Sub(entry.Timestamp))
	if minutes < 0 {
		// Impossible after sorting under NearestFollowing, possible under
		// IndexWise with out-of-order punches. Clamp, never fail.
		minutes = 0
	}
	return WorkedInterval{Day: day, Start: entry, End: exit, DurationMinutes: minutes}
}

// TotalMinutes sums interval durations.
func TotalMinutes(intervals []WorkedInterval) int64 {
	var total int64
	for _, w := range intervals {
		total += w.DurationMinutes
	}
	return total
}

// =============================================================================
// SHIFT PAIRER
// =============================================================================

// Pair returns the worked intervals of one local day. Punches on other days
// are ignored; input order is irrelevant.
func Pair(punches []Punch, day generic.Day, loc *time.Location, strategy PairingStrategy) []WorkedInterval {
	var onDay []Punch
	for _, p := range punches {
		if generic.DayOf(p.Timestamp, loc) == day {
			onDay = append(onDay, p)
		}
	}
	return pairDay(day, onDay, strategy)
}

// Pair runs the calendar's strategy in the calendar's zone.
func (c Calendar) Pair(punches []Punch, day generic.Day) []WorkedInterval {
	return Pair(punches, day, c.loc(), c.Pairing)
}

func pairDay(day generic.Day, punches []Punch, strategy PairingStrategy) []WorkedInterval {
	if strategy == NearestFollowing {
		return pairNearestFollowing(day, punches)
	}
	return pairIndexWise(day, punches)
}

func pairIndexWise(day generic.Day, punches []Punch) []WorkedInterval {
	entries, exits := splitByKind(punches)
	n := min(len(entries), len(exits))
	if n == 0 {
		return nil
	}
	intervals := make([]WorkedInterval, 0, n)
	for i := 0; i < n; i++ {
		intervals = append(intervals, newInterval(day, entries[i], exits[i]))
	}
	return intervals
}

func pairNearestFollowing(day generic.Day, punches []Punch) []WorkedInterval {
	var (
		intervals []WorkedInterval
		open      *Punch
	)
	for _, p := range SortAscending(punches) {
		switch p.Kind {
		case Entry:
			entry := p
			open = &entry
		case Exit:
			if open == nil {
				continue
			}
			intervals = append(intervals, newInterval(day, *open, p))
			open = nil
		}
	}
	return intervals
}

// splitByKind partitions into entries and exits, each sorted ascending.
func splitByKind(punches []Punch) (entries, exits []Punch) {
	for _, p := range SortAscending(punches) {
		switch p.Kind {
		case Entry:
			entries = append(entries, p)
		case Exit:
			exits = append(exits, p)
		}
	}
	return entries, exits
}

// =============================================================================
// GROUPING
// =============================================================================

// GroupByDay buckets punches by their local calendar date.
func GroupByDay(punches []Punch, loc *time.Location) map[generic.Day][]Punch {
	byDay := make(map[generic.Day][]Punch)
	for _, p := range punches {
		d := generic.DayOf(p.Timestamp, loc)
		byDay[d] = append(byDay[d], p)
	}
	return byDay
}

// SortedDays returns the keys of byDay in ascending order.
func SortedDays(byDay map[generic.Day][]Punch) []generic.Day {
	days := make([]generic.Day, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
