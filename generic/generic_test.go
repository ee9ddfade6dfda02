package generic_test

import (
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// AMOUNT
// =============================================================================

func TestAmount_MinutesToHoursIsExact(t *testing.T) {
	// GIVEN: 182 and 298 minutes (3.0333.. and 4.9666.. hours)
	// WHEN: Converting each to hours and summing
	// THEN: Exactly 8 hours, no float drift

	sum := generic.Minutes(182).ToHours().Add(generic.Minutes(298).ToHours())
	assert.True(t, sum.Equal(generic.Hours(8)), sum.String())
	assert.Equal(t, generic.UnitHours, sum.Unit)
}

func TestAmount_RoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{8.05, 8.1},
		{8.04, 8.0},
		{-0.05, 0.0},
		{-0.06, -0.1},
		{4.19, 4.2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			got := generic.Hours(tt.in).RoundHalfUp(1)
			assert.InDelta(t, tt.want, got.Float64(), 1e-9)
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	a := generic.Hours(10)
	b := generic.Hours(12.5)

	assert.Negative(t, a.Sub(b).Float64())
	assert.Positive(t, b.Sub(a).Float64())
	assert.True(t, a.Sub(a).IsZero())
	assert.True(t, generic.ZeroHours().IsZero())
}

// =============================================================================
// DAY AND CLOCK TIME
// =============================================================================

func TestDay_NormalizesAndParses(t *testing.T) {
	assert.Equal(t, generic.NewDay(2025, time.March, 2), generic.NewDay(2025, time.February, 30))

	d, err := generic.ParseDay("2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, generic.NewDay(2025, time.September, 1), d)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2025-09-01", d.String())
	assert.Equal(t, "01/09/2025", d.Format("02/01/2006"))

	_, err = generic.ParseDay("01/09/2025")
	assert.ErrorIs(t, err, generic.ErrMalformedInput)
}

func TestDayOf_UsesLocation(t *testing.T) {
	// GIVEN: 01:30 UTC on Sep 2
	// THEN: Still Sep 1 in São Paulo (UTC-3)

	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	instant := time.Date(2025, time.September, 2, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, generic.NewDay(2025, time.September, 1), generic.DayOf(instant, saoPaulo))
	assert.Equal(t, generic.NewDay(2025, time.September, 2), generic.DayOf(instant, time.UTC))
}

func TestDay_StartEndAndOrdering(t *testing.T) {
	d := generic.NewDay(2025, time.September, 1)

	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), d.Start(time.UTC))
	end := d.End(time.UTC)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Second())
	assert.True(t, d.Start(time.UTC).AddDate(0, 0, 1).After(end))

	next := d.AddDays(1)
	assert.True(t, d.Before(next))
	assert.True(t, d.BeforeOrEqual(d))
	assert.Equal(t, 30, generic.DaysBetween(d, generic.NewDay(2025, time.October, 1)))
	assert.True(t, generic.NewDay(2025, time.September, 6).IsWeekend())
}

func TestClockTime(t *testing.T) {
	c, err := generic.ParseClockTime("09:10")
	require.NoError(t, err)
	assert.Equal(t, generic.ClockTime{Hour: 9, Minute: 10}, c)
	assert.Equal(t, "09:10", c.String())

	withSeconds, err := generic.ParseClockTime("09:10:01")
	require.NoError(t, err)
	assert.Equal(t, "09:10:01", withSeconds.String())

	assert.Equal(t, -1, c.Compare(withSeconds))
	assert.Equal(t, 1, withSeconds.Compare(c))
	assert.Equal(t, 0, c.Compare(generic.ClockTime{Hour: 9, Minute: 10}))

	for _, bad := range []string{"", "9am", "25:00", "09:60"} {
		_, err := generic.ParseClockTime(bad)
		assert.ErrorIs(t, err, generic.ErrMalformedInput, bad)
	}
}

func TestWholeMinutes_Truncates(t *testing.T) {
	assert.Equal(t, int64(1), generic.WholeMinutes(119*time.Second))
	assert.Equal(t, int64(-1), generic.WholeMinutes(-90*time.Second))
	assert.Equal(t, int64(0), generic.WholeMinutes(59*time.Second))
}

// =============================================================================
// PERIODS
// =============================================================================

func TestStartOfISOWeek_SundayBelongsToPreviousWeek(t *testing.T) {
	sunday := time.Date(2025, time.September, 7, 15, 0, 0, 0, time.UTC)
	monday := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, generic.StartOfISOWeek(sunday))
	assert.Equal(t, monday, generic.StartOfISOWeek(monday))
	assert.Equal(t, generic.NewDay(2025, time.September, 7), generic.DayOf(generic.EndOfISOWeek(monday), nil))
}

func TestPeriodFor(t *testing.T) {
	at := time.Date(2025, time.February, 12, 10, 0, 0, 0, time.UTC)

	month := generic.PeriodFor(generic.PeriodMonth, at, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), month.Start)
	assert.Equal(t, generic.NewDay(2025, time.February, 28), generic.DayOf(month.End, nil))

	day := generic.PeriodFor(generic.PeriodDay, at, time.UTC)
	assert.True(t, day.Contains(at))
	assert.False(t, day.Contains(at.AddDate(0, 0, 1)))

	toDate := generic.ToDate(generic.PeriodMonth, at, time.UTC)
	assert.Equal(t, month.Start, toDate.Start)
	assert.Equal(t, at, toDate.End)
}

func TestPeriodFor_LocalMidnight(t *testing.T) {
	// GIVEN: 02:00 UTC on Mar 1, which is still Feb 28 in São Paulo
	// THEN: The month is February, starting at local midnight

	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	at := time.Date(2025, time.March, 1, 2, 0, 0, 0, time.UTC)

	month := generic.PeriodFor(generic.PeriodMonth, at, saoPaulo)
	assert.Equal(t, time.February, month.Start.Month())
	assert.Equal(t, 0, month.Start.Hour())
	assert.Equal(t, saoPaulo, month.Start.Location())
}

func TestPeriod_ValidateDaysUnion(t *testing.T) {
	first := generic.NewDay(2025, time.September, 1)
	last := generic.NewDay(2025, time.September, 3)

	p := generic.DayPeriod(first, last, time.UTC)
	require.NoError(t, p.Validate())
	assert.Equal(t, []generic.Day{first, first.AddDays(1), last}, p.Days(time.UTC))

	inverted := generic.DayPeriod(last, first, time.UTC)
	assert.ErrorIs(t, inverted.Validate(), generic.ErrInvalidPeriod)
	assert.Nil(t, inverted.Days(time.UTC))

	later := generic.DayPeriod(last, last.AddDays(5), time.UTC)
	u := p.Union(later)
	assert.Equal(t, p.Start, u.Start)
	assert.Equal(t, later.End, u.End)
}

// =============================================================================
// ERRORS
// =============================================================================

func TestErrorHelpers(t *testing.T) {
	malformed := generic.Malformed("latitude", "", "required")
	var mie *generic.MalformedInputError
	require.True(t, errors.As(malformed, &mie))
	assert.Equal(t, "latitude", mie.Field)
	assert.True(t, generic.IsClientError(malformed))
	assert.True(t, generic.IsClientError(generic.ErrInvalidPeriod))

	dup := fmt.Errorf("append: %w", &generic.DuplicatePunchError{PunchID: "p-1"})
	assert.True(t, generic.IsConflict(dup))
	assert.ErrorIs(t, dup, generic.ErrDuplicatePunch)
	assert.Contains(t, dup.Error(), "p-1")

	missing := fmt.Errorf("employee %q: %w", "ghost", generic.ErrNotFound)
	assert.True(t, generic.IsNotFound(missing))
	assert.False(t, generic.IsClientError(missing))

	decided := fmt.Errorf("request r-1 is approved: %w", generic.ErrRequestNotPending)
	assert.True(t, generic.IsConflict(decided))
	assert.False(t, generic.IsForbidden(decided))
	assert.True(t, generic.IsForbidden(fmt.Errorf("emp-1: %w", generic.ErrForbidden)))
}
