package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hourbank/factory"
	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// PUNCH DECODING
// =============================================================================

func TestParsePunch_Full(t *testing.T) {
	p, err := factory.ParsePunch([]byte(`{
		"id": "p-1",
		"userId": "emp-1",
		"type": "entry",
		"createdAt": "2025-03-10T08:58:00-03:00",
		"latitude": -23.55,
		"longitude": -46.63,
		"ipAddress": "10.0.0.1"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "emp-1", p.OwnerID)
	assert.Equal(t, timesheet.Entry, p.Kind)
	assert.Equal(t, time.Date(2025, time.March, 10, 11, 58, 0, 0, time.UTC), p.Timestamp)
	assert.Equal(t, -23.55, p.Location.Latitude)
	assert.Equal(t, "10.0.0.1", p.SourceIP)
}

func TestParsePunch_KindAliasAndOptionalTimestamp(t *testing.T) {
	p, err := factory.ParsePunch([]byte(`{"kind": "exit", "latitude": 0, "longitude": 0}`))
	require.NoError(t, err)
	assert.Equal(t, timesheet.Exit, p.Kind)
	assert.True(t, p.Timestamp.IsZero(), "ledger stamps the time")
}

func TestParsePunch_Malformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"unknown kind", `{"type": "lunch", "latitude": 0, "longitude": 0}`},
		{"missing kind", `{"latitude": 0, "longitude": 0}`},
		{"missing latitude", `{"type": "entry", "longitude": 0}`},
		{"missing longitude", `{"type": "entry", "latitude": 0}`},
		{"bad timestamp", `{"type": "entry", "latitude": 0, "longitude": 0, "createdAt": "yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParsePunch([]byte(tt.json))
			assert.ErrorIs(t, err, generic.ErrMalformedInput)
		})
	}
}

func TestParsePunches(t *testing.T) {
	punches, err := factory.ParsePunches([]byte(`[
		{"type": "entry", "createdAt": "2025-03-10T08:58:00Z", "latitude": 0, "longitude": 0},
		{"type": "exit", "createdAt": "2025-03-10T12:00:00Z", "latitude": 0, "longitude": 0}
	]`))
	require.NoError(t, err)
	require.Len(t, punches, 2)
	assert.Equal(t, timesheet.Exit, punches[1].Kind)

	_, err = factory.ParsePunches([]byte(`[{"type": "entry"}]`))
	assert.ErrorIs(t, err, generic.ErrMalformedInput)
}

func TestPunchToJSON_RoundTrip(t *testing.T) {
	punch := timesheet.Punch{
		ID:        "p-1",
		OwnerID:   "emp-1",
		Kind:      timesheet.Exit,
		Timestamp: time.Date(2025, time.March, 10, 17, 58, 0, 0, time.UTC),
		Location:  timesheet.Location{Latitude: 1.5, Longitude: 2.5},
	}
	back, err := factory.PunchToJSON(punch).ToPunch()
	require.NoError(t, err)
	assert.Equal(t, punch, back)
}

// =============================================================================
// SCHEDULE DECODING
// =============================================================================

func TestParseSchedule(t *testing.T) {
	ws, err := factory.ParseSchedule([]byte(`{
		"userId": "emp-1",
		"workDays": "1,2,3,4,5",
		"workHours": 6,
		"startTime": "09:00",
		"endTime": "16:00",
		"breakStart": "12:00",
		"breakEnd": "13:00",
		"flexibleHours": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, "emp-1", ws.OwnerID)
	assert.Equal(t, timesheet.DefaultWorkDays, ws.WorkDays)
	assert.Equal(t, 6.0, ws.DailyHours)
	assert.Equal(t, generic.ClockTime{Hour: 16}, ws.EndTime)
	require.NotNil(t, ws.BreakStart)
	assert.Equal(t, generic.ClockTime{Hour: 12}, *ws.BreakStart)
	assert.True(t, ws.FlexibleHours)

	sj := factory.ScheduleToJSON(ws)
	assert.Equal(t, "1,2,3,4,5", sj.WorkDays)
	assert.Equal(t, "12:00", *sj.BreakStart)
}

func TestParseSchedule_Malformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"weekday out of range", `{"userId":"e","workDays":"1,9","workHours":8,"startTime":"09:00","endTime":"18:00"}`},
		{"bad start", `{"userId":"e","workDays":"1","workHours":8,"startTime":"9am","endTime":"18:00"}`},
		{"zero hours", `{"userId":"e","workDays":"1","workHours":0,"startTime":"09:00","endTime":"18:00"}`},
		{"missing owner", `{"workDays":"1","workHours":8,"startTime":"09:00","endTime":"18:00"}`},
		{"break without end", `{"userId":"e","workDays":"1","workHours":8,"startTime":"09:00","endTime":"18:00","breakStart":"12:00"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseSchedule([]byte(tt.json))
			assert.ErrorIs(t, err, generic.ErrMalformedInput)
		})
	}
}

// =============================================================================
// REQUEST DECODING
// =============================================================================

func TestParseRequest_Vacation(t *testing.T) {
	r, err := factory.ParseRequest([]byte(`{
		"userId": "emp-1",
		"type": "vacation",
		"startDate": "2025-03-17",
		"endDate": "2025-03-21T00:00:00-03:00",
		"reason": "  Family trip  "
	}`))
	require.NoError(t, err)

	assert.Equal(t, "emp-1", r.OwnerID)
	assert.Equal(t, timesheet.RequestVacation, r.Type)
	assert.Equal(t, generic.NewDay(2025, time.March, 17), r.StartDate)
	require.NotNil(t, r.EndDate)
	assert.Equal(t, generic.NewDay(2025, time.March, 21), *r.EndDate)
	assert.Equal(t, "Family trip", r.Reason)
	assert.Equal(t, 5, r.Days())
	assert.Empty(t, r.Status)
}

func TestParseRequest_Malformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `[`},
		{"unknown type", `{"type": "sabbatical", "startDate": "2025-03-17", "reason": "x"}`},
		{"missing start", `{"type": "absence", "reason": "x"}`},
		{"bad start", `{"type": "absence", "startDate": "17/03/2025", "reason": "x"}`},
		{"missing reason", `{"type": "absence", "startDate": "2025-03-17"}`},
		{"vacation without end", `{"type": "vacation", "startDate": "2025-03-17", "reason": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseRequest([]byte(tt.json))
			assert.ErrorIs(t, err, generic.ErrMalformedInput)
		})
	}

	_, err := factory.ParseRequest([]byte(`{"type": "overtime", "startDate": "2025-03-17", "endDate": "2025-03-16", "reason": "x"}`))
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}
