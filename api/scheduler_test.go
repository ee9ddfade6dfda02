package api_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/hourbank/api"
	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/store/memory"
	"github.com/warp/hourbank/timesheet"
)

type recordingSink struct {
	mu     sync.Mutex
	alerts map[string][]timesheet.Alert
	calls  chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{alerts: make(map[string][]timesheet.Alert), calls: make(chan struct{}, 64)}
}

func (s *recordingSink) Publish(_ context.Context, emp timesheet.Employee, alerts []timesheet.Alert, _ timesheet.WorkSummary) {
	s.mu.Lock()
	s.alerts[emp.ID] = alerts
	s.mu.Unlock()
	select {
	case s.calls <- struct{}{}:
	default:
	}
}

func (s *recordingSink) get(id string) []timesheet.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerts[id]
}

func newMonitorFixture(t *testing.T, now time.Time) (*api.AlertMonitor, *recordingSink) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveEmployee(ctx, timesheet.Employee{ID: "emp-open", Name: "Open Shift"}))
	require.NoError(t, store.SaveEmployee(ctx, timesheet.Employee{ID: "emp-idle", Name: "Not Clocked In"}))
	require.NoError(t, store.AppendPunch(ctx, timesheet.Punch{
		ID:        "p-1",
		OwnerID:   "emp-open",
		Kind:      timesheet.Entry,
		Timestamp: now.Add(-11 * time.Hour),
	}))

	svc := timesheet.NewService(timesheet.DefaultCalendar(time.UTC), store, store, store)
	monitor := api.NewAlertMonitor(svc, nil, zaptest.NewLogger(t))
	monitor.Now = func() time.Time { return now }
	sink := newRecordingSink()
	monitor.Sink = sink
	return monitor, sink
}

func TestAlertMonitor_RunNow(t *testing.T) {
	// GIVEN: One employee clocked in for 11h, one not clocked in, Tuesday 11:00
	// WHEN: Running the monitor once
	// THEN: An error for the first, a clock-in reminder for the second

	now := time.Date(2025, time.March, 11, 11, 0, 0, 0, time.UTC)
	monitor, sink := newMonitorFixture(t, now)

	alerted := monitor.RunNow(context.Background())
	assert.Equal(t, 2, alerted)

	open := sink.get("emp-open")
	require.Len(t, open, 1)
	assert.Equal(t, timesheet.SeverityError, open[0].Severity)

	idle := sink.get("emp-idle")
	require.Len(t, idle, 1)
	assert.Equal(t, timesheet.AlertClockInReminder, idle[0].Code)
}

func TestAlertMonitor_StartRunsImmediately(t *testing.T) {
	now := time.Date(2025, time.March, 11, 11, 0, 0, 0, time.UTC)
	monitor, sink := newMonitorFixture(t, now)
	monitor.Interval = time.Hour

	monitor.Start()
	defer monitor.Stop()

	select {
	case <-sink.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not run on start")
	}
	assert.Equal(t, now.Add(time.Hour), monitor.NextRunTime())
}

func TestAlertMonitor_StopIsIdempotent(t *testing.T) {
	monitor, _ := newMonitorFixture(t, time.Now())
	monitor.Interval = time.Hour

	monitor.Stop()
	monitor.Start()
	monitor.Start()
	monitor.Stop()
	monitor.Stop()
}

func TestAlertMonitor_Disabled(t *testing.T) {
	monitor, sink := newMonitorFixture(t, time.Now())
	monitor.Enabled = false

	monitor.Start()
	defer monitor.Stop()

	select {
	case <-sink.calls:
		t.Fatal("disabled monitor ran")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAlertMonitor_CancelledContext(t *testing.T) {
	monitor, sink := newMonitorFixture(t, time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 0, monitor.RunNow(ctx))
	assert.Empty(t, sink.get("emp-open"))
}

func TestAlertMonitor_MissingDirectorySkipsRun(t *testing.T) {
	// GIVEN: A monitor whose service has no employee directory
	// WHEN: Running it
	// THEN: The run is skipped and logged instead of panicking

	core, logs := observer.New(zapcore.DebugLevel)
	svc := timesheet.NewService(timesheet.DefaultCalendar(time.UTC), memory.New(), nil, nil)
	monitor := api.NewAlertMonitor(svc, nil, zap.New(core))

	assert.NotPanics(t, func() {
		assert.Equal(t, 0, monitor.RunNow(context.Background()))
	})
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	monitor.Service = nil
	assert.Equal(t, 0, monitor.RunNow(context.Background()))
}

func TestAlertMonitor_LogsNextRun(t *testing.T) {
	now := time.Date(2025, time.March, 11, 11, 0, 0, 0, time.UTC)
	monitor, _ := newMonitorFixture(t, now)
	core, logs := observer.New(zapcore.DebugLevel)
	monitor.Logger = zap.New(core)
	monitor.Interval = 0

	monitor.RunNow(context.Background())

	done := logs.FilterMessage("run complete").All()
	require.Len(t, done, 1)
	assert.Equal(t, now.Add(api.DefaultAlertInterval), done[0].ContextMap()["next_run"])
}

func TestLogSink_TranslatesToContextLocale(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)
	core, logs := observer.New(zapcore.DebugLevel)
	sink := api.LogSink{Logger: zap.New(core), Translator: tr}

	ctx := i18n.WithLocale(context.Background(), "pt-BR")
	sink.Publish(ctx, timesheet.Employee{ID: "emp-1"}, []timesheet.Alert{
		{Severity: timesheet.SeverityInfo, Code: timesheet.AlertClockInReminder, Message: "Remember to register your entry."},
	}, timesheet.WorkSummary{})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Não se esqueça de registrar sua entrada!", entries[0].ContextMap()["message"])
}

func TestLogSink_LevelFollowsSeverity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := api.LogSink{Logger: zap.New(core)}

	sink.Publish(context.Background(), timesheet.Employee{ID: "emp-1", Name: "Ana Souza"}, []timesheet.Alert{
		{Severity: timesheet.SeverityError, Code: timesheet.AlertShiftOverLimit},
		{Severity: timesheet.SeverityWarning, Code: timesheet.AlertShiftTargetReached},
		{Severity: timesheet.SeverityInfo, Code: timesheet.AlertClockInReminder},
	}, timesheet.WorkSummary{})

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, "emp-1", entries[0].ContextMap()["employee_id"])
}
