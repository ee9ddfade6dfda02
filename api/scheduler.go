/*
scheduler.go - Periodic alert monitor

PURPOSE:
  Re-evaluates the alert rules and dashboard summary for every employee on
  a fixed interval and hands the results to a sink. This is the server-side
  counterpart of the dashboard's five-minute polling.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Runs once immediately on start
  - Every run recomputes from stored punches; nothing is remembered between runs
  - A failing employee is logged and skipped; the run continues
  - Each run logs when the next one is due

CONFIGURATION:
  - Interval: How often to check (default: 5 minutes)
  - Enabled: Whether the monitor is active (default: true)

USAGE:
  monitor := NewAlertMonitor(service, translator, logger)
  monitor.Start()
  // ... later
  monitor.Stop()

SEE ALSO:
  - timesheet/alerts.go: Alert rules
  - handlers.go: GetAlerts endpoint (on-demand evaluation)
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/timesheet"
)

// DefaultAlertInterval matches the dashboard refresh period.
const DefaultAlertInterval = 5 * time.Minute

// AlertSink receives the result of one employee's evaluation.
type AlertSink interface {
	Publish(ctx context.Context, emp timesheet.Employee, alerts []timesheet.Alert, summary timesheet.WorkSummary)
}

// LogSink writes non-empty alert sets to a zap logger. Messages are
// localised to the locale on ctx when a Translator is set.
type LogSink struct {
	Logger     *zap.Logger
	Translator *i18n.Translator
}

func (s LogSink) Publish(ctx context.Context, emp timesheet.Employee, alerts []timesheet.Alert, summary timesheet.WorkSummary) {
	if s.Translator != nil {
		alerts = s.Translator.Alerts(ctx, alerts)
	}
	for _, a := range alerts {
		level := zap.InfoLevel
		switch a.Severity {
		case timesheet.SeverityWarning:
			level = zap.WarnLevel
		case timesheet.SeverityError:
			level = zap.ErrorLevel
		}
		s.Logger.Check(level, "alert").Write(
			zap.String("employee_id", emp.ID),
			zap.String("employee", emp.Name),
			zap.String("code", string(a.Code)),
			zap.String("message", a.Message),
			zap.Float64("weekly_hours", summary.WeeklyHours.Float64()),
		)
	}
}

// AlertMonitor periodically evaluates alerts for all employees.
type AlertMonitor struct {
	Service  *timesheet.Service
	Sink     AlertSink
	Logger   *zap.Logger
	Interval time.Duration
	Enabled  bool
	Now      func() time.Time

	// Locale is the language alerts are logged in; empty means the
	// translator's default.
	Locale string

	ticker *time.Ticker
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewAlertMonitor creates a monitor that logs alerts through logger. A nil
// translator keeps the built-in English messages.
func NewAlertMonitor(service *timesheet.Service, tr *i18n.Translator, logger *zap.Logger) *AlertMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("alert-monitor")
	return &AlertMonitor{
		Service:  service,
		Sink:     LogSink{Logger: logger, Translator: tr},
		Logger:   logger,
		Interval: DefaultAlertInterval,
		Enabled:  true,
		Now:      time.Now,
	}
}

// Start begins the monitor. Calling Start on a running monitor is a no-op.
func (m *AlertMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Enabled {
		m.Logger.Info("disabled, not starting")
		return
	}
	if m.ticker != nil {
		return
	}

	interval := m.interval()
	ctx, cancel := context.WithCancel(i18n.WithLocale(context.Background(), m.Locale))
	m.cancel = cancel
	m.ticker = time.NewTicker(interval)
	m.wg.Add(1)

	go m.run(ctx, m.ticker)

	m.Logger.Info("started", zap.Duration("interval", interval))
}

// Stop stops the monitor and waits for an in-flight run to finish.
func (m *AlertMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.cancel()
	m.wg.Wait()
	m.ticker = nil
	m.cancel = nil
	m.Logger.Info("stopped")
}

func (m *AlertMonitor) run(ctx context.Context, ticker *time.Ticker) {
	defer m.wg.Done()

	// Run immediately on start
	m.RunNow(ctx)

	for {
		select {
		case <-ticker.C:
			m.RunNow(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunNow evaluates every employee once and returns how many had at least
// one alert.
func (m *AlertMonitor) RunNow(ctx context.Context) int {
	now := m.now()
	if m.Service == nil || m.Service.Employees == nil {
		m.Logger.Error("no employee directory configured, skipping run")
		return 0
	}

	employees, err := m.Service.Employees.ListEmployees(ctx)
	if err != nil {
		m.Logger.Error("list employees", zap.Error(err))
		return 0
	}

	alerted := 0
	for _, emp := range employees {
		if ctx.Err() != nil {
			return alerted
		}
		alerts, err := m.Service.Alerts(ctx, emp.ID, now)
		if err != nil {
			m.Logger.Error("evaluate alerts", zap.String("employee_id", emp.ID), zap.Error(err))
			continue
		}
		summary, err := m.Service.Summary(ctx, emp.ID, now)
		if err != nil {
			m.Logger.Error("compute summary", zap.String("employee_id", emp.ID), zap.Error(err))
			continue
		}
		if len(alerts) > 0 {
			alerted++
		}
		if m.Sink != nil {
			m.Sink.Publish(ctx, emp, alerts, summary)
		}
	}

	m.Logger.Debug("run complete",
		zap.Time("at", now),
		zap.Int("employees", len(employees)),
		zap.Int("alerted", alerted),
		zap.Time("next_run", m.NextRunTime()),
	)
	return alerted
}

// NextRunTime returns when the next scheduled check will occur, assuming
// one just ran.
func (m *AlertMonitor) NextRunTime() time.Time {
	return m.now().Add(m.interval())
}

func (m *AlertMonitor) interval() time.Duration {
	if m.Interval <= 0 {
		return DefaultAlertInterval
	}
	return m.Interval
}

func (m *AlertMonitor) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
