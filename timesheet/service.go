package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/warp/hourbank/generic"
)

// =============================================================================
// SERVICE - Fetch-then-compute queries
// =============================================================================

// DefaultRecentLimit is how many recent punches the summary and alert
// queries look at.
const DefaultRecentLimit = 30

// Service binds the pure engine to its data sources. Each call fetches
// fresh data and recomputes; nothing is cached between calls.
type Service struct {
	Calendar  Calendar
	Punches   PunchSource
	Schedules ScheduleSource
	Employees EmployeeDirectory

	// RecentLimit bounds the summary and alert lookback (default 30).
	RecentLimit int
}

// NewService creates a service with the default recent-punch limit.
func NewService(cal Calendar, punches PunchSource, schedules ScheduleSource, employees EmployeeDirectory) *Service {
	return &Service{
		Calendar:    cal,
		Punches:     punches,
		Schedules:   schedules,
		Employees:   employees,
		RecentLimit: DefaultRecentLimit,
	}
}

func (s *Service) recentLimit() int {
	if s.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return s.RecentLimit
}

// HourBank returns the month-to-date balance and current-week hours.
func (s *Service) HourBank(ctx context.Context, ownerID string, now time.Time) (HourBank, error) {
	month, week := s.Calendar.HourBankWindow(now)
	span := month.Union(week)

	punches, err := s.Punches.PunchesInRange(ctx, ownerID, span.Start, span.End)
	if err != nil {
		return HourBank{}, fmt.Errorf("load punches: %w", err)
	}
	schedule, err := s.schedule(ctx, ownerID)
	if err != nil {
		return HourBank{}, err
	}
	return s.Calendar.HourBank(punches, schedule, now), nil
}

// Summary returns weekly/monthly/average hours and punctuality over the
// owner's most recent punches.
func (s *Service) Summary(ctx context.Context, ownerID string, now time.Time) (WorkSummary, error) {
	recent, err := s.Punches.RecentPunches(ctx, ownerID, s.recentLimit())
	if err != nil {
		return WorkSummary{}, fmt.Errorf("load recent punches: %w", err)
	}
	return s.Calendar.WorkSummary(GroupByDay(recent, s.Calendar.loc()), now), nil
}

// Alerts evaluates the alert rules over the owner's most recent punches.
func (s *Service) Alerts(ctx context.Context, ownerID string, now time.Time) ([]Alert, error) {
	recent, err := s.Punches.RecentPunches(ctx, ownerID, s.recentLimit())
	if err != nil {
		return nil, fmt.Errorf("load recent punches: %w", err)
	}
	return s.Calendar.EvaluateAlerts(recent, now), nil
}

// Report returns one row per employee and local day between the first and
// last day, both inclusive. An empty ownerID reports every employee.
func (s *Service) Report(ctx context.Context, first, last generic.Day, ownerID string) ([]ReportRow, error) {
	period := generic.DayPeriod(first, last, s.Calendar.loc())
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var (
		punches []Punch
		err     error
	)
	if ownerID != "" {
		punches, err = s.Punches.PunchesInRange(ctx, ownerID, period.Start, period.End)
	} else {
		punches, err = s.Punches.AllPunchesInRange(ctx, period.Start, period.End)
	}
	if err != nil {
		return nil, fmt.Errorf("load punches: %w", err)
	}

	names, err := s.employeeNames(ctx)
	if err != nil {
		return nil, err
	}
	named := make([]NamedPunch, len(punches))
	for i, p := range punches {
		named[i] = NamedPunch{Punch: p, OwnerName: names[p.OwnerID]}
	}
	return s.Calendar.FormatReport(named), nil
}

// PeriodSummary returns worked vs expected hours for the full day, ISO week
// or month containing at.
func (s *Service) PeriodSummary(ctx context.Context, ownerID string, kind generic.PeriodKind, at time.Time) (PeriodSummary, error) {
	period := generic.PeriodFor(kind, at, s.Calendar.loc())
	punches, err := s.Punches.PunchesInRange(ctx, ownerID, period.Start, period.End)
	if err != nil {
		return PeriodSummary{}, fmt.Errorf("load punches: %w", err)
	}
	schedule, err := s.schedule(ctx, ownerID)
	if err != nil {
		return PeriodSummary{}, err
	}
	return s.Calendar.Summarize(punches, period.Start, period.End, schedule), nil
}

func (s *Service) schedule(ctx context.Context, ownerID string) (*WorkSchedule, error) {
	if s.Schedules == nil {
		return nil, nil
	}
	schedule, err := s.Schedules.Schedule(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	return schedule, nil
}

func (s *Service) employeeNames(ctx context.Context) (map[string]string, error) {
	names := make(map[string]string)
	if s.Employees == nil {
		return names, nil
	}
	employees, err := s.Employees.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names, nil
}
