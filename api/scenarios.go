/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	attendance data. Punches are placed relative to the current time so the
	hour bank, summary and alerts have something to show on any day.

AVAILABLE SCENARIOS:

	typical-week:  Two weeks of 8-hour days with a lunch break
	overtime:      10-hour days and a shift still open after 10h30
	missed-punch:  Forgotten exits, stray exits, a double entry, a late arrival
	part-time:     Custom Mon/Wed/Fri 6-hour schedule with a break
	team:          All of the above together (for reports)

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees
 3. Save custom schedules through factory.ScheduleJSON
 4. Append punches through factory.PunchJSON

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "overtime"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler and error mapping
  - factory/: Punch and schedule JSON
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/warp/hourbank/factory"
	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// ErrUnknownScenario is returned for a scenario ID not in Scenarios.
var ErrUnknownScenario = errors.New("unknown scenario")

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// Scenarios lists the loadable demo data sets.
var Scenarios = []ScenarioDTO{
	{
		ID:          "typical-week",
		Name:        "Typical Week",
		Description: "Two weeks of 8-hour days with a one-hour lunch break",
	},
	{
		ID:          "overtime",
		Name:        "Overtime",
		Description: "10-hour days and a shift open for more than 10 hours",
	},
	{
		ID:          "missed-punch",
		Name:        "Missed Punches",
		Description: "Forgotten exits, stray exits, a double entry and a late arrival",
	},
	{
		ID:          "part-time",
		Name:        "Part Time",
		Description: "Mon/Wed/Fri 6-hour schedule with a break",
	},
	{
		ID:          "team",
		Name:        "Team",
		Description: "Every employee above, for reports",
	},
}

// Office coordinates stamped on demo punches.
const (
	demoLatitude  = -23.5614
	demoLongitude = -46.6559
)

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.scenarioMu.Lock()
	current := h.currentScenario
	h.scenarioMu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range Scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.LoadScenarioByID(r.Context(), req.ScenarioID); err != nil {
		if errors.Is(err, ErrUnknownScenario) {
			writeError(w, http.StatusBadRequest, "Unknown scenario", err)
			return
		}
		h.writeDomainError(w, r, "Failed to load scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// LoadScenarioByID resets the store and seeds the named scenario relative
// to the handler's clock.
func (h *Handler) LoadScenarioByID(ctx context.Context, id string) error {
	seeders := map[string][]func(*seed){
		"typical-week": {seedTypicalWeek},
		"overtime":     {seedOvertime},
		"missed-punch": {seedMissedPunch},
		"part-time":    {seedPartTime},
		"team":         {seedTypicalWeek, seedOvertime, seedMissedPunch, seedPartTime},
	}
	fns, ok := seeders[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}

	h.scenarioMu.Lock()
	defer h.scenarioMu.Unlock()

	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	h.currentScenario = ""

	s := newSeed(h.now(), h.Service.Calendar.Zone())
	for _, fn := range fns {
		fn(s)
	}
	if err := h.applySeed(ctx, s); err != nil {
		return err
	}

	h.currentScenario = id
	h.Logger.Info("scenario loaded",
		zap.String("scenario", id),
		zap.Int("employees", len(s.employees)),
		zap.Int("punches", len(s.punches)),
	)
	return nil
}

// applySeed converts the seed's JSON shapes and writes them.
func (h *Handler) applySeed(ctx context.Context, s *seed) error {
	for _, e := range s.employees {
		if err := h.Store.SaveEmployee(ctx, e); err != nil {
			return fmt.Errorf("save employee %s: %w", e.ID, err)
		}
	}
	for _, sj := range s.schedules {
		ws, err := sj.ToSchedule()
		if err != nil {
			return fmt.Errorf("schedule for %s: %w", sj.UserID, err)
		}
		if err := h.Store.SaveSchedule(ctx, ws); err != nil {
			return fmt.Errorf("save schedule %s: %w", sj.UserID, err)
		}
	}

	punches := make([]timesheet.Punch, 0, len(s.punches))
	for _, pj := range s.punches {
		p, err := pj.ToPunch()
		if err != nil {
			return fmt.Errorf("punch %s: %w", pj.ID, err)
		}
		punches = append(punches, p)
	}
	if err := h.Store.AppendPunches(ctx, punches); err != nil {
		return fmt.Errorf("append punches: %w", err)
	}
	return nil
}

// =============================================================================
// SEED BUILDER
// =============================================================================

type seed struct {
	now   time.Time
	loc   *time.Location
	today generic.Day

	employees []timesheet.Employee
	schedules []factory.ScheduleJSON
	punches   []factory.PunchJSON
}

func newSeed(now time.Time, loc *time.Location) *seed {
	return &seed{now: now, loc: loc, today: generic.DayOf(now, loc)}
}

func (s *seed) employee(id, name, email string) {
	s.employees = append(s.employees, timesheet.Employee{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: s.now.AddDate(0, -3, 0).UTC(),
	})
}

// punchAt records one punch at a local wall-clock time ("HH:MM").
func (s *seed) punchAt(owner string, kind timesheet.Kind, day generic.Day, clock string) {
	c, err := generic.ParseClockTime(clock)
	if err != nil {
		panic(fmt.Sprintf("seed: bad clock %q", clock))
	}
	t := time.Date(day.Year, day.Month, day.Day, c.Hour, c.Minute, c.Second, 0, s.loc)
	s.punch(owner, kind, t)
}

func (s *seed) punch(owner string, kind timesheet.Kind, t time.Time) {
	lat, lon := demoLatitude, demoLongitude
	s.punches = append(s.punches, factory.PunchJSON{
		ID:        fmt.Sprintf("%s-%s-%s-%d", owner, t.UTC().Format("20060102T150405"), kind, len(s.punches)),
		UserID:    owner,
		Type:      string(kind),
		CreatedAt: t.UTC().Format(time.RFC3339),
		Latitude:  &lat,
		Longitude: &lon,
		IPAddress: "10.0.0.10",
	})
}

// shift records alternating entry/exit punches on day.
func (s *seed) shift(owner string, day generic.Day, clocks ...string) {
	for i, clock := range clocks {
		kind := timesheet.Entry
		if i%2 == 1 {
			kind = timesheet.Exit
		}
		s.punchAt(owner, kind, day, clock)
	}
}

// pastWorkdays returns the n weekdays before today, oldest first.
func (s *seed) pastWorkdays(n int) []generic.Day {
	days := make([]generic.Day, 0, n)
	for d := s.today.AddDays(-1); len(days) < n; d = d.AddDays(-1) {
		if !d.IsWeekend() {
			days = append(days, d)
		}
	}
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

// =============================================================================
// SCENARIO SEEDERS
// =============================================================================

func seedTypicalWeek(s *seed) {
	s.employee("emp-ana", "Ana Souza", "ana@example.com")
	for _, d := range s.pastWorkdays(10) {
		s.shift("emp-ana", d, "08:58", "12:00", "13:00", "17:58")
	}
}

func seedOvertime(s *seed) {
	s.employee("emp-bruno", "Bruno Lima", "bruno@example.com")
	for _, d := range s.pastWorkdays(10) {
		s.shift("emp-bruno", d, "08:00", "12:00", "13:00", "19:00")
	}
	s.punch("emp-bruno", timesheet.Entry, s.now.Add(-10*time.Hour-30*time.Minute))
}

func seedMissedPunch(s *seed) {
	s.employee("emp-carla", "Carla Mendes", "carla@example.com")
	days := s.pastWorkdays(5)

	s.shift("emp-carla", days[0], "09:00", "18:00")
	s.punchAt("emp-carla", timesheet.Entry, days[1], "09:05") // exit forgotten
	s.punchAt("emp-carla", timesheet.Exit, days[2], "18:10")  // entry forgotten
	s.punchAt("emp-carla", timesheet.Entry, days[3], "08:55")
	s.punchAt("emp-carla", timesheet.Entry, days[3], "09:20")
	s.punchAt("emp-carla", timesheet.Exit, days[3], "17:30")
	s.shift("emp-carla", days[4], "09:45", "18:45")
}

func seedPartTime(s *seed) {
	s.employee("emp-diego", "Diego Rocha", "diego@example.com")
	breakStart, breakEnd := "12:00", "12:30"
	s.schedules = append(s.schedules, factory.ScheduleJSON{
		UserID:        "emp-diego",
		WorkDays:      "1,3,5",
		WorkHours:     6,
		StartTime:     "10:00",
		EndTime:       "16:30",
		BreakStart:    &breakStart,
		BreakEnd:      &breakEnd,
		FlexibleHours: true,
	})
	for _, d := range s.pastWorkdays(10) {
		switch d.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
			s.shift("emp-diego", d, "10:00", "12:00", "12:30", "16:30")
		}
	}
}
